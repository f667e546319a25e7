package camera

import (
	"context"
	"sync"
)

// Generation はベンダーAPIの世代を表す
type Generation string

const (
	// GenerationLegacy は旧世代API（幅・高さがともに正なら成功）
	GenerationLegacy Generation = "legacy"
	// GenerationStrict は新世代API（高さ 1 を追加で拒否する）
	GenerationStrict Generation = "strict"
	// GenerationV4L2 はV4L2デバイスに束縛された実機バインディング
	GenerationV4L2 Generation = "v4l2"
)

// ベンダー実装が返す失敗コード
// 負値の割り当てはベンダー実装側の取り決めで、初期化側はOK判定にのみ使う
const (
	// StatusInvalidResolution は解像度の検証失敗を表す
	StatusInvalidResolution Status = -1
	// StatusDeviceOpenFailed はデバイスのオープン失敗を表す
	StatusDeviceOpenFailed Status = -2
	// StatusFormatRejected は解像度フォーマットの設定失敗を表す
	StatusFormatRejected Status = -3
)

// SimVendor はハードウェアなしで動作する決定的なベンダー実装
// ドライバと同じ検証規則をソフトウェアで再現し、開発環境での
// 立ち上げ確認やテストでの差し替え先となる
type SimVendor struct {
	generation Generation
}

// NewSimVendor は指定世代のSimVendorを作成する
// 未知の世代は旧世代として扱う
func NewSimVendor(generation Generation) *SimVendor {
	return &SimVendor{generation: generation}
}

// Generation はこの実装が再現しているAPI世代を返す
func (v *SimVendor) Generation() Generation {
	return v.generation
}

// Init は解像度を検証して結果コードを返す
// 旧世代は幅・高さがともに正なら成功とする
// 新世代は高さ 1 を無効として追加で拒否する
func (v *SimVendor) Init(_ context.Context, width, height int, _ *InitToken) Status {
	switch v.generation {
	case GenerationStrict:
		if width > 0 && height > 1 {
			return StatusOK
		}
	default:
		if width > 0 && height > 0 {
			return StatusOK
		}
	}
	return StatusInvalidResolution
}

// VendorCall はRecordingVendorが記録する1回分の呼び出し内容
type VendorCall struct {
	Width  int        // 渡された幅
	Height int        // 渡された高さ
	Token  *InitToken // 渡されたトークン
}

// RecordingVendor はテスト用のベンダー実装
// 受け取った引数を記録し、設定された結果コードをそのまま返す
type RecordingVendor struct {
	mu     sync.Mutex
	status Status
	calls  []VendorCall
}

// NewRecordingVendor は新しいRecordingVendorを作成する
func NewRecordingVendor(status Status) *RecordingVendor {
	return &RecordingVendor{status: status}
}

// Init は呼び出し内容を記録し、設定済みの結果コードを返す
func (v *RecordingVendor) Init(_ context.Context, width, height int, token *InitToken) Status {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.calls = append(v.calls, VendorCall{Width: width, Height: height, Token: token})
	return v.status
}

// SetStatus はテスト用に返す結果コードを設定する
func (v *RecordingVendor) SetStatus(status Status) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = status
}

// Calls は記録された呼び出しの一覧を返す
func (v *RecordingVendor) Calls() []VendorCall {
	v.mu.Lock()
	defer v.mu.Unlock()

	calls := make([]VendorCall, len(v.calls))
	copy(calls, v.calls)
	return calls
}

// LastCall は最後に記録された呼び出しを返す
func (v *RecordingVendor) LastCall() (VendorCall, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.calls) == 0 {
		return VendorCall{}, false
	}
	return v.calls[len(v.calls)-1], true
}
