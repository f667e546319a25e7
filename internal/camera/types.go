package camera

import "context"

// Unspecified は解像度の「未指定」を表す番兵値
// 幅・高さとも 0 のみを未指定として扱う
// 旧世代ファームウェアの一部は高さ 1 を未指定として扱っていたが、
// 本実装では引き継がず 1 は文字通り高さ 1 ピクセルとして解釈する
const Unspecified = 0

// Resolution はカメラの解像度をピクセル単位で表す
type Resolution struct {
	Width  int // 幅
	Height int // 高さ
}

// Status はベンダー初期化の結果コードを表す
// 0 は成功、負値はベンダー固有の失敗を意味する
// 負値の詳細な意味はベンダー実装ごとに定義され、初期化側では解釈しない
type Status int

// StatusOK はベンダー初期化の成功を表す
const StatusOK Status = 0

// OK は初期化が成功したかどうかを返す
func (s Status) OK() bool {
	return s == StatusOK
}

// InitToken はベンダー初期化に引き渡す不透明なトークン
// 一部のベンダー世代が要求する予約領域で、ゼロ値のまま使用できる
// 初期化側は内容を参照も変更もしない
type InitToken struct {
	Reserved [4]uint32 // ベンダー予約領域
}

// Policy は解像度のデフォルト決定規則を表す
// 値は製品バリアントごとの設定から与え、コードの分岐では表現しない
type Policy struct {
	DefaultWidth  int // 幅が未指定のときに使う既定幅
	DefaultHeight int // 高さが未指定のときに使う既定高さ
	MinHeight     int // 高さの下限（0 なら下限なし）
}

// Resolve は要求解像度にデフォルト決定規則を適用した結果を返す
// 幅と高さは独立に判定し、未指定のものだけを既定値で置き換える
// 既定値の適用後、MinHeight が設定されていれば高さのみ下限まで引き上げる
// 幅に下限は適用しない
func (p Policy) Resolve(width, height int) Resolution {
	if width == Unspecified {
		width = p.DefaultWidth
	}
	if height == Unspecified {
		height = p.DefaultHeight
	}
	if p.MinHeight > 0 && height < p.MinHeight {
		height = p.MinHeight
	}
	return Resolution{Width: width, Height: height}
}

// Vendor はカメラのベンダー初期化機能を抽象化するインターフェース
type Vendor interface {
	// Init は確定済みの解像度でベンダー初期化を実行し、結果コードを返す
	Init(ctx context.Context, width, height int, token *InitToken) Status
}

// VendorFunc は関数をVendorとして扱うためのアダプタ
type VendorFunc func(ctx context.Context, width, height int, token *InitToken) Status

// Init は f(ctx, width, height, token) を呼び出す
func (f VendorFunc) Init(ctx context.Context, width, height int, token *InitToken) Status {
	return f(ctx, width, height, token)
}
