package bringup

import (
	"context"
	"time"

	"kaigan/internal/camera"
)

// Device は立ち上げ対象のカメラデバイス定義
type Device struct {
	ID     string // 設定上の識別子
	Name   string // 表示名
	Device string // デバイスパス（例: /dev/video0）
	Width  int    // 要求幅（0 なら既定値を使う）
	Height int    // 要求高さ（0 なら既定値を使う）
}

// Settings は立ち上げ全体の設定
type Settings struct {
	Policy     camera.Policy     // 解像度のデフォルト決定規則
	Generation camera.Generation // 使用するベンダー世代
	FPS        int               // フレームレート（実機バインディングで使用）
	Verbose    bool              // 確定解像度のログ出力
}

// Report は1台分の立ち上げ試行の記録
type Report struct {
	ID        string            // 試行の一意識別子
	DeviceID  string            // 設定上のデバイス識別子
	Name      string            // デバイスの表示名
	Device    string            // デバイスパス
	Requested camera.Resolution // 要求された解像度（番兵値を含む）
	Resolved  camera.Resolution // デフォルト決定後の解像度
	Status    camera.Status     // ベンダーの返した結果コード
	StartedAt time.Time         // 試行開始時刻
	Duration  time.Duration     // 所要時間
}

// Summary は立ち上げ全体の要約
type Summary struct {
	Total            int     // 対象デバイス数
	Succeeded        int     // 成功したデバイス数
	Failed           int     // 失敗したデバイス数
	MeanDurationMs   float64 // 試行所要時間の平均（ミリ秒）
	MedianDurationMs float64 // 試行所要時間の中央値（ミリ秒）
}

// Manager は複数デバイスの立ち上げを統合管理するインターフェース
type Manager interface {
	// Run は全デバイスの立ち上げを実行する
	Run(ctx context.Context) error

	// Reports は全デバイスの最新の記録を設定順で取得する
	Reports() []Report

	// Report は指定されたデバイスの最新の記録を取得する
	Report(deviceID string) (*Report, bool)

	// Reinit は指定されたデバイスの立ち上げを再実行する
	Reinit(ctx context.Context, deviceID string) (*Report, error)

	// Summary は立ち上げ全体の要約を返す
	Summary() Summary

	// Stop は再試行ループを停止する
	Stop()
}
