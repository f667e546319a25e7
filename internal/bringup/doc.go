// Package bringup カメラデバイスの立ち上げ実行と記録を担う
//
// # 責務
// - 設定されたデバイス列への初期化の一括実行
// - 試行ごとの要求解像度・確定解像度・結果コードの記録
// - 失敗したデバイスの定期的な再試行
// - 所要時間の統計（平均・中央値）の集計
//
// # 使い分け
// このパッケージは以下の場合に使用する：
// - 起動時に全カメラの初期化をまとめて実行したい
// - 各デバイスの立ち上げ結果を後から参照したい
// - 接続の遅いデバイスを自動で再試行したい
//
// # 仕様
// - Manager: 立ち上げの実行・再実行・記録参照の統合インターフェース
// - Report: 試行単位の記録（UUID・解像度・結果コード・所要時間）
// - Summary: 成否件数と所要時間統計
// - Thread-safe な操作をサポート
package bringup
