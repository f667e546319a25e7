// Package camera カメラ初期化の中核を担う
//
// # 責務
// - 要求解像度へのデフォルト決定規則（Policy）の適用
// - ベンダー初期化機能（Vendor）の呼び出しと結果コードの引き渡し
// - ベンダー実装の作成と世代ごとの切り替え
// - V4L2デバイスへの実機バインディング
//
// # 使い分け
// このパッケージは以下の場合に使用する：
// - 未指定（0）の幅・高さを製品構成の既定値で補ってカメラを初期化したい
// - ベンダーAPIの世代差をコード分岐ではなく設定で切り替えたい
// - ハードウェアなしの環境で立ち上げ手順を再現したい
//
// # 仕様
// - Policy: 幅・高さを独立に既定値で補い、高さのみ下限クランプを適用
// - Initializer: 解像度の確定とベンダー呼び出し。結果コードは無変換で返す
// - SimVendor: ドライバの検証規則をソフトウェアで再現（legacy / strict）
// - V4L2Vendor: go4vl経由でデバイスを開き解像度フォーマットを設定（Linuxのみ）
// - VendorFactory: 世代名からベンダー実装を作成
// - 結果コードは 0 が成功、負値がベンダー固有の失敗
//
// # 前提要件
//   - 実機バインディング（v4l2世代）はLinuxのみ
//   - videoグループへの参加: デバイスアクセス権限
//     sudo usermod -a -G video $USER
package camera
