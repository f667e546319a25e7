// Package server は、カメラ立ち上げ状態を公開するHTTPサーバーを管理します。
//
// このパッケージは、HTTPサーバーの起動、ルーティング、
// 立ち上げ記録の参照と再実行のAPI提供を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - 立ち上げ記録・要約のJSON配信
//   - カメラ初期化の再実行リクエストの受け付け
//   - ヘルスチェックの提供
//
// 仕様:
//   - ルーティングにginを使用
//   - グレースフルシャットダウンに対応
//   - 応答はすべてJSON（ルートページのみHTML）
package server
