package camera

import (
	"context"
	"log"
)

// Initializer はカメラ初期化の中核を担う
// 責務はデフォルト決定規則の適用とベンダー初期化の呼び出しのみで、
// ベンダーの返した結果コードは解釈せずそのまま呼び出し側へ返す
type Initializer struct {
	policy  Policy
	vendor  Vendor
	token   InitToken
	verbose bool
}

// NewInitializer は新しいInitializerを作成する
// トークンはゼロ値で保持し、初期化のたびに同じものをベンダーへ渡す
func NewInitializer(policy Policy, vendor Vendor) *Initializer {
	return &Initializer{
		policy: policy,
		vendor: vendor,
	}
}

// SetVerbose は確定した解像度のログ出力を有効/無効にする
// ログは観測用で、返される結果コードには影響しない
func (i *Initializer) SetVerbose(enabled bool) {
	i.verbose = enabled
}

// Policy は現在のデフォルト決定規則を返す
func (i *Initializer) Policy() Policy {
	return i.policy
}

// Resolve は要求解像度にデフォルト決定規則を適用した結果を返す
// ベンダー呼び出しは行わない
func (i *Initializer) Resolve(width, height int) Resolution {
	return i.policy.Resolve(width, height)
}

// Init は解像度を確定してベンダー初期化を実行する
// 戻り値はベンダーが返した結果コードそのもので、変換や再解釈は行わない
func (i *Initializer) Init(ctx context.Context, width, height int) Status {
	resolved := i.policy.Resolve(width, height)

	if i.verbose {
		log.Printf("カメラを初期化します: %dx%d", resolved.Width, resolved.Height)
	}

	return i.vendor.Init(ctx, resolved.Width, resolved.Height, &i.token)
}
