//go:build !linux || !cgo

package camera

// registerPlatformVendors はプラットフォーム固有のベンダーを登録する
// Linux以外には実機バインディングがないため、何も登録しない
// シミュレーションベンダー（legacy / strict）は全プラットフォームで利用できる
func registerPlatformVendors(_ *DefaultVendorFactory) {}
