package camera

import "fmt"

// VendorConfig はベンダー作成設定
type VendorConfig struct {
	Device string // デバイスパス（実機バインディングで使用）
	FPS    int    // フレームレート（実機バインディングで使用）
}

// VendorFactory はベンダー作成ファクトリー
type VendorFactory interface {
	Create(generation Generation, config VendorConfig) (Vendor, error)
	Register(generation Generation, creator VendorCreator)
	SupportedGenerations() []Generation
}

// VendorCreator はベンダー作成関数の型
type VendorCreator func(config VendorConfig) (Vendor, error)

// DefaultVendorFactory は標準実装
type DefaultVendorFactory struct {
	creators map[Generation]VendorCreator
}

// NewVendorFactory は新しいファクトリーを作成する
func NewVendorFactory() VendorFactory {
	factory := &DefaultVendorFactory{
		creators: make(map[Generation]VendorCreator),
	}

	// シミュレーションベンダーの作成関数を登録
	factory.Register(GenerationLegacy, func(_ VendorConfig) (Vendor, error) {
		return NewSimVendor(GenerationLegacy), nil
	})
	factory.Register(GenerationStrict, func(_ VendorConfig) (Vendor, error) {
		return NewSimVendor(GenerationStrict), nil
	})

	// プラットフォーム固有のベンダーを登録（Linux以外では何も追加されない）
	registerPlatformVendors(factory)

	return factory
}

// Register はベンダー作成関数を登録する
func (f *DefaultVendorFactory) Register(generation Generation, creator VendorCreator) {
	f.creators[generation] = creator
}

// Create は指定世代のベンダーを作成する
func (f *DefaultVendorFactory) Create(generation Generation, config VendorConfig) (Vendor, error) {
	creator, exists := f.creators[generation]
	if !exists {
		return nil, fmt.Errorf("サポートされていないベンダー世代: %s", generation)
	}

	return creator(config)
}

// SupportedGenerations はサポートされているベンダー世代を返す
func (f *DefaultVendorFactory) SupportedGenerations() []Generation {
	generations := make([]Generation, 0, len(f.creators))
	for generation := range f.creators {
		generations = append(generations, generation)
	}
	return generations
}
