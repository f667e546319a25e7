//go:build linux && cgo

package camera

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/vladimirvivien/go4vl/device"
	"github.com/vladimirvivien/go4vl/v4l2"
)

// V4L2Vendor はV4L2デバイスに束縛された実機ベンダー実装
// デバイスを開いて解像度フォーマットを設定できるかどうかで
// カメラ初期化の成否を判定する
type V4L2Vendor struct {
	devicePath string
	fps        int
}

// NewV4L2Vendor は新しいV4L2Vendorを作成する
func NewV4L2Vendor(devicePath string, fps int) *V4L2Vendor {
	return &V4L2Vendor{
		devicePath: devicePath,
		fps:        fps,
	}
}

// Device は束縛されているデバイスパスを返す
func (v *V4L2Vendor) Device() string {
	return v.devicePath
}

// Init はデバイスを開き、解像度フォーマットを適用して結果コードを返す
// トークンは現行のドライバでは使用しない
func (v *V4L2Vendor) Init(_ context.Context, width, height int, _ *InitToken) Status {
	// デバイスファイルの存在確認
	if _, err := os.Stat(v.devicePath); err != nil {
		log.Printf("デバイスが利用できません: %s: %v", v.devicePath, err)
		return StatusDeviceOpenFailed
	}

	dev, err := device.Open(v.devicePath, device.WithFPS(uint32(v.fps)))
	if err != nil {
		log.Printf("デバイスのオープンに失敗: %s: %v", v.devicePath, err)
		return StatusDeviceOpenFailed
	}
	defer func() {
		if closeErr := dev.Close(); closeErr != nil {
			log.Printf("デバイスのクローズに失敗: %s: %v", v.devicePath, closeErr)
		}
	}()

	if err := dev.SetPixFormat(v4l2.PixFormat{
		Width:  uint32(width),
		Height: uint32(height),
		Field:  v4l2.FieldNone,
	}); err != nil {
		log.Printf("解像度フォーマットの設定に失敗: %dx%d: %v", width, height, err)
		return StatusFormatRejected
	}

	return StatusOK
}

// registerPlatformVendors はLinux固有のベンダーを登録する
func registerPlatformVendors(factory *DefaultVendorFactory) {
	factory.Register(GenerationV4L2, func(config VendorConfig) (Vendor, error) {
		if config.Device == "" {
			return nil, fmt.Errorf("V4L2ベンダーの作成にはデバイスパスが必要です")
		}

		fps := config.FPS
		if fps <= 0 {
			fps = 15
		}

		return NewV4L2Vendor(config.Device, fps), nil
	})
}
