package camera

import (
	"context"
	"testing"
)

// TestSimVendorLegacy は旧世代APIの検証規則をテストする
func TestSimVendorLegacy(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		expected Status
	}{
		{"通常解像度", 1280, 720, StatusOK},
		{"高さ 1 も許可", 1280, 1, StatusOK},
		{"幅ゼロ", 0, 720, StatusInvalidResolution},
		{"高さゼロ", 1280, 0, StatusInvalidResolution},
		{"負の幅", -1, 720, StatusInvalidResolution},
	}

	vendor := NewSimVendor(GenerationLegacy)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := vendor.Init(context.Background(), tt.width, tt.height, &InitToken{})
			if status != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, status)
			}
		})
	}
}

// TestSimVendorStrict は新世代APIの検証規則をテストする
func TestSimVendorStrict(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		expected Status
	}{
		{"通常解像度", 1280, 720, StatusOK},
		{"高さ 2 は許可", 1280, 2, StatusOK},
		{"高さ 1 を拒否", 1280, 1, StatusInvalidResolution},
		{"高さゼロ", 1280, 0, StatusInvalidResolution},
		{"幅ゼロ", 0, 720, StatusInvalidResolution},
	}

	vendor := NewSimVendor(GenerationStrict)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := vendor.Init(context.Background(), tt.width, tt.height, &InitToken{})
			if status != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, status)
			}
		})
	}
}

// TestRecordingVendor は呼び出し記録と結果コードの設定をテストする
func TestRecordingVendor(t *testing.T) {
	vendor := NewRecordingVendor(StatusOK)

	if _, ok := vendor.LastCall(); ok {
		t.Error("Expected no calls initially")
	}

	vendor.Init(context.Background(), 640, 480, &InitToken{})
	vendor.SetStatus(StatusFormatRejected)
	status := vendor.Init(context.Background(), 1280, 720, &InitToken{})

	if status != StatusFormatRejected {
		t.Errorf("Expected status %d, got %d", StatusFormatRejected, status)
	}

	calls := vendor.Calls()
	if len(calls) != 2 {
		t.Fatalf("Expected 2 calls, got %d", len(calls))
	}
	if calls[0].Width != 640 || calls[0].Height != 480 {
		t.Errorf("Expected first call 640x480, got %dx%d", calls[0].Width, calls[0].Height)
	}

	last, ok := vendor.LastCall()
	if !ok {
		t.Fatal("Expected a recorded call")
	}
	if last.Width != 1280 || last.Height != 720 {
		t.Errorf("Expected last call 1280x720, got %dx%d", last.Width, last.Height)
	}
}

// TestVendorFactoryCreate はファクトリーによるベンダー作成をテストする
func TestVendorFactoryCreate(t *testing.T) {
	factory := NewVendorFactory()

	legacy, err := factory.Create(GenerationLegacy, VendorConfig{})
	if err != nil {
		t.Fatalf("Create(legacy) failed: %v", err)
	}
	if status := legacy.Init(context.Background(), 1280, 1, &InitToken{}); status != StatusOK {
		t.Errorf("Expected legacy vendor to accept height 1, got status %d", status)
	}

	strict, err := factory.Create(GenerationStrict, VendorConfig{})
	if err != nil {
		t.Fatalf("Create(strict) failed: %v", err)
	}
	if status := strict.Init(context.Background(), 1280, 1, &InitToken{}); status == StatusOK {
		t.Error("Expected strict vendor to reject height 1")
	}
}

// TestVendorFactoryUnknownGeneration は未知の世代でエラーになることをテストする
func TestVendorFactoryUnknownGeneration(t *testing.T) {
	factory := NewVendorFactory()

	_, err := factory.Create(Generation("unknown"), VendorConfig{})
	if err == nil {
		t.Error("Expected error for unknown generation")
	}
}

// TestVendorFactoryRegister はカスタムベンダーの登録をテストする
func TestVendorFactoryRegister(t *testing.T) {
	factory := NewVendorFactory()
	recorder := NewRecordingVendor(StatusOK)

	factory.Register(Generation("recording"), func(_ VendorConfig) (Vendor, error) {
		return recorder, nil
	})

	vendor, err := factory.Create(Generation("recording"), VendorConfig{})
	if err != nil {
		t.Fatalf("Create(recording) failed: %v", err)
	}

	vendor.Init(context.Background(), 640, 480, &InitToken{})
	if len(recorder.Calls()) != 1 {
		t.Errorf("Expected 1 recorded call, got %d", len(recorder.Calls()))
	}

	found := false
	for _, generation := range factory.SupportedGenerations() {
		if generation == Generation("recording") {
			found = true
		}
	}
	if !found {
		t.Error("Expected registered generation to be listed")
	}
}
