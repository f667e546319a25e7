package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server"`
	Camera CameraConfig `yaml:"camera"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト
}

// CameraConfig はカメラ初期化関連の設定
type CameraConfig struct {
	// 製品プロファイル（classic / wide）
	Profile string `yaml:"profile"`

	// 解像度のデフォルト決定規則
	DefaultWidth  int `yaml:"default_width"`  // 幅が未指定（0）のときの既定幅
	DefaultHeight int `yaml:"default_height"` // 高さが未指定（0）のときの既定高さ
	MinHeight     int `yaml:"min_height"`     // 高さの下限（0 なら下限なし）

	// ベンダー世代（legacy / strict / v4l2）
	Vendor string `yaml:"vendor"`

	// 確定解像度のログ出力
	Verbose bool `yaml:"verbose"`

	// フレームレート (fps)
	DefaultFPS int `yaml:"default_fps"`

	// 立ち上げ対象デバイス
	Devices []CameraDevice `yaml:"devices"`
}

// CameraDevice は個別カメラの設定
type CameraDevice struct {
	ID     string `yaml:"id"`     // カメラID
	Name   string `yaml:"name"`   // カメラ名
	Device string `yaml:"device"` // デバイスパス (例: /dev/video0)

	// デバイス固有の要求解像度（0 は既定値を使う）
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// 製品プロファイル名
const (
	// ProfileClassic は従来製品の構成（1280x720、高さの下限なし）
	ProfileClassic = "classic"
	// ProfileWide は広角カメラ製品の構成（1344x720、高さの下限 480）
	ProfileWide = "wide"
)

// profileDefaults はプロファイルごとのカメラ既定値
var profileDefaults = map[string]CameraConfig{
	ProfileClassic: {
		DefaultWidth:  1280,
		DefaultHeight: 720,
		MinHeight:     0,
		Vendor:        "strict",
		Verbose:       false,
		DefaultFPS:    15,
	},
	ProfileWide: {
		DefaultWidth:  1344,
		DefaultHeight: 720,
		MinHeight:     480,
		Vendor:        "legacy",
		Verbose:       true,
		DefaultFPS:    15,
	},
}

// Load は設定を読み込む
// 優先順位: 環境変数 > 設定ファイル > プロファイル既定値
// path が空の場合はファイルを読まずに既定値と環境変数だけで構成する
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Camera: CameraConfig{
			Profile: ProfileClassic,
		},
	}

	// 設定ファイルの読み込み（省略可能）
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("設定ファイルの解析に失敗: %w", err)
		}
	}

	// 環境変数による上書き
	cfg.Server.Host = getEnvOrDefault("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvAsIntOrDefault("PORT", cfg.Server.Port)
	cfg.Camera.Profile = getEnvOrDefault("CAMERA_PROFILE", cfg.Camera.Profile)
	cfg.Camera.Vendor = getEnvOrDefault("CAMERA_VENDOR", cfg.Camera.Vendor)

	// プロファイル既定値で未設定の項目を補う
	if err := cfg.applyProfile(); err != nil {
		return nil, err
	}

	// デバイス未設定の場合は既定の1台を対象にする
	if len(cfg.Camera.Devices) == 0 {
		cfg.Camera.Devices = []CameraDevice{
			{ID: "rvc", Name: "リアカメラ", Device: "/dev/video0"},
		}
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// applyProfile はプロファイルの既定値で未設定の項目を補う
// ファイルや環境変数で明示された値が優先される
func (c *Config) applyProfile() error {
	preset, exists := profileDefaults[c.Camera.Profile]
	if !exists {
		return fmt.Errorf("未知のプロファイル: %s", c.Camera.Profile)
	}

	if c.Camera.DefaultWidth == 0 {
		c.Camera.DefaultWidth = preset.DefaultWidth
	}
	if c.Camera.DefaultHeight == 0 {
		c.Camera.DefaultHeight = preset.DefaultHeight
	}
	if c.Camera.MinHeight == 0 {
		c.Camera.MinHeight = preset.MinHeight
	}
	if c.Camera.Vendor == "" {
		c.Camera.Vendor = preset.Vendor
	}
	if c.Camera.DefaultFPS == 0 {
		c.Camera.DefaultFPS = preset.DefaultFPS
	}

	// ログ出力はプロファイル既定で有効な場合、常に有効
	c.Camera.Verbose = c.Camera.Verbose || preset.Verbose

	return nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	// カメラ設定の検証
	if c.Camera.DefaultWidth <= 0 {
		return fmt.Errorf("無効な既定幅: %d", c.Camera.DefaultWidth)
	}
	if c.Camera.DefaultHeight <= 0 {
		return fmt.Errorf("無効な既定高さ: %d", c.Camera.DefaultHeight)
	}
	if c.Camera.MinHeight < 0 {
		return fmt.Errorf("無効な高さ下限: %d", c.Camera.MinHeight)
	}
	if c.Camera.Vendor == "" {
		return fmt.Errorf("ベンダー世代が設定されていません")
	}
	if c.Camera.DefaultFPS < 1 {
		return fmt.Errorf("無効なフレームレート: %d", c.Camera.DefaultFPS)
	}

	// デバイス設定の検証
	seen := make(map[string]bool)
	for i, dev := range c.Camera.Devices {
		if dev.ID == "" {
			return fmt.Errorf("デバイス %d のIDが設定されていません", i)
		}
		if seen[dev.ID] {
			return fmt.Errorf("デバイスIDが重複しています: %s", dev.ID)
		}
		seen[dev.ID] = true

		if dev.Device == "" {
			return fmt.Errorf("デバイス %s のデバイスパスが設定されていません", dev.ID)
		}
		if dev.Width < 0 || dev.Height < 0 {
			return fmt.Errorf("デバイス %s の解像度が無効です: %dx%d", dev.ID, dev.Width, dev.Height)
		}
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
