package bringup

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"kaigan/internal/camera"
	"kaigan/internal/config"
	"kaigan/internal/stats"
)

// DefaultManager はManagerのデフォルト実装
type DefaultManager struct {
	devices      []Device
	initializers map[string]*camera.Initializer
	reports      map[string]*Report
	mu           sync.RWMutex

	// 再試行ループ制御用
	stopCh chan struct{}
	wg     sync.WaitGroup

	// 再試行設定
	autoRetry     bool
	retryInterval time.Duration
	loopRunning   bool
}

// NewDefaultManager は新しいDefaultManagerを作成する
// デバイスごとにベンダーを作成し、解像度規則を束縛したInitializerを持たせる
func NewDefaultManager(factory camera.VendorFactory, settings Settings, devices []Device) (*DefaultManager, error) {
	initializers := make(map[string]*camera.Initializer, len(devices))

	for _, dev := range devices {
		if dev.ID == "" {
			return nil, fmt.Errorf("デバイス識別子が空です: %s", dev.Device)
		}
		if _, exists := initializers[dev.ID]; exists {
			return nil, fmt.Errorf("デバイス識別子が重複しています: %s", dev.ID)
		}

		vendor, err := factory.Create(settings.Generation, camera.VendorConfig{
			Device: dev.Device,
			FPS:    settings.FPS,
		})
		if err != nil {
			return nil, fmt.Errorf("デバイス %s のベンダー作成に失敗: %w", dev.ID, err)
		}

		initializer := camera.NewInitializer(settings.Policy, vendor)
		initializer.SetVerbose(settings.Verbose)
		initializers[dev.ID] = initializer
	}

	return &DefaultManager{
		devices:       devices,
		initializers:  initializers,
		reports:       make(map[string]*Report),
		stopCh:        make(chan struct{}),
		retryInterval: 30 * time.Second, // 30秒間隔で失敗デバイスを再試行
	}, nil
}

// FromConfig は設定から立ち上げマネージャーを構築する
func FromConfig(cfg *config.Config) (*DefaultManager, error) {
	factory := camera.NewVendorFactory()

	settings := Settings{
		Policy: camera.Policy{
			DefaultWidth:  cfg.Camera.DefaultWidth,
			DefaultHeight: cfg.Camera.DefaultHeight,
			MinHeight:     cfg.Camera.MinHeight,
		},
		Generation: camera.Generation(cfg.Camera.Vendor),
		FPS:        cfg.Camera.DefaultFPS,
		Verbose:    cfg.Camera.Verbose,
	}

	devices := make([]Device, 0, len(cfg.Camera.Devices))
	for _, dev := range cfg.Camera.Devices {
		devices = append(devices, Device{
			ID:     dev.ID,
			Name:   dev.Name,
			Device: dev.Device,
			Width:  dev.Width,
			Height: dev.Height,
		})
	}

	return NewDefaultManager(factory, settings, devices)
}

// Run は全デバイスの立ち上げを実行する
// 1台でも失敗があればエラーを返すが、残りのデバイスの実行は継続する
func (m *DefaultManager) Run(ctx context.Context) error {
	m.mu.Lock()

	var failedIDs []string
	for _, dev := range m.devices {
		report := m.runDevice(ctx, dev)
		if !report.Status.OK() {
			failedIDs = append(failedIDs, dev.ID)
		}
	}

	startLoop := m.autoRetry && !m.loopRunning
	var stopCh chan struct{}
	var interval time.Duration
	if startLoop {
		m.loopRunning = true
		stopCh = m.stopCh
		interval = m.retryInterval
		m.wg.Add(1)
	}
	m.mu.Unlock()

	if startLoop {
		go m.retryLoop(ctx, stopCh, interval)
	}

	if len(failedIDs) > 0 {
		return fmt.Errorf("一部のデバイスの初期化に失敗: %v", failedIDs)
	}

	return nil
}

// Reports は全デバイスの最新の記録を設定順で取得する
func (m *DefaultManager) Reports() []Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reports := make([]Report, 0, len(m.reports))
	for _, dev := range m.devices {
		if report, exists := m.reports[dev.ID]; exists {
			reports = append(reports, *report)
		}
	}

	return reports
}

// Report は指定されたデバイスの最新の記録を取得する
func (m *DefaultManager) Report(deviceID string) (*Report, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	report, exists := m.reports[deviceID]
	if !exists {
		return nil, false
	}

	// コピーを返す
	result := *report
	return &result, true
}

// Reinit は指定されたデバイスの立ち上げを再実行する
func (m *DefaultManager) Reinit(ctx context.Context, deviceID string) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, dev := range m.devices {
		if dev.ID == deviceID {
			report := m.runDevice(ctx, dev)
			result := *report
			return &result, nil
		}
	}

	return nil, fmt.Errorf("デバイスが見つかりません: %s", deviceID)
}

// Summary は立ち上げ全体の要約を返す
func (m *DefaultManager) Summary() Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary := Summary{Total: len(m.devices)}

	durations := make([]float64, 0, len(m.reports))
	for _, report := range m.reports {
		if report.Status.OK() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		durations = append(durations, report.Duration.Seconds()*1000)
	}

	summary.MeanDurationMs = stats.Mean(durations)
	summary.MedianDurationMs = stats.Median(durations)

	return summary
}

// Stop は再試行ループを停止する
func (m *DefaultManager) Stop() {
	m.mu.Lock()
	if !m.loopRunning {
		m.mu.Unlock()
		return
	}
	m.loopRunning = false
	close(m.stopCh)
	m.mu.Unlock()

	// ループの終了を待ってから次回用のチャンネルを作り直す
	m.wg.Wait()

	m.mu.Lock()
	m.stopCh = make(chan struct{})
	m.mu.Unlock()
}

// SetAutoRetry は失敗デバイスの自動再試行の有効/無効を設定する
// 次のRun呼び出しから反映される
func (m *DefaultManager) SetAutoRetry(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoRetry = enabled
}

// SetRetryInterval は再試行間隔を設定する
func (m *DefaultManager) SetRetryInterval(interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retryInterval = interval
}

// runDevice は1台分の立ち上げを実行して記録する（ロック済み前提）
func (m *DefaultManager) runDevice(ctx context.Context, dev Device) *Report {
	initializer := m.initializers[dev.ID]

	started := time.Now()
	status := initializer.Init(ctx, dev.Width, dev.Height)

	report := &Report{
		ID:        uuid.New().String(),
		DeviceID:  dev.ID,
		Name:      dev.Name,
		Device:    dev.Device,
		Requested: camera.Resolution{Width: dev.Width, Height: dev.Height},
		Resolved:  initializer.Resolve(dev.Width, dev.Height),
		Status:    status,
		StartedAt: started,
		Duration:  time.Since(started),
	}

	m.reports[dev.ID] = report
	return report
}

// retryLoop は失敗したデバイスを定期的に再試行する
func (m *DefaultManager) retryLoop(ctx context.Context, stopCh <-chan struct{}, interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.retryFailed(ctx)
		}
	}
}

// retryFailed は失敗状態のデバイスだけを再実行する
func (m *DefaultManager) retryFailed(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, dev := range m.devices {
		report, exists := m.reports[dev.ID]
		if !exists || report.Status.OK() {
			continue
		}

		if retried := m.runDevice(ctx, dev); retried.Status.OK() {
			log.Printf("デバイス %s の初期化が回復しました: %dx%d",
				dev.ID, retried.Resolved.Width, retried.Resolved.Height)
		}
	}
}
