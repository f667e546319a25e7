package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kaigan/internal/bringup"
	"kaigan/internal/camera"
	"kaigan/internal/config"
)

// newTestServer はテスト用のサーバーと実行済みマネージャーを作成する
func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Camera: config.CameraConfig{
			Profile:       config.ProfileClassic,
			DefaultWidth:  1280,
			DefaultHeight: 720,
			Vendor:        "legacy",
			DefaultFPS:    15,
		},
	}

	settings := bringup.Settings{
		Policy:     camera.Policy{DefaultWidth: 1280, DefaultHeight: 720},
		Generation: camera.GenerationLegacy,
		FPS:        15,
	}
	devices := []bringup.Device{
		{ID: "rvc", Name: "リアカメラ", Device: "/dev/video0", Width: 0, Height: 0},
		{ID: "broken", Name: "故障カメラ", Device: "/dev/video1", Width: -1, Height: 480},
	}

	manager, err := bringup.NewDefaultManager(camera.NewVendorFactory(), settings, devices)
	if err != nil {
		t.Fatalf("NewDefaultManager failed: %v", err)
	}

	// brokenは失敗するのでエラーは想定内
	_ = manager.Run(context.Background())

	return New(cfg, manager)
}

// get はテストサーバーへのGETリクエストを実行する
func get(srv *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.engine.ServeHTTP(w, req)
	return w
}

// TestServerStartAndShutdown はサーバーの起動とシャットダウンをテストする
func TestServerStartAndShutdown(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         0, // ランダムポートを使用
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}

	manager, err := bringup.NewDefaultManager(camera.NewVendorFactory(), bringup.Settings{
		Policy:     camera.Policy{DefaultWidth: 1280, DefaultHeight: 720},
		Generation: camera.GenerationLegacy,
	}, nil)
	if err != nil {
		t.Fatalf("NewDefaultManager failed: %v", err)
	}

	srv := New(cfg, manager)

	// テスト用のコンテキスト（タイムアウト付き）
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// サーバーを別ゴルーチンで起動
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// サーバーが起動するまで少し待つ
	time.Sleep(100 * time.Millisecond)

	// コンテキストをキャンセルしてサーバーを停止
	cancel()

	// エラーチャンネルから結果を受信
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("サーバーの起動/停止でエラーが発生しました: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("サーバーの停止がタイムアウトしました")
	}
}

// TestServerEndpoints は各エンドポイントのステータスコードをテストする
func TestServerEndpoints(t *testing.T) {
	srv := newTestServer(t)

	testCases := []struct {
		name           string
		method         string
		endpoint       string
		expectedStatus int
	}{
		{"ルートエンドポイント", http.MethodGet, "/", http.StatusOK},
		{"ヘルスチェックエンドポイント", http.MethodGet, "/health", http.StatusOK},
		{"ステータスエンドポイント", http.MethodGet, "/api/status", http.StatusOK},
		{"カメラ一覧エンドポイント", http.MethodGet, "/api/cameras", http.StatusOK},
		{"個別カメラエンドポイント", http.MethodGet, "/api/cameras/rvc", http.StatusOK},
		{"存在しないカメラ", http.MethodGet, "/api/cameras/nope", http.StatusNotFound},
		{"再初期化エンドポイント", http.MethodPost, "/api/cameras/rvc/init", http.StatusOK},
		{"存在しないカメラの再初期化", http.MethodPost, "/api/cameras/nope/init", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.endpoint, nil)
			srv.engine.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("予期しないステータスコード: got %d, want %d", w.Code, tc.expectedStatus)
			}
		})
	}
}

// TestStatusEndpoint はステータス応答の内容をテストする
func TestStatusEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := get(srv, "/api/status")
	if w.Code != http.StatusOK {
		t.Fatalf("予期しないステータスコード: got %d", w.Code)
	}

	var response StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("応答の解析に失敗しました: %v", err)
	}

	if response.Status != "running" {
		t.Errorf("ステータスが一致しません: got %s, want running", response.Status)
	}
	if response.Summary.Total != 2 {
		t.Errorf("デバイス数が一致しません: got %d, want 2", response.Summary.Total)
	}
	if response.Summary.Succeeded != 1 || response.Summary.Failed != 1 {
		t.Errorf("成否件数が一致しません: got %d/%d, want 1/1",
			response.Summary.Succeeded, response.Summary.Failed)
	}
}

// TestCamerasEndpoint はカメラ一覧応答の内容をテストする
func TestCamerasEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := get(srv, "/api/cameras")
	if w.Code != http.StatusOK {
		t.Fatalf("予期しないステータスコード: got %d", w.Code)
	}

	var response CamerasResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("応答の解析に失敗しました: %v", err)
	}

	if len(response.Cameras) != 2 {
		t.Fatalf("カメラ数が一致しません: got %d, want 2", len(response.Cameras))
	}

	// 要求値の番兵（0）と確定値の両方が応答に含まれる
	rvc := response.Cameras[0]
	if rvc.DeviceID != "rvc" {
		t.Errorf("デバイスIDが一致しません: got %s, want rvc", rvc.DeviceID)
	}
	if rvc.Requested.Width != 0 || rvc.Requested.Height != 0 {
		t.Errorf("要求解像度が一致しません: got %dx%d, want 0x0",
			rvc.Requested.Width, rvc.Requested.Height)
	}
	if rvc.Resolved.Width != 1280 || rvc.Resolved.Height != 720 {
		t.Errorf("確定解像度が一致しません: got %dx%d, want 1280x720",
			rvc.Resolved.Width, rvc.Resolved.Height)
	}
	if !rvc.Ok || rvc.Status != 0 {
		t.Errorf("結果コードが一致しません: got status=%d ok=%v", rvc.Status, rvc.Ok)
	}

	broken := response.Cameras[1]
	if broken.Ok || broken.Status != int(camera.StatusInvalidResolution) {
		t.Errorf("失敗デバイスの結果コードが一致しません: got status=%d ok=%v",
			broken.Status, broken.Ok)
	}
}

// TestCamerasEndpointLimit はlimitクエリの丸め処理をテストする
func TestCamerasEndpointLimit(t *testing.T) {
	srv := newTestServer(t)

	testCases := []struct {
		name          string
		query         string
		expectedCount int
		expectedCode  int
	}{
		{"制限なし", "", 2, http.StatusOK},
		{"範囲内", "?limit=1", 1, http.StatusOK},
		{"上限超過は全件に丸める", "?limit=99", 2, http.StatusOK},
		{"負数はゼロ件に丸める", "?limit=-5", 0, http.StatusOK},
		{"整数以外はエラー", "?limit=abc", 0, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(srv, "/api/cameras"+tc.query)

			if w.Code != tc.expectedCode {
				t.Fatalf("予期しないステータスコード: got %d, want %d", w.Code, tc.expectedCode)
			}
			if tc.expectedCode != http.StatusOK {
				return
			}

			var response CamerasResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("応答の解析に失敗しました: %v", err)
			}
			if len(response.Cameras) != tc.expectedCount {
				t.Errorf("カメラ数が一致しません: got %d, want %d", len(response.Cameras), tc.expectedCount)
			}
		})
	}
}

// TestCameraInitEndpoint は再初期化応答の内容をテストする
func TestCameraInitEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cameras/rvc/init", nil)
	srv.engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("予期しないステータスコード: got %d", w.Code)
	}

	var report ReportInfo
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("応答の解析に失敗しました: %v", err)
	}

	if !report.Ok {
		t.Errorf("再初期化が失敗しています: status=%d", report.Status)
	}
	if report.Resolved.Width != 1280 || report.Resolved.Height != 720 {
		t.Errorf("確定解像度が一致しません: got %dx%d, want 1280x720",
			report.Resolved.Width, report.Resolved.Height)
	}
	if report.ID == "" {
		t.Error("試行IDが設定されていません")
	}
}
