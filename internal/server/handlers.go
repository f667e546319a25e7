package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kaigan/internal/bringup"
	"kaigan/internal/stats"
)

// HealthResponse はヘルスチェックの応答
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ServerInfo はサーバー情報
type ServerInfo struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// SummaryInfo は立ち上げ全体の要約
type SummaryInfo struct {
	Total            int     `json:"total"`
	Succeeded        int     `json:"succeeded"`
	Failed           int     `json:"failed"`
	MeanDurationMs   float64 `json:"mean_duration_ms"`
	MedianDurationMs float64 `json:"median_duration_ms"`
}

// StatusResponse はシステム状態の応答
type StatusResponse struct {
	Status    string      `json:"status"`
	Server    ServerInfo  `json:"server"`
	Cameras   int         `json:"cameras"`
	Summary   SummaryInfo `json:"summary"`
	Timestamp time.Time   `json:"timestamp"`
}

// ResolutionInfo は解像度
type ResolutionInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ReportInfo は1台分の立ち上げ記録
type ReportInfo struct {
	ID         string         `json:"id"`
	DeviceID   string         `json:"device_id"`
	Name       string         `json:"name"`
	Device     string         `json:"device"`
	Requested  ResolutionInfo `json:"requested"`
	Resolved   ResolutionInfo `json:"resolved"`
	Status     int            `json:"status"`
	Ok         bool           `json:"ok"`
	StartedAt  time.Time      `json:"started_at"`
	DurationMs float64        `json:"duration_ms"`
}

// CamerasResponse はカメラ一覧の応答
type CamerasResponse struct {
	Cameras []ReportInfo `json:"cameras"`
}

// ErrorResponse はエラー応答
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// handleHealth はヘルスチェックエンドポイントの実装
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// handleStatus はシステム状態取得エンドポイントの実装
func (s *Server) handleStatus(c *gin.Context) {
	summary := s.manager.Summary()

	c.JSON(http.StatusOK, StatusResponse{
		Status: "running",
		Server: ServerInfo{
			Host: s.config.Server.Host,
			Port: s.config.Server.Port,
		},
		Cameras: summary.Total,
		Summary: SummaryInfo{
			Total:            summary.Total,
			Succeeded:        summary.Succeeded,
			Failed:           summary.Failed,
			MeanDurationMs:   summary.MeanDurationMs,
			MedianDurationMs: summary.MedianDurationMs,
		},
		Timestamp: time.Now(),
	})
}

// handleCameras はカメラ一覧取得エンドポイントの実装
// limitクエリで件数を制限できる（範囲外の値は有効範囲に丸める）
func (s *Server) handleCameras(c *gin.Context) {
	reports := s.manager.Reports()

	limit := len(reports)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:     "invalid_limit",
				Message:   "limitには整数を指定してください",
				Timestamp: time.Now(),
			})
			return
		}
		limit = stats.ClampInt(parsed, 0, len(reports))
	}

	cameras := make([]ReportInfo, 0, limit)
	for _, report := range reports[:limit] {
		cameras = append(cameras, toReportInfo(report))
	}

	c.JSON(http.StatusOK, CamerasResponse{Cameras: cameras})
}

// handleCamera は個別カメラの記録取得エンドポイントの実装
func (s *Server) handleCamera(c *gin.Context) {
	deviceID := c.Param("id")

	report, found := s.manager.Report(deviceID)
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:     "camera_not_found",
			Message:   "指定されたカメラが見つかりません",
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, toReportInfo(*report))
}

// handleCameraInit はカメラ初期化の再実行エンドポイントの実装
func (s *Server) handleCameraInit(c *gin.Context) {
	deviceID := c.Param("id")

	report, err := s.manager.Reinit(c.Request.Context(), deviceID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:     "camera_not_found",
			Message:   "指定されたカメラが見つかりません",
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, toReportInfo(*report))
}

// handleRoot はルートパスのハンドラ
func (s *Server) handleRoot(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html lang="ja">
<head>
    <meta charset="UTF-8">
    <title>Kaigan - カメラ立ち上げサービス</title>
</head>
<body>
    <h1>Kaigan カメラ立ち上げサービス</h1>
    <p>サーバーが正常に起動しています。</p>
    <p>ステータス: <a href="/api/status">/api/status</a></p>
    <p>カメラ一覧: <a href="/api/cameras">/api/cameras</a></p>
    <p>ヘルスチェック: <a href="/health">/health</a></p>
</body>
</html>`))
}

// toReportInfo は立ち上げ記録を応答スキーマに変換する
func toReportInfo(report bringup.Report) ReportInfo {
	return ReportInfo{
		ID:       report.ID,
		DeviceID: report.DeviceID,
		Name:     report.Name,
		Device:   report.Device,
		Requested: ResolutionInfo{
			Width:  report.Requested.Width,
			Height: report.Requested.Height,
		},
		Resolved: ResolutionInfo{
			Width:  report.Resolved.Width,
			Height: report.Resolved.Height,
		},
		Status:     int(report.Status),
		Ok:         report.Status.OK(),
		StartedAt:  report.StartedAt,
		DurationMs: report.Duration.Seconds() * 1000,
	}
}
