package main

import (
	"context"
	"log"
	"os"

	"kaigan/internal/bringup"
	"kaigan/internal/config"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load(os.Getenv("KAIGAN_CONFIG"))
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// 立ち上げマネージャーを作成
	manager, err := bringup.FromConfig(cfg)
	if err != nil {
		log.Fatalf("立ち上げマネージャーの作成に失敗しました: %v", err)
	}

	// 全デバイスの立ち上げを実行
	ctx := context.Background()
	runErr := manager.Run(ctx)

	// 結果の要約を出力
	summary := manager.Summary()
	log.Printf("立ち上げ完了: 成功 %d / 失敗 %d (平均 %.2fms)",
		summary.Succeeded, summary.Failed, summary.MeanDurationMs)

	// 失敗があれば非ゼロで終了する
	if runErr != nil {
		log.Printf("立ち上げに失敗したデバイスがあります: %v", runErr)
		os.Exit(1)
	}
}
