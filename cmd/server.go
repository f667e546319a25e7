// Package main はKaiganサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"kaigan/internal/bringup"
	"kaigan/internal/config"
	"kaigan/internal/server"
)

func main() {
	// コマンドラインオプション
	var (
		configPath = flag.String("config", "", "設定ファイルのパス (YAML)")
		host       = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port       = flag.Int("port", 0, "サーバーのポート (デフォルト: 8080)")
		oneShot    = flag.Bool("oneshot", false, "立ち上げのみ実行してサーバーを起動しない")
		help       = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("Kaigan")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// 立ち上げマネージャーを作成
	manager, err := bringup.FromConfig(cfg)
	if err != nil {
		log.Fatalf("立ち上げマネージャーの作成に失敗しました: %v", err)
	}

	// サーバーモードでは失敗デバイスを定期的に再試行する
	if !*oneShot {
		manager.SetAutoRetry(true)
	}

	// 全デバイスの立ち上げを実行
	ctx := context.Background()
	if runErr := manager.Run(ctx); runErr != nil {
		log.Printf("立ち上げに失敗したデバイスがあります: %v", runErr)
		if *oneShot {
			os.Exit(1)
		}
	}

	// 立ち上げのみのモード
	if *oneShot {
		summary := manager.Summary()
		log.Printf("立ち上げ完了: 成功 %d / 失敗 %d", summary.Succeeded, summary.Failed)
		return
	}

	// サーバーを作成して起動
	srv := server.New(cfg, manager)
	defer manager.Stop()

	log.Printf("Kaigan サーバーを起動します: %s", cfg.ServerAddress())
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
