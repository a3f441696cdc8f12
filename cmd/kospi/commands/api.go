package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thdms4101-lab/Open-API-COSPI/internal/api"
	"github.com/thdms4101-lab/Open-API-COSPI/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET  /health                - Health check
  POST /api/recommend         - 추천 종목 랭킹
  POST /api/cache/refresh     - 시세 캐시 초기화
  GET  /api/market/snapshots  - 시세 스냅샷 조회
  GET  /api/market/universe   - 추적 종목 목록

Example:
  go run ./cmd/kospi api
  go run ./cmd/kospi api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT env)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	svcs, err := buildServices()
	if err != nil {
		return err
	}
	defer svcs.close()

	if apiPort != "" {
		svcs.cfg.Port = apiPort
	}

	recommendHandler := handlers.NewRecommendHandler(svcs.recommend, svcs.cfg, svcs.log)
	marketHandler := handlers.NewMarketHandler(svcs.data, svcs.cfg, svcs.log)

	router := api.NewRouter(recommendHandler, marketHandler, svcs.log)
	server := api.New(svcs.cfg, svcs.log, router)

	// Run server in background, wait for shutdown signal
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		svcs.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
