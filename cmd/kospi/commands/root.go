package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kospi",
	Short: "코스피200 주식 추천 시스템",
	Long: `Open-API-COSPI

한국투자증권 Open API 기반 코스피200 종목 추천 백엔드.
시세 수집 → 점수 계산 → 랭킹 파이프라인을 CLI와 REST API로 제공.

Usage:
  go run ./cmd/kospi [command]

Examples:
  go run ./cmd/kospi api
  go run ./cmd/kospi analyze --count 5
  go run ./cmd/kospi analyze --live --penalty`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
