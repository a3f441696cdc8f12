package main

import (
	"os"

	"github.com/thdms4101-lab/Open-API-COSPI/cmd/kospi/commands"
)

// main is the entry point for the KOSPI200 recommender CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/kospi [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
