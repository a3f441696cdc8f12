package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thdms4101-lab/Open-API-COSPI/internal/recommend"
	"github.com/thdms4101-lab/Open-API-COSPI/internal/scoring"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "종목 분석 및 추천",
	Long: `코스피200 종목을 점수화하여 상위 추천 종목을 출력합니다.

기본은 샘플 데이터 모드이며 --live 와 API 키가 있으면 실시간 시세를
조회합니다 (종목별 순차 호출, 실패 종목은 건너뜀).

Example:
  go run ./cmd/kospi analyze
  go run ./cmd/kospi analyze --count 10 --live
  go run ./cmd/kospi analyze --penalty`,
	RunE: runAnalyze,
}

var (
	analyzeCount   int
	analyzeLive    bool
	analyzePenalty bool
	analyzeMinVol  int64
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVar(&analyzeCount, "count", 5, "추천받을 종목 개수 (1~20)")
	analyzeCmd.Flags().BoolVar(&analyzeLive, "live", false, "실시간 API 사용 (API 키 필요)")
	analyzeCmd.Flags().BoolVar(&analyzePenalty, "penalty", false, "가격 변동 큼 감점 규칙 활성화")
	analyzeCmd.Flags().Int64Var(&analyzeMinVol, "min-volume", 0, "최소 거래 규모 (수집만 되고 미적용)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeCount < 1 || analyzeCount > 20 {
		return fmt.Errorf("count must be between 1 and 20")
	}

	svcs, err := buildServices()
	if err != nil {
		return err
	}
	defer svcs.close()

	criteria := scoring.DefaultCriteria()
	criteria.HighVolatility = analyzePenalty

	result := svcs.recommend.Recommend(context.Background(), recommend.Request{
		AppKey:    svcs.cfg.KIS.AppKey,
		AppSecret: svcs.cfg.KIS.AppSecret,
		AccountNo: svcs.cfg.KIS.AccountNo,
		UseLive:   analyzeLive,
		Count:     analyzeCount,
		MinVolume: analyzeMinVol,
		Criteria:  criteria,
	}, stdoutProgress{})

	printResult(result)
	return nil
}

// stdoutProgress prints fetch progress lines during live retrieval
type stdoutProgress struct{}

func (stdoutProgress) Progress(done, total int) {
	fmt.Printf("[Fetch] 데이터 로딩 중... %d/%d\n", done, total)
}

func printResult(result recommend.Result) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  추천 종목 결과 (source: %s)\n", result.Source)
	fmt.Println("───────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "순위\t종목코드\t종목명\t현재가\t등락률\t거래량\t시총(억)\t점수\t추천 이유")
	for _, item := range result.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%+.2f%%\t%d\t%d\t%.1f\t%s\n",
			item.Rank, item.Code, item.Name, item.Price, item.ChangeRate,
			item.Volume, item.MarketCap, item.Score, strings.Join(item.Reasons, ", "))
	}
	w.Flush()

	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  분석 종목 수 : %d\n", result.Summary.Analyzed)
	fmt.Printf("  추천 가능    : %d\n", result.Summary.Positive)
	fmt.Printf("  평균 점수    : %.2f\n", result.Summary.AvgScore)
	fmt.Printf("  최고 점수    : %.1f\n", result.Summary.MaxScore)
	fmt.Println("═══════════════════════════════════════════════════════════")
}
