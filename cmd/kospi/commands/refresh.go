package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "시세 캐시 초기화",
	Long: `캐시된 시세 스냅샷을 모두 삭제합니다.

Redis 스토어 사용 시 프로세스 간 공유 캐시가 비워지며, 다음 조회는
TTL과 무관하게 다시 수집합니다.`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	svcs, err := buildServices()
	if err != nil {
		return err
	}
	defer svcs.close()

	svcs.recommend.RefreshCache(context.Background())
	fmt.Println("✅ 시세 캐시를 초기화했습니다")
	return nil
}
