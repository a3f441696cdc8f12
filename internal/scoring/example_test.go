package scoring_test

import (
	"fmt"
	"strings"

	"github.com/thdms4101-lab/Open-API-COSPI/internal/market"
	"github.com/thdms4101-lab/Open-API-COSPI/internal/scoring"
)

// ExampleScore demonstrates scoring one snapshot with the default rules
func ExampleScore() {
	snapshot := market.Snapshot{
		Code:       "005930",
		Name:       "삼성전자",
		Price:      100000,
		ChangeRate: 4.0,
		Volume:     6000000,
	}

	score, reasons := scoring.Score(snapshot, scoring.DefaultCriteria())

	fmt.Println(score)
	fmt.Println(strings.Join(reasons, ", "))
	// Output:
	// 11.5
	// uptrend entry, strong uptrend (3pt), volume increase (2pt), fair price band, prior-day gain
}
