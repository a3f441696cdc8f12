package recommend

import (
	"github.com/thdms4101-lab/Open-API-COSPI/internal/market"
	"github.com/thdms4101-lab/Open-API-COSPI/internal/scoring"
)

// ScoredStock pairs a snapshot with its computed score. Recomputed per
// request, never mutated after creation.
type ScoredStock struct {
	market.Snapshot
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
	Rank    int      `json:"rank,omitempty"` // 1-based, set after ranking
}

// Summary aggregates one analysis run for presentation.
type Summary struct {
	Analyzed int     `json:"analyzed"`  // 분석 종목 수
	Positive int     `json:"positive"`  // 점수 > 0 종목 수
	AvgScore float64 `json:"avg_score"` // 평균 점수
	MaxScore float64 `json:"max_score"` // 최고 점수
}

// Request carries one recommendation request. Credentials pass through
// to the quote provider and are never persisted.
type Request struct {
	AppKey    string `json:"app_key"`
	AppSecret string `json:"app_secret"`
	AccountNo string `json:"account_no"` // 계좌번호: 수집만 하고 코어에서는 쓰지 않음

	UseLive bool `json:"use_live"`

	Count int `json:"count"`

	// MinVolume is accepted and echoed back but not applied anywhere
	// in the pipeline.
	MinVolume int64 `json:"min_volume"`

	Criteria scoring.Criteria `json:"criteria"`
}

// Result is the ranked output plus aggregate statistics.
type Result struct {
	Source  market.Source `json:"source"`
	Items   []ScoredStock `json:"items"`
	Summary Summary       `json:"summary"`
}
