package scoring

import (
	"math"

	"github.com/thdms4101-lab/Open-API-COSPI/internal/market"
)

// Criteria toggles the six scoring rules independently. Zero value
// disables everything.
type Criteria struct {
	Uptrend        bool `json:"uptrend"`         // 상승 추세 진입 (+4)
	StrongUptrend  bool `json:"strong_uptrend"`  // 강한 상승세 (+2~3)
	VolumeIncrease bool `json:"volume_increase"` // 거래 증가 (+1~2)
	PriceRange     bool `json:"price_range"`     // 적정 가격대 (+1.5)
	DailyGain      bool `json:"daily_gain"`      // 어제 대비 상승 (+1)
	HighVolatility bool `json:"high_volatility"` // 가격 변동 큼 (-0.5~-1)
}

// DefaultCriteria mirrors the analysis defaults: every bonus rule on,
// the volatility penalty off.
func DefaultCriteria() Criteria {
	return Criteria{
		Uptrend:        true,
		StrongUptrend:  true,
		VolumeIncrease: true,
		PriceRange:     true,
		DailyGain:      true,
		HighVolatility: false,
	}
}

// Rule thresholds. Tiered rules take the higher tier only.
const (
	strongUptrendHigh = 3.0 // 등락률 > 3% → +3
	strongUptrendLow  = 1.5 // 등락률 > 1.5% → +2

	volumeHigh = 5_000_000 // 거래량 > 500만 → +2
	volumeLow  = 2_000_000 // 거래량 > 200만 → +1

	fairPriceMin = 50_000  // 적정 가격대 하한 (포함)
	fairPriceMax = 500_000 // 적정 가격대 상한 (포함)

	volatilityHigh = 5.0 // |등락률| > 5% → -1
	volatilityLow  = 3.0 // |등락률| > 3% → -0.5
)

// Score computes the additive recommendation score for one snapshot.
// Pure and deterministic: no I/O, no side effects. Reasons list the
// labels of contributions that fired, in rule-evaluation order.
//
// Uptrend and DailyGain both key off change > 0 and stack when both are
// enabled. That is the source heuristic's behavior, kept as-is.
func Score(s market.Snapshot, c Criteria) (float64, []string) {
	var score float64
	reasons := []string{}

	// 1. 상승 추세 진입 (+4점)
	if c.Uptrend && s.ChangeRate > 0 {
		score += 4
		reasons = append(reasons, "uptrend entry")
	}

	// 2. 강한 상승세 (+2~3점)
	if c.StrongUptrend {
		if s.ChangeRate > strongUptrendHigh {
			score += 3
			reasons = append(reasons, "strong uptrend (3pt)")
		} else if s.ChangeRate > strongUptrendLow {
			score += 2
			reasons = append(reasons, "strong uptrend (2pt)")
		}
	}

	// 3. 거래 증가 (+1~2점)
	if c.VolumeIncrease {
		if s.Volume > volumeHigh {
			score += 2
			reasons = append(reasons, "volume increase (2pt)")
		} else if s.Volume > volumeLow {
			score += 1
			reasons = append(reasons, "volume increase (1pt)")
		}
	}

	// 4. 적정 가격대 (+1.5점)
	if c.PriceRange && s.Price >= fairPriceMin && s.Price <= fairPriceMax {
		score += 1.5
		reasons = append(reasons, "fair price band")
	}

	// 5. 어제 대비 상승 (+1점)
	if c.DailyGain && s.ChangeRate > 0 {
		score += 1
		reasons = append(reasons, "prior-day gain")
	}

	// 6. 가격 변동 큼 (-0.5~-1점)
	if c.HighVolatility {
		if math.Abs(s.ChangeRate) > volatilityHigh {
			score -= 1
			reasons = append(reasons, "high volatility (-1pt)")
		} else if math.Abs(s.ChangeRate) > volatilityLow {
			score -= 0.5
			reasons = append(reasons, "high volatility (-0.5pt)")
		}
	}

	return score, reasons
}
