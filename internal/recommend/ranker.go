package recommend

import "sort"

// Rank sorts by score descending and truncates to topN. The sort is
// stable: equal scores keep their relative input order, which follows
// universe order for live data and fallback order otherwise. The input
// slice is not modified; topN <= 0 yields an empty result.
func Rank(stocks []ScoredStock, topN int) []ScoredStock {
	if topN <= 0 {
		return []ScoredStock{}
	}

	ranked := make([]ScoredStock, len(stocks))
	copy(ranked, stocks)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topN < len(ranked) {
		ranked = ranked[:topN]
	}

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}

// Summarize computes aggregate statistics over every scored stock, not
// just the ranked subset.
func Summarize(stocks []ScoredStock) Summary {
	summary := Summary{Analyzed: len(stocks)}
	if len(stocks) == 0 {
		return summary
	}

	var sum float64
	max := stocks[0].Score

	for _, s := range stocks {
		sum += s.Score
		if s.Score > 0 {
			summary.Positive++
		}
		if s.Score > max {
			max = s.Score
		}
	}

	summary.AvgScore = sum / float64(len(stocks))
	summary.MaxScore = max

	return summary
}
