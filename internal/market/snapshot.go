package market

// Snapshot is one point-in-time market-data reading for a single stock.
// A newer snapshot for the same code simply supersedes the previous one;
// partial snapshots are never constructed.
type Snapshot struct {
	Code       string  `json:"code"`        // 종목코드 (6자리)
	Name       string  `json:"name"`        // 종목명
	Price      int64   `json:"price"`       // 현재가 (원)
	ChangeRate float64 `json:"change_rate"` // 전일 대비 등락률 (%)
	Volume     int64   `json:"volume"`      // 누적 거래량
	MarketCap  int64   `json:"market_cap"`  // 시가총액 (억원)
}

// Source labels where a snapshot batch came from. A batch is always
// entirely live or entirely fallback, never mixed.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)
