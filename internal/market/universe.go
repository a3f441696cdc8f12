package market

// Kospi200Codes is the tracked universe: KOSPI200 상위 20종목.
// 프로세스 수명 동안 불변이며 순서가 곧 조회 순서다.
var Kospi200Codes = []string{
	"005930", // 삼성전자
	"000660", // SK하이닉스
	"035720", // 카카오
	"005380", // 현대차
	"051910", // LG화학
	"035420", // NAVER
	"006400", // 삼성SDI
	"068270", // 셀트리온
	"207940", // 삼성바이오로직스
	"005490", // POSCO홀딩스
	"012330", // 현대모비스
	"028260", // 삼성물산
	"066570", // LG전자
	"003670", // 포스코퓨처엠
	"096770", // SK이노베이션
	"000270", // 기아
	"017670", // SK텔레콤
	"034730", // SK
	"018260", // 삼성에스디에스
	"032830", // 삼성생명
}

// FallbackSnapshots returns the static sample dataset used when live
// retrieval is disabled or yields nothing. Values are fixed and returned
// fresh on each call so callers can never mutate the source of truth.
func FallbackSnapshots() []Snapshot {
	return []Snapshot{
		{Code: "005930", Name: "삼성전자", Price: 71000, ChangeRate: 2.5, Volume: 15000000, MarketCap: 423000000},
		{Code: "000660", Name: "SK하이닉스", Price: 135000, ChangeRate: 3.2, Volume: 5000000, MarketCap: 98000000},
		{Code: "035720", Name: "카카오", Price: 52000, ChangeRate: -1.5, Volume: 8000000, MarketCap: 23000000},
		{Code: "005380", Name: "현대차", Price: 195000, ChangeRate: 1.8, Volume: 2000000, MarketCap: 41000000},
		{Code: "051910", Name: "LG화학", Price: 425000, ChangeRate: 2.1, Volume: 1500000, MarketCap: 30000000},
		{Code: "035420", Name: "NAVER", Price: 215000, ChangeRate: -0.5, Volume: 3000000, MarketCap: 35000000},
		{Code: "006400", Name: "삼성SDI", Price: 478000, ChangeRate: 4.2, Volume: 800000, MarketCap: 33000000},
		{Code: "068270", Name: "셀트리온", Price: 168000, ChangeRate: 1.5, Volume: 4000000, MarketCap: 22000000},
		{Code: "207940", Name: "삼성바이오로직스", Price: 825000, ChangeRate: 0.8, Volume: 250000, MarketCap: 59000000},
		{Code: "005490", Name: "POSCO홀딩스", Price: 385000, ChangeRate: 2.8, Volume: 900000, MarketCap: 32000000},
	}
}
