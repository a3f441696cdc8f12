package kis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/thdms4101-lab/Open-API-COSPI/internal/market"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/httputil"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/logger"
)

const (
	tokenPath = "/oauth2/tokenP"
	quotePath = "/uapi/domestic-stock/v1/quotations/inquire-price"

	// 국내주식 현재가 조회
	quoteTrID = "FHKST01010100"

	// 시장구분: J = 주식/ETF/ETN
	marketDivCode = "J"

	// 시가총액 정규화 단위 (원 → 억원). 이 단위 미만의 정밀도 손실은 허용.
	marketCapUnit = 100_000_000
)

// Client talks to the KIS (한국투자증권) open API
// ⭐ SSOT: KIS API 호출은 이 클라이언트에서만
//
// Tokens are requested fresh per quote and never cached. That costs one
// extra round trip per stock, which is acceptable at universe size 20.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new KIS API client
func NewClient(baseURL string, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// TokenResponse represents the OAuth token response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ObtainToken requests a short-lived bearer token. One network round
// trip per call; failure surfaces immediately as *AuthError.
func (c *Client) ObtainToken(ctx context.Context, appKey, appSecret string) (string, error) {
	url := c.baseURL + tokenPath
	body := fmt.Sprintf(`{"grant_type":"client_credentials","appkey":"%s","appsecret":"%s"}`,
		appKey, appSecret)

	resp, err := c.httpClient.Post(ctx, url, "application/json", strings.NewReader(body))
	if err != nil {
		return "", &AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.WithFields(map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(respBody),
		}).Warn("KIS token request rejected")
		return "", &AuthError{Status: resp.StatusCode}
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", &AuthError{Err: fmt.Errorf("decode token response: %w", err)}
	}

	if tokenResp.AccessToken == "" {
		return "", &AuthError{Err: fmt.Errorf("token response missing access_token")}
	}

	return tokenResp.AccessToken, nil
}

// quoteResponse mirrors the KIS inquire-price payload. All numeric
// fields arrive as strings.
type quoteResponse struct {
	RtCd   string `json:"rt_cd"`
	MsgCd  string `json:"msg_cd"`
	Msg1   string `json:"msg1"`
	Output struct {
		Name       string `json:"hts_kor_isnm"` // 종목명
		Price      string `json:"stck_prpr"`    // 현재가
		ChangeRate string `json:"prdy_ctrt"`    // 전일 대비율
		Volume     string `json:"acml_vol"`     // 누적 거래량
		MarketCap  string `json:"hts_avls"`     // 시가총액 (원)
	} `json:"output"`
}

// FetchQuote fetches the current snapshot for one stock. A fresh token
// is obtained per call; every failure mode comes back as a typed error
// (*AuthError or *FetchError) so the batch layer can log the cause and
// still collapse it to "skip".
func (c *Client) FetchQuote(ctx context.Context, code, appKey, appSecret string) (*market.Snapshot, error) {
	token, err := c.ObtainToken(ctx, appKey, appSecret)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s%s?fid_cond_mrkt_div_code=%s&fid_input_iscd=%s",
		c.baseURL, quotePath, marketDivCode, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Code: code, Reason: "create request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("authorization", "Bearer "+token)
	req.Header.Set("appkey", appKey)
	req.Header.Set("appsecret", appSecret)
	req.Header.Set("tr_id", quoteTrID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Code: code, Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &FetchError{
			Code:   code,
			Reason: fmt.Sprintf("status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var result quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &FetchError{Code: code, Reason: "decode response", Err: err}
	}

	if result.RtCd != "0" {
		return nil, &FetchError{
			Code:   code,
			Reason: fmt.Sprintf("API error: %s - %s", result.MsgCd, result.Msg1),
		}
	}

	return buildSnapshot(code, result)
}

// buildSnapshot validates required fields and normalizes units. A
// snapshot is complete or not built at all.
func buildSnapshot(code string, result quoteResponse) (*market.Snapshot, error) {
	out := result.Output

	if out.Name == "" {
		return nil, &FetchError{Code: code, Reason: "missing hts_kor_isnm"}
	}

	price, err := strconv.ParseInt(out.Price, 10, 64)
	if err != nil {
		return nil, &FetchError{Code: code, Reason: "bad stck_prpr", Err: err}
	}

	changeRate, err := strconv.ParseFloat(out.ChangeRate, 64)
	if err != nil {
		return nil, &FetchError{Code: code, Reason: "bad prdy_ctrt", Err: err}
	}

	volume, err := strconv.ParseInt(out.Volume, 10, 64)
	if err != nil {
		return nil, &FetchError{Code: code, Reason: "bad acml_vol", Err: err}
	}

	// 시가총액은 응답에 없을 수 있어 0으로 둔다 (원 단위 → 억원)
	var marketCap int64
	if out.MarketCap != "" {
		raw, err := strconv.ParseInt(out.MarketCap, 10, 64)
		if err != nil {
			return nil, &FetchError{Code: code, Reason: "bad hts_avls", Err: err}
		}
		marketCap = raw / marketCapUnit
	}

	return &market.Snapshot{
		Code:       code,
		Name:       out.Name,
		Price:      price,
		ChangeRate: changeRate,
		Volume:     volume,
		MarketCap:  marketCap,
	}, nil
}
