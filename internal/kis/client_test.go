package kis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thdms4101-lab/Open-API-COSPI/pkg/config"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/httputil"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/logger"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{Env: "test", LogLevel: "error"}
	log := logger.New(cfg)
	httpClient := httputil.New(cfg, log).DisableRetry()
	return NewClient(baseURL, httpClient, log)
}

// quoteOutput is the happy-path KIS inquire-price output block
func quoteOutput() map[string]string {
	return map[string]string{
		"hts_kor_isnm": "삼성전자",
		"stck_prpr":    "71000",
		"prdy_ctrt":    "2.50",
		"acml_vol":     "15000000",
		"hts_avls":     "42300000000000000",
	}
}

func newKISServer(t *testing.T, tokenStatus int, output map[string]string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "client_credentials", body["grant_type"])

		if tokenStatus != http.StatusOK {
			w.WriteHeader(tokenStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   86400,
		})
	})
	mux.HandleFunc(quotePath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("authorization"))
		assert.Equal(t, quoteTrID, r.Header.Get("tr_id"))
		assert.Equal(t, marketDivCode, r.URL.Query().Get("fid_cond_mrkt_div_code"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"rt_cd":  "0",
			"output": output,
		})
	})

	return httptest.NewServer(mux)
}

func TestObtainToken(t *testing.T) {
	server := newKISServer(t, http.StatusOK, quoteOutput())
	defer server.Close()

	client := newTestClient(server.URL)

	token, err := client.ObtainToken(context.Background(), "key", "secret")
	require.NoError(t, err)
	assert.Equal(t, "test-token", token)
}

func TestObtainToken_RejectedCredentials(t *testing.T) {
	server := newKISServer(t, http.StatusForbidden, nil)
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.ObtainToken(context.Background(), "bad", "creds")
	require.Error(t, err)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusForbidden, authErr.Status)
}

func TestObtainToken_Unreachable(t *testing.T) {
	server := newKISServer(t, http.StatusOK, nil)
	server.Close() // connection refused

	client := newTestClient(server.URL)

	_, err := client.ObtainToken(context.Background(), "key", "secret")

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Zero(t, authErr.Status)
}

func TestFetchQuote(t *testing.T) {
	server := newKISServer(t, http.StatusOK, quoteOutput())
	defer server.Close()

	client := newTestClient(server.URL)

	snapshot, err := client.FetchQuote(context.Background(), "005930", "key", "secret")
	require.NoError(t, err)

	assert.Equal(t, "005930", snapshot.Code)
	assert.Equal(t, "삼성전자", snapshot.Name)
	assert.Equal(t, int64(71000), snapshot.Price)
	assert.Equal(t, 2.5, snapshot.ChangeRate)
	assert.Equal(t, int64(15000000), snapshot.Volume)
	// 원 단위 시가총액을 억원으로 정규화
	assert.Equal(t, int64(423000000), snapshot.MarketCap)
}

func TestFetchQuote_TokenFailurePropagatesAsAuthError(t *testing.T) {
	server := newKISServer(t, http.StatusUnauthorized, nil)
	defer server.Close()

	client := newTestClient(server.URL)

	snapshot, err := client.FetchQuote(context.Background(), "005930", "key", "secret")
	assert.Nil(t, snapshot)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
}

func TestFetchQuote_MissingRequiredField(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{"no name", "hts_kor_isnm"},
		{"no price", "stck_prpr"},
		{"no change rate", "prdy_ctrt"},
		{"no volume", "acml_vol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := quoteOutput()
			delete(output, tt.missing)

			server := newKISServer(t, http.StatusOK, output)
			defer server.Close()

			client := newTestClient(server.URL)

			snapshot, err := client.FetchQuote(context.Background(), "005930", "key", "secret")
			assert.Nil(t, snapshot, "no partial snapshot may be built")

			var fetchErr *FetchError
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, "005930", fetchErr.Code)
		})
	}
}

func TestFetchQuote_WrongFieldType(t *testing.T) {
	output := quoteOutput()
	output["stck_prpr"] = "칠만천원" // not a number

	server := newKISServer(t, http.StatusOK, output)
	defer server.Close()

	client := newTestClient(server.URL)

	snapshot, err := client.FetchQuote(context.Background(), "005930", "key", "secret")
	assert.Nil(t, snapshot)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
}

func TestFetchQuote_MissingMarketCapDefaultsToZero(t *testing.T) {
	output := quoteOutput()
	delete(output, "hts_avls")

	server := newKISServer(t, http.StatusOK, output)
	defer server.Close()

	client := newTestClient(server.URL)

	snapshot, err := client.FetchQuote(context.Background(), "005930", "key", "secret")
	require.NoError(t, err)
	assert.Zero(t, snapshot.MarketCap)
}

func TestFetchQuote_APIErrorCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "test-token"})
	})
	mux.HandleFunc(quotePath, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"rt_cd":  "1",
			"msg_cd": "EGW00123",
			"msg1":   "기간이 만료된 token 입니다.",
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)

	snapshot, err := client.FetchQuote(context.Background(), "005930", "key", "secret")
	assert.Nil(t, snapshot)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
}

func TestFetchQuote_Non200(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "test-token"})
	})
	mux.HandleFunc(quotePath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)

	snapshot, err := client.FetchQuote(context.Background(), "005930", "key", "secret")
	assert.Nil(t, snapshot)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
}
