package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/thdms4101-lab/Open-API-COSPI/internal/marketdata"
	"github.com/thdms4101-lab/Open-API-COSPI/internal/recommend"
	"github.com/thdms4101-lab/Open-API-COSPI/internal/scoring"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/config"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/logger"
)

// Recommendation count bounds (1~20).
const (
	defaultCount = 5
	maxCount     = 20
)

// RecommendHandler handles recommendation API endpoints
// ⭐ SSOT: 추천 API 핸들러는 이 구조체에서만
type RecommendHandler struct {
	service *recommend.Service
	cfg     *config.Config
	logger  *logger.Logger
}

// NewRecommendHandler creates a new recommendation handler
func NewRecommendHandler(service *recommend.Service, cfg *config.Config, log *logger.Logger) *RecommendHandler {
	return &RecommendHandler{
		service: service,
		cfg:     cfg,
		logger:  log,
	}
}

// recommendRequest is the wire form of a recommendation request.
// Criteria is a pointer so "omitted" and "all disabled" stay distinct.
type recommendRequest struct {
	AppKey    string            `json:"app_key"`
	AppSecret string            `json:"app_secret"`
	AccountNo string            `json:"account_no"`
	UseLive   bool              `json:"use_live"`
	Count     int               `json:"count"`
	MinVolume int64             `json:"min_volume"`
	Criteria  *scoring.Criteria `json:"criteria"`
}

// recommendResponse echoes the accepted (unused) min_volume so clients
// can see the parameter was received.
type recommendResponse struct {
	recommend.Result
	Count     int   `json:"count"`
	MinVolume int64 `json:"min_volume"`
}

// Recommend runs the ranking pipeline
// POST /api/recommend
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	// Request credentials win; config supplies the defaults
	if req.AppKey == "" && req.AppSecret == "" {
		req.AppKey = h.cfg.KIS.AppKey
		req.AppSecret = h.cfg.KIS.AppSecret
	}

	count := req.Count
	if count == 0 {
		count = defaultCount
	}
	if count < 1 || count > maxCount {
		respondError(w, http.StatusBadRequest, "count must be between 1 and 20")
		return
	}

	criteria := scoring.DefaultCriteria()
	if req.Criteria != nil {
		criteria = *req.Criteria
	}

	result := h.service.Recommend(r.Context(), recommend.Request{
		AppKey:    req.AppKey,
		AppSecret: req.AppSecret,
		AccountNo: req.AccountNo,
		UseLive:   req.UseLive,
		Count:     count,
		MinVolume: req.MinVolume,
		Criteria:  criteria,
	}, progressLogger{h.logger})

	respondJSON(w, http.StatusOK, recommendResponse{
		Result:    result,
		Count:     count,
		MinVolume: req.MinVolume,
	})
}

// RefreshCache invalidates the snapshot cache
// POST /api/cache/refresh
func (h *RecommendHandler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	h.service.RefreshCache(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// progressLogger routes fetch telemetry into the structured log
type progressLogger struct {
	log *logger.Logger
}

func (p progressLogger) Progress(done, total int) {
	p.log.WithFields(map[string]interface{}{
		"done":  done,
		"total": total,
	}).Debug("Universe fetch progress")
}

var _ marketdata.ProgressObserver = progressLogger{}
