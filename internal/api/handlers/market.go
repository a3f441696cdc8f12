package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/thdms4101-lab/Open-API-COSPI/internal/marketdata"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/config"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/logger"
)

// MarketHandler handles market data API endpoints
type MarketHandler struct {
	data   *marketdata.Service
	cfg    *config.Config
	logger *logger.Logger
}

// NewMarketHandler creates a new market data handler
func NewMarketHandler(data *marketdata.Service, cfg *config.Config, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		data:   data,
		cfg:    cfg,
		logger: log,
	}
}

// GetSnapshots returns the cached universe snapshots
// GET /api/market/snapshots?use_live=true|false
func (h *MarketHandler) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	useLive := h.cfg.KIS.UseLive
	if raw := r.URL.Query().Get("use_live"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "use_live must be a boolean")
			return
		}
		useLive = parsed
	}

	batch := h.data.UniverseSnapshots(r.Context(), marketdata.FetchOptions{
		AppKey:    h.cfg.KIS.AppKey,
		AppSecret: h.cfg.KIS.AppSecret,
		UseLive:   useLive,
	}, marketdata.NopObserver{})

	respondJSON(w, http.StatusOK, batch)
}

// GetUniverse returns the tracked universe codes
// GET /api/market/universe
func (h *MarketHandler) GetUniverse(w http.ResponseWriter, r *http.Request) {
	codes := h.data.Universe()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"codes": codes,
		"count": len(codes),
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
