package recommend

import (
	"context"

	"github.com/thdms4101-lab/Open-API-COSPI/internal/marketdata"
	"github.com/thdms4101-lab/Open-API-COSPI/internal/scoring"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/logger"
)

// Service runs the full pipeline: snapshots → scoring → ranking
// ⭐ SSOT: 추천 파이프라인 오케스트레이션은 여기서만
//
// No failure in the pipeline is fatal: worst case the caller gets the
// fallback dataset ranked normally.
type Service struct {
	data   *marketdata.Service
	logger *logger.Logger
}

// NewService creates a recommendation service
func NewService(data *marketdata.Service, log *logger.Logger) *Service {
	return &Service{
		data:   data,
		logger: log,
	}
}

// Recommend scores the whole universe and returns the top-N stocks plus
// summary statistics. Progress telemetry for the fetch phase goes to
// obs; pass nil to ignore it.
func (s *Service) Recommend(ctx context.Context, req Request, obs marketdata.ProgressObserver) Result {
	batch := s.data.UniverseSnapshots(ctx, marketdata.FetchOptions{
		AppKey:    req.AppKey,
		AppSecret: req.AppSecret,
		UseLive:   req.UseLive,
	}, obs)

	scored := make([]ScoredStock, 0, len(batch.Snapshots))
	for _, snapshot := range batch.Snapshots {
		score, reasons := scoring.Score(snapshot, req.Criteria)
		scored = append(scored, ScoredStock{
			Snapshot: snapshot,
			Score:    score,
			Reasons:  reasons,
		})
	}

	result := Result{
		Source:  batch.Source,
		Items:   Rank(scored, req.Count),
		Summary: Summarize(scored),
	}

	s.logger.WithFields(map[string]interface{}{
		"source":   result.Source,
		"analyzed": result.Summary.Analyzed,
		"positive": result.Summary.Positive,
		"top_n":    len(result.Items),
	}).Info("Recommendation computed")

	return result
}

// RefreshCache clears the snapshot cache so the next request re-fetches
func (s *Service) RefreshCache(ctx context.Context) {
	s.data.Refresh(ctx)
}
