package service

import (
	"context"
	"fmt"

	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/common/logger"
)

// HistoryService serves the per-program snapshot time series
type HistoryService struct {
	history HistoryStore
	log     *logger.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(history HistoryStore, log *logger.Logger) *HistoryService {
	return &HistoryService{
		history: history,
		log:     log,
	}
}

// Series returns the full history grouped by program code, each series
// ordered by date ascending
func (s *HistoryService) Series(ctx context.Context) (map[string][]models.HistoryPoint, error) {
	records, err := s.history.ListSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	series := make(map[string][]models.HistoryPoint)
	for _, rec := range records {
		series[rec.ProgramCode] = append(series[rec.ProgramCode], models.HistoryPoint{
			Date:   rec.RecordDate,
			Score:  rec.PassingScore,
			Filled: rec.PlacesFilled,
		})
	}

	return series, nil
}
