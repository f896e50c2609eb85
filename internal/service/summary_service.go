package service

import (
	"context"
	"log"
	"time"

	apperrors "focusband/companion/internal/errors"
	"focusband/companion/internal/model"
	"focusband/companion/internal/replicate"
	"focusband/companion/internal/repository"
)

// SummaryService is the receive side of the replication channel: it merges
// inbound daily-summary messages into the per-day log and serves history
// for charting clients.
type SummaryService struct {
	logs      *repository.DailyLogRepository
	clock     func() time.Time
	retention int
}

func NewSummaryService(logs *repository.DailyLogRepository, clock func() time.Time, retention int) *SummaryService {
	if clock == nil {
		clock = time.Now
	}
	if retention <= 0 {
		retention = model.DailyLogRetention
	}
	return &SummaryService{logs: logs, clock: clock, retention: retention}
}

// Apply validates an inbound message, merges it into the stored entry for
// its day, and persists the result only when something actually changed.
// Messages may arrive duplicated, delayed, or out of order; the monotone
// merge makes all of those harmless.
func (s *SummaryService) Apply(ctx context.Context, msg replicate.Message) (*model.DailyLogEntry, *apperrors.APIError) {
	now := s.clock()
	snap, err := msg.Normalize(now)
	if err != nil {
		return nil, apperrors.BadRequest("invalid_type", "unexpected message type")
	}

	existing, err := s.logs.Get(ctx, snap.DayKey)
	if err == repository.ErrNotFound {
		existing = &model.DailyLogEntry{DayKey: snap.DayKey}
	} else if err != nil {
		return nil, apperrors.Internal("failed to read daily log")
	}

	merged, changed := replicate.Merge(*existing, snap)
	if !changed {
		return existing, nil
	}

	if err := s.logs.Upsert(ctx, &merged); err != nil {
		// Abandon this message; a later duplicate is the recovery path.
		return nil, apperrors.Internal("failed to persist daily log")
	}
	if err := s.logs.Prune(ctx, s.retention); err != nil {
		log.Printf("prune daily log: %v", err)
	}
	return &merged, nil
}

// History returns up to limit entries, most recent day first.
func (s *SummaryService) History(ctx context.Context, limit int) ([]model.DailyLogEntry, *apperrors.APIError) {
	if limit <= 0 || limit > model.DailyLogRetention+1 {
		limit = 30
	}
	entries, err := s.logs.List(ctx, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list daily log")
	}
	return entries, nil
}

// Day returns the entry for a single day key.
func (s *SummaryService) Day(ctx context.Context, ymd string) (*model.DailyLogEntry, *apperrors.APIError) {
	entry, err := s.logs.Get(ctx, ymd)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("day_not_found", "no entry for that day")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to read daily log")
	}
	return entry, nil
}
