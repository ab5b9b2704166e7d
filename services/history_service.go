package services

import (
	"context"
	"time"

	"github.com/LovationAdmin/giftfinder-api/models"
	"github.com/LovationAdmin/giftfinder-api/utils"
)

// ============================================================================
// HISTORIQUE & FAVORIS
// ============================================================================

func (s *GiftSearchService) GetSearch(ctx context.Context, id string) (*models.SearchRecord, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.GetSearch(ctx, id)
}

func (s *GiftSearchService) ListSearches(ctx context.Context, userID string, limit int) ([]models.SearchRecord, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.ListSearches(ctx, userID, limit)
}

func (s *GiftSearchService) AddFavorite(ctx context.Context, userID, searchID, resultID string) (*models.Favorite, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	fav, err := s.store.AddFavorite(ctx, userID, searchID, resultID)
	if err != nil {
		return nil, err
	}
	utils.LogSearchAction("favorite added", searchID, userID)
	return fav, nil
}

func (s *GiftSearchService) RemoveFavorite(ctx context.Context, userID, favoriteID string) error {
	if s.store == nil {
		return ErrHistoryDisabled
	}
	return s.store.RemoveFavorite(ctx, userID, favoriteID)
}

func (s *GiftSearchService) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.ListFavorites(ctx, userID)
}

// PurgeExpired deletes searches older than the configured retention.
// A retention of zero keeps everything.
func (s *GiftSearchService) PurgeExpired(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, ErrHistoryDisabled
	}
	if s.cfg.RetentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -s.cfg.RetentionDays)
	n, err := s.store.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		utils.SafeInfo("[History] Purged %d searches older than %s", n, cutoff.Format(time.DateOnly))
	}
	return n, nil
}

// StartRetentionCleanup runs PurgeExpired every interval until ctx is done.
func (s *GiftSearchService) StartRetentionCleanup(ctx context.Context, interval time.Duration) {
	if s.store == nil || s.cfg.RetentionDays <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.PurgeExpired(ctx); err != nil {
					utils.SafeError("[History] Retention cleanup failed: %v", err)
				}
			}
		}
	}()
}
