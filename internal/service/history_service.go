package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ifcampus/meal-gateway/internal/history"
	"github.com/ifcampus/meal-gateway/internal/models"
	"github.com/ifcampus/meal-gateway/internal/repository"
	"github.com/ifcampus/meal-gateway/pkg/config"
)

type historyRepository interface {
	History(ctx context.Context, token string, category repository.TicketCategory) ([]models.Ticket, error)
}

// HistoryService builds the meal-history feed. The four upstream categories
// are fetched concurrently and joined fail-fast: one failure fails the whole
// feed, never a partial one.
type HistoryService struct {
	repo   historyRepository
	cache  *CacheService
	config config.HistoryConfig
	logger *zap.Logger
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(repo historyRepository, cache *CacheService, cfg config.HistoryConfig, logger *zap.Logger) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{repo: repo, cache: cache, config: cfg, logger: logger}
}

// Feed returns the student's aggregated ticket history, most recent first.
// The boolean reports whether the response came from cache.
func (s *HistoryService) Feed(ctx context.Context, session *models.SessionClaims) ([]history.TaggedTicket, bool, error) {
	key := fmt.Sprintf("history:%d", session.StudentID)
	var cached []history.TaggedTicket
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, true, nil
	}

	buckets := make([][]models.Ticket, len(repository.Categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, category := range repository.Categories {
		i, category := i, category
		g.Go(func() error {
			tickets, err := s.repo.History(gctx, session.UpstreamToken, category)
			if err != nil {
				return err
			}
			buckets[i] = tickets
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	feed := history.Aggregate(buckets[0], buckets[1], buckets[2], buckets[3], s.config.PageSize)

	if err := s.cache.Set(ctx, key, feed, s.config.CacheTTL); err != nil {
		s.logger.Warn("failed to cache history feed", zap.String("key", key), zap.Error(err))
	}

	return feed, false, nil
}
