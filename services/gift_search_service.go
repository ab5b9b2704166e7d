package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LovationAdmin/giftfinder-api/config"
	"github.com/LovationAdmin/giftfinder-api/models"
	"github.com/LovationAdmin/giftfinder-api/utils"
)

// ============================================================================
// GIFT SEARCH SERVICE
// Construit la requête, interroge le moteur de recherche, normalise et classe
// ============================================================================

var ErrInvalidProfile = errors.New("invalid search profile")

const EventSearchCompleted = "search.completed"

type GiftSearchService struct {
	cfg        config.Config
	provider   SearchProvider
	rules      Rules
	rnd        RandomSource
	now        Clock
	normalizer *Normalizer
	ranker     *Ranker

	cache     ResultCache
	store     SearchStore
	publisher SearchEventPublisher
	notifier  SearchNotifier

	background sync.WaitGroup
}

type Option func(*GiftSearchService)

func WithRules(r Rules) Option { return func(s *GiftSearchService) { s.rules = r } }
func WithRandom(rnd RandomSource) Option { return func(s *GiftSearchService) { s.rnd = rnd } }
func WithClock(now Clock) Option { return func(s *GiftSearchService) { s.now = now } }
func WithCache(c ResultCache) Option { return func(s *GiftSearchService) { s.cache = c } }
func WithStore(st SearchStore) Option { return func(s *GiftSearchService) { s.store = st } }
func WithPublisher(p SearchEventPublisher) Option { return func(s *GiftSearchService) { s.publisher = p } }
func WithNotifier(n SearchNotifier) Option { return func(s *GiftSearchService) { s.notifier = n } }

// NewGiftSearchService wires the pipeline. provider may be nil, in which case
// every search is served from the fallback catalog.
func NewGiftSearchService(cfg config.Config, provider SearchProvider, opts ...Option) *GiftSearchService {
	s := &GiftSearchService{
		cfg:      cfg,
		provider: provider,
		rules:    DefaultRules(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = NewTimeSeededRandom()
	}
	s.normalizer = NewNormalizer(s.rules, s.rnd, s.now)
	s.ranker = NewRanker(s.rules)
	return s
}

func (s *GiftSearchService) configured() bool {
	return s.provider != nil && s.cfg.SearchConfigured()
}

// Configured reports whether live retrieval will be attempted.
func (s *GiftSearchService) Configured() bool {
	return s.configured()
}

// HistoryEnabled reports whether a search store is attached.
func (s *GiftSearchService) HistoryEnabled() bool {
	return s.store != nil
}

// ============================================================================
// QUERY
// ============================================================================

func prepareProfile(profile *models.RecipientProfile) error {
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, err.Error())
	}
	return nil
}

// Query returns the search query a profile would produce.
func (s *GiftSearchService) Query(profile models.RecipientProfile) (string, error) {
	if err := prepareProfile(&profile); err != nil {
		return "", err
	}
	return BuildQuery(profile), nil
}

// ============================================================================
// RETRIEVAL
// ============================================================================

// Retrieve runs the pipeline for an already validated profile. It never fails:
// missing credentials, provider errors and empty responses all yield the
// budget-filtered fallback catalog.
func (s *GiftSearchService) Retrieve(ctx context.Context, profile models.RecipientProfile) ([]models.GiftResult, models.ResultSource) {
	if !s.configured() {
		utils.SafeDebug("[GiftSearch] Search provider not configured, serving fallback catalog")
		return FallbackResults(profile.BudgetLimit), models.SourceFallback
	}

	providerQuery := BuildProviderQuery(profile)
	cacheKey := CacheKey(providerQuery, profile)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		switch {
		case err == nil && len(cached) > 0:
			utils.SafeDebug("[Cache] Hit for %d results", len(cached))
			return cached, models.SourceCache
		case err != nil && !errors.Is(err, ErrCacheMiss):
			utils.SafeWarn("[Cache] Read failed: %v", err)
		}
	}

	searchCtx := ctx
	if s.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, s.cfg.SearchTimeout)
		defer cancel()
	}

	listings, err := s.provider.Search(searchCtx, providerQuery, ProviderResultCount)
	if err != nil {
		utils.SafeWarn("[GiftSearch] Provider call failed, serving fallback catalog: %s", utils.MaskString(err.Error()))
		return FallbackResults(profile.BudgetLimit), models.SourceFallback
	}
	if len(listings) == 0 {
		utils.SafeInfo("[GiftSearch] Provider returned no items, serving fallback catalog")
		return FallbackResults(profile.BudgetLimit), models.SourceFallback
	}

	normalized := s.normalizer.NormalizeAll(listings, profile.BudgetLimit)
	ranked := s.ranker.Rank(normalized, profile)
	if len(ranked) == 0 {
		return FallbackResults(profile.BudgetLimit), models.SourceFallback
	}

	utils.SafeDebug("[GiftSearch] %d listings normalized, %d ranked", len(listings), len(ranked))

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, ranked); err != nil {
			utils.SafeWarn("[Cache] Write failed: %v", err)
		}
	}
	return ranked, models.SourceLive
}

// Search validates the profile, retrieves results and records the search.
// Only an invalid profile makes it fail.
func (s *GiftSearchService) Search(ctx context.Context, profile models.RecipientProfile) (models.SearchResponse, error) {
	if err := prepareProfile(&profile); err != nil {
		return models.SearchResponse{}, err
	}

	query := BuildQuery(profile)
	results, source := s.Retrieve(ctx, profile)

	searchID := s.persist(ctx, profile, query, results)

	evt := models.SearchEvent{
		Type:        EventSearchCompleted,
		UserID:      profile.RequesterID,
		Occasion:    profile.Occasion,
		BudgetLimit: profile.BudgetLimit,
		Query:       query,
		Source:      source,
		ResultCount: len(results),
		CreatedAt:   s.now().UTC(),
	}
	if searchID != nil {
		evt.SearchID = *searchID
	}
	s.emit(evt)

	utils.LogSearchAction(fmt.Sprintf("search completed (%s, %d results)", source, len(results)), evt.SearchID, profile.RequesterID)

	return models.SearchResponse{SearchID: searchID, Results: results}, nil
}

// persist stores the search then its results. Failures are logged and yield a
// nil id; they never change the results.
func (s *GiftSearchService) persist(ctx context.Context, profile models.RecipientProfile, query string, results []models.GiftResult) *string {
	if s.store == nil {
		return nil
	}

	pctx := context.WithoutCancel(ctx)
	if s.cfg.PersistTimeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(pctx, s.cfg.PersistTimeout)
		defer cancel()
	}

	id, err := s.store.SaveSearch(pctx, profile, query)
	if err != nil {
		utils.SafeError("[History] Failed to save search: %v", err)
		return nil
	}
	if err := s.store.SaveResults(pctx, id, results); err != nil {
		utils.SafeError("[History] Failed to save results for search %s: %v", id, err)
	}
	return &id
}

// emit publishes the event and notifies live sessions in the background.
func (s *GiftSearchService) emit(evt models.SearchEvent) {
	notify := s.notifier != nil && evt.UserID != ""
	if s.publisher == nil && !notify {
		return
	}

	s.background.Add(1)
	go func() {
		defer s.background.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		if s.publisher != nil {
			g.Go(func() error {
				if err := s.publisher.PublishSearchCompleted(gctx, evt); err != nil {
					return fmt.Errorf("publish search event: %w", err)
				}
				return nil
			})
		}
		if notify {
			g.Go(func() error {
				s.notifier.NotifySearchCompleted(evt.UserID, evt)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			utils.SafeWarn("[Events] %v", err)
		}
	}()
}

// Wait blocks until background event delivery has finished.
func (s *GiftSearchService) Wait() {
	s.background.Wait()
}

// Close drains background work and releases the cache and publisher.
func (s *GiftSearchService) Close() error {
	s.Wait()
	var errs []error
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	if s.publisher != nil {
		errs = append(errs, s.publisher.Close())
	}
	return errors.Join(errs...)
}
