package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/LovationAdmin/giftfinder-api/config"
	"github.com/LovationAdmin/giftfinder-api/models"
)

type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func configuredConfig() config.Config {
	return config.Config{
		CSEID:          "engine",
		CSEAPIKey:      "secret",
		SearchTimeout:  2 * time.Second,
		PersistTimeout: time.Second,
	}
}

type fakeProvider struct {
	mu       sync.Mutex
	listings []models.CandidateListing
	err      error
	calls    int
	queries  []string
}

func (p *fakeProvider) Search(ctx context.Context, query string, num int) ([]models.CandidateListing, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.queries = append(p.queries, query)
	return p.listings, p.err
}

type memStore struct {
	mu         sync.Mutex
	searches   map[string]models.SearchRecord
	results    map[string][]models.GiftResult
	saveErr    error
	resultsErr error
	nextID     int
}

func newMemStore() *memStore {
	return &memStore{searches: map[string]models.SearchRecord{}, results: map[string][]models.GiftResult{}}
}

func (s *memStore) SaveSearch(ctx context.Context, p models.RecipientProfile, query string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.nextID++
	id := fmt.Sprintf("search-%d", s.nextID)
	s.searches[id] = models.SearchRecord{ID: id, UserID: p.RequesterID, Occasion: p.Occasion, BudgetLimit: p.BudgetLimit, SearchQuery: query}
	return id, nil
}

func (s *memStore) SaveResults(ctx context.Context, id string, results []models.GiftResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resultsErr != nil {
		return s.resultsErr
	}
	s.results[id] = results
	return nil
}

func (s *memStore) GetSearch(ctx context.Context, id string) (*models.SearchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.searches[id]
	if !ok {
		return nil, ErrSearchNotFound
	}
	rec.Results = s.results[id]
	return &rec, nil
}

func (s *memStore) ListSearches(ctx context.Context, userID string, limit int) ([]models.SearchRecord, error) {
	return nil, nil
}

func (s *memStore) AddFavorite(ctx context.Context, userID, searchID, resultID string) (*models.Favorite, error) {
	return nil, errors.New("not implemented")
}

func (s *memStore) RemoveFavorite(ctx context.Context, userID, favoriteID string) error {
	return ErrFavoriteNotFound
}

func (s *memStore) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	return []models.Favorite{}, nil
}

func (s *memStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type memCache struct {
	mu     sync.Mutex
	data   map[string][]models.GiftResult
	getErr error
}

func newMemCache() *memCache { return &memCache{data: map[string][]models.GiftResult{}} }

func (c *memCache) Get(ctx context.Context, key string) ([]models.GiftResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(ctx context.Context, key string, results []models.GiftResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = results
	return nil
}

func (c *memCache) Close() error { return nil }

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.SearchEvent
	err    error
}

func (p *recordingPublisher) PublishSearchCompleted(ctx context.Context, evt models.SearchEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type recordingNotifier struct {
	mu    sync.Mutex
	users []string
}

func (n *recordingNotifier) NotifySearchCompleted(userID string, evt models.SearchEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.users = append(n.users, userID)
}
