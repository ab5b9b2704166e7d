package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LovationAdmin/giftfinder-api/config"
	"github.com/LovationAdmin/giftfinder-api/models"
)

func birthdayProfile() models.RecipientProfile {
	return models.RecipientProfile{
		Occasion:        "Birthday",
		BudgetLimit:     1000,
		Interests:       []string{"electronics"},
		PersonalityType: "Tech Enthusiast",
	}
}

func liveListings() []models.CandidateListing {
	return []models.CandidateListing{
		{Title: "Bluetooth Earbuds ₹899 - Amazon.in", Link: "https://www.amazon.in/earbuds"},
		{Title: "Scented Candle Set", Snippet: "Rs. 450", Link: "https://www.nykaa.com/candles"},
		{Title: "Leather Wallet", Snippet: "₹5,000", Link: "https://www.myntra.com/wallet"},
	}
}

func assertFallback(t *testing.T, results []models.GiftResult, budget float64) {
	t.Helper()
	require.NotEmpty(t, results)
	assert.Equal(t, FallbackResults(budget), results)
}

func TestRetrieveFallbackScenarios(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		provider *fakeProvider
		calls    int
	}{
		{"missing credentials", config.Config{}, &fakeProvider{listings: liveListings()}, 0},
		{"empty response", configuredConfig(), &fakeProvider{}, 1},
		{"provider error", configuredConfig(), &fakeProvider{err: &ProviderError{StatusCode: 500}}, 1},
		{"transport error", configuredConfig(), &fakeProvider{err: errors.New("connection reset")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGiftSearchService(tt.cfg, tt.provider, WithRandom(fixedRandom(0.5)), WithClock(fixedClock))

			results, source := svc.Retrieve(context.Background(), birthdayProfile())
			assert.Equal(t, models.SourceFallback, source)
			assertFallback(t, results, 1000)
			assert.Equal(t, tt.calls, tt.provider.calls)
		})
	}
}

func TestRetrieveWithoutProvider(t *testing.T) {
	svc := NewGiftSearchService(configuredConfig(), nil)
	results, source := svc.Retrieve(context.Background(), birthdayProfile())
	assert.Equal(t, models.SourceFallback, source)
	assertFallback(t, results, 1000)
}

func TestRetrieveLivePath(t *testing.T) {
	provider := &fakeProvider{listings: liveListings()}
	svc := NewGiftSearchService(configuredConfig(), provider, WithRandom(fixedRandom(0.5)), WithClock(fixedClock))

	results, source := svc.Retrieve(context.Background(), birthdayProfile())
	assert.Equal(t, models.SourceLive, source)
	require.Len(t, results, 3)
	require.Len(t, provider.queries, 1)
	assert.Contains(t, provider.queries[0], "site:amazon.in OR site:flipkart.com")

	top := results[0]
	assert.Equal(t, "Bluetooth Earbuds ₹899", top.Name)
	assert.Equal(t, "Amazon India", top.StoreName)
	assert.Equal(t, 899.0, top.Price)
	assert.Equal(t, 1.0, top.RelevanceScore)

	for _, g := range results {
		assert.Greater(t, g.Price, 0.0)
		assert.LessOrEqual(t, g.Price, 1000.0)
		assert.LessOrEqual(t, g.RelevanceScore, 1.0)
	}
}

func TestRetrieveAgainstFakeCustomSearchServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := configuredConfig()
	cfg.CSEEndpoint = srv.URL
	svc := NewGiftSearchService(cfg, NewCustomSearchService(cfg))

	results, source := svc.Retrieve(context.Background(), birthdayProfile())
	assert.Equal(t, models.SourceFallback, source)
	assertFallback(t, results, 1000)
}

func TestRetrieveUsesCache(t *testing.T) {
	provider := &fakeProvider{listings: liveListings()}
	cache := newMemCache()
	svc := NewGiftSearchService(configuredConfig(), provider, WithCache(cache), WithRandom(fixedRandom(0.5)))

	first, source := svc.Retrieve(context.Background(), birthdayProfile())
	require.Equal(t, models.SourceLive, source)

	second, source := svc.Retrieve(context.Background(), birthdayProfile())
	assert.Equal(t, models.SourceCache, source)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls)
}

func TestRetrieveNeverCachesFallback(t *testing.T) {
	cache := newMemCache()
	svc := NewGiftSearchService(configuredConfig(), &fakeProvider{}, WithCache(cache))

	_, source := svc.Retrieve(context.Background(), birthdayProfile())
	assert.Equal(t, models.SourceFallback, source)
	assert.Empty(t, cache.data)
}

func TestRetrieveIgnoresCacheFailure(t *testing.T) {
	cache := newMemCache()
	cache.getErr = errors.New("redis down")
	provider := &fakeProvider{listings: liveListings()}
	svc := NewGiftSearchService(configuredConfig(), provider, WithCache(cache))

	_, source := svc.Retrieve(context.Background(), birthdayProfile())
	assert.Equal(t, models.SourceLive, source)
	assert.Equal(t, 1, provider.calls)
}

func TestSearchRejectsInvalidProfile(t *testing.T) {
	svc := NewGiftSearchService(config.Config{}, nil)

	_, err := svc.Search(context.Background(), models.RecipientProfile{BudgetLimit: 100})
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.Contains(t, err.Error(), "occasion is required")

	_, err = svc.Search(context.Background(), models.RecipientProfile{Occasion: "Birthday"})
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestSearchAcceptsLegacyBudgetArray(t *testing.T) {
	svc := NewGiftSearchService(config.Config{}, nil)

	resp, err := svc.Search(context.Background(), models.RecipientProfile{Occasion: "Birthday", Budget: []float64{700, 2000}})
	require.NoError(t, err)
	for _, g := range resp.Results {
		assert.LessOrEqual(t, g.Price, 700.0)
	}
}

func TestSearchPersistsAndPublishes(t *testing.T) {
	store := newMemStore()
	pub := &recordingPublisher{}
	notifier := &recordingNotifier{}
	svc := NewGiftSearchService(config.Config{}, nil,
		WithStore(store), WithPublisher(pub), WithNotifier(notifier), WithClock(fixedClock))

	profile := birthdayProfile()
	profile.RequesterID = "user-1"

	resp, err := svc.Search(context.Background(), profile)
	require.NoError(t, err)
	require.NotNil(t, resp.SearchID)
	svc.Wait()

	assert.Equal(t, resp.Results, store.results[*resp.SearchID])
	assert.Equal(t, "user-1", store.searches[*resp.SearchID].UserID)
	assert.Equal(t, "Birthday gift for electronics lover under ₹1000 India", store.searches[*resp.SearchID].SearchQuery)

	require.Len(t, pub.events, 1)
	evt := pub.events[0]
	assert.Equal(t, EventSearchCompleted, evt.Type)
	assert.Equal(t, *resp.SearchID, evt.SearchID)
	assert.Equal(t, models.SourceFallback, evt.Source)
	assert.Equal(t, len(resp.Results), evt.ResultCount)
	assert.Equal(t, fixedNow, evt.CreatedAt)

	assert.Equal(t, []string{"user-1"}, notifier.users)
}

func TestSearchSwallowsPersistenceFailures(t *testing.T) {
	t.Run("search record", func(t *testing.T) {
		store := newMemStore()
		store.saveErr = errors.New("db down")
		svc := NewGiftSearchService(config.Config{}, nil, WithStore(store))

		resp, err := svc.Search(context.Background(), birthdayProfile())
		require.NoError(t, err)
		assert.Nil(t, resp.SearchID)
		assert.Equal(t, FallbackResults(1000), resp.Results)
	})

	t.Run("results", func(t *testing.T) {
		store := newMemStore()
		store.resultsErr = errors.New("constraint violation")
		svc := NewGiftSearchService(config.Config{}, nil, WithStore(store))

		resp, err := svc.Search(context.Background(), birthdayProfile())
		require.NoError(t, err)
		assert.NotNil(t, resp.SearchID)
		assert.Equal(t, FallbackResults(1000), resp.Results)
	})
}

func TestSearchIgnoresPublishFailure(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker unreachable")}
	svc := NewGiftSearchService(config.Config{}, nil, WithPublisher(pub))

	resp, err := svc.Search(context.Background(), birthdayProfile())
	require.NoError(t, err)
	assert.Nil(t, resp.SearchID)
	svc.Wait()
	assert.Len(t, pub.events, 1)
}

func TestAnonymousSearchSkipsNotifier(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewGiftSearchService(config.Config{}, nil, WithNotifier(notifier))

	_, err := svc.Search(context.Background(), birthdayProfile())
	require.NoError(t, err)
	svc.Wait()
	assert.Empty(t, notifier.users)
}

func TestHistoryDisabledWithoutStore(t *testing.T) {
	svc := NewGiftSearchService(config.Config{}, nil)
	ctx := context.Background()

	_, err := svc.GetSearch(ctx, "id")
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	_, err = svc.ListSearches(ctx, "u", 10)
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	_, err = svc.ListFavorites(ctx, "u")
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	assert.ErrorIs(t, svc.RemoveFavorite(ctx, "u", "f"), ErrHistoryDisabled)
	_, err = svc.PurgeExpired(ctx)
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestQueryPreview(t *testing.T) {
	svc := NewGiftSearchService(config.Config{}, nil)

	q, err := svc.Query(models.RecipientProfile{Occasion: " Diwali ", BudgetLimit: 2000, Interests: []string{"", "tea"}})
	require.NoError(t, err)
	assert.Equal(t, "Diwali gift for tea lover under ₹2000 India", q)
}
