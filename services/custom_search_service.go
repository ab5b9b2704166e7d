package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/LovationAdmin/giftfinder-api/config"
	"github.com/LovationAdmin/giftfinder-api/models"
)

// ============================================================================
// GOOGLE CUSTOM SEARCH SERVICE
// Recherche de produits sur les sites e-commerce indiens
// ============================================================================

// ProviderResultCount bounds every provider call.
const ProviderResultCount = 10

var ErrSearchNotConfigured = errors.New("custom search credentials not configured")

// ProviderError is returned for non-2xx responses.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("search API returned status %d: %s", e.StatusCode, e.Body)
}

// SearchProvider returns candidate listings for a query.
type SearchProvider interface {
	Search(ctx context.Context, query string, num int) ([]models.CandidateListing, error)
}

type CustomSearchService struct {
	engineID    string
	apiKey      string
	endpoint    string
	imageSearch bool
	httpClient  *http.Client
}

type customSearchResponse struct {
	Items []customSearchItem `json:"items"`
}

type customSearchItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	DisplayLink string `json:"displayLink"`
	Snippet     string `json:"snippet"`
	Mime        string `json:"mime"`
	Image       *struct {
		ContextLink   string `json:"contextLink"`
		ThumbnailLink string `json:"thumbnailLink"`
	} `json:"image,omitempty"`
	Pagemap *struct {
		CSEImage []struct {
			Src string `json:"src"`
		} `json:"cse_image"`
		Metatags []map[string]string `json:"metatags"`
	} `json:"pagemap,omitempty"`
}

func NewCustomSearchService(cfg config.Config) *CustomSearchService {
	endpoint := cfg.CSEEndpoint
	if endpoint == "" {
		endpoint = config.DefaultCustomSearchEndpoint
	}
	timeout := cfg.SearchTimeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &CustomSearchService{
		engineID:    cfg.CSEID,
		apiKey:      cfg.CSEAPIKey,
		endpoint:    endpoint,
		imageSearch: true,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Configured reports whether both credentials are present.
func (s *CustomSearchService) Configured() bool {
	return s.engineID != "" && s.apiKey != ""
}

func (s *CustomSearchService) Search(ctx context.Context, query string, num int) ([]models.CandidateListing, error) {
	if !s.Configured() {
		return nil, ErrSearchNotConfigured
	}
	if num <= 0 || num > ProviderResultCount {
		num = ProviderResultCount
	}

	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint: %w", err)
	}
	params := u.Query()
	params.Set("key", s.apiKey)
	params.Set("cx", s.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))
	if s.imageSearch {
		params.Set("searchType", "image")
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(body)
		if len(snippet) > 300 {
			snippet = snippet[:300]
		}
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: snippet}
	}

	var parsed customSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	listings := make([]models.CandidateListing, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		listings = append(listings, item.toListing())
	}
	return listings, nil
}

func (i customSearchItem) toListing() models.CandidateListing {
	l := models.CandidateListing{
		Title:       i.Title,
		Snippet:     i.Snippet,
		Link:        i.Link,
		DisplayLink: i.DisplayLink,
		MimeType:    i.Mime,
	}
	if i.Image != nil {
		l.ContextLink = i.Image.ContextLink
		l.ThumbnailURL = i.Image.ThumbnailLink
	}
	if i.Pagemap != nil {
		if len(i.Pagemap.CSEImage) > 0 {
			l.ImageURL = i.Pagemap.CSEImage[0].Src
		}
		l.Metatags = i.Pagemap.Metatags
	}
	return l
}
