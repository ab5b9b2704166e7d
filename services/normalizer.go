package services

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/LovationAdmin/giftfinder-api/models"
)

const (
	PlaceholderImageURL = "https://images.unsplash.com/photo-1549007994-cb92caebd54b?w=400&h=400&fit=crop"
	DefaultStoreName    = "Online Store"
	DefaultDescription  = "Product from Indian e-commerce store"

	minRating    = 3.5
	maxRating    = 5.0
	minSeedScore = 0.8
	maxSeedScore = 1.0
)

var pipeSuffix = regexp.MustCompile(`\s*\|.*$`)

// Normalizer converts raw search hits into GiftResults.
type Normalizer struct {
	rules  Rules
	prices *PriceExtractor
	tags   *TagClassifier
	rnd    RandomSource
	now    Clock

	suffixes []*regexp.Regexp
}

func NewNormalizer(rules Rules, rnd RandomSource, now Clock) *Normalizer {
	suffixes := make([]*regexp.Regexp, 0, len(rules.TitleSuffixes))
	for _, s := range rules.TitleSuffixes {
		suffixes = append(suffixes, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(s)))
	}
	return &Normalizer{
		rules:    rules,
		prices:   NewPriceExtractor(rnd),
		tags:     NewTagClassifier(rules.Tags),
		rnd:      rnd,
		now:      now,
		suffixes: suffixes,
	}
}

// NormalizeAll converts a batch. Ids share one timestamp and differ by index.
// Listings whose price lands above the budget are dropped.
func (n *Normalizer) NormalizeAll(listings []models.CandidateListing, budgetLimit float64) []models.GiftResult {
	stamp := n.now().UnixMilli()
	out := make([]models.GiftResult, 0, len(listings))
	for i, l := range listings {
		if g, ok := n.Normalize(l, budgetLimit, fmt.Sprintf("cse-%d-%d", stamp, i)); ok {
			out = append(out, g)
		}
	}
	return out
}

// Normalize builds one GiftResult. ok is false when the derived price exceeds budgetLimit.
func (n *Normalizer) Normalize(l models.CandidateListing, budgetLimit float64, id string) (models.GiftResult, bool) {
	price := n.prices.ExtractFromListing(l, budgetLimit)
	if price <= 0 || price > budgetLimit {
		return models.GiftResult{}, false
	}

	productURL := l.ContextLink
	if productURL == "" {
		productURL = l.Link
	}

	description := strings.TrimSpace(l.Snippet)
	if description == "" {
		description = DefaultDescription
	}

	return models.GiftResult{
		ID:             id,
		Name:           n.CleanTitle(l.Title),
		Description:    description,
		Price:          price,
		ImageURL:       imageFor(l),
		ProductURL:     productURL,
		StoreName:      n.StoreName(productURL),
		Rating:         n.rating(),
		Tags:           n.tags.Classify(l.Title, l.Snippet),
		RelevanceScore: minSeedScore + n.rnd.Float64()*(maxSeedScore-minSeedScore),
	}, true
}

// CleanTitle strips storefront suffixes and anything after a pipe.
func (n *Normalizer) CleanTitle(title string) string {
	cleaned := title
	for _, re := range n.suffixes {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	cleaned = strings.TrimSpace(pipeSuffix.ReplaceAllString(cleaned, ""))
	if cleaned == "" {
		return strings.TrimSpace(title)
	}
	return cleaned
}

// StoreName matches the URL host against the store table; unknown hosts are
// returned bare without "www.".
func (n *Normalizer) StoreName(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return DefaultStoreName
	}
	host := strings.ToLower(u.Hostname())
	for _, s := range n.rules.Stores {
		if strings.Contains(host, strings.ToLower(s.DomainContains)) {
			return s.Name
		}
	}
	return strings.TrimPrefix(host, "www.")
}

func (n *Normalizer) rating() float64 {
	r := minRating + n.rnd.Float64()*(maxRating-minRating)
	r = math.Round(r*10) / 10
	return math.Min(math.Max(r, minRating), maxRating)
}

func imageFor(l models.CandidateListing) string {
	if l.ImageURL != "" {
		return l.ImageURL
	}
	for _, meta := range l.Metatags {
		if img := meta["og:image"]; img != "" {
			return img
		}
	}
	// image-search hits: the link itself is the image
	if strings.HasPrefix(l.MimeType, "image/") && l.Link != "" {
		return l.Link
	}
	if l.ThumbnailURL != "" {
		return l.ThumbnailURL
	}
	return PlaceholderImageURL
}
