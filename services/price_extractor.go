package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/LovationAdmin/giftfinder-api/models"
)

const amountGroup = `([0-9][0-9,]*(?:\.[0-9]+)?)`

// pricePatterns are tried in order; the first match yielding a valid in-budget
// amount wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`₹\s*` + amountGroup),
	regexp.MustCompile(`(?i)\bRs\.?\s*` + amountGroup),
	regexp.MustCompile(`(?i)\bINR\s*` + amountGroup),
	regexp.MustCompile(`(?i)\b(?:Price|MRP)\s*:\s*(?:₹|Rs\.?|INR)?\s*` + amountGroup),
}

// priceMetaKeys are structured price fields, checked before the text patterns.
var priceMetaKeys = []string{"og:price:amount", "product:price:amount"}

type PriceExtractor struct {
	rnd RandomSource
}

func NewPriceExtractor(rnd RandomSource) *PriceExtractor {
	return &PriceExtractor{rnd: rnd}
}

// ExtractFromListing prefers structured metadata, then the title+snippet text.
func (p *PriceExtractor) ExtractFromListing(listing models.CandidateListing, budgetLimit float64) float64 {
	for _, meta := range listing.Metatags {
		for _, key := range priceMetaKeys {
			if v, ok := parseAmount(meta[key]); ok && v <= budgetLimit {
				return v
			}
		}
	}
	return p.Extract(listing.Title+" "+listing.Snippet, budgetLimit)
}

// Extract returns a price with 0 < price <= budgetLimit. When no pattern gives
// an in-budget amount, a synthetic value in (0.1*budget, 0.9*budget] is returned;
// that value is a placeholder, not a measurement.
func (p *PriceExtractor) Extract(text string, budgetLimit float64) float64 {
	for _, re := range pricePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if v, ok := parseAmount(m[1]); ok && v <= budgetLimit {
				return v
			}
		}
	}
	return p.synthesize(budgetLimit)
}

func (p *PriceExtractor) synthesize(budgetLimit float64) float64 {
	lo, hi := 0.1*budgetLimit, 0.9*budgetLimit
	// 1-r is in (0, 1], which keeps the lower bound open
	v := lo + (1-p.rnd.Float64())*(hi-lo)
	v = math.Floor(v*100) / 100
	if v <= lo {
		v = hi
	}
	return v
}

func parseAmount(raw string) (float64, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
