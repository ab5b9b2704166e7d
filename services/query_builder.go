package services

import (
	"strconv"
	"strings"

	"github.com/LovationAdmin/giftfinder-api/models"
)

const (
	CurrencySymbol = "₹"
	MarketRegion   = "India"
)

// storefronts searched by the live provider
var siteRestriction = []string{"amazon.in", "flipkart.com", "myntra.com", "nykaa.com", "ajio.com"}

// BuildQuery turns a profile into a natural-language search string.
// Field order is fixed: occasion, interests, relationship, gender, budget.
func BuildQuery(profile models.RecipientProfile) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(profile.Occasion))
	b.WriteString(" gift")

	if len(profile.Interests) > 0 {
		first := profile.Interests
		if len(first) > 2 {
			first = first[:2]
		}
		b.WriteString(" for ")
		b.WriteString(strings.Join(first, " and "))
		b.WriteString(" lover")
	}

	if r := strings.TrimSpace(profile.Relationship); r != "" && !isPreferNotToSay(r) {
		b.WriteString(" for ")
		b.WriteString(r)
	}

	if g := strings.TrimSpace(profile.RecipientGender); g != "" && !isPreferNotToSay(g) {
		b.WriteString(" ")
		b.WriteString(g)
	}

	b.WriteString(" under ")
	b.WriteString(CurrencySymbol)
	b.WriteString(formatAmount(profile.BudgetLimit))
	b.WriteString(" ")
	b.WriteString(MarketRegion)

	return b.String()
}

// BuildProviderQuery appends the storefront site restriction to the base query.
func BuildProviderQuery(profile models.RecipientProfile) string {
	sites := make([]string, len(siteRestriction))
	for i, s := range siteRestriction {
		sites[i] = "site:" + s
	}
	return BuildQuery(profile) + " " + strings.Join(sites, " OR ")
}

func isPreferNotToSay(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	v = strings.ReplaceAll(v, "-", " ")
	return v == "prefer not to say"
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
