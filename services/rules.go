package services

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ============================================================================
// RULE TABLES
// Tables ordonnées (données, pas du code) utilisées par le classifieur, le
// normaliseur et le ranker. Surchargeables via un fichier YAML.
// ============================================================================

// TagRule fires when any keyword is a substring of the lower-cased text.
type TagRule struct {
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

// StoreRule maps a domain fragment to a storefront label.
type StoreRule struct {
	DomainContains string `yaml:"domain_contains"`
	Name           string `yaml:"name"`
}

// PersonalityBonus adds Bonus once when the personality matches and the result
// carries any of Tags.
type PersonalityBonus struct {
	Personality string   `yaml:"personality"`
	Tags        []string `yaml:"tags"`
	Bonus       float64  `yaml:"bonus"`
}

// OccasionBonus adds Bonus once when the occasion matches and the result
// carries any of Tags.
type OccasionBonus struct {
	Occasion string   `yaml:"occasion"`
	Tags     []string `yaml:"tags"`
	Bonus    float64  `yaml:"bonus"`
}

type Rules struct {
	Tags               []TagRule          `yaml:"tags"`
	Stores             []StoreRule        `yaml:"stores"`
	TitleSuffixes      []string           `yaml:"title_suffixes"`
	PersonalityBonuses []PersonalityBonus `yaml:"personality_bonuses"`
	OccasionBonuses    []OccasionBonus    `yaml:"occasion_bonuses"`
}

// DefaultRules returns the built-in tables for the Indian storefront market.
func DefaultRules() Rules {
	return Rules{
		Tags: []TagRule{
			{Tag: "electronics", Keywords: []string{"electronic", "gadget", "headphone", "earbud", "speaker", "smartwatch", "bluetooth"}},
			{Tag: "fashion", Keywords: []string{"fashion", "cloth", "apparel", "shirt", "dress", "saree", "kurta"}},
			{Tag: "books", Keywords: []string{"book", "novel"}},
			{Tag: "beauty", Keywords: []string{"beauty", "cosmetic", "skincare", "makeup", "fragrance"}},
			{Tag: "home", Keywords: []string{"home", "decor", "candle", "kitchen", "cushion"}},
			{Tag: "gifts", Keywords: []string{"gift", "hamper"}},
			{Tag: "premium", Keywords: []string{"premium", "luxury"}},
			{Tag: "accessories", Keywords: []string{"accessor", "wallet", "jewel", "handbag", "sunglass"}},
			{Tag: "fitness", Keywords: []string{"fitness", "yoga", "gym", "workout", "dumbbell"}},
			{Tag: "useful", Keywords: []string{"useful", "practical", "organizer", "organiser", "utility"}},
			{Tag: "traditional", Keywords: []string{"traditional", "ethnic", "handloom", "handcrafted", "diya"}},
			{Tag: "colorful", Keywords: []string{"colorful", "colourful", "gulal", "rangoli"}},
		},
		Stores: []StoreRule{
			{DomainContains: "amazon", Name: "Amazon India"},
			{DomainContains: "flipkart", Name: "Flipkart"},
			{DomainContains: "myntra", Name: "Myntra"},
			{DomainContains: "nykaa", Name: "Nykaa"},
			{DomainContains: "ajio", Name: "AJIO"},
		},
		TitleSuffixes: []string{" - Amazon.in", " - Flipkart", " - Myntra", " - Nykaa", " - AJIO"},
		PersonalityBonuses: []PersonalityBonus{
			{Personality: "Tech Enthusiast", Tags: []string{"electronics"}, Bonus: 0.15},
			{Personality: "Luxury Lover", Tags: []string{"premium", "luxury"}, Bonus: 0.15},
			{Personality: "Practical", Tags: []string{"useful"}, Bonus: 0.15},
		},
		OccasionBonuses: []OccasionBonus{
			{Occasion: "Diwali", Tags: []string{"traditional"}, Bonus: 0.2},
			{Occasion: "Holi", Tags: []string{"colorful"}, Bonus: 0.2},
		},
	}
}

// LoadRulesFromFile loads rule tables from YAML. Sections missing from the file
// keep their defaults; on read/parse errors the defaults are returned with the error.
func LoadRulesFromFile(path string) (Rules, error) {
	r := DefaultRules()
	b, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("read rules file: %w", err)
	}

	var override Rules
	if err := yaml.Unmarshal(b, &override); err != nil {
		return r, fmt.Errorf("unmarshal rules: %w", err)
	}

	if len(override.Tags) > 0 {
		r.Tags = override.Tags
	}
	if len(override.Stores) > 0 {
		r.Stores = override.Stores
	}
	if len(override.TitleSuffixes) > 0 {
		r.TitleSuffixes = override.TitleSuffixes
	}
	if len(override.PersonalityBonuses) > 0 {
		r.PersonalityBonuses = override.PersonalityBonuses
	}
	if len(override.OccasionBonuses) > 0 {
		r.OccasionBonuses = override.OccasionBonuses
	}
	return r, nil
}
