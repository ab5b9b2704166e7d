package services

import (
	"sort"
	"strings"

	"github.com/LovationAdmin/giftfinder-api/models"
)

const (
	MaxResults         = 6
	interestMatchBonus = 0.1
	maxScore           = 1.0
)

type Ranker struct {
	rules Rules
}

func NewRanker(rules Rules) *Ranker {
	return &Ranker{rules: rules}
}

// Rank adjusts each score from profile overlap, clamps to 1.0, sorts descending
// (stable) and keeps the first MaxResults. The input slice is not modified.
func (r *Ranker) Rank(results []models.GiftResult, profile models.RecipientProfile) []models.GiftResult {
	scored := make([]models.GiftResult, len(results))
	for i, g := range results {
		g.Tags = append([]string(nil), g.Tags...)
		g.RelevanceScore = r.Score(g, profile)
		scored[i] = g
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	if len(scored) > MaxResults {
		scored = scored[:MaxResults]
	}
	return scored
}

// Score returns the adjusted relevance of a single result.
func (r *Ranker) Score(g models.GiftResult, profile models.RecipientProfile) float64 {
	score := g.RelevanceScore
	score += float64(interestMatches(g.Tags, profile.Interests)) * interestMatchBonus

	if profile.PersonalityType != "" {
		for _, b := range r.rules.PersonalityBonuses {
			if strings.EqualFold(b.Personality, profile.PersonalityType) && hasAnyTag(g, b.Tags) {
				score += b.Bonus
			}
		}
	}

	for _, b := range r.rules.OccasionBonuses {
		if strings.EqualFold(b.Occasion, profile.Occasion) && hasAnyTag(g, b.Tags) {
			score += b.Bonus
		}
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// interestMatches counts tags that contain, or are contained in, any interest.
func interestMatches(tags, interests []string) int {
	count := 0
	for _, tag := range tags {
		t := strings.ToLower(tag)
		if t == "" {
			continue
		}
		for _, interest := range interests {
			i := strings.ToLower(strings.TrimSpace(interest))
			if i == "" {
				continue
			}
			if strings.Contains(i, t) || strings.Contains(t, i) {
				count++
				break
			}
		}
	}
	return count
}

func hasAnyTag(g models.GiftResult, tags []string) bool {
	for _, t := range tags {
		if g.HasTag(t) {
			return true
		}
	}
	return false
}
