package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LovationAdmin/giftfinder-api/models"
)

func TestRankerScore(t *testing.T) {
	r := NewRanker(DefaultRules())

	tests := []struct {
		name    string
		gift    models.GiftResult
		profile models.RecipientProfile
		want    float64
	}{
		{
			name:    "no overlap keeps seed",
			gift:    models.GiftResult{Tags: []string{"general"}, RelevanceScore: 0.8},
			profile: models.RecipientProfile{Occasion: "Birthday", Interests: []string{"music"}},
			want:    0.8,
		},
		{
			name:    "interest match counts substrings both ways",
			gift:    models.GiftResult{Tags: []string{"book", "fitness"}, RelevanceScore: 0.5},
			profile: models.RecipientProfile{Occasion: "Birthday", Interests: []string{"Books", "fit"}},
			want:    0.7,
		},
		{
			name:    "personality bonus",
			gift:    models.GiftResult{Tags: []string{"electronics"}, RelevanceScore: 0.5},
			profile: models.RecipientProfile{Occasion: "Birthday", PersonalityType: "tech enthusiast"},
			want:    0.65,
		},
		{
			name:    "occasion bonus",
			gift:    models.GiftResult{Tags: []string{"traditional"}, RelevanceScore: 0.5},
			profile: models.RecipientProfile{Occasion: "Diwali"},
			want:    0.7,
		},
		{
			name:    "clamped to one",
			gift:    models.GiftResult{Tags: []string{"electronics", "premium"}, RelevanceScore: 0.95},
			profile: models.RecipientProfile{Occasion: "Birthday", Interests: []string{"electronics"}, PersonalityType: "Tech Enthusiast"},
			want:    1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, r.Score(tt.gift, tt.profile), 1e-9)
		})
	}
}

func TestRankerMonotonicInInterestMatches(t *testing.T) {
	r := NewRanker(DefaultRules())
	profile := models.RecipientProfile{Occasion: "Birthday", Interests: []string{"books", "home"}}

	a := models.GiftResult{Tags: []string{"books", "home"}, RelevanceScore: 0.6}
	b := models.GiftResult{Tags: []string{"books", "general"}, RelevanceScore: 0.6}

	assert.GreaterOrEqual(t, r.Score(a, profile), r.Score(b, profile))
}

func TestRankSortsTruncatesAndCopies(t *testing.T) {
	r := NewRanker(DefaultRules())

	var in []models.GiftResult
	for i := 0; i < 9; i++ {
		in = append(in, models.GiftResult{
			ID:             fmt.Sprintf("g%d", i),
			Tags:           []string{"general"},
			RelevanceScore: 0.8 + float64(i)*0.01,
		})
	}
	in[0].Tags = []string{"electronics"}

	out := r.Rank(in, models.RecipientProfile{Occasion: "Birthday", Interests: []string{"electronics"}})
	require.Len(t, out, MaxResults)

	assert.Equal(t, "g0", out[0].ID)
	assert.InDelta(t, 0.9, out[0].RelevanceScore, 1e-9)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].RelevanceScore, out[i].RelevanceScore)
	}
	for _, g := range out {
		assert.LessOrEqual(t, g.RelevanceScore, 1.0)
	}

	assert.Equal(t, 0.8, in[0].RelevanceScore)
}

func TestRankIsStableOnTies(t *testing.T) {
	r := NewRanker(DefaultRules())
	in := []models.GiftResult{
		{ID: "a", Tags: []string{"general"}, RelevanceScore: 0.9},
		{ID: "b", Tags: []string{"general"}, RelevanceScore: 0.9},
		{ID: "c", Tags: []string{"general"}, RelevanceScore: 0.9},
	}
	out := r.Rank(in, models.RecipientProfile{Occasion: "Birthday"})
	assert.Equal(t, []string{"a", "b", "c"}, []string{out[0].ID, out[1].ID, out[2].ID})
}
