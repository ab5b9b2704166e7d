package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LovationAdmin/giftfinder-api/models"
)

func TestCacheKey(t *testing.T) {
	p := birthdayProfile()
	q := BuildProviderQuery(p)

	assert.Equal(t, CacheKey(q, p), CacheKey(q, p))
	assert.Len(t, CacheKey(q, p), 64)

	other := p
	other.PersonalityType = "Practical"
	assert.NotEqual(t, CacheKey(q, p), CacheKey(q, other))

	cheaper := p
	cheaper.BudgetLimit = 500
	assert.NotEqual(t, CacheKey(q, p), CacheKey(BuildProviderQuery(cheaper), cheaper))

	assert.NotEqual(t, CacheKey(q, p), CacheKey(q, models.RecipientProfile{Occasion: "Birthday", BudgetLimit: 1000}))
}
