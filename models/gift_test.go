package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipientProfileValidate(t *testing.T) {
	neg := -1
	tests := []struct {
		name    string
		profile RecipientProfile
		wantErr string
	}{
		{"valid", RecipientProfile{Occasion: "Birthday", BudgetLimit: 500}, ""},
		{"missing occasion", RecipientProfile{BudgetLimit: 500}, "occasion is required"},
		{"zero budget", RecipientProfile{Occasion: "Birthday"}, "budgetLimit must be greater than 0"},
		{"negative budget", RecipientProfile{Occasion: "Birthday", BudgetLimit: -10}, "budgetLimit must be greater than 0"},
		{"negative age", RecipientProfile{Occasion: "Birthday", BudgetLimit: 10, RecipientAge: &neg}, "recipientAge must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestRecipientProfileNormalize(t *testing.T) {
	var req SearchRequest
	body := `{"searchParams":{"occasion":"  Diwali ","budget":[1500,3000],"interests":["tea"," ",""],"gender":"female"}}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	p := *req.SearchParams
	p.Normalize()

	assert.Equal(t, "Diwali", p.Occasion)
	assert.Equal(t, 1500.0, p.BudgetLimit)
	assert.Nil(t, p.Budget)
	assert.Equal(t, []string{"tea"}, p.Interests)
	assert.Equal(t, "female", p.RecipientGender)
	assert.NoError(t, p.Validate())
}

func TestRecipientProfileIgnoresRequesterFromBody(t *testing.T) {
	var p RecipientProfile
	require.NoError(t, json.Unmarshal([]byte(`{"occasion":"x","budgetLimit":1,"RequesterID":"spoofed"}`), &p))
	assert.Empty(t, p.RequesterID)
}

func TestGiftResultJSONShape(t *testing.T) {
	b, err := json.Marshal(GiftResult{ID: "1", Tags: []string{"home"}, RelevanceScore: 0.9})
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	for _, key := range []string{"id", "name", "description", "price", "image_url", "product_url", "store_name", "rating", "tags", "ai_relevance_score"} {
		assert.Contains(t, m, key)
	}
	assert.True(t, GiftResult{Tags: []string{"Home"}}.HasTag("home"))
}

func TestSearchResponseNullSearchID(t *testing.T) {
	b, err := json.Marshal(SearchResponse{Results: []GiftResult{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"searchId":null,"results":[]}`, string(b))
}
