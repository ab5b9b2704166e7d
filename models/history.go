package models

import "time"

// ============================================================================
// SEARCH HISTORY
// ============================================================================

// SearchRecord est une recherche stockée avec ses résultats.
type SearchRecord struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id,omitempty"`
	Occasion        string       `json:"occasion"`
	BudgetLimit     float64      `json:"budget_limit"`
	RecipientAge    *int         `json:"recipient_age,omitempty"`
	RecipientGender string       `json:"recipient_gender,omitempty"`
	Interests       []string     `json:"interests"`
	Relationship    string       `json:"relationship,omitempty"`
	PersonalityType string       `json:"personality_type,omitempty"`
	SearchQuery     string       `json:"search_query"`
	CreatedAt       time.Time    `json:"created_at"`
	Results         []GiftResult `json:"results,omitempty"`
}

// ============================================================================
// FAVORITES
// ============================================================================

type Favorite struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	SearchID  string     `json:"search_id"`
	ResultID  string     `json:"result_id"`
	Gift      GiftResult `json:"gift"`
	CreatedAt time.Time  `json:"created_at"`
}

type AddFavoriteRequest struct {
	SearchID string `json:"searchId" binding:"required"`
	ResultID string `json:"resultId" binding:"required"`
}
