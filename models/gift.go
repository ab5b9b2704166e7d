package models

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ============================================================================
// RECIPIENT PROFILE
// ============================================================================

// RecipientProfile décrit le destinataire du cadeau et la contrainte de budget.
type RecipientProfile struct {
	Occasion        string    `json:"occasion" validate:"required"`
	BudgetLimit     float64   `json:"budgetLimit" validate:"gt=0"`
	Budget          []float64 `json:"budget,omitempty" validate:"-"` // legacy range input, first element only
	RecipientAge    *int      `json:"recipientAge,omitempty" validate:"omitempty,gte=0"`
	RecipientGender string    `json:"gender,omitempty"`
	Interests       []string  `json:"interests,omitempty"`
	Relationship    string    `json:"relationship,omitempty"`
	PersonalityType string    `json:"personalityType,omitempty"`
	RequesterID     string    `json:"-"`
}

var profileValidator = validator.New()

// Normalize trims string fields and folds the legacy budget array into BudgetLimit.
func (p *RecipientProfile) Normalize() {
	p.Occasion = strings.TrimSpace(p.Occasion)
	p.RecipientGender = strings.TrimSpace(p.RecipientGender)
	p.Relationship = strings.TrimSpace(p.Relationship)
	p.PersonalityType = strings.TrimSpace(p.PersonalityType)

	if p.BudgetLimit <= 0 && len(p.Budget) > 0 {
		p.BudgetLimit = p.Budget[0]
	}
	p.Budget = nil

	interests := make([]string, 0, len(p.Interests))
	for _, i := range p.Interests {
		if i = strings.TrimSpace(i); i != "" {
			interests = append(interests, i)
		}
	}
	p.Interests = interests
}

// Validate checks the profile invariants: non-empty occasion, positive budget.
func (p RecipientProfile) Validate() error {
	if err := profileValidator.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Occasion":
				return errors.New("occasion is required")
			case "BudgetLimit":
				return errors.New("budgetLimit must be greater than 0")
			case "RecipientAge":
				return errors.New("recipientAge must not be negative")
			}
		}
		return err
	}
	return nil
}

// ============================================================================
// CANDIDATE LISTING (réponse brute du moteur de recherche)
// ============================================================================

type CandidateListing struct {
	Title        string
	Snippet      string
	Link         string
	DisplayLink  string
	ContextLink  string
	MimeType     string
	ImageURL     string // pagemap cse_image
	ThumbnailURL string
	Metatags     []map[string]string
}

// ============================================================================
// GIFT RESULT
// ============================================================================

type GiftResult struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	ImageURL       string   `json:"image_url"`
	ProductURL     string   `json:"product_url"`
	StoreName      string   `json:"store_name"`
	Rating         float64  `json:"rating"`
	Tags           []string `json:"tags"`
	RelevanceScore float64  `json:"ai_relevance_score"`
}

// HasTag reports whether the result carries tag (case-insensitive).
func (g GiftResult) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ============================================================================
// REQUEST / RESPONSE
// ============================================================================

type SearchRequest struct {
	SearchParams *RecipientProfile `json:"searchParams" binding:"required"`
}

type SearchResponse struct {
	SearchID *string      `json:"searchId"`
	Results  []GiftResult `json:"results"`
}

type QueryResponse struct {
	Query string `json:"query"`
}

// ResultSource indique d'où viennent les résultats.
type ResultSource string

const (
	SourceLive     ResultSource = "live"
	SourceCache    ResultSource = "cache"
	SourceFallback ResultSource = "fallback"
)

// SearchEvent est publié après chaque recherche terminée.
type SearchEvent struct {
	Type        string       `json:"type"`
	SearchID    string       `json:"searchId,omitempty"`
	UserID      string       `json:"userId,omitempty"`
	Occasion    string       `json:"occasion"`
	BudgetLimit float64      `json:"budgetLimit"`
	Query       string       `json:"query"`
	Source      ResultSource `json:"source"`
	ResultCount int          `json:"resultCount"`
	CreatedAt   time.Time    `json:"createdAt"`
}
