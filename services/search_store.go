package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/LovationAdmin/giftfinder-api/config"
	"github.com/LovationAdmin/giftfinder-api/models"
)

var (
	ErrSearchNotFound   = errors.New("search not found")
	ErrResultNotFound   = errors.New("gift result not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrHistoryDisabled  = errors.New("search history storage not configured")
)

// SearchStore is the persistence collaborator. Writes are best-effort from the
// search pipeline's point of view.
type SearchStore interface {
	SaveSearch(ctx context.Context, profile models.RecipientProfile, query string) (string, error)
	SaveResults(ctx context.Context, searchID string, results []models.GiftResult) error
	GetSearch(ctx context.Context, id string) (*models.SearchRecord, error)
	ListSearches(ctx context.Context, userID string, limit int) ([]models.SearchRecord, error)
	AddFavorite(ctx context.Context, userID, searchID, resultID string) (*models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, favoriteID string) error
	ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SQLSearchStore implements SearchStore on Postgres (TEXT[] via pq.Array) or
// SQLite (JSON-encoded lists).
type SQLSearchStore struct {
	DB      *sql.DB
	dialect config.Dialect
	now     Clock
}

func NewSQLSearchStore(db *sql.DB, dialect config.Dialect) *SQLSearchStore {
	return &SQLSearchStore{DB: db, dialect: dialect, now: time.Now}
}

var placeholderRegex = regexp.MustCompile(`\$\d+`)

// q rewrites $n placeholders for SQLite. Placeholders must appear in argument order.
func (s *SQLSearchStore) q(query string) string {
	if s.dialect == config.DialectSQLite {
		return placeholderRegex.ReplaceAllString(query, "?")
	}
	return query
}

func (s *SQLSearchStore) listArg(v []string) interface{} {
	if v == nil {
		v = []string{}
	}
	if s.dialect == config.DialectPostgres {
		return pq.Array(v)
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func (s *SQLSearchStore) listDest(dst *[]string) interface{} {
	if s.dialect == config.DialectPostgres {
		return pq.Array(dst)
	}
	return &jsonList{dst: dst}
}

// ============================================================================
// SEARCHES
// ============================================================================

func (s *SQLSearchStore) SaveSearch(ctx context.Context, profile models.RecipientProfile, query string) (string, error) {
	id := uuid.New().String()

	var age sql.NullInt64
	if profile.RecipientAge != nil {
		age = sql.NullInt64{Int64: int64(*profile.RecipientAge), Valid: true}
	}

	_, err := s.DB.ExecContext(ctx, s.q(`
		INSERT INTO gift_searches (id, user_id, occasion, budget_min, budget_max, recipient_age,
			recipient_gender, interests, relationship, personality_type, search_query, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`),
		id,
		nullString(profile.RequesterID),
		profile.Occasion,
		profile.BudgetLimit,
		profile.BudgetLimit,
		age,
		nullString(profile.RecipientGender),
		s.listArg(profile.Interests),
		nullString(profile.Relationship),
		nullString(profile.PersonalityType),
		query,
		s.now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("search storage failed: %w", err)
	}
	return id, nil
}

func (s *SQLSearchStore) SaveResults(ctx context.Context, searchID string, results []models.GiftResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("results storage failed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.q(`
		INSERT INTO gift_results (search_id, result_id, position, name, description, price,
			image_url, product_url, store_name, rating, tags, ai_relevance_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`))
	if err != nil {
		return fmt.Errorf("results storage failed: %w", err)
	}
	defer stmt.Close()

	createdAt := s.now().UTC()
	for i, g := range results {
		if _, err := stmt.ExecContext(ctx,
			searchID, g.ID, i, g.Name, g.Description, g.Price,
			g.ImageURL, g.ProductURL, g.StoreName, g.Rating,
			s.listArg(g.Tags), g.RelevanceScore, createdAt,
		); err != nil {
			return fmt.Errorf("results storage failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("results storage failed: %w", err)
	}
	return nil
}

func (s *SQLSearchStore) GetSearch(ctx context.Context, id string) (*models.SearchRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSearchNotFound
	}

	rec, err := s.scanSearch(s.DB.QueryRowContext(ctx, s.q(`
		SELECT id, user_id, occasion, budget_max, recipient_age, recipient_gender, interests,
			relationship, personality_type, search_query, created_at
		FROM gift_searches WHERE id = $1`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSearchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load search: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, s.q(`
		SELECT result_id, name, description, price, image_url, product_url, store_name,
			rating, tags, ai_relevance_score
		FROM gift_results WHERE search_id = $1 ORDER BY position`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		g, err := s.scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		rec.Results = append(rec.Results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *SQLSearchStore) ListSearches(ctx context.Context, userID string, limit int) ([]models.SearchRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.DB.QueryContext(ctx, s.q(`
		SELECT id, user_id, occasion, budget_max, recipient_age, recipient_gender, interests,
			relationship, personality_type, search_query, created_at
		FROM gift_searches WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`), userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	defer rows.Close()

	records := []models.SearchRecord{}
	for rows.Next() {
		rec, err := s.scanSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *SQLSearchStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.DB.ExecContext(ctx, s.q(`DELETE FROM gift_searches WHERE created_at < $1`), cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge searches: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ============================================================================
// FAVORITES
// ============================================================================

func (s *SQLSearchStore) AddFavorite(ctx context.Context, userID, searchID, resultID string) (*models.Favorite, error) {
	if _, err := uuid.Parse(searchID); err != nil {
		return nil, ErrResultNotFound
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx, s.q(
		`SELECT EXISTS(SELECT 1 FROM gift_results WHERE search_id = $1 AND result_id = $2)`),
		searchID, resultID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !exists {
		return nil, ErrResultNotFound
	}

	_, err = s.DB.ExecContext(ctx, s.q(`
		INSERT INTO user_favorites (id, user_id, search_id, result_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, search_id, result_id) DO NOTHING`),
		uuid.New().String(), userID, searchID, resultID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	favs, err := s.queryFavorites(ctx, s.q(favoriteSelect+`
		WHERE f.user_id = $1 AND f.search_id = $2 AND f.result_id = $3`), userID, searchID, resultID)
	if err != nil {
		return nil, err
	}
	if len(favs) == 0 {
		return nil, ErrFavoriteNotFound
	}
	return &favs[0], nil
}

func (s *SQLSearchStore) RemoveFavorite(ctx context.Context, userID, favoriteID string) error {
	if _, err := uuid.Parse(favoriteID); err != nil {
		return ErrFavoriteNotFound
	}
	res, err := s.DB.ExecContext(ctx, s.q(`DELETE FROM user_favorites WHERE id = $1 AND user_id = $2`), favoriteID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (s *SQLSearchStore) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	return s.queryFavorites(ctx, s.q(favoriteSelect+` WHERE f.user_id = $1 ORDER BY f.created_at DESC`), userID)
}

const favoriteSelect = `
	SELECT f.id, f.user_id, f.search_id, f.created_at,
		r.result_id, r.name, r.description, r.price, r.image_url, r.product_url, r.store_name,
		r.rating, r.tags, r.ai_relevance_score
	FROM user_favorites f
	JOIN gift_results r ON r.search_id = f.search_id AND r.result_id = f.result_id`

func (s *SQLSearchStore) queryFavorites(ctx context.Context, query string, args ...interface{}) ([]models.Favorite, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favs := []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		var desc, img, prodURL, store sql.NullString
		var rating, score sql.NullFloat64
		if err := rows.Scan(&f.ID, &f.UserID, &f.SearchID, &f.CreatedAt,
			&f.Gift.ID, &f.Gift.Name, &desc, &f.Gift.Price, &img, &prodURL, &store,
			&rating, s.listDest(&f.Gift.Tags), &score); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		f.ResultID = f.Gift.ID
		f.Gift.Description = desc.String
		f.Gift.ImageURL = img.String
		f.Gift.ProductURL = prodURL.String
		f.Gift.StoreName = store.String
		f.Gift.Rating = rating.Float64
		f.Gift.RelevanceScore = score.Float64
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

// ============================================================================
// SCAN HELPERS
// ============================================================================

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *SQLSearchStore) scanSearch(row rowScanner) (*models.SearchRecord, error) {
	var rec models.SearchRecord
	var userID, gender, relationship, personality, query sql.NullString
	var age sql.NullInt64

	if err := row.Scan(&rec.ID, &userID, &rec.Occasion, &rec.BudgetLimit, &age, &gender,
		s.listDest(&rec.Interests), &relationship, &personality, &query, &rec.CreatedAt); err != nil {
		return nil, err
	}

	rec.UserID = userID.String
	rec.RecipientGender = gender.String
	rec.Relationship = relationship.String
	rec.PersonalityType = personality.String
	rec.SearchQuery = query.String
	if age.Valid {
		a := int(age.Int64)
		rec.RecipientAge = &a
	}
	if rec.Interests == nil {
		rec.Interests = []string{}
	}
	return &rec, nil
}

func (s *SQLSearchStore) scanResult(row rowScanner) (models.GiftResult, error) {
	var g models.GiftResult
	var desc, img, prodURL, store sql.NullString
	var rating, score sql.NullFloat64

	err := row.Scan(&g.ID, &g.Name, &desc, &g.Price, &img, &prodURL, &store,
		&rating, s.listDest(&g.Tags), &score)
	g.Description = desc.String
	g.ImageURL = img.String
	g.ProductURL = prodURL.String
	g.StoreName = store.String
	g.Rating = rating.Float64
	g.RelevanceScore = score.Float64
	return g, err
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// jsonList scans a JSON-encoded TEXT column into a string slice.
type jsonList struct {
	dst *[]string
}

func (j *jsonList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*j.dst = []string{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported list column type %T", src)
	}
	if len(raw) == 0 {
		*j.dst = []string{}
		return nil
	}
	return json.Unmarshal(raw, j.dst)
}
