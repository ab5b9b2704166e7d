package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/giftfinder-api/middleware"
	"github.com/LovationAdmin/giftfinder-api/models"
	"github.com/LovationAdmin/giftfinder-api/services"
	"github.com/LovationAdmin/giftfinder-api/utils"
)

type GiftSearchHandler struct {
	Service *services.GiftSearchService
}

func NewGiftSearchHandler(svc *services.GiftSearchService) *GiftSearchHandler {
	return &GiftSearchHandler{Service: svc}
}

// ============================================================================
// RECHERCHE
// ============================================================================

// Search handles POST /gifts/search.
func (h *GiftSearchHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	profile := *req.SearchParams
	profile.RequesterID = middleware.GetUserID(c)

	resp, err := h.Service.Search(c.Request.Context(), profile)
	if err != nil {
		if errors.Is(err, services.ErrInvalidProfile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		utils.SafeError("[GiftSearch] Search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Query handles POST /gifts/query and returns the query the profile produces.
func (h *GiftSearchHandler) Query(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	query, err := h.Service.Query(*req.SearchParams)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{Query: query})
}

// ============================================================================
// HISTORIQUE
// ============================================================================

func (h *GiftSearchHandler) ListSearches(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	records, err := h.Service.ListSearches(c.Request.Context(), userID, limit)
	if err != nil {
		respondHistoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *GiftSearchHandler) GetSearch(c *gin.Context) {
	rec, err := h.Service.GetSearch(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondHistoryError(c, err)
		return
	}

	if rec.UserID != "" && rec.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ============================================================================
// FAVORIS
// ============================================================================

func (h *GiftSearchHandler) ListFavorites(c *gin.Context) {
	favs, err := h.Service.ListFavorites(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondHistoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, favs)
}

func (h *GiftSearchHandler) AddFavorite(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rec, err := h.Service.GetSearch(c.Request.Context(), req.SearchID)
	if err != nil {
		respondHistoryError(c, err)
		return
	}
	if rec.UserID != "" && rec.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	fav, err := h.Service.AddFavorite(c.Request.Context(), userID, req.SearchID, req.ResultID)
	if err != nil {
		respondHistoryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fav)
}

func (h *GiftSearchHandler) RemoveFavorite(c *gin.Context) {
	err := h.Service.RemoveFavorite(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondHistoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}

func respondHistoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHistoryDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search history is not available"})
	case errors.Is(err, services.ErrSearchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Search not found"})
	case errors.Is(err, services.ErrResultNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Gift result not found"})
	case errors.Is(err, services.ErrFavoriteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
	default:
		utils.SafeError("[History] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
