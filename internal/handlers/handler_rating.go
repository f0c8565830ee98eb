package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	portssvc "github.com/filmorate/filmorate_app/internal/core/ports/services"
	"github.com/filmorate/filmorate_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ratingHandler handles HTTP requests for the read-only MPA rating reference data.
type ratingHandler struct {
	ratingService portssvc.RatingSvcFacade
}

func newRatingHandler(rs portssvc.RatingSvcFacade) *ratingHandler {
	return &ratingHandler{
		ratingService: rs,
	}
}

// registerRatingRoutes registers routes related to MPA ratings.
func registerRatingRoutes(r *gin.Engine, ratingService portssvc.RatingSvcFacade) {
	h := newRatingHandler(ratingService)

	ratings := r.Group("/mpa")
	{
		ratings.GET("", h.listRatings)
		ratings.GET("/:id", h.getRating)
	}
}

// listRatings godoc
// @Summary List all MPA ratings
// @Produce  json
// @Success 200 {array} domain.Rating
// @Router /mpa [get]
func (h *ratingHandler) listRatings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ratings, err := h.ratingService.ListRatings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list MPA ratings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list MPA ratings"})
		return
	}

	c.JSON(http.StatusOK, ratings)
}

// getRating godoc
// @Summary Get an MPA rating by id
// @Produce  json
// @Param   id path int true "Rating ID"
// @Success 200 {object} domain.Rating
// @Failure 404 {object} map[string]string "Rating not found"
// @Router /mpa/{id} [get]
func (h *ratingHandler) getRating(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rating, err := h.ratingService.GetRating(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get MPA rating", slog.Int("rating_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve MPA rating"})
		}
		return
	}

	c.JSON(http.StatusOK, rating)
}
