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

// genreHandler handles HTTP requests for the read-only genre reference data.
type genreHandler struct {
	genreService portssvc.GenreSvcFacade
}

func newGenreHandler(gs portssvc.GenreSvcFacade) *genreHandler {
	return &genreHandler{
		genreService: gs,
	}
}

// registerGenreRoutes registers routes related to genres.
func registerGenreRoutes(r *gin.Engine, genreService portssvc.GenreSvcFacade) {
	h := newGenreHandler(genreService)

	genres := r.Group("/genres")
	{
		genres.GET("", h.listGenres)
		genres.GET("/:id", h.getGenre)
	}
}

// listGenres godoc
// @Summary List all genres
// @Produce  json
// @Success 200 {array} domain.Genre
// @Router /genres [get]
func (h *genreHandler) listGenres(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	genres, err := h.genreService.ListGenres(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list genres", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list genres"})
		return
	}

	c.JSON(http.StatusOK, genres)
}

// getGenre godoc
// @Summary Get a genre by id
// @Produce  json
// @Param   id path int true "Genre ID"
// @Success 200 {object} domain.Genre
// @Failure 404 {object} map[string]string "Genre not found"
// @Router /genres/{id} [get]
func (h *genreHandler) getGenre(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	genre, err := h.genreService.GetGenre(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get genre", slog.Int("genre_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve genre"})
		}
		return
	}

	c.JSON(http.StatusOK, genre)
}
