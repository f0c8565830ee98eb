package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	portssvc "github.com/filmorate/filmorate_app/internal/core/ports/services"
	"github.com/filmorate/filmorate_app/internal/dto"
	"github.com/filmorate/filmorate_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const defaultTopFilmsCount = 10

// filmHandler handles HTTP requests related to films and likes.
type filmHandler struct {
	filmService portssvc.FilmSvcFacade
}

// newFilmHandler creates a new filmHandler.
func newFilmHandler(fs portssvc.FilmSvcFacade) *filmHandler {
	return &filmHandler{
		filmService: fs,
	}
}

// registerFilmRoutes registers routes related to films.
func registerFilmRoutes(r *gin.Engine, filmService portssvc.FilmSvcFacade) {
	h := newFilmHandler(filmService)

	films := r.Group("/films")
	{
		films.POST("", h.createFilm)
		films.PUT("", h.updateFilm)
		films.GET("", h.listFilms)
		films.GET("/popular", h.getTopFilms)
		films.GET("/:id", h.getFilm)
		films.DELETE("/:id", h.deleteFilm)
		films.DELETE("", h.deleteFilms)
		films.PUT("/:id/like/:userId", h.addLike)
		films.DELETE("/:id/like/:userId", h.removeLike)
	}
}

// createFilm godoc
// @Summary Create a new film
// @Description Adds a new film to the catalog
// @Tags films
// @Accept  json
// @Produce  json
// @Param   film body dto.NewFilmRequest true "Film details"
// @Success 201 {object} dto.FilmResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Referenced rating or genre not found"
// @Router /films [post]
func (h *filmHandler) createFilm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.NewFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFilm", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	createdFilm, err := h.filmService.CreateFilm(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating film", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Referenced entity not found creating film", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create film in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create film"})
		}
		return
	}

	logger.Info("Film created successfully", slog.Int("film_id", createdFilm.ID))
	c.JSON(http.StatusCreated, createdFilm)
}

// updateFilm godoc
// @Summary Update an existing film
// @Description Updates a film identified by the id carried in the request body
// @Tags films
// @Accept  json
// @Produce  json
// @Param   film body dto.UpdateFilmRequest true "Film details with id"
// @Success 200 {object} dto.FilmResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Film not found"
// @Router /films [put]
func (h *filmHandler) updateFilm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateFilm", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updatedFilm, err := h.filmService.UpdateFilm(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating film", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Film or referenced entity not found", slog.Int("film_id", req.ID))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update film in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update film"})
		}
		return
	}

	c.JSON(http.StatusOK, updatedFilm)
}

// listFilms godoc
// @Summary List all films
// @Produce  json
// @Success 200 {array} dto.FilmResponse
// @Router /films [get]
func (h *filmHandler) listFilms(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	films, err := h.filmService.ListFilms(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list films", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list films"})
		return
	}

	c.JSON(http.StatusOK, films)
}

// getFilm godoc
// @Summary Get a film by id
// @Produce  json
// @Param   id path int true "Film ID"
// @Success 200 {object} dto.FilmResponse
// @Failure 404 {object} map[string]string "Film not found"
// @Router /films/{id} [get]
func (h *filmHandler) getFilm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	film, err := h.filmService.GetFilm(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get film", slog.Int("film_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve film"})
		}
		return
	}

	c.JSON(http.StatusOK, film)
}

// getTopFilms godoc
// @Summary List the most liked films
// @Description Returns at most count films ordered by like count descending
// @Produce  json
// @Param   count query int false "Maximum number of films to return" default(10)
// @Success 200 {array} dto.FilmResponse
// @Failure 400 {object} map[string]string "Invalid count"
// @Router /films/popular [get]
func (h *filmHandler) getTopFilms(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	count := defaultTopFilmsCount
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid count format, must be an integer"})
			return
		}
		count = parsed
	}

	films, err := h.filmService.GetTopFilms(c.Request.Context(), count)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get top films", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve top films"})
		}
		return
	}

	c.JSON(http.StatusOK, films)
}

// deleteFilm godoc
// @Summary Delete a film by id
// @Param   id path int true "Film ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Film not found"
// @Router /films/{id} [delete]
func (h *filmHandler) deleteFilm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.filmService.DeleteFilm(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to delete film", slog.Int("film_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete film"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteFilms godoc
// @Summary Delete all films
// @Success 204 "No Content"
// @Router /films [delete]
func (h *filmHandler) deleteFilms(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.filmService.DeleteFilms(c.Request.Context()); err != nil {
		logger.Error("Failed to delete films", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete films"})
		return
	}

	c.Status(http.StatusNoContent)
}

// addLike godoc
// @Summary Add a like to a film
// @Description Records that the user likes the film; repeating the call has no effect
// @Param   id path int true "Film ID"
// @Param   userId path int true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Film or user not found"
// @Router /films/{id}/like/{userId} [put]
func (h *filmHandler) addLike(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	filmID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.filmService.AddLike(c.Request.Context(), filmID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to add like", slog.Int("film_id", filmID), slog.Int("user_id", userID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add like"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// removeLike godoc
// @Summary Remove a like from a film
// @Param   id path int true "Film ID"
// @Param   userId path int true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Film, user or like not found"
// @Router /films/{id}/like/{userId} [delete]
func (h *filmHandler) removeLike(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	filmID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.filmService.RemoveLike(c.Request.Context(), filmID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to remove like", slog.Int("film_id", filmID), slog.Int("user_id", userID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove like"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
