package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/filmorate/filmorate_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Delegate route registration to specific handlers, passing required services
	registerFilmRoutes(r, services.Film)
	registerUserRoutes(r, services.User)
	registerGenreRoutes(r, services.Genre)
	registerRatingRoutes(r, services.Rating)
}

// parseIDParam extracts a positive integer path parameter. On failure it
// writes a 400 response and reports false.
func parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format, must be an integer"})
		return 0, false
	}
	return id, true
}
