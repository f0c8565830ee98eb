package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	portssvc "github.com/filmorate/filmorate_app/internal/core/ports/services"
	"github.com/filmorate/filmorate_app/internal/dto"
	"github.com/filmorate/filmorate_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users and friendships.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers routes related to users.
func registerUserRoutes(r *gin.Engine, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := r.Group("/users")
	{
		users.POST("", h.createUser)
		users.PUT("", h.updateUser)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.DELETE("/:id", h.deleteUser)
		users.DELETE("", h.deleteUsers)
		users.PUT("/:id/friends/:friendId", h.addFriend)
		users.DELETE("/:id/friends/:friendId", h.removeFriend)
		users.GET("/:id/friends", h.getFriends)
		users.GET("/:id/friends/common/:otherId", h.getMutualFriends)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Registers a new user; a blank name defaults to the login
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.NewUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.NewUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating user", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to register duplicate email", slog.String("email", req.Email))
			c.JSON(http.StatusConflict, gin.H{"error": "A user with this email already exists"})
		} else {
			logger.Error("Failed to create user in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		}
		return
	}

	logger.Info("User created successfully", slog.Int("user_id", createdUser.ID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(createdUser))
}

// updateUser godoc
// @Summary Update an existing user
// @Description Updates a user identified by the id carried in the request body
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.UpdateUserRequest true "User details with id"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /users [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating user", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to take an already registered email", slog.Int("user_id", req.ID))
			c.JSON(http.StatusConflict, gin.H{"error": "A user with this email already exists"})
		} else {
			logger.Error("Failed to update user in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(updatedUser))
}

// listUsers godoc
// @Summary List all users
// @Produce  json
// @Success 200 {array} dto.UserResponse
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users))
}

// getUser godoc
// @Summary Get a user by id
// @Produce  json
// @Param   id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get user", slog.Int("user_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user by id
// @Param   id path int true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to delete user", slog.Int("user_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteUsers godoc
// @Summary Delete all users
// @Success 204 "No Content"
// @Router /users [delete]
func (h *userHandler) deleteUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.userService.DeleteUsers(c.Request.Context()); err != nil {
		logger.Error("Failed to delete users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete users"})
		return
	}

	c.Status(http.StatusNoContent)
}

// addFriend godoc
// @Summary Add a friend
// @Description Records a directed friendship edge from the user to the friend
// @Param   id path int true "User ID"
// @Param   friendId path int true "Friend ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Self-friendship rejected"
// @Failure 404 {object} map[string]string "User or friend not found"
// @Router /users/{id}/friends/{friendId} [put]
func (h *userHandler) addFriend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	friendID, ok := parseIDParam(c, "friendId")
	if !ok {
		return
	}

	if err := h.userService.AddFriend(c.Request.Context(), userID, friendID); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to add friend", slog.Int("user_id", userID), slog.Int("friend_id", friendID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add friend"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// removeFriend godoc
// @Summary Remove a friend
// @Description Removes the directed friendship edge; removing an absent edge is a no-op
// @Param   id path int true "User ID"
// @Param   friendId path int true "Friend ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Self-friendship rejected"
// @Failure 404 {object} map[string]string "User or friend not found"
// @Router /users/{id}/friends/{friendId} [delete]
func (h *userHandler) removeFriend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	friendID, ok := parseIDParam(c, "friendId")
	if !ok {
		return
	}

	if err := h.userService.RemoveFriend(c.Request.Context(), userID, friendID); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to remove friend", slog.Int("user_id", userID), slog.Int("friend_id", friendID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove friend"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// getFriends godoc
// @Summary List the friends of a user
// @Produce  json
// @Param   id path int true "User ID"
// @Success 200 {array} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id}/friends [get]
func (h *userHandler) getFriends(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	friends, err := h.userService.GetFriends(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get friends", slog.Int("user_id", userID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve friends"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(friends))
}

// getMutualFriends godoc
// @Summary List the mutual friends of two users
// @Produce  json
// @Param   id path int true "User ID"
// @Param   otherId path int true "Other User ID"
// @Success 200 {array} dto.UserResponse
// @Failure 400 {object} map[string]string "Same user on both sides"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id}/friends/common/{otherId} [get]
func (h *userHandler) getMutualFriends(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	otherID, ok := parseIDParam(c, "otherId")
	if !ok {
		return
	}

	friends, err := h.userService.GetMutualFriends(c.Request.Context(), userID, otherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get mutual friends", slog.Int("user_id", userID), slog.Int("other_id", otherID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve mutual friends"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(friends))
}
