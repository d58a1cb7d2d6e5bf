package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/caseflow_app/internal/apperrors"
	portssvc "github.com/opsdesk/caseflow_app/internal/core/ports/services"
	"github.com/opsdesk/caseflow_app/internal/dto"
	"github.com/opsdesk/caseflow_app/internal/middleware"
)

// userHandler handles HTTP requests related to users and the officer roster.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(userService portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: userService,
	}
}

// registerUserRoutes sets up the user directory routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	rg.GET("/officers", h.listOfficers)
	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
	}
}

// listOfficers godoc
// @Summary List treasury officers
// @Description Returns the roster of valid forward_to_officer targets.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ListOfficersResponse
// @Failure 500 {object} map[string]string "Failed to list officers"
// @Router /officers [get]
func (h *userHandler) listOfficers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	officers, err := h.userService.ListOfficers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list officers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list officers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListOfficersResponse(officers))
}

// getMe godoc
// @Summary Get the authenticated user
// @Description Returns the profile of the currently authenticated user.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to get user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
