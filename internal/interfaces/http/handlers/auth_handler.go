package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/interfaces/http/response"
	"site-weaver.backend/internal/usecases"
	"site-weaver.backend/pkg/logger"
	"site-weaver.backend/pkg/redis"
)

const (
	sessionCookieName = "session_id"
	sessionDuration   = 24 * time.Hour
)

// AuthHandler handles dashboard authentication endpoints
type AuthHandler struct {
	authUsecase  *usecases.AuthUsecase
	sessionStore *redis.SessionStore
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase, sessionStore *redis.SessionStore) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, sessionStore: sessionStore}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Login handles user login and opens an encrypted server-side session
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.sessionStore != nil {
		sessionID := uuid.NewString()
		err := h.sessionStore.CreateSession(c.Request.Context(), sessionID, &redis.SessionData{
			AccessToken:  resp.Tokens.AccessToken,
			RefreshToken: resp.Tokens.RefreshToken,
		}, sessionDuration)
		if err != nil {
			// The JWT pair still works without the cookie session.
			logger.Warn(c.Request.Context(), "failed to create session", zap.Error(err))
		} else {
			c.SetCookie(sessionCookieName, sessionID, int(sessionDuration.Seconds()), "/", "", false, true)
		}
	}

	response.Success(c, http.StatusOK, resp)
}

// Logout tears down the server-side session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.sessionStore != nil {
		if sessionID, err := c.Cookie(sessionCookieName); err == nil && sessionID != "" {
			_ = h.sessionStore.DeleteSession(c.Request.Context(), sessionID)
		}
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{"loggedOut": true})
}

// Refresh exchanges a refresh token for a fresh pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tokens, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, tokens)
}
