package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/lensframe/studio-core/internal/middleware"
	"github.com/lensframe/studio-core/internal/pkg/response"
	"github.com/lensframe/studio-core/internal/pkg/session"
)

type Handler struct {
	service *Service
	secure  bool
}

// NewHandler wires the auth routes. secure controls the cookie Secure flag
// and should be true outside development.
func NewHandler(service *Service, secure bool) *Handler {
	return &Handler{service: service, secure: secure}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := rg.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
		group.POST("/refresh", h.Refresh)
		group.POST("/logout", authMW, h.Logout)
		group.GET("/me", authMW, h.Me)
		group.PATCH("/password", authMW, h.ChangePassword)
	}
}

// POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	user, err := h.service.Register(&dto)
	if err != nil {
		if errors.Is(err, ErrOwnerExists) {
			response.ForbiddenMsg(c, ErrOwnerExists.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, user)
}

// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, sess, err := h.service.Login(&dto, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.UnauthorizedMsg(c, ErrInvalidCredentials.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	h.setCookies(c, result.Token, sess.ID)
	response.OK(c, result)
}

// POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	sessionID, err := c.Cookie(middleware.RefreshCookie)
	if err != nil || sessionID == "" {
		response.UnauthorizedMsg(c, "missing refresh cookie")
		return
	}

	token, err := h.service.Refresh(sessionID)
	if err != nil {
		h.clearCookies(c)
		response.UnauthorizedMsg(c, ErrSessionInvalid.Error())
		return
	}

	h.setCookies(c, token, sessionID)
	response.OK(c, gin.H{"token": token})
}

// POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	sessionID := middleware.CurrentSessionID(c)
	if err := h.service.Logout(userID, sessionID); err != nil {
		// Session already gone; the logout still succeeds from the
		// client's point of view.
		h.clearCookies(c)
		response.OK(c, gin.H{"message": "logged out"})
		return
	}
	h.clearCookies(c)
	response.OK(c, gin.H{"message": "logged out"})
}

// GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.GetUser(middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.UnauthorizedMsg(c, ErrUserNotFound.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, user)
}

// PATCH /auth/password
func (h *Handler) ChangePassword(c *gin.Context) {
	var dto ChangePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	err := h.service.ChangePassword(middleware.CurrentUserID(c), middleware.CurrentSessionID(c), &dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.UnauthorizedMsg(c, "wrong password")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "password updated"})
}

func (h *Handler) setCookies(c *gin.Context, token, sessionID string) {
	c.SetCookie(middleware.AccessCookie, token, int(session.AccessTTL.Seconds()), "/", "", h.secure, true)
	c.SetCookie(middleware.RefreshCookie, sessionID, int(session.RefreshTTL.Seconds()), "/", "", h.secure, true)
}

func (h *Handler) clearCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessCookie, "", -1, "/", "", h.secure, true)
	c.SetCookie(middleware.RefreshCookie, "", -1, "/", "", h.secure, true)
}
