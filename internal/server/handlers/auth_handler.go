package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/domain/models"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session"

// sessionCookieMaxAge keeps the browser session until logout.
const sessionCookieMaxAge = 365 * 24 * 60 * 60

// AuthService checks credentials and session tokens.
type AuthService interface {
	Login(email, password string) (string, models.Session, error)
	Authenticate(token string) (models.Session, error)
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// AuthHandler serves login and logout.
type AuthHandler struct {
	svc    AuthService
	secure bool
	logger *zap.Logger
}

// NewAuthHandler constructs the handler. secure marks the session cookie
// HTTPS-only.
func NewAuthHandler(svc AuthService, secure bool, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, secure: secure, logger: logger}
}

// LoginPage tells unauthenticated browsers how to sign in.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "please log in", "login": "POST /login with email and password"})
}

// Login exchanges the credential pair for a session token, returned in the
// body and set as a cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	token, sess, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, sessionCookieMaxAge, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "email": sess.Email})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", h.secure, true)
	c.Status(http.StatusNoContent)
}
