package handlers

import (
	"net/http"

	"github.com/menucat/menu-service/internal/config"
	"github.com/menucat/menu-service/pkg/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler exchanges the operator credential for an admin bearer token.
// There is no user store behind this; authorization proper is expected to
// live in front of the service.
type AuthHandler struct {
	cfg config.AdminConfig
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg config.AdminConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login verifies the operator password and issues a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.PasswordHash), []byte(req.Password)); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid credentials", ""))
		return
	}

	token, err := utils.GenerateOperatorToken(h.cfg.JWTSecret, h.cfg.TokenTTL)
	if err != nil {
		utils.LogError(err, "Login: failed to generate operator token")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to issue token.", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_in": h.cfg.TokenTTL.Seconds()})
}
