package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forgeops/buildboard/internal/auth"
	"github.com/forgeops/buildboard/internal/logging"
)

type LoginHandler struct {
	DB     *gorm.DB
	Secret string
}

func NewLoginHandler(gdb *gorm.DB, secret string) *LoginHandler {
	return &LoginHandler{DB: gdb, Secret: secret}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /login
func (h *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "invalid_request", "username and password required")
		return
	}

	user, err := auth.Authenticate(h.DB, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	token, err := auth.IssueToken(user.Username, h.Secret)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	logging.C("auth").Debugf("issued token for %q", user.Username)
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}
