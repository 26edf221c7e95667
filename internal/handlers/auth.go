package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/marketledger-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "registration_failed", err)
		return
	}
	RespondOK(c, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	access, refresh, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "login_failed", err)
		return
	}
	RespondOK(c, gin.H{"access_token": access, "refresh_token": refresh})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	access, refresh, err := ah.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "refresh_failed", err)
		return
	}
	RespondOK(c, gin.H{"access_token": access, "refresh_token": refresh})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	if err := ah.authService.Logout(c.Request.Context(), caller); err != nil {
		RespondError(c, http.StatusInternalServerError, "logout_failed", err)
		return
	}
	RespondOK(c, gin.H{"status": "logged out"})
}
