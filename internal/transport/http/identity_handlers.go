package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/service"
)

type IdentityHandlers struct {
	identity *service.IdentityService
}

func NewIdentityHandlers(identity *service.IdentityService) *IdentityHandlers {
	return &IdentityHandlers{identity: identity}
}

func (h *IdentityHandlers) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tokens, err := h.identity.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

type loginPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *IdentityHandlers) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tokens, err := h.identity.Login(c.Request.Context(), payload.Name, payload.Password)
	if err != nil {
		// Не различаем "нет пользователя" и "неверный пароль".
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid name or password"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}
