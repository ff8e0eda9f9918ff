package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-golang/internal/middleware"
	"github.com/01moynul/storefront-golang/internal/shop"
)

// --- User Registration ---

// RegisterInput is the sign-up form. Accepted as JSON or form data.
type RegisterInput struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Register is the handler for POST /register
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		h.reject(c, http.StatusBadRequest, "Dados inválidos: "+err.Error(), "/register")
		return
	}

	user, err := h.Identity.Register(c.Request.Context(), shop.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.fail(c, err, "/register")
		return
	}

	h.succeed(c, http.StatusCreated, "Cadastro realizado com sucesso!", "/login", gin.H{"user": user})
}

// --- Login / Logout ---

type LoginInput struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Login is the handler for POST /login
// The cart collected while anonymous is kept.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		h.reject(c, http.StatusBadRequest, "Dados inválidos: "+err.Error(), "/login")
		return
	}

	user, err := h.Identity.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.fail(c, err, "/login")
		return
	}

	middleware.CurrentSession(c).Login(user)

	redirect := "/"
	if user.IsAdmin {
		redirect = "/admin"
	}
	h.succeed(c, http.StatusOK, "Login realizado com sucesso!", redirect, gin.H{"user": user})
}

// Logout is the handler for POST /logout (GET kept for plain links).
// It forgets the user and the cart.
func (h *Handlers) Logout(c *gin.Context) {
	middleware.CurrentSession(c).Clear()
	h.succeed(c, http.StatusOK, "Logout realizado com sucesso!", "/", nil)
}

// PopFlashes is the handler for GET /flashes
// It returns the queued messages once.
func (h *Handlers) PopFlashes(c *gin.Context) {
	flashes := middleware.CurrentSession(c).PopFlashes()
	h.reply(c, http.StatusOK, gin.H{"flashes": flashes})
}
