package handlers

import (
	"errors"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-golang/internal/middleware"
	"github.com/01moynul/storefront-golang/internal/port"
	"github.com/01moynul/storefront-golang/internal/shop"
	"github.com/01moynul/storefront-golang/internal/storage"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Catalog  *shop.Catalog
	Editor   *shop.CatalogEditor
	Carts    *shop.CartService
	Orders   *shop.OrderEngine
	Identity *shop.Identity
	Images   *storage.ImageStore
	Money    *MoneyFormatter
}

// New wires every service to the same store.
func New(store port.Store, images *storage.ImageStore, money *MoneyFormatter) *Handlers {
	RegisterValidators()
	return &Handlers{
		Catalog:  &shop.Catalog{Store: store},
		Editor:   &shop.CatalogEditor{Store: store},
		Carts:    &shop.CartService{Store: store},
		Orders:   &shop.OrderEngine{Store: store},
		Identity: &shop.Identity{Store: store},
		Images:   images,
		Money:    money,
	}
}

var registerValidators sync.Once

// RegisterValidators teaches gin's validator to compare decimal.Decimal
// fields, so tags like binding:"gte=0" work on prices.
func RegisterValidators() {
	registerValidators.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
	})
}

// --- Responses ---
//
// Every response carries either "message" or "error" plus a "redirect" hint
// naming the page a browser client should show next. The same text is
// queued as a flash message in the session.

func (h *Handlers) reply(c *gin.Context, status int, body gin.H) {
	if err := middleware.SaveSession(c); err != nil {
		log.Printf("Failed to save session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		return
	}
	c.JSON(status, body)
}

// succeed flashes message and replies with it.
func (h *Handlers) succeed(c *gin.Context, status int, message, redirect string, body gin.H) {
	middleware.CurrentSession(c).AddFlash("success", message)
	if body == nil {
		body = gin.H{}
	}
	body["message"] = message
	body["redirect"] = redirect
	h.reply(c, status, body)
}

// reject flashes message and replies with it as an error.
func (h *Handlers) reject(c *gin.Context, status int, message, redirect string) {
	middleware.CurrentSession(c).AddFlash("error", message)
	h.reply(c, status, gin.H{"error": message, "redirect": redirect})
}

// failure is how an error is shown to the user.
type failure struct {
	status   int
	message  string
	redirect string
}

var failures = []struct {
	err error
	failure
}{
	{shop.ErrUnauthenticated, failure{http.StatusUnauthorized, "Você precisa estar logado!", "/login"}},
	{shop.ErrUnauthorized, failure{http.StatusForbidden, "Acesso negado!", "/"}},
	{shop.ErrEmptyCart, failure{http.StatusBadRequest, "Seu carrinho está vazio!", "/cart"}},
	{shop.ErrDuplicateEmail, failure{http.StatusConflict, "Email já cadastrado!", "/register"}},
	{shop.ErrInvalidCredentials, failure{http.StatusUnauthorized, "Email ou senha incorretos!", "/login"}},
	{shop.ErrInvalidInput, failure{http.StatusBadRequest, "Dados inválidos!", ""}},
	{shop.ErrNotFound, failure{http.StatusNotFound, "Não encontrado!", "/"}},
	{storage.ErrNoFileSelected, failure{http.StatusBadRequest, "Nenhum arquivo selecionado", ""}},
	{storage.ErrUnsupportedFileType, failure{http.StatusBadRequest, "Tipo de arquivo não permitido", ""}},
	{storage.ErrFileTooLarge, failure{http.StatusRequestEntityTooLarge, "Arquivo muito grande (máximo 16MB)", ""}},
}

func describe(err error) failure {
	for _, f := range failures {
		if errors.Is(err, f.err) {
			return f.failure
		}
	}
	return failure{http.StatusInternalServerError, "Erro interno", "/"}
}

// fail maps err to a response. redirect overrides the default page for the
// error when not empty.
func (h *Handlers) fail(c *gin.Context, err error, redirect string) {
	f := describe(err)
	if f.status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	if redirect != "" {
		f.redirect = redirect
	}
	h.reject(c, f.status, f.message, f.redirect)
}

// idParam reads a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
