package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/shop"
)

// firstQuery returns the first non-empty query parameter among keys.
func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			return v
		}
	}
	return ""
}

// Index is the handler for GET / and GET /products
// ?categoria= (or ?category=) and ?busca= (or ?q=) filter by substring,
// ignoring case.
func (h *Handlers) Index(c *gin.Context) {
	filter := models.ProductFilter{
		Category: firstQuery(c, "categoria", "category"),
		Name:     firstQuery(c, "busca", "q"),
	}

	listing, err := h.Catalog.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err, "/")
		return
	}

	h.reply(c, http.StatusOK, gin.H{
		"products":   listing.Products,
		"categories": listing.Categories,
		"filters":    gin.H{"category": filter.Category, "search": filter.Name},
	})
}

// GetProduct is the handler for GET /products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.reject(c, http.StatusBadRequest, "ID inválido", "/")
		return
	}

	product, err := h.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "/")
		return
	}
	h.reply(c, http.StatusOK, gin.H{"product": product})
}

// --- Admin product editor ---

// ProductForm is the create/edit form. Image is a filename previously
// returned by UploadImage; empty means the placeholder on create and "keep
// the current one" on update.
type ProductForm struct {
	Name        string          `json:"name" form:"name" binding:"required"`
	Price       decimal.Decimal `json:"price" form:"price" binding:"gte=0"`
	Category    string          `json:"category" form:"category" binding:"required"`
	Description string          `json:"description" form:"description"`
	Image       string          `json:"image" form:"image"`
}

func (f ProductForm) input() shop.ProductInput {
	return shop.ProductInput{
		Name:        f.Name,
		Price:       f.Price,
		Category:    f.Category,
		Description: f.Description,
		Image:       f.Image,
	}
}

// CreateProduct is the handler for POST /admin/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.reject(c, http.StatusBadRequest, "Dados inválidos: "+err.Error(), "/admin")
		return
	}

	product, err := h.Editor.Create(c.Request.Context(), form.input())
	if err != nil {
		h.fail(c, err, "/admin")
		return
	}
	h.succeed(c, http.StatusCreated, "Produto criado com sucesso!", "/admin", gin.H{"product": product})
}

// GetProductForEdit is the handler for GET /admin/products/:id
func (h *Handlers) GetProductForEdit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.reject(c, http.StatusBadRequest, "ID inválido", "/admin")
		return
	}

	product, err := h.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "/admin")
		return
	}
	h.reply(c, http.StatusOK, gin.H{"product": product})
}

// UpdateProduct is the handler for PUT /admin/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.reject(c, http.StatusBadRequest, "ID inválido", "/admin")
		return
	}

	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.reject(c, http.StatusBadRequest, "Dados inválidos: "+err.Error(), "/admin")
		return
	}

	product, err := h.Editor.Update(c.Request.Context(), id, form.input())
	if err != nil {
		h.fail(c, err, "/admin")
		return
	}
	h.succeed(c, http.StatusOK, "Produto atualizado com sucesso!", "/admin", gin.H{"product": product})
}

// DeleteProduct is the handler for DELETE /admin/products/:id
// Carts still holding the product drop it on their next view.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.reject(c, http.StatusBadRequest, "ID inválido", "/admin")
		return
	}

	if err := h.Editor.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "/admin")
		return
	}
	h.succeed(c, http.StatusOK, "Produto excluído com sucesso!", "/admin", nil)
}
