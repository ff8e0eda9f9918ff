package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-golang/internal/middleware"
)

//
// --- Cart Handlers ---
//
// The cart lives in the session only; nothing here touches the order tables.
//

// ViewCart is the handler for GET /cart
func (h *Handlers) ViewCart(c *gin.Context) {
	view, err := h.Carts.View(c.Request.Context(), middleware.CurrentSession(c).Cart)
	if err != nil {
		h.fail(c, err, "/")
		return
	}
	h.reply(c, http.StatusOK, gin.H{"cart": view})
}

// AddToCart is the handler for POST /cart/items/:product_id
// Adding a product already in the cart bumps its quantity by one. The
// product is not looked up: a stale id simply drops out of the cart view.
func (h *Handlers) AddToCart(c *gin.Context) {
	productID, ok := idParam(c, "product_id")
	if !ok {
		h.reject(c, http.StatusBadRequest, "ID inválido", "/")
		return
	}

	sess := middleware.CurrentSession(c)
	already := sess.Cart.Quantity(productID) > 0
	sess.SetCart(sess.Cart.Add(productID))

	message := "Produto adicionado ao carrinho!"
	if already {
		message = "Quantidade atualizada no carrinho!"
	}
	h.succeed(c, http.StatusOK, message, "/", gin.H{
		"quantity":  sess.Cart.Quantity(productID),
		"itemCount": sess.Cart.ItemCount(),
	})
}

// RemoveFromCart is the handler for DELETE /cart/items/:product_id
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	productID, ok := idParam(c, "product_id")
	if !ok {
		h.reject(c, http.StatusBadRequest, "ID inválido", "/cart")
		return
	}

	sess := middleware.CurrentSession(c)
	sess.SetCart(sess.Cart.Remove(productID))

	h.succeed(c, http.StatusOK, "Produto removido do carrinho!", "/cart", gin.H{
		"itemCount": sess.Cart.ItemCount(),
	})
}
