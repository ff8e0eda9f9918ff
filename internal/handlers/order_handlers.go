package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-golang/internal/middleware"
	"github.com/01moynul/storefront-golang/internal/shop"
)

//
// --- Order Handlers ---
//

// Checkout is the handler for POST /checkout
// The session cart is replaced only when the order was committed.
func (h *Handlers) Checkout(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	receipt, cart, err := h.Orders.Checkout(c.Request.Context(), middleware.CurrentPrincipal(c), sess.Cart)
	if errors.Is(err, shop.ErrUnauthenticated) {
		h.reject(c, http.StatusUnauthorized, "Você precisa estar logado para finalizar o pedido!", "/login")
		return
	}
	if err != nil {
		h.fail(c, err, "/cart")
		return
	}

	sess.SetCart(cart)

	message := fmt.Sprintf("Pedido #%d finalizado com sucesso! Total: %s", receipt.OrderID, h.Money.Format(receipt.Total))
	h.succeed(c, http.StatusCreated, message, "/", gin.H{"order": receipt})
}

// GetMyOrders is the handler for GET /orders
func (h *Handlers) GetMyOrders(c *gin.Context) {
	orders, err := h.Orders.Orders(c.Request.Context(), middleware.CurrentPrincipal(c))
	if err != nil {
		h.fail(c, err, "/")
		return
	}
	h.reply(c, http.StatusOK, gin.H{"orders": orders})
}

// GetOrderDetails is the handler for GET /orders/:id
// Someone else's order looks exactly like a missing one.
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.reject(c, http.StatusBadRequest, "ID inválido", "/orders")
		return
	}

	details, err := h.Orders.Order(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if errors.Is(err, shop.ErrNotFound) {
		h.reject(c, http.StatusNotFound, "Pedido não encontrado!", "/orders")
		return
	}
	if err != nil {
		h.fail(c, err, "/orders")
		return
	}
	h.reply(c, http.StatusOK, gin.H{"order": details.Order, "items": details.Lines})
}
