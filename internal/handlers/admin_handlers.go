package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Admin Handlers ---
// All routes here sit behind middleware.RequireAdmin.
//

// AdminDashboard is the handler for GET /admin
func (h *Handlers) AdminDashboard(c *gin.Context) {
	dash, err := h.Editor.Dashboard(c.Request.Context())
	if err != nil {
		h.fail(c, err, "/")
		return
	}
	h.reply(c, http.StatusOK, gin.H{
		"products": dash.Products,
		"users":    dash.Users,
		"orders":   dash.Orders,
	})
}
