package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-golang/internal/shop"
)

// RequireLogin stops anonymous visitors. It must run after Session.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentPrincipal(c).Authenticated() {
			c.Next()
			return
		}

		CurrentSession(c).AddFlash("error", "Você precisa estar logado!")
		saveOrLog(c)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Você precisa estar logado!", "redirect": "/login"})
	}
}

// RequireAdmin lets through only users the identity store still lists as
// admins. The admin flag in the session is a hint for the UI, nothing more;
// when the store disagrees the session flag is dropped.
func RequireAdmin(identity *shop.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := identity.VerifyAdmin(c.Request.Context(), CurrentPrincipal(c))
		if err == nil {
			c.Next()
			return
		}

		sess := CurrentSession(c)
		switch {
		case errors.Is(err, shop.ErrUnauthenticated):
			sess.AddFlash("error", "Acesso negado!")
			saveOrLog(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Acesso negado!", "redirect": "/login"})
		case errors.Is(err, shop.ErrUnauthorized):
			if sess.IsAdmin {
				sess.IsAdmin = false
				sess.MarkModified()
			}
			sess.AddFlash("error", "Acesso negado!")
			saveOrLog(c)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acesso negado!", "redirect": "/"})
		default:
			log.Printf("Failed to verify admin user %d: %v", sess.UserID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		}
	}
}
