package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/repository/memstore"
	"github.com/01moynul/storefront-golang/internal/shop"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(codec *auth.SessionCodec, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Session(codec, SessionOptions{CookieName: "session"}))
	r.Use(mw...)
	r.GET("/whoami", func(c *gin.Context) {
		sess := CurrentSession(c)
		sess.AddFlash("success", "visto")
		if err := SaveSession(c); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": sess.UserID, "items": sess.Cart.ItemCount()})
	})
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "session" {
			return ck
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	codec := auth.NewSessionCodec([]byte("mw-secret"), time.Hour)
	r := newRouter(codec)

	token, err := codec.Encode(&auth.Session{UserID: 7, Cart: models.Cart{}.Add(1).Add(1)})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":7,"items":2}`, w.Body.String())

	ck := sessionCookie(t, w)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)

	sess, err := codec.Decode(ck.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(7), sess.UserID)
	assert.Len(t, sess.Flashes, 1)
}

func TestSessionTamperedCookieStartsFresh(t *testing.T) {
	codec := auth.NewSessionCodec([]byte("mw-secret"), time.Hour)
	forged, err := auth.NewSessionCodec([]byte("attacker"), time.Hour).Encode(&auth.Session{UserID: 1, IsAdmin: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: forged})
	w := httptest.NewRecorder()
	newRouter(codec).ServeHTTP(w, req)

	assert.JSONEq(t, `{"user":0,"items":0}`, w.Body.String())

	sess, err := codec.Decode(sessionCookie(t, w).Value)
	require.NoError(t, err, "the bad cookie is replaced with a valid one")
	assert.Zero(t, sess.UserID)
}

func TestRequireLogin(t *testing.T) {
	codec := auth.NewSessionCodec([]byte("mw-secret"), time.Hour)
	r := newRouter(codec, RequireLogin())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Você precisa estar logado!","redirect":"/login"}`, w.Body.String())

	token, err := codec.Encode(&auth.Session{UserID: 3})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	ctx := t.Context()
	store := memstore.New()
	admin, err := store.Users().CreateUser(ctx, models.User{Name: "Admin", Email: "admin@loja.com", IsAdmin: true})
	require.NoError(t, err)
	customer, err := store.Users().CreateUser(ctx, models.User{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	codec := auth.NewSessionCodec([]byte("mw-secret"), time.Hour)
	r := newRouter(codec, RequireAdmin(&shop.Identity{Store: store}))

	tests := []struct {
		name       string
		session    *auth.Session
		wantStatus int
	}{
		{name: "anonymous", session: nil, wantStatus: http.StatusUnauthorized},
		{name: "customer", session: &auth.Session{UserID: customer.ID}, wantStatus: http.StatusForbidden},
		{name: "customer with forged flag", session: &auth.Session{UserID: customer.ID, IsAdmin: true}, wantStatus: http.StatusForbidden},
		{name: "deleted user", session: &auth.Session{UserID: 999, IsAdmin: true}, wantStatus: http.StatusForbidden},
		{name: "admin", session: &auth.Session{UserID: admin.ID, IsAdmin: true}, wantStatus: http.StatusOK},
		{name: "admin without flag in session", session: &auth.Session{UserID: admin.ID}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.session != nil {
				token, err := codec.Encode(tt.session)
				require.NoError(t, err)
				req.AddCookie(&http.Cookie{Name: "session", Value: token})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:5173"))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "pong", w.Body.String())
}
