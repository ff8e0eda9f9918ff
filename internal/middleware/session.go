package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/shop"
)

const sessionKey = "session"

// SessionOptions controls the session cookie.
type SessionOptions struct {
	CookieName string
	Secure     bool
}

type sessionState struct {
	codec   *auth.SessionCodec
	opts    SessionOptions
	session *auth.Session
}

// Session decodes the session cookie at the start of the request. A missing,
// expired or tampered cookie yields a fresh anonymous session.
func Session(codec *auth.SessionCodec, opts SessionOptions) gin.HandlerFunc {
	if opts.CookieName == "" {
		opts.CookieName = "session"
	}

	return func(c *gin.Context) {
		sess := &auth.Session{}

		if raw, err := c.Cookie(opts.CookieName); err == nil && raw != "" {
			decoded, err := codec.Decode(raw)
			if err != nil {
				// replace the bad cookie on the way out
				sess.MarkModified()
			} else {
				sess = decoded
			}
		}

		c.Set(sessionKey, &sessionState{codec: codec, opts: opts, session: sess})
		c.Next()
	}
}

func state(c *gin.Context) *sessionState {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	st, _ := v.(*sessionState)
	return st
}

// CurrentSession returns the request session. Without the Session middleware
// it returns a throwaway empty session.
func CurrentSession(c *gin.Context) *auth.Session {
	if st := state(c); st != nil {
		return st.session
	}
	return &auth.Session{}
}

// CurrentPrincipal is the identity carried by the request session.
func CurrentPrincipal(c *gin.Context) shop.Principal {
	s := CurrentSession(c)
	return shop.Principal{UserID: s.UserID, Name: s.UserName, IsAdmin: s.IsAdmin}
}

// SaveSession writes the session cookie if the session changed. It must run
// before the response body is written.
func SaveSession(c *gin.Context) error {
	st := state(c)
	if st == nil || !st.session.Modified() {
		return nil
	}

	token, err := st.codec.Encode(st.session)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(st.opts.CookieName, token, int(st.codec.TTL().Seconds()), "/", "", st.opts.Secure, true)
	return nil
}

// saveOrLog is SaveSession for paths that are already failing.
func saveOrLog(c *gin.Context) {
	if err := SaveSession(c); err != nil {
		log.Printf("Failed to save session: %v", err)
	}
}
