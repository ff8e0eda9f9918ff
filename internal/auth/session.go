package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/01moynul/storefront-golang/internal/models"
)

// Flash is a one-shot message shown to the user on the next page.
type Flash struct {
	Category string `json:"category"` // "success" or "error"
	Message  string `json:"message"`
}

// Session is everything the server remembers about one browser: the logged
// in user (id, display name, admin flag), the cart and pending flashes. It
// travels as a signed token, so it can be read but not altered by the client.
type Session struct {
	UserID   int64       `json:"uid,omitempty"`
	UserName string      `json:"name,omitempty"`
	IsAdmin  bool        `json:"adm,omitempty"`
	Cart     models.Cart `json:"cart"`
	Flashes  []Flash     `json:"flashes,omitempty"`

	modified bool
}

// Modified reports whether the session must be re-issued to the client.
func (s *Session) Modified() bool { return s.modified }

// MarkModified forces the session to be re-issued.
func (s *Session) MarkModified() { s.modified = true }

// SetCart replaces the cart.
func (s *Session) SetCart(cart models.Cart) {
	s.Cart = cart
	s.modified = true
}

// Login attaches u to the session. The cart is kept.
func (s *Session) Login(u models.User) {
	s.UserID = u.ID
	s.UserName = u.Name
	s.IsAdmin = u.IsAdmin
	s.modified = true
}

// Clear forgets the user and empties the cart.
func (s *Session) Clear() {
	*s = Session{modified: true}
}

// MaxFlashes bounds the flash queue so an unread backlog cannot push the
// session cookie past the browser's size limit.
const MaxFlashes = 5

// AddFlash queues a message for the next page, dropping the oldest one once
// MaxFlashes are pending.
func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
	if n := len(s.Flashes); n > MaxFlashes {
		s.Flashes = append([]Flash(nil), s.Flashes[n-MaxFlashes:]...)
	}
	s.modified = true
}

// PopFlashes returns and removes the queued messages.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	if len(flashes) > 0 {
		s.Flashes = nil
		s.modified = true
	}
	if flashes == nil {
		flashes = []Flash{}
	}
	return flashes
}

type sessionClaims struct {
	Session Session `json:"s"`
	jwt.RegisteredClaims
}

// SessionCodec signs and verifies session tokens.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionCodec(secret []byte, ttl time.Duration) *SessionCodec {
	return &SessionCodec{secret: secret, ttl: ttl, now: time.Now}
}

// TTL is how long an issued token stays valid.
func (c *SessionCodec) TTL() time.Duration { return c.ttl }

// Encode creates a signed token for s.
func (c *SessionCodec) Encode(s *Session) (string, error) {
	now := c.now()
	claims := sessionClaims{
		Session: *s,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies tokenString and returns the session it carries.
func (c *SessionCodec) Decode(tokenString string) (*Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}

	s := claims.Session
	return &s, nil
}
