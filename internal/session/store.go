// Package session scopes a cart to one browser through a signed and
// encrypted cookie. The server keeps no session state; the cookie payload is
// the state.
package session

import (
	"crypto/sha256"
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/sonuudigital/storefront/internal/cart"
)

const DefaultCookieName = "storefront-session"

// Data is the session payload. Only the cart lives here; a nil cart means
// the visitor never started one.
type Data struct {
	Cart *cart.Cart `json:"cart,omitempty"`
}

// Store encodes session data into a tamper-proof cookie. The hash and block
// keys are both derived from one secret so operators configure a single
// value.
type Store struct {
	codec      *securecookie.SecureCookie
	cookieName string
	secure     bool
}

func NewStore(secret, cookieName string, secure bool) (*Store, error) {
	if secret == "" {
		return nil, errors.New("session secret must not be empty")
	}
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	hashKey := sha256.Sum256([]byte(secret + ":hash"))
	blockKey := sha256.Sum256([]byte(secret + ":block"))

	codec := securecookie.New(hashKey[:], blockKey[:])
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &Store{
		codec:      codec,
		cookieName: cookieName,
		secure:     secure,
	}, nil
}

// Load resolves the request's session. An absent, expired or tampered cookie
// yields an empty session rather than an error; the visitor simply starts
// over.
func (s *Store) Load(r *http.Request) Data {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return Data{}
	}

	var data Data
	if err := s.codec.Decode(s.cookieName, cookie.Value, &data); err != nil {
		return Data{}
	}
	return data
}

// Save writes the session back onto the response. Callers must invoke it
// after every cart mutation; the cookie is the only persistence the cart has.
func (s *Store) Save(w http.ResponseWriter, data Data) error {
	encoded, err := s.codec.Encode(s.cookieName, data)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
