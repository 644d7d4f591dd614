package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"travel-booking-platform/internal/config"
	"travel-booking-platform/internal/models"
)

// Name is the cookie name of the visitor session
const Name = "session"

const (
	cartKey     = "cart"
	orderKey    = "order"
	currencyKey = "currency"
	flashKey    = "flash"
	csrfKey     = "csrf_token"
)

// maxStoredCartBytes bounds the encoded cart so the signed cookie stays under
// securecookie's 4096 byte limit together with the token, currency and flash.
const maxStoredCartBytes = 1536

// storedCart is the cookie form of a cart. Product details are looked up again
// from the catalog on every request.
type storedCart struct {
	Number  string          `json:"n,omitempty"`
	Billing *models.Billing `json:"b,omitempty"`
	Items   []storedItem    `json:"i"`
}

type storedItem struct {
	SKU    string `json:"s"`
	Guests int    `json:"g"`
}

// NewStore creates the signed cookie store backing visitor sessions
func NewStore(cfg config.SessionConfig, production bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure || production,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Get returns the visitor's session. A cookie that fails to decode yields a fresh session
// together with the decode error, as gorilla/sessions does.
func Get(store sessions.Store, r *http.Request) (*sessions.Session, error) {
	return store.Get(r, Name)
}

// GetCart returns the cart stored in the session, or nil when there is none.
// Items carry only their SKU and guest count.
func GetCart(s *sessions.Session) (*models.Cart, error) {
	return getStored(s, cartKey)
}

// SetCart stores the cart in the session; nil removes it. A cart too large for
// the cookie is rejected with models.ErrCartFull and the stored cart is kept.
func SetCart(s *sessions.Session, cart *models.Cart) error {
	return setStored(s, cartKey, cart)
}

// GetOrder returns the last checked-out order, or nil when there is none
func GetOrder(s *sessions.Session) (*models.Cart, error) {
	return getStored(s, orderKey)
}

// SetOrder stores the checked-out order for the thank-you pages; nil removes it
func SetOrder(s *sessions.Session, order *models.Cart) error {
	return setStored(s, orderKey, order)
}

func getStored(s *sessions.Session, key string) (*models.Cart, error) {
	raw, ok := s.Values[key].(string)
	if !ok || raw == "" {
		return nil, nil
	}

	var stored storedCart
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}

	cart := &models.Cart{Number: stored.Number, Billing: stored.Billing}
	for _, item := range stored.Items {
		cart.Items = append(cart.Items, models.CartItem{SKU: item.SKU, Guests: item.Guests})
	}
	return cart, nil
}

func setStored(s *sessions.Session, key string, cart *models.Cart) error {
	if cart == nil {
		delete(s.Values, key)
		return nil
	}

	stored := storedCart{Number: cart.Number, Billing: cart.Billing, Items: make([]storedItem, 0, len(cart.Items))}
	for _, item := range cart.Items {
		stored.Items = append(stored.Items, storedItem{SKU: item.SKU, Guests: item.Guests})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if len(data) > maxStoredCartBytes {
		return models.ErrCartFull
	}
	s.Values[key] = string(data)
	return nil
}

// GetCurrency returns the selected currency, USD when unset or unsupported
func GetCurrency(s *sessions.Session) models.Currency {
	if code, ok := s.Values[currencyKey].(string); ok {
		if c, err := models.ParseCurrency(code); err == nil {
			return c
		}
	}
	return models.DefaultCurrency
}

func SetCurrency(s *sessions.Session, c models.Currency) {
	s.Values[currencyKey] = string(c)
}

// SetFlash stores a message for the next rendered page
func SetFlash(s *sessions.Session, flash *models.Flash) {
	if flash == nil {
		delete(s.Values, flashKey)
		return
	}
	data, err := json.Marshal(flash)
	if err != nil {
		return
	}
	s.Values[flashKey] = string(data)
}

// ConsumeFlash returns the stored flash and removes it. A second call returns nil.
func ConsumeFlash(s *sessions.Session) *models.Flash {
	raw, ok := s.Values[flashKey].(string)
	if !ok {
		return nil
	}
	delete(s.Values, flashKey)

	var flash models.Flash
	if err := json.Unmarshal([]byte(raw), &flash); err != nil {
		return nil
	}
	return &flash
}

// CSRFToken returns the session's token, generating one when absent.
// The second return value reports whether a new token was generated.
func CSRFToken(s *sessions.Session) (string, bool) {
	if token, ok := s.Values[csrfKey].(string); ok && token != "" {
		return token, false
	}
	token := GenerateToken()
	s.Values[csrfKey] = token
	return token, true
}

// GenerateToken returns 32 random bytes hex encoded
func GenerateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return hex.EncodeToString(b)
}
