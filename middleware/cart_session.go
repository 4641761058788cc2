package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartCookieName     = "bayka_cart"
	CtxKeyCartSession  = "cart_session"
	cartCookieLifetime = 30 * 24 * time.Hour
)

var ErrInvalidCartCookie = errors.New("invalid cart cookie")

// CartCookie signs visitor session ids as "id.base64(hmac(id))".
type CartCookie struct {
	secret []byte
	secure bool
}

func NewCartCookie(secret []byte, secure bool) *CartCookie {
	return &CartCookie{secret: secret, secure: secure}
}

func (cc *CartCookie) Encode(sessionID string) string {
	return sessionID + "." + cc.sign(sessionID)
}

func (cc *CartCookie) Decode(v string) (string, error) {
	id, sig, ok := strings.Cut(v, ".")
	if !ok || id == "" || strings.Contains(sig, ".") {
		return "", ErrInvalidCartCookie
	}
	if !hmac.Equal([]byte(cc.sign(id)), []byte(sig)) {
		return "", ErrInvalidCartCookie
	}
	return id, nil
}

func (cc *CartCookie) sign(payload string) string {
	mac := hmac.New(sha256.New, cc.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CartSession resolves the visitor's session id from the signed cookie,
// issuing a fresh one when it is missing or tampered with.
func CartSession(cc *CartCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID string
		if v, err := c.Cookie(CartCookieName); err == nil && v != "" {
			sessionID, _ = cc.Decode(v)
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CartCookieName, cc.Encode(sessionID), int(cartCookieLifetime.Seconds()), "/", "", cc.secure, true)
		c.Set(CtxKeyCartSession, sessionID)
		c.Next()
	}
}

func GetCartSession(c *gin.Context) string {
	return c.GetString(CtxKeyCartSession)
}
