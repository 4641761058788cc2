package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bayka/models"
	"bayka/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCartCookie_EncodeDecode(t *testing.T) {
	cc := NewCartCookie([]byte("secret"), false)
	v := cc.Encode("abc-123")

	id, err := cc.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)

	_, err = cc.Decode("abc-123.forged")
	assert.ErrorIs(t, err, ErrInvalidCartCookie)
	_, err = cc.Decode("abc-123")
	assert.ErrorIs(t, err, ErrInvalidCartCookie)
	_, err = NewCartCookie([]byte("other"), false).Decode(v)
	assert.ErrorIs(t, err, ErrInvalidCartCookie)
}

func sessionRouter(cc *CartCookie) *gin.Engine {
	r := gin.New()
	r.Use(CartSession(cc))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetCartSession(c)) })
	return r
}

func TestCartSession_IssuesAndReusesCookie(t *testing.T) {
	cc := NewCartCookie([]byte("secret"), false)
	r := sessionRouter(cc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	first := w.Body.String()
	require.NotEmpty(t, first)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CartCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, first, w.Body.String())
}

func TestCartSession_ReplacesTamperedCookie(t *testing.T) {
	r := sessionRouter(NewCartCookie([]byte("secret"), false))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CartCookieName, Value: "victim-session.bad"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "victim-session", w.Body.String())
	assert.NotEmpty(t, w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "rid-1", w.Body.String())
	assert.Equal(t, "rid-1", w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func adminRouter(secret []byte) *gin.Engine {
	r := gin.New()
	r.GET("/admin", AuthMiddleware(secret), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthAndAdminMiddleware(t *testing.T) {
	secret := []byte("jwt-secret")
	r := adminRouter(secret)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"bad scheme", "Token abc", http.StatusUnauthorized},
		{"bad token", "Bearer abc", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}

	customer, err := utils.GenerateToken(secret, time.Hour, 2, "c@b.c", "customer")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+customer)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin, err := utils.GenerateToken(secret, time.Hour, 1, "a@b.c", "admin")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireRoleAndGetAuthUser(t *testing.T) {
	secret := []byte("jwt-secret")
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), RequireRole(models.RoleAdmin, models.RoleCustomer), func(c *gin.Context) {
		user, ok := GetAuthUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, user)
	})

	token, err := utils.GenerateToken(secret, time.Hour, 7, "c@b.c", models.RoleCustomer)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"email":"c@b.c","role":"customer"}`, w.Body.String())

	token, err = utils.GenerateToken(secret, time.Hour, 8, "x@b.c", "barista")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAllowedOrigins(t *testing.T) {
	got := AllowedOrigins("https://bayka.coffee/, https://admin.bayka.coffee", "", "http://localhost:5173")
	assert.Equal(t, []string{"http://localhost:5173", "https://bayka.coffee", "https://admin.bayka.coffee"}, got)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://bayka.coffee"))
	r.POST("/cart/items", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/cart/items", nil)
	req.Header.Set("Origin", "https://bayka.coffee")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://bayka.coffee", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
