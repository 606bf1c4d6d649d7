package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// CookieSettings holds the deployment-dependent cookie flags. HttpOnly and
// SameSite=Lax are fixed; Secure and Domain come from configuration.
type CookieSettings struct {
	Secure bool
	Domain string
}

// SetTokenCookie writes one token cookie scoped to the whole application.
func SetTokenCookie(c *gin.Context, name, value string, maxAge int, settings CookieSettings) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   settings.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   settings.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookies expires both auth cookies.
func ClearTokenCookies(c *gin.Context, settings CookieSettings) {
	SetTokenCookie(c, AccessTokenCookie, "", -1, settings)
	SetTokenCookie(c, RefreshTokenCookie, "", -1, settings)
}
