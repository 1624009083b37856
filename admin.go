package qalampress

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CheckSecret is the whole authorization decision: does the supplied
// credential match the configured admin secret. Constant-time so the
// comparison leaks nothing about the secret. An empty configured
// secret fails closed.
func CheckSecret(secret, supplied string) bool {
	if secret == "" || supplied == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(supplied)) == 1
}

// suppliedCredential extracts the admin credential from a request.
// Accepted forms: X-Admin-Key header, Authorization bearer token, or a
// ?key= query parameter (the form the admin panel links use).
func suppliedCredential(c echo.Context) string {
	if v := c.Request().Header.Get("X-Admin-Key"); v != "" {
		return v
	}
	if v := c.Request().Header.Get(echo.HeaderAuthorization); v != "" {
		if strings.HasPrefix(strings.ToLower(v), "bearer ") {
			return strings.TrimSpace(v[7:])
		}
		return v
	}
	return c.QueryParam("key")
}

// adminGate guards mutating routes and the admin panel. Any mismatch
// or absent credential yields 403 before a handler runs; repeated
// failures from one IP are throttled.
func (a *App) adminGate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()
		if !a.limiter.Check(ip) {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many failed attempts, try again later")
		}
		if !CheckSecret(a.Config.AdminSecret, suppliedCredential(c)) {
			a.limiter.Record(ip)
			a.Log.Warn().Str("ip", ip).Str("path", c.Path()).Msg("admin gate rejected request")
			return echo.NewHTTPError(http.StatusForbidden, "invalid admin credential")
		}
		return next(c)
	}
}

// handleAdminPanel serves the admin UI page once the gate has passed.
func (a *App) handleAdminPanel(c echo.Context) error {
	return a.serveFrontendFile(c, "admin.html")
}
