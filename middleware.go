package qalampress

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler
	e.Validator = &requestValidator{validate: newValidate()}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.Log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// The API is consumed by a static frontend that may be hosted
	// elsewhere, so reads and credentialed writes are open cross-origin.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Admin-Key"},
	}))

	e.Use(cacheControlMiddleware)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/uploads/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/sitemap.xml" || path == "/feed.xml":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case strings.HasPrefix(path, "/admin"), strings.HasPrefix(path, "/api/"):
			c.Response().Header().Set("Cache-Control", "no-store")
		}
		return next(c)
	}
}

// httpErrorHandler maps the error taxonomy onto HTTP responses: JSON
// with a message field on API routes, plain HTML pages everywhere
// else, since those consumers are browsers and crawlers. Internal
// detail is logged server-side only.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var ve *ValidationError
	var ue *UploadError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ve):
		code = http.StatusBadRequest
		message = ve.Error()
	case errors.Is(err, ErrNotFound):
		code = http.StatusNotFound
		message = "post not found"
	case errors.Is(err, ErrUnauthorized):
		code = http.StatusForbidden
		message = "invalid admin credential"
	case errors.As(err, &ue):
		code = http.StatusBadGateway
		message = "media upload failed"
	case errors.As(err, &he):
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if code >= 500 {
		a.Log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("request failed")
	}

	if isAPIRequest(c) {
		_ = c.JSON(code, map[string]string{"message": message})
		return
	}

	switch {
	case code == http.StatusNotFound:
		_ = renderNotFound(c)
	case code >= 500:
		_ = renderServerError(c)
	default:
		_ = renderErrorPage(c, code, errorPage{
			Title:   http.StatusText(code),
			Heading: http.StatusText(code),
			Message: message,
		})
	}
}

func isAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}
