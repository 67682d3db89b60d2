package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cropdoc/pkg/logging"
)

// Auth resolves the authenticated user id. Session issuance is an external
// collaborator: when enabled=true the uid must arrive from the auth frontend
// (X-User-Id header or USER_ID cookie) or the request is rejected with 401.
// When enabled=false a dev cookie/query fallback is used so local flows work
// without a login screen.
func Auth(enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := c.Request().Header.Get("X-User-Id")
			if uid == "" {
				if ck, err := c.Cookie("USER_ID"); err == nil {
					uid = ck.Value
				}
			}
			if uid == "" && !enabled {
				if q := c.QueryParam("uid"); q != "" {
					c.SetCookie(&http.Cookie{Name: "USER_ID", Value: q, Path: "/"})
					uid = q
				} else {
					uid = "U_DEV_DEFAULT"
					c.SetCookie(&http.Cookie{Name: "USER_ID", Value: uid, Path: "/"})
				}
			}
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "UNAUTHENTICATED", "message": "missing user identity"})
			}
			c.Set("uid", uid)

			// per-request logger: correlation id + uid on every line
			ctx := logging.WithAttrs(c.Request().Context(),
				slog.String("request_id", uuid.NewString()),
				slog.String("uid", uid),
			)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
