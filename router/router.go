package router

import (
	"github.com/labstack/echo/v4"

	"cropdoc/pkg/middleware"
)

func New(
	e *echo.Echo,
	enableAuth bool,
	diagCtrl interface {
		Create(echo.Context) error
		History(echo.Context) error
		Delete(echo.Context) error
		Stats(echo.Context) error
	},
	farmCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
	},
	authCtrl interface {
		DevLogin(echo.Context) error
		WhoAmI(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	e.GET("/devlogin", authCtrl.DevLogin)

	api := e.Group("", middleware.Auth(enableAuth))
	api.GET("/whoami", authCtrl.WhoAmI)

	api.POST("/farms", farmCtrl.Create)
	api.GET("/farms", farmCtrl.List)
	api.GET("/farms/:id", farmCtrl.Get)

	api.POST("/diagnostics", diagCtrl.Create)
	api.GET("/diagnostics/history", diagCtrl.History)
	api.GET("/diagnostics/stats", diagCtrl.Stats)
	api.DELETE("/diagnostics/:id", diagCtrl.Delete)

	return e
}
