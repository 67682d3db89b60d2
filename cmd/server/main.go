package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"cropdoc/config"
	"cropdoc/database"
	"cropdoc/router"

	"cropdoc/pkg/ai"
	"cropdoc/pkg/blob"
	"cropdoc/pkg/logging"

	authCtrlImp "cropdoc/pkg/auth/controllerImp"
	diagCtrlImp "cropdoc/pkg/diagnostic/controllerImp"
	diagRepoImp "cropdoc/pkg/diagnostic/repositoryImp"
	diagSvcImp "cropdoc/pkg/diagnostic/serviceImp"
	farmCtrlImp "cropdoc/pkg/farm/controllerImp"
	farmRepoImp "cropdoc/pkg/farm/repositoryImp"
	healthCtrlImp "cropdoc/pkg/health/controllerImp"
)

func main() {
	ctx := context.Background()

	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Logger — handed down through request contexts, no globals
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx = logging.WithLogger(ctx, logger)

	// 4) Blob store (fs by default, s3 in production)
	store, err := blob.NewFromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// 5) Vision model client
	var llm ai.Client
	switch {
	case cfg.GenAIAPIKey != "":
		llm, err = ai.NewGenAI(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
		if err != nil {
			log.Fatalf("genai client: %v", err)
		}
	case cfg.MockAI:
		llm = ai.NewMock()
	default:
		llm = ai.NewUnconfigured()
	}

	// 6) Repos / services / controllers
	farmRepo := farmRepoImp.New(db)
	diagRepo := diagRepoImp.New(db)
	diagSvc := diagSvcImp.New(farmRepo, diagRepo, llm, store)

	diagCtrl := diagCtrlImp.New(diagSvc)
	farmCtrl := farmCtrlImp.New(farmRepo)
	authCtrl := authCtrlImp.NewAuthController()
	healthCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 7) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	e.Use(rootLogger(logger))
	if fs, ok := store.(*blob.FileStore); ok {
		e.Static("/uploads", fs.Root())
	}

	router.New(e, cfg.EnableAuth, diagCtrl, farmCtrl, authCtrl, healthCtrl)

	log.Fatal(e.Start(":" + cfg.Port))
}

// rootLogger seeds every request context with the process logger so handlers
// and services can log through pkg/logging.
func rootLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.WithLogger(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
