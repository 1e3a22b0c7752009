package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"changeset-manager/core/archive"
	"changeset-manager/core/config"
	"changeset-manager/core/database"
	"changeset-manager/core/loader"
	"changeset-manager/core/logger"
	"changeset-manager/core/middleware/auth"
	"changeset-manager/core/middleware/rayid"
	"changeset-manager/core/storage"

	"changeset-manager/feature/collection"
	"changeset-manager/feature/integrity"
	"changeset-manager/feature/planner"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "changeset-manager/docs/swagger"
)

// @title Changeset Manager API
// @version 1.0
// @description API for planning and applying batched edits to sectioned collections.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the changeset manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		// Without it the planner still works; collections are disabled.
		var db *gorm.DB
		var collections collection.Store
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			repo := collection.NewRepository(conn)
			if err := repo.Migrate(); err != nil {
				logg.Fatal("Failed to migrate collections table", zap.Error(err))
			}
			db = conn
			collections = repo
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		var plans collection.PlanArchive
		if cfg.Archive.Enabled {
			arch := archive.NewStore(store, cfg.Storage.Bucket, cfg.Archive.Prefix)
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			if err := arch.EnsureBucket(ctx); err != nil {
				logg.Warn("Archive bucket unavailable", zap.String("bucket", arch.Bucket()), zap.Error(err))
			}
			cancel()
			plans = arch
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(planner.NewFeature(logg))
		mgr.Register(collection.NewFeature(collection.NewService(collections, plans, logg)))
		mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, cfg.Archive.Prefix, logg, db))

		// Middleware Registration
		// RayID first so every log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
