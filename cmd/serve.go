package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jjenkins/bulletin/internal/handlers"
	"github.com/jjenkins/bulletin/internal/store"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a web server for browsing imported courses",
	Long:  `Start a read-only web server over the "course" collection filled by import.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log := setup()
		defer func() { _ = log.Sync() }()

		// The flag wins over PORT when given
		if port == "" {
			port = cfg.Port
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		coll, err := store.Open(ctx, cfg.MongoURI, store.CourseCollection)
		if err != nil {
			log.Fatal("failed to connect to course store", zap.Error(err))
		}
		defer func() {
			if err := coll.Close(context.Background()); err != nil {
				log.Warn("failed to close course store", zap.Error(err))
			}
		}()

		app := fiber.New(fiber.Config{
			AppName:               "NYU Bulletin Courses",
			DisableStartupMessage: cfg.Env == "production",
		})

		app.Use(fiberlogger.New(fiberlogger.Config{Output: os.Stderr}))

		// Routes
		app.Get("/", handlers.HomeHandler(coll, log))
		app.Get("/courses", handlers.CoursesHandler(coll, log))
		app.Get("/catalog", handlers.CatalogHandler())
		app.Get("/health", handlers.HealthHandler(coll, log))

		go func() {
			<-ctx.Done()
			log.Info("received interrupt signal, shutting down")
			if err := app.Shutdown(); err != nil {
				log.Warn("server shutdown failed", zap.Error(err))
			}
		}()

		log.Info("starting server", zap.String("port", port))
		if err := app.Listen(":" + port); err != nil {
			log.Error("failed to start server", zap.Error(err))
			_ = coll.Close(context.Background())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to run the server on (default $PORT or 8080)")
}
