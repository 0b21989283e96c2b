package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"rental-app/config"
	"rental-app/database"
	authapi "rental-app/internal/api/auth"
	routes "rental-app/internal/app/http"
	"rental-app/internal/app/http/middleware"
	"rental-app/internal/domain/media"
	"rental-app/internal/infra/storage"
	"rental-app/internal/infra/tokens"
	"rental-app/internal/logger"
	"rental-app/internal/metrics"
	"rental-app/internal/scheduler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	addServeFlags(cmd)
	return cmd
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("auto-migrate", true, "migrate the schema before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := logger.Get()

	if auto, _ := cmd.Flags().GetBool("auto-migrate"); auto {
		if err := database.Migrate(database.DB); err != nil {
			return err
		}
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		logger.Middleware(),
		metrics.NewHTTPMetrics(config.ServiceName).Middleware(),
		cors.New(cors.Config{
			AllowOrigins:     strings.Split(config.CORS_ORIGIN, ","),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
			AllowCredentials: config.CORS_ORIGIN != "*",
			MaxAge:           12 * time.Hour,
		}),
	)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.Static("/uploads", config.UPLOAD_DIR)

	storageBase := config.STORAGE_BASE_URL
	if storageBase == "" {
		storageBase = strings.TrimRight(config.PUBLIC_BASE_URL, "/") + "/uploads"
	}
	issuer := tokens.FromConfig()

	routes.RegisterRoutes(r, routes.Deps{
		Issuer:         issuer,
		Files:          storage.NewLocal(config.UPLOAD_DIR),
		URLs:           media.URLBuilder{PublicBaseURL: config.PUBLIC_BASE_URL, StorageBaseURL: storageBase},
		MaxUploadBytes: config.MaxUploadBytes(),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if config.TOKEN_PURGE_SCHEDULE != "" {
		s := scheduler.New(authapi.NewService(database.DB, issuer), config.REVOKED_TOKEN_RETENTION, log)
		if err := s.Start(config.TOKEN_PURGE_SCHEDULE); err != nil {
			return err
		}
		defer s.Stop()
	}

	srv := &http.Server{Addr: ":" + config.PORT, Handler: r}
	errc := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
