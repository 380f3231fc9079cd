// Package app assembles repositories, services and handlers into the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "invoicedesk/api/swagger" // swagger docs
	"invoicedesk/internal/auth"
	"invoicedesk/internal/config"
	"invoicedesk/internal/database"
	"invoicedesk/internal/handler"
	"invoicedesk/internal/middleware"
	"invoicedesk/internal/model"
	"invoicedesk/internal/service"
	"invoicedesk/internal/storage"
	"invoicedesk/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App is a configured server ready to Run.
type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	db     *gorm.DB
	hub    *websocket.Hub
	router *gin.Engine
}

// New opens the configured store and builds the server. Postgres schemas are
// migrated when migrate is set.
func New(cfg *config.Config, log zerolog.Logger, migrate bool) (*App, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn().Msg("Using in-memory store; data is lost on restart")
		return NewWithStores(cfg, MemoryStores(), log)
	}

	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("Connected to PostgreSQL")

	if migrate {
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, err
		}
	}

	a, err := NewWithStores(cfg, PostgresStores(db), log)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}
	a.db = db
	return a, nil
}

// NewWithStores builds the server on top of already-opened repositories.
func NewWithStores(cfg *config.Config, stores *Stores, log zerolog.Logger) (*App, error) {
	issuer := auth.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)
	authn := middleware.NewAuthenticator(issuer, cfg.SecureCookies())
	hub := websocket.NewHub(issuer, cfg.CORSOrigins, log.With().Str("component", "websocket").Logger())

	// Upload URLs get their own signing key, separate from session tokens.
	blobs, err := storage.NewLocalStore(cfg.StorageDir, cfg.PublicBaseURL, []byte(cfg.JWTSecret+":uploads"), cfg.UploadURLTTL)
	if err != nil {
		return nil, err
	}

	// Services
	notify := service.WithNotifier(hub)
	invoices := service.NewDocumentStore[model.Invoice](service.InvoiceKind(stores.Events), stores.Invoices, stores.Tx, notify)
	proformas := service.NewDocumentStore[model.ProformaInvoice](service.ProformaInvoiceKind(), stores.ProformaInvoices, stores.Tx, notify)
	localBills := service.NewDocumentStore[model.LocalBill](service.LocalBillKind(), stores.LocalBills, stores.Tx, notify)
	localChalans := service.NewDocumentStore[model.LocalChalan](service.LocalChalanKind(), stores.LocalChalans, stores.Tx, notify)
	localProformas := service.NewDocumentStore[model.LocalProforma](service.LocalProformaKind(), stores.LocalProformas, stores.Tx, notify)
	userService := service.NewUserService(stores.Users, issuer)
	fileService := service.NewFileService(stores.Files, blobs)
	analyticsService := service.NewAnalyticsService(stores.Invoices, stores.Events)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(log.With().Str("component", "http").Logger()))
	router.Use(middleware.RecoverPanic(log))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/ws", hub.ServeWs)

	api := router.Group("", authn.OptionalAuth())
	handler.NewUserHandler(userService, authn).RegisterRoutes(api)
	handler.NewDocumentHandler[model.Invoice, service.InvoicePatch](invoices).RegisterRoutes(api)
	handler.NewDocumentHandler[model.ProformaInvoice, service.ProformaInvoicePatch](proformas).RegisterRoutes(api)
	handler.NewDocumentHandler[model.LocalBill, service.LocalBillPatch](localBills).RegisterRoutes(api)
	handler.NewDocumentHandler[model.LocalChalan, service.LocalChalanPatch](localChalans).RegisterRoutes(api)
	handler.NewDocumentHandler[model.LocalProforma, service.LocalProformaPatch](localProformas).RegisterRoutes(api)
	handler.NewFileHandler(fileService).RegisterRoutes(api)
	handler.NewStorageHandler(blobs).RegisterRoutes(api)
	handler.NewStatisticsHandler(analyticsService).RegisterRoutes(api)
	handler.NewAuditHandler(analyticsService).RegisterRoutes(api)

	return &App{cfg: cfg, log: log, hub: hub, router: router}, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowCredentials = true
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Request-ID"}
	c.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	c.ExposeHeaders = []string{"X-Request-ID"}
	for _, o := range origins {
		if o == "*" {
			c.AllowOriginFunc = func(string) bool { return true }
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go a.hub.Run(hubCtx)

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("port", a.cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.log.Info().Msg("Server exited")
	return nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return database.Close(a.db)
}
