package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/anjiri1684/certificate_validation/configs"
	"github.com/anjiri1684/certificate_validation/database"
	"github.com/anjiri1684/certificate_validation/handlers"
	"github.com/anjiri1684/certificate_validation/jobs"
	"github.com/anjiri1684/certificate_validation/logger"
	"github.com/anjiri1684/certificate_validation/middleware"
	"github.com/anjiri1684/certificate_validation/notifications"
	"github.com/anjiri1684/certificate_validation/repository"
	"github.com/anjiri1684/certificate_validation/routes"
	"github.com/anjiri1684/certificate_validation/services"
	"github.com/anjiri1684/certificate_validation/websocket"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("🔥 Invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Development(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("🔥 Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	logEnvSource(cfg, zlog)

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("🔥 Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := repository.NewCertificateRepository(db, zlog)
	signer, err := services.NewSigner(services.Algorithm(cfg.SignatureAlgorithm))
	if err != nil {
		return err
	}

	hub := websocket.NewHub(zlog)
	go hub.Run(ctx)

	documents, err := buildDocuments(cfg, store, zlog)
	if err != nil {
		return err
	}

	var notifier services.Notifier
	if cfg.EmailEnabled() {
		notifier = notifications.NewBrevoService(cfg.BrevoAPIKey, cfg.EmailSender, cfg.EmailSenderName, zlog)
	}

	certificates := services.NewCertificateService(store, signer, services.ValidationMode(cfg.SignatureMode), hub, zlog)
	registry := services.NewRegistryService(store, zlog)
	issuance := services.NewIssuanceService(store, signer, documents, notifier, hub, zlog, database.Now)

	c := cron.New()
	if err := jobs.NewIntegrityAudit(store, signer, hub, zlog).Schedule(c, cfg.AuditSchedule); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	app := fiber.New(fiber.Config{
		AppName:       "Certificate Validation",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		JSONEncoder:   sonic.Marshal,
		JSONDecoder:   sonic.Unmarshal,
		ErrorHandler:  handlers.ErrorHandler(zlog),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		MaxAge:       86400,
	}))
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(zlog))
	app.Use(recover.New())

	routes.Setup(app, routes.Deps{
		Certificates:    handlers.NewCertificateHandler(certificates, documents),
		Issuance:        handlers.NewIssuanceHandler(registry, issuance),
		Hub:             hub,
		IssuanceEnabled: cfg.EnableIssuance,
	})

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("✅ Server is running",
			zap.String("port", cfg.Port),
			zap.String("signature_mode", string(certificates.Mode())),
			zap.String("signature_algorithm", string(signer.Algorithm())),
			zap.Bool("issuance", cfg.EnableIssuance),
		)
		errCh <- app.Listen(fmt.Sprintf(":%s", cfg.Port))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Warn("server shutdown", zap.Error(err))
	}
	issuance.Wait()
	return nil
}

func logEnvSource(cfg *config.Config, zlog *zap.Logger) {
	if cfg.EnvFileLoaded {
		zlog.Info("✅ Loaded .env file")
		return
	}
	zlog.Info("no .env file found, using process environment")
}

func buildDocuments(cfg *config.Config, store services.CertificateStore, zlog *zap.Logger) (*services.DocumentService, error) {
	if !cfg.RenderDocuments {
		return nil, nil
	}
	renderer, err := services.NewChromeRenderer()
	if err != nil {
		return nil, err
	}

	var archiver services.Archiver
	if cfg.CloudinaryURL != "" {
		a, err := services.NewCloudinaryArchiver(cfg.CloudinaryURL)
		if err != nil {
			return nil, err
		}
		archiver = a
	}
	return services.NewDocumentService(store, renderer, archiver, zlog), nil
}
