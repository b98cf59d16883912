package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dtroode/identity-server/internal/api/rest/handler"
	"github.com/dtroode/identity-server/internal/api/rest/reqcontext"
	"github.com/dtroode/identity-server/internal/api/rest/router"
	"github.com/dtroode/identity-server/internal/config"
	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
	"github.com/dtroode/identity-server/internal/notifier"
	"github.com/dtroode/identity-server/internal/oauth"
	"github.com/dtroode/identity-server/internal/password"
	"github.com/dtroode/identity-server/internal/repository/postgres"
	"github.com/dtroode/identity-server/internal/server"
	"github.com/dtroode/identity-server/internal/service"
	"github.com/dtroode/identity-server/internal/token"
	"github.com/dtroode/identity-server/internal/totp"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	natsConn, err := notifier.Connect(cfg.NATS.URL)
	if err != nil {
		logger.Fatal("failed to connect to nats", "error", err)
	}
	defer natsConn.Close()

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.ResetTTL)

	authService := service.NewAuth(service.AuthDeps{
		Persons:           postgres.NewPersonRepository(db),
		Emails:            postgres.NewEmailRepository(db),
		LoginMethods:      postgres.NewLoginMethodRepository(db),
		BackupCodes:       postgres.NewBackupCodeRepository(db),
		PendingSetups:     postgres.NewTwoFactorSetupRepository(db),
		Organizations:     postgres.NewOrganizationRepository(db),
		OrganizationRoles: postgres.NewPersonOrganizationRoleRepository(db),
		Tokens:            tokenManager,
		TOTP:              totp.NewEngine(cfg.TOTP.Issuer, cfg.TOTP.Window),
		Hasher:            password.NewHasher(),
		Notifier:          notifier.NewNATS(natsConn, cfg.NATS.SubjectPrefix),
		OAuth: oauth.NewClient(
			cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret,
			cfg.OAuth.MicrosoftClientID, cfg.OAuth.MicrosoftClientSecret,
		),
		Logger: logger,
		Config: service.AuthConfig{
			ReplayProtection:        cfg.TOTP.ReplayProtection,
			BackupCodeCount:         cfg.TOTP.BackupCodeCount,
			ResetURLBase:            cfg.App.ResetURLBase,
			DefaultOrganizationName: cfg.App.DefaultOrganizationName,
		},
	})
	authService.SetPasswordValidator(password.ValidatePolicy)

	ctxMgr := reqcontext.NewManager()
	authHandler := handler.NewAuth(authService, ctxMgr, logger)
	mux := router.New(authHandler, tokenManager, ctxMgr, logger)

	httpServer := server.NewHTTPServer(mux, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
