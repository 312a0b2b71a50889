package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resumecraft/internal/accounts"
	"resumecraft/internal/resumes"
	"resumecraft/internal/services/health"
	"resumecraft/internal/shared/config"
	"resumecraft/internal/shared/server"
	"resumecraft/internal/shared/server/middleware"
	"resumecraft/internal/shared/storage/db"
	"resumecraft/internal/shared/telemetry"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	ResumesRepo     resumes.Repo
	AccountsRepo    accounts.Repo
	ResumesService  *resumes.Service
	AccountsService *accounts.Service
	ResumesHandler  *resumes.Handler
	AccountsHandler *accounts.Handler
}

// Build prepares dependencies and the router. Without DATABASE_URL, dev-like
// environments fall back to in-memory repositories.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mailer, err := buildMailer(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	if sqlDB != nil {
		app.ResumesRepo = &resumes.PGRepo{DB: sqlDB}
		app.AccountsRepo = &accounts.PGRepo{DB: sqlDB}
	} else {
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.AccountsRepo = accounts.NewMemoryRepo()
	}

	app.ResumesService = resumes.NewService(app.ResumesRepo)
	app.AccountsService = accounts.NewService(app.AccountsRepo, mailer, accounts.NewHasher(cfg.BcryptCost), cfg.OTPTTL)
	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.AccountsHandler = accounts.NewHandler(app.AccountsService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Accounts: app.AccountsHandler,
		Resumes:  app.ResumesHandler,
		Health:   health.NewService(sqlDB),
		Limiter:  middleware.NewRateLimiter(nil),
	})
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildMailer(cfg config.Config) (accounts.Mailer, error) {
	if strings.TrimSpace(cfg.SMTPHost) != "" {
		return accounts.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom), nil
	}
	if cfg.IsDevLike() {
		return accounts.LogMailer{}, nil
	}
	return nil, fmt.Errorf("SMTP_HOST is required outside dev")
}
