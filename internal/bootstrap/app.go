package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/ai"
	googleauth "recruit-backend/internal/auth"
	"recruit-backend/internal/candidates"
	"recruit-backend/internal/jobs"
	"recruit-backend/internal/llm"
	openai "recruit-backend/internal/llm/openai"
	"recruit-backend/internal/match"
	"recruit-backend/internal/resume"
	"recruit-backend/internal/shared/config"
	"recruit-backend/internal/shared/server"
	"recruit-backend/internal/shared/storage/db"
	"recruit-backend/internal/shared/storage/object"
	localstore "recruit-backend/internal/shared/storage/object/local"
	s3store "recruit-backend/internal/shared/storage/object/s3"
	"recruit-backend/internal/users"
)

// App holds shared dependencies built once at startup.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	UsersRepo      users.UsersRepo
	CandidatesRepo candidates.CandidatesRepo
	JobsRepo       jobs.JobsRepo
	LinksRepo      match.LinksRepo

	UsersService      *users.Service
	CandidatesService *candidates.Service
	JobsService       *jobs.Service
	MatchService      *match.Service
	AIService         *ai.Service
	MatchEngine       *match.Engine

	UsersHandler      *users.Handler
	CandidatesHandler *candidates.Handler
	JobsHandler       *jobs.Handler
	MatchHandler      *match.Handler
	AIHandler         *ai.Handler
	GoogleAuth        *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		UsersHandler:      app.UsersHandler,
		CandidatesHandler: app.CandidatesHandler,
		JobsHandler:       app.JobsHandler,
		MatchHandler:      app.MatchHandler,
		AIHandler:         app.AIHandler,
		GoogleAuth:        app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.CandidatesRepo = &candidates.PGRepo{DB: app.DB}
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.LinksRepo = &match.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.CandidatesRepo = candidates.NewMemoryRepo()
		app.JobsRepo = jobs.NewMemoryRepo()
		app.LinksRepo = match.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.Disabled{})
	if app.Config.LLMProvider == "openai" {
		openaiClient, err := openai.NewClient(app.Config.OpenAIAPIKey, app.Config.LLMModel)
		if err != nil {
			return err
		}
		llmClient = openaiClient
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.CandidatesService = &candidates.Service{
		Repo:   app.CandidatesRepo,
		Store:  app.Store,
		Parser: resume.NewParser(llmClient),
	}
	app.MatchEngine = match.NewEngine(app.JobsRepo, app.CandidatesRepo, app.LinksRepo, match.NewScorer(llmClient))
	app.JobsService = jobs.NewService(app.JobsRepo, app.MatchEngine)
	app.MatchService = match.NewService(app.JobsRepo, app.CandidatesRepo, app.LinksRepo, app.MatchEngine)
	app.AIService = ai.NewService(llmClient)

	app.UsersHandler = users.NewHandler(app.UsersService)
	app.CandidatesHandler = candidates.NewHandler(app.CandidatesService)
	app.JobsHandler = jobs.NewHandler(app.JobsService)
	app.MatchHandler = match.NewHandler(app.MatchService)
	app.AIHandler = ai.NewHandler(app.AIService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
