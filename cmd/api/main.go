package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	httpapi "designforge/internal/http"
	"designforge/internal/http/handlers"
	"designforge/internal/infra"
	"designforge/internal/pipeline"
	"designforge/internal/providers/image"
	"designforge/internal/providers/llm"
	"designforge/internal/providers/removal"
	"designforge/internal/render"
	"designforge/internal/resolver"
	"designforge/internal/session"
	"designforge/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	ctx := context.Background()

	// Language model gateway.
	if cfg.OpenAIAPIKey == "" {
		logger.Fatal().Msg("OPENAI_API_KEY is required")
	}
	llmClient, err := llm.NewOpenAIClient(llm.OpenAIOptions{
		APIKey:       cfg.OpenAIAPIKey,
		Model:        cfg.OpenAIModel,
		BaseURL:      cfg.OpenAIBaseURL,
		Organization: cfg.OpenAIOrg,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("init llm client")
	}

	// Asset storage: S3 when configured, local filesystem otherwise.
	var store storage.Store
	staticDir := ""
	if cfg.S3Endpoint != "" {
		store, err = storage.NewS3Store(storage.S3Config{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			UseSSL:        cfg.S3UseSSL,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("init s3 store")
		}
		logger.Info().Str("endpoint", cfg.S3Endpoint).Msg("using s3 asset store")
	} else {
		store, err = storage.NewFileStore(cfg.StorageDir, cfg.StorageBaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("init file store")
		}
		staticDir = cfg.StorageDir
		logger.Info().Str("dir", cfg.StorageDir).Msg("using filesystem asset store")
	}

	// Image generation: Prodia with a key, placeholders without.
	var generator image.Generator
	if cfg.ProdiaToken != "" {
		generator, err = image.NewProdiaGenerator(image.ProdiaOptions{
			Token:   cfg.ProdiaToken,
			BaseURL: cfg.ProdiaBaseURL,
			JobType: cfg.ProdiaJobType,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("init prodia generator")
		}
	} else {
		generator = image.NewPlaceholderGenerator()
		logger.Warn().Msg("no PRODIA_TOKEN configured, using placeholder images")
	}

	// Background removal is optional; the resolver records a fallback when
	// it is unavailable.
	var remover removal.Remover
	if cfg.ReplicateToken != "" {
		remover, err = removal.NewReplicateRemover(removal.ReplicateOptions{
			Token:   cfg.ReplicateToken,
			BaseURL: cfg.ReplicateBaseURL,
			Version: cfg.ReplicateVersion,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("init replicate remover")
		}
	}

	var limiter *rate.Limiter
	if cfg.ImageRatePerMin > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.ImageRatePerMin)), 2)
	}
	res := resolver.New(resolver.Options{
		Generator: generator,
		Remover:   remover,
		Store:     store,
		Logger:    logger,
		Limiter:   limiter,
	})
	renderer := render.New(logger)
	pipe := pipeline.NewService(llmClient, res, renderer, logger)

	// Session persistence: Postgres when configured, in-memory otherwise.
	var sessions session.Store
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		sessions, err = session.NewPostgresStore(ctx, dbpool)
		if err != nil {
			logger.Fatal().Err(err).Msg("init postgres session store")
		}
		logger.Info().Msg("using postgres session store")
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
		logger.Info().Msg("using in-memory session store")
	}

	app := handlers.NewApp(sessions, pipe, renderer, logger)
	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:          logger,
		RateLimitPerMin: cfg.RateLimitPerMin,
		StaticDir:       staticDir,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
