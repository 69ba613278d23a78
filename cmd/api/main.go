// cmd/api/main.go
package main

import (
	"net/http"
	"os"

	scs "github.com/alexedwards/scs/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/fitcoach/internal/cache"
	"github.com/briangreenhill/fitcoach/internal/coach"
	"github.com/briangreenhill/fitcoach/internal/completion"
	"github.com/briangreenhill/fitcoach/internal/config"
	"github.com/briangreenhill/fitcoach/internal/http/routes"
	"github.com/briangreenhill/fitcoach/internal/imagegen"
	"github.com/briangreenhill/fitcoach/internal/jobs"
	"github.com/briangreenhill/fitcoach/internal/speech"
	"github.com/briangreenhill/fitcoach/web"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if !cfg.HasAI() {
		logger.Warn().Msg("LOVABLE_API_KEY not set; plan requests will fail")
	}

	// Sessions
	sess := scs.New()
	sess.Lifetime = cfg.SessionLifetime
	sess.Cookie.HttpOnly = true
	sess.Cookie.SameSite = http.SameSiteLaxMode
	sess.Cookie.Secure = cfg.CookieSecure

	tmpl, err := web.Templates()
	if err != nil {
		logger.Fatal().Err(err).Msg("parse templates")
	}

	// Plan pipeline
	completer := completion.New(cfg.AI.APIKey,
		completion.WithBaseURL(cfg.AI.GatewayURL),
		completion.WithModel(cfg.AI.Model),
		completion.WithSampling(cfg.AI.Temperature, cfg.AI.MaxTokens),
		completion.WithTimeout(cfg.AI.Timeout),
		completion.WithLogger(logger),
	)
	generator := coach.NewGenerator(completer, logger)
	logger.Info().Str("model", completer.Model()).Msg("plan pipeline ready")

	// Images
	lruCache, err := cache.NewLRU(cfg.Image.CacheSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("image cache")
	}
	var imgCache cache.Cache = lruCache
	if cfg.Image.CacheDir != "" {
		fileCache, err := cache.NewFileCache(cfg.Image.CacheDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("image cache dir")
		}
		imgCache = cache.NewLayered(lruCache, fileCache, logger)
	}
	images := imagegen.New(cfg.AI.APIKey,
		imagegen.WithBaseURL(cfg.AI.GatewayURL),
		imagegen.WithModel(cfg.Image.Model),
		imagegen.WithConcurrency(cfg.Image.Concurrency),
		imagegen.WithCache(imgCache),
		imagegen.WithLogger(logger),
	)
	boards, err := imagegen.NewBoards(cfg.Image.CacheSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("image boards")
	}

	opts := routes.ServerOptions{
		Sess:    sess,
		Tmpl:    tmpl,
		Planner: generator,
		Images:  images,
		Boards:  boards,
		Logger:  logger,
	}

	// Speech
	if cfg.HasSpeech() {
		opts.Speech = speech.NewNarrator(speech.NewOpenAISynthesizer(speech.OpenAIConfig{
			APIKey: cfg.Speech.APIKey,
			Model:  cfg.Speech.Model,
			Voice:  cfg.Speech.Voice,
			Speed:  cfg.Speech.Speed,
		}))
	} else {
		logger.Info().Msg("OPENAI_API_KEY not set; speech disabled")
	}

	// Archival
	if cfg.HasDatabase() {
		client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := client.Close(); err != nil {
				logger.Error().Err(err).Msg("close asynq client")
			}
		}()
		opts.Archiver = jobs.NewArchiver(client)
	}

	s := routes.New(opts)

	logger.Info().Str("port", cfg.Port).Msg("starting app")
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: sess.LoadAndSave(s.Router)}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
