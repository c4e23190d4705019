package cmd

import (
	"context"
	"time"

	"github.com/leohubert/go-omdb/pkg/envtb"
	"github.com/leohubert/go-omdb/pkg/errtb"
	"github.com/leohubert/go-omdb/pkg/logtb"
	"github.com/leohubert/go-omdb/pkg/omdb"
	"go.uber.org/zap"
)

type Services struct {
	OmdbClient *omdb.Client
	Logger     *zap.Logger
}

func Bootstrap(ctx context.Context) (context.Context, *Env, *Services, func()) {
	env := loadEnv()

	logger, flushLogger := logtb.NewLogger(logtb.Options{
		Format: env.LogFormat,
		Level:  env.LogLevel,
	})

	omdbClient := errtb.Must(omdb.NewClient(omdb.Options{
		APIKey:       env.OmdbAPIKey,
		BaseURL:      env.OmdbURL,
		PosterURL:    env.OmdbPosterURL,
		Timeout:      env.OmdbTimeout,
		PosterHeight: env.OmdbPosterHeight,
		Plot:         env.OmdbPlot,
		Type:         env.OmdbType,
		Tomatoes:     env.OmdbTomatoes,
		Logger:       logger.Named("omdb"),
	}))

	ctx = logtb.InjectLogger(ctx, logger)

	services := &Services{
		OmdbClient: omdbClient,
		Logger:     logger,
	}

	cleanup := func() {
		flushLogger()
	}

	return ctx, env, services, cleanup
}

type Env struct {
	OmdbAPIKey       string
	OmdbURL          string
	OmdbPosterURL    string
	OmdbTimeout      time.Duration
	OmdbPosterHeight int
	OmdbPlot         omdb.Plot
	OmdbType         omdb.MediaType
	OmdbTomatoes     bool
	ServerAddr       string
	LogFormat        logtb.Format
	LogLevel         logtb.Level
	KeyCheckInterval time.Duration
}

func loadEnv() *Env {
	envtb.LoadEnvFile(".env")

	return &Env{
		OmdbAPIKey:       envtb.MustGetString("OMDB_API_KEY"),
		OmdbURL:          envtb.GetUrl("OMDB_URL", omdb.DefaultBaseURL).String(),
		OmdbPosterURL:    envtb.GetUrl("OMDB_POSTER_URL", omdb.DefaultPosterURL).String(),
		OmdbTimeout:      envtb.GetDuration("OMDB_TIMEOUT", "5s"),
		OmdbPosterHeight: int(envtb.GetInt("OMDB_POSTER_HEIGHT", omdb.DefaultPosterHeight)),
		OmdbPlot: omdb.Plot(envtb.GetEnum("OMDB_PLOT",
			[]string{string(omdb.PlotShort), string(omdb.PlotFull)}, string(omdb.PlotShort))),
		OmdbType: omdb.MediaType(envtb.GetEnum("OMDB_TYPE",
			[]string{string(omdb.MediaTypeAny), string(omdb.MediaTypeMovie), string(omdb.MediaTypeSeries), string(omdb.MediaTypeEpisode)},
			string(omdb.MediaTypeAny))),
		OmdbTomatoes:     envtb.GetBool("OMDB_TOMATOES", false),
		ServerAddr:       envtb.GetString("SERVER_ADDR", "localhost:8080"),
		LogFormat:        envtb.GetLogFormat("LOG_FORMAT", logtb.FormatJSON),
		LogLevel:         envtb.GetLogLevel("LOG_LEVEL", logtb.LevelInfo),
		KeyCheckInterval: envtb.GetDuration("KEY_CHECK_INTERVAL", "10m"),
	}
}
