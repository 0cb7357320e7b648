package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/memohai/linehook/internal/bot"
	"github.com/memohai/linehook/internal/config"
	"github.com/memohai/linehook/internal/handlers"
	"github.com/memohai/linehook/internal/healthcheck"
	credentialschecker "github.com/memohai/linehook/internal/healthcheck/checkers/credentials"
	storagechecker "github.com/memohai/linehook/internal/healthcheck/checkers/storage"
	"github.com/memohai/linehook/internal/line"
	"github.com/memohai/linehook/internal/logger"
	"github.com/memohai/linehook/internal/media"
	"github.com/memohai/linehook/internal/media/providers/localfs"
	"github.com/memohai/linehook/internal/server"
	"github.com/memohai/linehook/internal/version"
)

func runServe(opts *serveOptions) error {
	if err := config.LoadDotenv(opts.envFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	app := fx.New(
		fx.Supply(opts),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideLineClient,
			provideStorage,
			provideMediaService,
			provideDispatcher,
			provideHealthCheckers,
			provideServerHandler(providePingHandler),
			provideServerHandler(handlers.NewStaticServerHandler),
			provideServerHandler(handlers.NewWebhookServerHandler),
			provideServer,
		),
		fx.Invoke(startServer),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	)
	if err := app.Err(); err != nil {
		return err
	}
	app.Run()
	return nil
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideConfig(opts *serveOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideLineClient(log *slog.Logger, cfg config.Config) (*line.Client, error) {
	return line.NewClient(log, line.ClientConfig{
		ChannelAccessToken: cfg.Line.ChannelAccessToken,
		APIEndpoint:        cfg.Line.APIEndpoint,
		DataEndpoint:       cfg.Line.DataEndpoint,
	})
}

func provideStorage(cfg config.Config) (*localfs.Provider, error) {
	return localfs.New(cfg.Download.Dir, cfg.Server.PublicBaseURL(), cfg.Download.Prefix)
}

func provideMediaService(log *slog.Logger, client *line.Client, storage *localfs.Provider) *media.Service {
	return media.NewService(log, client, storage)
}

func provideDispatcher(log *slog.Logger, cfg config.Config, client *line.Client, mediaService *media.Service) *bot.Dispatcher {
	return bot.NewDispatcher(log, client, mediaService, bot.Options{VideoPreview: cfg.Download.VideoPreview})
}

func provideHealthCheckers(log *slog.Logger, cfg config.Config, storage *localfs.Provider) []healthcheck.Checker {
	return []healthcheck.Checker{
		storagechecker.NewChecker(log, "download", storage.Dir()),
		credentialschecker.NewChecker(cfg.Line.ChannelAccessToken, cfg.Line.ChannelSecret, cfg.Line.VerifySignature),
	}
}

func providePingHandler(log *slog.Logger, checkers []healthcheck.Checker) *handlers.PingHandler {
	return handlers.NewPingHandler(log, checkers...)
}

type serverParams struct {
	fx.In
	Logger         *slog.Logger
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.New(params.Logger, params.Config.Server.Addr, params.ServerHandlers...)
}

func startServer(lc fx.Lifecycle, logger *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner, cfg config.Config, storage *localfs.Provider) {
	fmt.Printf("Starting linehook %s\n", version.GetInfo())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("webhook ready",
				slog.String("addr", srv.Addr()),
				slog.String("path", cfg.Webhook.Path),
				slog.String("base_url", cfg.Server.PublicBaseURL()),
				slog.String("download_dir", storage.Dir()),
				slog.Bool("verify_signature", cfg.Line.VerifySignature),
			)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
