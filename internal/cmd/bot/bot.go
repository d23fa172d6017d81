// Package bot composes the chat bot process: storage, feature
// handlers, the message router, and the gateway connection.
package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/louisbranch/questline/internal/adventure"
	botrouter "github.com/louisbranch/questline/internal/bot"
	"github.com/louisbranch/questline/internal/features/chessgame"
	"github.com/louisbranch/questline/internal/features/economy"
	"github.com/louisbranch/questline/internal/features/graph"
	"github.com/louisbranch/questline/internal/features/league"
	"github.com/louisbranch/questline/internal/features/youtube"
	"github.com/louisbranch/questline/internal/platform/config"
	"github.com/louisbranch/questline/internal/platform/logging"
	"github.com/louisbranch/questline/internal/platform/otel"
	"github.com/louisbranch/questline/internal/session"
	"github.com/louisbranch/questline/internal/storage/bbolt"
	"github.com/louisbranch/questline/internal/storage/sqlite"
	"github.com/louisbranch/questline/internal/transport/gateway"
)

const sweepInterval = time.Minute

// Run wires the bot and pumps gateway events until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := otel.Setup(ctx, "questline-bot")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	users, err := bbolt.Open(cfg.UserDBPath)
	if err != nil {
		return fmt.Errorf("open user store: %w", err)
	}
	defer func() { _ = users.Close() }()

	leagueStore, err := sqlite.Open(cfg.LeagueDBPath)
	if err != nil {
		return fmt.Errorf("open league store: %w", err)
	}
	defer func() { _ = leagueStore.Close() }()

	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}

	catalog := adventure.DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("adventure catalog: %w", err)
	}

	sessions := session.NewTable()
	sessions.StartSweeper(ctx, sweepInterval, time.Duration(cfg.SessionTTLMinutes)*time.Minute)

	client := gateway.New(cfg.GatewayURL, logger)

	engine := adventure.NewEngine(catalog, users)
	pending := adventure.NewPendingChoices()
	leagueSvc := league.NewService(leagueStore, &league.HTTPFetcher{}, logger)

	youtubeHandler := youtube.NewHandler(youtube.NewYTDLProvider(), sessions, client, logger)
	youtubeHandler.SetDownloadDir(cfg.DownloadDir)

	router := botrouter.NewRouter(sessions, client, botrouter.Handlers{
		Adventure: adventure.NewHandler(engine, users, pending, client),
		Economy:   economy.NewHandler(users, client, catalog),
		League:    league.NewHandler(leagueSvc, sessions, client, logger),
		Chess:     chessgame.NewHandler(sessions, client, logger, nil),
		Graph:     graph.NewHandler(sessions, client, logger),
		YouTube:   youtubeHandler,
	}, logger)
	client.SetHandler(router)

	logger.Info("bot starting", zap.String("gateway", cfg.GatewayURL))
	if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("gateway: %w", err)
	}
	logger.Info("bot stopped")
	return nil
}
