// Package app wires Tenor's clients, services, storage, and MCP server.
// It is the shared core used by cmd/tenor-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/tenor/internal/clients/fmp"
	"github.com/bobmcallan/tenor/internal/clients/fred"
	"github.com/bobmcallan/tenor/internal/clients/treasury"
	"github.com/bobmcallan/tenor/internal/common"
	"github.com/bobmcallan/tenor/internal/interfaces"
	"github.com/bobmcallan/tenor/internal/services/auction"
	"github.com/bobmcallan/tenor/internal/storage/internaldb"
)

// App holds all initialized clients, services, and the MCP server.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	Store          interfaces.InternalStore
	TreasuryClient interfaces.TreasuryClient
	YieldProxy     interfaces.YieldProxyClient
	FMPClient      interfaces.FMPClient
	AuctionService interfaces.AuctionService
	MCPServer      *server.MCPServer
	StartupTime    time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes clients, services, storage, and the MCP server.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Config resolution: provided path, TENOR_CONFIG, binary dir, dev fallback
	if configPath == "" {
		configPath = os.Getenv("TENOR_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "tenor.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/tenor.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Internal.Path != "" && !filepath.IsAbs(config.Storage.Internal.Path) {
		config.Storage.Internal.Path = filepath.Join(binDir, config.Storage.Internal.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := internaldb.NewStore(logger, config.Storage.Internal.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ctx := context.Background()

	// The FRED key is optional: without it, auction tails fall back to the
	// within-auction median yield and results carry a precision warning.
	fredKey, err := common.ResolveAPIKey(ctx, store, "fred_api_key", config.Clients.FRED.APIKey)
	if err != nil {
		logger.Warn().Msg("FRED API key not configured - auction tails will use avg_med_yield")
	}

	fmpKey, err := common.ResolveAPIKey(ctx, store, "fmp_api_key", config.Clients.FMP.APIKey)
	if err != nil {
		logger.Warn().Msg("FMP API key not configured - company overview will be unavailable")
	}

	treasuryClient := treasury.NewClient(
		treasury.WithBaseURL(config.Clients.Treasury.BaseURL),
		treasury.WithLogger(logger),
		treasury.WithRateLimit(config.Clients.Treasury.RateLimit),
		treasury.WithTimeout(config.Clients.Treasury.GetTimeout()),
	)

	fredClient := fred.NewClient(fredKey,
		fred.WithBaseURL(config.Clients.FRED.BaseURL),
		fred.WithLogger(logger),
		fred.WithTimeout(config.Clients.FRED.GetTimeout()),
	)

	var fmpClient interfaces.FMPClient
	if fmpKey != "" {
		fmpClient = fmp.NewClient(fmpKey,
			fmp.WithBaseURL(config.Clients.FMP.BaseURL),
			fmp.WithLogger(logger),
			fmp.WithRateLimit(config.Clients.FMP.RateLimit),
			fmp.WithTimeout(config.Clients.FMP.GetTimeout()),
		)
	}

	auctionService := auction.NewService(treasuryClient, fredClient, logger)

	mcpServer := server.NewMCPServer(
		"tenor",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:         config,
		Logger:         logger,
		Store:          store,
		TreasuryClient: treasuryClient,
		YieldProxy:     fredClient,
		FMPClient:      fmpClient,
		AuctionService: auctionService,
		MCPServer:      mcpServer,
		StartupTime:    startupStart,
	}

	a.registerTools()

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}

// registerTools registers all MCP tools on the App's MCPServer.
func (a *App) registerTools() {
	s := a.MCPServer
	logger := a.Logger

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createTreasuryAuctionsTool(), handleTreasuryAuctions(a.AuctionService, logger))
	s.AddTool(createAuctionAnalysisTool(), handleAuctionAnalysis(a.AuctionService, logger))
	s.AddTool(createTreasuryRatesTool(), handleTreasuryRates(a.TreasuryClient, logger))

	// FMP-backed tools register only when a key is available
	if a.FMPClient != nil {
		s.AddTool(createCompanyOverviewTool(), handleCompanyOverview(a.FMPClient, logger))
	}
}
