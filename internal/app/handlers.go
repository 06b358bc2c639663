package app

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/tenor/internal/common"
	"github.com/bobmcallan/tenor/internal/interfaces"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("Tenor MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleTreasuryAuctions implements the treasury_auctions tool
func handleTreasuryAuctions(auctionService interfaces.AuctionService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := interfaces.ListOptions{
			SecurityType: request.GetString("security_type", ""),
			SecurityTerm: request.GetString("security_term", ""),
			DaysBack:     request.GetInt("days_back", 0),
			Limit:        request.GetInt("limit", 0),
		}

		list, err := auctionService.ListAuctions(ctx, opts)
		if err != nil {
			logger.Error().Err(err).Msg("Treasury auctions failed")
			return errorResult(fmt.Sprintf("Auction error: %v", err)), nil
		}

		markdown := formatAuctionList(list)
		return textResult(markdown), nil
	}
}

// handleAuctionAnalysis implements the auction_analysis tool
func handleAuctionAnalysis(auctionService interfaces.AuctionService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := interfaces.AnalysisOptions{
			SecurityTerm: request.GetString("security_term", ""),
			DaysBack:     request.GetInt("days_back", 0),
		}

		analysis, err := auctionService.AnalyzeDemand(ctx, opts)
		if err != nil {
			logger.Error().Err(err).Msg("Auction analysis failed")
			return errorResult(fmt.Sprintf("Analysis error: %v", err)), nil
		}

		markdown := formatDemandAnalysis(analysis)
		return textResult(markdown), nil
	}
}

// handleTreasuryRates implements the treasury_rates tool
func handleTreasuryRates(treasuryClient interfaces.TreasuryClient, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 20)

		rates, err := treasuryClient.FetchAvgInterestRates(ctx, limit)
		if err != nil {
			logger.Error().Err(err).Msg("Treasury rates fetch failed")
			return errorResult(fmt.Sprintf("Treasury rates error: %v", err)), nil
		}

		markdown := formatTreasuryRates(rates)
		return textResult(markdown), nil
	}
}

// handleCompanyOverview implements the company_overview tool
func handleCompanyOverview(fmpClient interfaces.FMPClient, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}

		profile, err := fmpClient.GetProfile(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("Company overview failed")
			return errorResult(fmt.Sprintf("Error getting profile: %v", err)), nil
		}

		markdown := formatCompanyProfile(profile)
		return textResult(markdown), nil
	}
}

// Helper functions

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
