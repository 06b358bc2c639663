package app

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Tenor MCP server version and status. Use this to verify connectivity."),
	)
}

// createTreasuryAuctionsTool returns the treasury_auctions tool definition
func createTreasuryAuctionsTool() mcp.Tool {
	return mcp.NewTool("treasury_auctions",
		mcp.WithDescription("Get recent US Treasury auction results with demand metrics: yield, bid-to-cover, bidder composition, tail, and SOMA participation. Notes and bonds include a demand grade (A-F); bills show discount rate and are not graded."),
		mcp.WithString("security_type",
			mcp.Description("Filter by type: 'Note', 'Bond', 'Bill', 'TIPS', 'FRN'"),
		),
		mcp.WithString("security_term",
			mcp.Description("Filter by term, e.g. '10-Year', '2-Year', '4-Week'"),
		),
		mcp.WithNumber("days_back",
			mcp.Description("Lookback period in days (default 30, max 365)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results to return (default 20, max 100)"),
		),
	)
}

// createAuctionAnalysisTool returns the auction_analysis tool definition
func createAuctionAnalysisTool() mcp.Tool {
	return mcp.NewTool("auction_analysis",
		mcp.WithDescription("Analyze Treasury auction demand health with grading and trend detection. Grades each note/bond auction, classifies per-maturity trends (improving/deteriorating/stable), and summarizes the overall demand signal."),
		mcp.WithString("security_term",
			mcp.Description("Focus on a specific maturity, e.g. '10-Year', '2-Year', '30-Year'"),
		),
		mcp.WithNumber("days_back",
			mcp.Description("Lookback period in days (default 90, max 365)"),
		),
	)
}

// createTreasuryRatesTool returns the treasury_rates tool definition
func createTreasuryRatesTool() mcp.Tool {
	return mcp.NewTool("treasury_rates",
		mcp.WithDescription("Get the latest average interest rates on marketable US Treasury securities from the Fiscal Data API."),
		mcp.WithNumber("limit",
			mcp.Description("Max observations to return (default 20)"),
		),
	)
}

// createCompanyOverviewTool returns the company_overview tool definition
func createCompanyOverviewTool() mcp.Tool {
	return mcp.NewTool("company_overview",
		mcp.WithDescription("Get a company profile snapshot: name, exchange, sector, market cap, price, and description."),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker (e.g. 'AAPL')"),
		),
	)
}
