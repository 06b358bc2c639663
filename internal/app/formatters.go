package app

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/tenor/internal/models"
)

// fmtFloat renders a nullable float with one decimal, "-" when missing.
func fmtFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

// fmtFloat2 renders a nullable float with two decimals, "-" when missing.
func fmtFloat2(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

// fmtYield renders a nullable yield with three decimals, "-" when missing.
func fmtYield(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *v)
}

// formatAuctionList formats an auction list result as markdown
func formatAuctionList(list *models.AuctionList) string {
	var sb strings.Builder

	sb.WriteString("# Treasury Auctions\n\n")
	sb.WriteString(fmt.Sprintf("**Period:** %s\n", list.Period))
	sb.WriteString(fmt.Sprintf("**Auctions:** %d", list.Count))
	if list.BillCount > 0 {
		sb.WriteString(fmt.Sprintf(" (%d bills)", list.BillCount))
	}
	sb.WriteString("\n")
	if list.WISource != "" {
		sb.WriteString(fmt.Sprintf("**WI Proxy:** %s\n", list.WISource))
	}
	sb.WriteString("\n")

	var graded []*models.GradedAuction
	var bills []*models.BillAuction
	for _, a := range list.Auctions {
		switch v := a.(type) {
		case *models.GradedAuction:
			graded = append(graded, v)
		case *models.BillAuction:
			bills = append(bills, v)
		}
	}

	if len(graded) > 0 {
		sb.WriteString("## Notes & Bonds\n\n")
		sb.WriteString("| Date | Term | Type | High Yield | Tail (bps) | B2C | Dealer % | Indirect % | Grade | GPA |\n")
		sb.WriteString("|------|------|------|------------|------------|-----|----------|------------|-------|-----|\n")
		for _, a := range graded {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s | %s | %.2f |\n",
				a.AuctionDate, a.SecurityTerm, a.SecurityType,
				fmtYield(a.HighYield), fmtFloat(a.TailBps), fmtFloat2(a.BidToCover),
				fmtFloat(a.DealerPct), fmtFloat(a.IndirectPct),
				a.Grade.CompositeGrade, a.Grade.GPA))
		}
		sb.WriteString("\n")
	}

	if len(bills) > 0 {
		sb.WriteString("## Bills\n\n")
		sb.WriteString("| Date | Term | High Rate | Inv Rate | B2C | Dealer % | Indirect % | CMB |\n")
		sb.WriteString("|------|------|-----------|----------|-----|----------|------------|-----|\n")
		for _, a := range bills {
			cmb := ""
			if a.IsCMB {
				cmb = "Yes"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				a.AuctionDate, a.SecurityTerm,
				fmtYield(a.HighDiscountRate), fmtYield(a.HighInvestmentRate),
				fmtFloat2(a.BidToCover), fmtFloat(a.DealerPct), fmtFloat(a.IndirectPct), cmb))
		}
		sb.WriteString("\n")
	}

	if gs := list.GradedSummary; gs != nil && gs.Count > 0 {
		sb.WriteString("## Graded Summary\n\n")
		sb.WriteString(fmt.Sprintf("**Graded Auctions:** %d\n", gs.Count))
		sb.WriteString(fmt.Sprintf("**Average GPA:** %.2f\n", gs.AvgGPA))
		if len(gs.GradeDistribution) > 0 {
			sb.WriteString(fmt.Sprintf("**Distribution:** %s\n", formatGradeDistribution(gs.GradeDistribution)))
		}
		sb.WriteString("\n")
	}

	writeWarnings(&sb, list.Warnings)

	return sb.String()
}

// formatDemandAnalysis formats a demand analysis result as markdown
func formatDemandAnalysis(analysis *models.DemandAnalysis) string {
	var sb strings.Builder

	sb.WriteString("# Treasury Auction Demand Analysis\n\n")
	sb.WriteString(fmt.Sprintf("**Period:** %s\n", analysis.Period))
	sb.WriteString(fmt.Sprintf("**Total Auctions:** %d\n", analysis.TotalAuctions))
	sb.WriteString(fmt.Sprintf("**Demand Signal:** %s\n\n", strings.ToUpper(analysis.DemandSignal)))

	if nb := analysis.NotesBonds; nb != nil && nb.Count > 0 {
		sb.WriteString("## Notes & Bonds\n\n")
		sb.WriteString(fmt.Sprintf("**Graded Auctions:** %d\n", nb.Count))
		sb.WriteString(fmt.Sprintf("**Average GPA:** %.2f\n", nb.AvgGPA))
		if len(nb.GradeDistribution) > 0 {
			sb.WriteString(fmt.Sprintf("**Distribution:** %s\n", formatGradeDistribution(nb.GradeDistribution)))
		}
		sb.WriteString("\n")

		if len(nb.ByMaturity) > 0 {
			sb.WriteString("### By Maturity\n\n")
			sb.WriteString("| Term | Auctions | Avg GPA | Latest Grade | Latest Date | Trend |\n")
			sb.WriteString("|------|----------|---------|--------------|-------------|-------|\n")
			for _, mt := range nb.ByMaturity {
				sb.WriteString(fmt.Sprintf("| %s | %d | %.2f | %s | %s | %s |\n",
					mt.Term, mt.AuctionCount, mt.AvgGPA, mt.LatestGrade, mt.LatestDate, mt.Trends.Overall))
			}
			sb.WriteString("\n")
		}
	}

	if b := analysis.Bills; b != nil && b.Count > 0 {
		sb.WriteString("## Bills\n\n")
		sb.WriteString(fmt.Sprintf("**Auctions:** %d\n", b.Count))
		sb.WriteString(fmt.Sprintf("**Average Bid-to-Cover:** %s\n", fmtFloat2(b.AvgBidToCover)))
		if b.CMBCount > 0 {
			sb.WriteString(fmt.Sprintf("**Cash Management Bills:** %d\n", b.CMBCount))
		}
		sb.WriteString("\n")
	}

	if len(analysis.RecentGraded) > 0 {
		sb.WriteString("## Recent Graded Auctions\n\n")
		sb.WriteString("| Date | Term | Grade | GPA | Tail (bps) | B2C | Indirect % |\n")
		sb.WriteString("|------|------|-------|-----|------------|-----|------------|\n")
		for _, a := range analysis.RecentGraded {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.2f | %s | %s | %s |\n",
				a.AuctionDate, a.SecurityTerm, a.Grade.CompositeGrade, a.Grade.GPA,
				fmtFloat(a.TailBps), fmtFloat2(a.BidToCover), fmtFloat(a.IndirectPct)))
		}
		sb.WriteString("\n")
	}

	writeWarnings(&sb, analysis.Warnings)

	return sb.String()
}

// formatGradeDistribution renders a grade histogram in fixed A..F order.
func formatGradeDistribution(dist map[string]int) string {
	var parts []string
	for _, grade := range []string{"A", "B", "C", "D", "F"} {
		if n, ok := dist[grade]; ok && n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", grade, n))
		}
	}
	return strings.Join(parts, ", ")
}

// formatTreasuryRates formats average interest rates as markdown
func formatTreasuryRates(rates []models.TreasuryRate) string {
	var sb strings.Builder

	sb.WriteString("# Treasury Average Interest Rates\n\n")

	if len(rates) == 0 {
		sb.WriteString("No rate data available.\n")
		return sb.String()
	}

	sb.WriteString("| Record Date | Security | Avg Rate % |\n")
	sb.WriteString("|-------------|----------|------------|\n")
	for _, r := range rates {
		sb.WriteString(fmt.Sprintf("| %s | %s | %.3f |\n", r.RecordDate, r.SecurityDesc, r.AvgRatePct))
	}

	return sb.String()
}

// formatCompanyProfile formats a company profile as markdown
func formatCompanyProfile(profile *models.CompanyProfile) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s (%s)\n\n", profile.CompanyName, profile.Symbol))
	sb.WriteString(fmt.Sprintf("**Exchange:** %s\n", profile.Exchange))
	sb.WriteString(fmt.Sprintf("**Sector:** %s\n", profile.Sector))
	sb.WriteString(fmt.Sprintf("**Industry:** %s\n", profile.Industry))
	sb.WriteString(fmt.Sprintf("**Price:** $%.2f\n", profile.Price))
	sb.WriteString(fmt.Sprintf("**Market Cap:** $%.0f\n", profile.MarketCap))
	sb.WriteString(fmt.Sprintf("**Beta:** %.2f\n", profile.Beta))
	if profile.Website != "" {
		sb.WriteString(fmt.Sprintf("**Website:** %s\n", profile.Website))
	}
	if profile.Description != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", profile.Description))
	}

	return sb.String()
}

// writeWarnings appends a warnings section when any are present.
func writeWarnings(sb *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	sb.WriteString("## Warnings\n\n")
	for _, w := range warnings {
		sb.WriteString(fmt.Sprintf("- %s\n", w))
	}
}
