package auction

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/tenor/internal/common"
	"github.com/bobmcallan/tenor/internal/interfaces"
	"github.com/bobmcallan/tenor/internal/models"
)

const (
	defaultListDaysBack     = 30
	defaultAnalysisDaysBack = 90
	defaultListLimit        = 20
	maxDaysBack             = 365
	maxListLimit            = 100

	// wiFetchConcurrency bounds the parallel FRED lookups; fan-out is
	// already limited to distinct (term, date) pairs.
	wiFetchConcurrency = 4

	recentGradedLimit = 10
)

const fredKeyWarning = "FRED_API_KEY not configured; tail uses avg_med_yield (less precise). " +
	"Set FRED_API_KEY for FRED CMT yield WI proxy."

// Service composes the auction pipeline: fetch, settle-filter, WI proxy
// resolution, grading, and trend analysis. It holds no state between calls.
type Service struct {
	treasury interfaces.TreasuryClient
	proxy    interfaces.YieldProxyClient
	logger   *common.Logger
}

// NewService creates a new auction service.
func NewService(treasury interfaces.TreasuryClient, proxy interfaces.YieldProxyClient, logger *common.Logger) *Service {
	return &Service{
		treasury: treasury,
		proxy:    proxy,
		logger:   logger,
	}
}

// clamp applies the default for an unset (zero) value, then bounds it.
func clamp(v, lo, hi, def int) int {
	if v == 0 {
		v = def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wiKey identifies one deduplicated proxy-yield lookup.
type wiKey struct {
	term string
	date string
}

// fetchWIYields batch-resolves WI proxy yields for gradeable records,
// deduplicated by (term, auction date) and fetched concurrently. The result
// maps CUSIP to the proxy yield; missing entries mean no proxy available.
func (s *Service) fetchWIYields(ctx context.Context, records []models.RawAuctionRecord) map[string]*float64 {
	if s.proxy == nil || !s.proxy.Configured() {
		return nil
	}

	needsFetch := make(map[wiKey][]string)
	for _, r := range records {
		if !models.GradeableType(r.SecurityType) {
			continue
		}
		if r.SecurityTerm == "" || r.AuctionDate == "" || r.CUSIP == "" {
			continue
		}
		key := wiKey{term: r.SecurityTerm, date: r.AuctionDate}
		needsFetch[key] = append(needsFetch[key], r.CUSIP)
	}

	if len(needsFetch) == 0 {
		return nil
	}

	var mu sync.Mutex
	yields := make(map[wiKey]*float64, len(needsFetch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wiFetchConcurrency)

	for key := range needsFetch {
		g.Go(func() error {
			// A failed lookup degrades to no proxy for that pair.
			val, err := s.proxy.FetchCMTYield(gctx, key.term, key.date)
			if err != nil {
				s.logger.Debug().Err(err).Str("term", key.term).Str("date", key.date).Msg("WI proxy fetch failed")
				val = nil
			}
			mu.Lock()
			yields[key] = val
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	cusipYields := make(map[string]*float64)
	for key, cusips := range needsFetch {
		val := yields[key]
		for _, cusip := range cusips {
			cusipYields[cusip] = val
		}
	}

	return cusipYields
}

// settledOnly drops records for upcoming auctions that have no results yet.
func settledOnly(records []models.RawAuctionRecord) []models.RawAuctionRecord {
	settled := make([]models.RawAuctionRecord, 0, len(records))
	for _, r := range records {
		if IsSettled(r) {
			settled = append(settled, r)
		}
	}
	return settled
}

// ListAuctions implements the treasury_auctions operation.
func (s *Service) ListAuctions(ctx context.Context, opts interfaces.ListOptions) (*models.AuctionList, error) {
	daysBack := clamp(opts.DaysBack, 1, maxDaysBack, defaultListDaysBack)
	limit := clamp(opts.Limit, 1, maxListLimit, defaultListLimit)

	result := &models.AuctionList{
		Period:   fmt.Sprintf("last %d days", daysBack),
		Auctions: []models.Auction{},
	}

	raw, err := s.treasury.FetchAuctions(ctx, interfaces.AuctionQuery{
		DaysBack:     daysBack,
		SecurityType: opts.SecurityType,
		SecurityTerm: opts.SecurityTerm,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Auction fetch failed")
		result.Warnings = append(result.Warnings, fmt.Sprintf("Auction data unavailable: %v", err))
		return result, nil
	}

	settled := settledOnly(raw)
	if len(settled) > limit {
		settled = settled[:limit]
	}

	wiYields := s.fetchWIYields(ctx, settled)

	var graded []*models.GradedAuction
	billCount := 0
	for _, r := range settled {
		formatted := FormatAuction(r, wiYields[r.CUSIP])
		result.Auctions = append(result.Auctions, formatted)
		if ga, ok := formatted.(*models.GradedAuction); ok {
			graded = append(graded, ga)
		}
		if formatted.Core().SecurityType == models.SecurityTypeBill {
			billCount++
		}
	}
	result.Count = len(result.Auctions)
	result.BillCount = billCount

	switch {
	case len(graded) > 0:
		dist := make(map[string]int)
		for _, a := range graded {
			dist[a.Grade.CompositeGrade]++
		}
		result.GradedSummary = &models.GradedSummary{
			Count:             len(graded),
			GradeDistribution: dist,
		}
		if s.proxy != nil && s.proxy.Configured() {
			result.WISource = models.WISourceFREDCMT
		} else {
			result.WISource = models.WISourceAvgMedYield
			result.Warnings = append(result.Warnings, fredKeyWarning)
		}
	case result.Count > 0:
		result.Warnings = append(result.Warnings, "No graded auctions (notes/bonds) in results; only bills returned.")
	default:
		result.Warnings = append(result.Warnings, "No settled auctions found in period.")
	}

	return result, nil
}

// AnalyzeDemand implements the auction_analysis operation.
func (s *Service) AnalyzeDemand(ctx context.Context, opts interfaces.AnalysisOptions) (*models.DemandAnalysis, error) {
	daysBack := clamp(opts.DaysBack, 1, maxDaysBack, defaultAnalysisDaysBack)

	result := &models.DemandAnalysis{
		Period:       fmt.Sprintf("last %d days", daysBack),
		DemandSignal: models.SignalNeutral,
	}

	raw, err := s.treasury.FetchAuctions(ctx, interfaces.AuctionQuery{
		DaysBack:     daysBack,
		SecurityTerm: opts.SecurityTerm,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Auction fetch failed")
		result.Warnings = append(result.Warnings, fmt.Sprintf("Auction data unavailable: %v", err))
		return result, nil
	}

	settled := settledOnly(raw)
	wiYields := s.fetchWIYields(ctx, settled)

	var graded []*models.GradedAuction
	var bills []*models.BillAuction
	for _, r := range settled {
		formatted := FormatAuction(r, wiYields[r.CUSIP])
		switch a := formatted.(type) {
		case *models.GradedAuction:
			graded = append(graded, a)
		case *models.BillAuction:
			if a.SecurityType == models.SecurityTypeBill {
				bills = append(bills, a)
			}
		}
		result.TotalAuctions++
	}

	if len(graded) > 0 {
		result.NotesBonds = s.summarizeGraded(graded)
		result.DemandSignal = demandSignal(result.NotesBonds.AvgGPA)

		if s.proxy == nil || !s.proxy.Configured() {
			result.Warnings = append(result.Warnings, fredKeyWarning)
		}

		recent := graded
		if len(recent) > recentGradedLimit {
			recent = recent[:recentGradedLimit]
		}
		result.RecentGraded = recent
	} else {
		result.Warnings = append(result.Warnings, "No graded auctions (notes/bonds) found in period")
	}

	if len(bills) > 0 {
		result.Bills = summarizeBills(bills)
	}

	return result, nil
}

// summarizeGraded builds the cross-sectional summary plus the per-maturity
// breakdown with trends. Input order (auction date descending) is preserved
// within each term group.
func (s *Service) summarizeGraded(graded []*models.GradedAuction) *models.GradedSummary {
	dist := make(map[string]int)
	gpaSum := 0.0
	for _, a := range graded {
		dist[a.Grade.CompositeGrade]++
		gpaSum += a.Grade.GPA
	}

	summary := &models.GradedSummary{
		Count:             len(graded),
		AvgGPA:            round2(gpaSum / float64(len(graded))),
		GradeDistribution: dist,
	}

	byTerm := make(map[string][]*models.GradedAuction)
	for _, a := range graded {
		term := a.SecurityTerm
		if term == "" {
			term = "Unknown"
		}
		byTerm[term] = append(byTerm[term], a)
	}

	terms := make([]string, 0, len(byTerm))
	for term := range byTerm {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	for _, term := range terms {
		termAuctions := byTerm[term]
		termGPASum := 0.0
		for _, a := range termAuctions {
			termGPASum += a.Grade.GPA
		}
		latest := termAuctions[0]

		summary.ByMaturity = append(summary.ByMaturity, models.MaturityTrend{
			Term:         term,
			AuctionCount: len(termAuctions),
			AvgGPA:       round2(termGPASum / float64(len(termAuctions))),
			LatestGrade:  latest.Grade.CompositeGrade,
			LatestDate:   latest.AuctionDate,
			Trends:       ComputeTrends(termAuctions, defaultRecentN),
		})
	}

	return summary
}

// summarizeBills aggregates the bill slice of an analysis window.
func summarizeBills(bills []*models.BillAuction) *models.BillSummary {
	summary := &models.BillSummary{Count: len(bills)}

	btcSum := 0.0
	btcCount := 0
	for _, b := range bills {
		if b.BidToCover != nil && *b.BidToCover != 0 {
			btcSum += *b.BidToCover
			btcCount++
		}
		if b.IsCMB {
			summary.CMBCount++
		}
	}
	if btcCount > 0 {
		summary.AvgBidToCover = ptr(round2(btcSum / float64(btcCount)))
	}

	return summary
}

// demandSignal maps the cross-sectional average GPA to a demand label.
func demandSignal(avgGPA float64) string {
	switch {
	case avgGPA >= 3.0:
		return models.SignalStrong
	case avgGPA >= 2.5:
		return models.SignalHealthy
	case avgGPA >= 1.5:
		return models.SignalSoft
	default:
		return models.SignalWeak
	}
}

// Ensure Service implements AuctionService
var _ interfaces.AuctionService = (*Service)(nil)
