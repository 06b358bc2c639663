package auction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/tenor/internal/models"
)

func noteRecord() models.RawAuctionRecord {
	return models.RawAuctionRecord{
		CUSIP:                  "91282CJK8",
		SecurityType:           models.SecurityTypeNote,
		SecurityTerm:           "10-Year",
		AuctionDate:            "2026-08-12",
		IssueDate:              "2026-08-15",
		HighYield:              "4.320",
		AvgMedYield:            "4.280",
		BidToCoverRatio:        "2.58",
		OfferingAmt:            "42000000000",
		CompAccepted:           "40000000000",
		PrimaryDealerAccepted:  "4800000000",
		IndirectBidderAccepted: "28000000000",
		DirectBidderAccepted:   "7200000000",
	}
}

func billRecord() models.RawAuctionRecord {
	return models.RawAuctionRecord{
		CUSIP:              "912797GB9",
		SecurityType:       models.SecurityTypeBill,
		SecurityTerm:       "13-Week",
		AuctionDate:        "2026-08-14",
		HighDiscountRate:   "5.120",
		HighInvestmentRate: "5.270",
		BidToCoverRatio:    "2.90",
		OfferingAmt:        "70000000000",
		CashManagementBill: "No",
	}
}

func TestIsSettled(t *testing.T) {
	assert.True(t, IsSettled(noteRecord()))
	assert.True(t, IsSettled(billRecord()))

	upcoming := models.RawAuctionRecord{
		SecurityType: models.SecurityTypeNote,
		AuctionDate:  "2026-09-01",
		HighYield:    "null",
	}
	assert.False(t, IsSettled(upcoming))
}

func TestFormatAuctionNote(t *testing.T) {
	result := FormatAuction(noteRecord(), ptr(4.300))

	graded, ok := result.(*models.GradedAuction)
	require.True(t, ok)

	assert.Equal(t, "10-Year", graded.SecurityTerm)
	assert.NotNil(t, graded.HighYield)
	assert.InDelta(t, 4.32, *graded.HighYield, 0.001)
	require.NotNil(t, graded.TailBps)
	assert.InDelta(t, 2.0, *graded.TailBps, 0.001)
	assert.Equal(t, models.WISourceFREDCMT, graded.WISource)
	assert.NotEmpty(t, graded.Grade.CompositeGrade)
	assert.Len(t, graded.Grade.MetricGrades, 4)
}

func TestFormatAuctionBill(t *testing.T) {
	result := FormatAuction(billRecord(), nil)

	bill, ok := result.(*models.BillAuction)
	require.True(t, ok)

	assert.NotNil(t, bill.HighDiscountRate)
	assert.InDelta(t, 5.12, *bill.HighDiscountRate, 0.001)
	assert.NotNil(t, bill.HighInvestmentRate)
	assert.False(t, bill.IsCMB)
}

func TestFormatAuctionCMBFlag(t *testing.T) {
	record := billRecord()
	record.CashManagementBill = "Yes"

	bill, ok := FormatAuction(record, nil).(*models.BillAuction)
	require.True(t, ok)
	assert.True(t, bill.IsCMB)
}

func TestFormatAuctionSomaPct(t *testing.T) {
	record := noteRecord()
	record.SomaAccepted = "2100000000"

	graded, ok := FormatAuction(record, nil).(*models.GradedAuction)
	require.True(t, ok)
	require.NotNil(t, graded.SomaPct)
	assert.InDelta(t, 5.0, *graded.SomaPct, 0.001)
}

func TestFormatAuctionTIPSIsGraded(t *testing.T) {
	record := noteRecord()
	record.SecurityType = models.SecurityTypeTIPS

	_, ok := FormatAuction(record, nil).(*models.GradedAuction)
	assert.True(t, ok)
}
