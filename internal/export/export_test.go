package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agency-reconciliation/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleReport(bounded bool) *domain.Report {
	mode := domain.SingleMonth
	if !bounded {
		mode = domain.Cumulative
	}
	report := &domain.Report{
		Window: domain.ReportingWindow{
			Mode:      mode,
			Start:     time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			End:       time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			MonthSpan: 1,
		},
		Agents: []domain.AgentEarningsResult{
			{
				AgentID:             uuid.MustParse("3f1d0c7a-1111-4c41-9a8e-000000000001"),
				AgentName:           "Ana",
				TransactionCount:    2,
				VariableTotal:       dec("100"),
				FlatTotal:           dec("50"),
				SalesTotal:          dec("150"),
				CommissionComponent: dec("10"),
				SalaryComponent:     decimal.Zero,
				TotalEarnings:       dec("60"),
				PaymentsInWindow:    dec("70"),
				AmountOwed:          dec("-10"),
			},
		},
		ContentOwners: []domain.ContentOwnerReconciliationResult{
			{
				ContentOwnerID:             uuid.MustParse("9a0e2b44-2222-40de-944b-000000000001"),
				ContentOwnerName:           "Xena",
				CompensationMode:           domain.RevenueShare,
				TransactionCount:           2,
				GrossVariable:              dec("300"),
				PlatformTakePercent:        dec("15"),
				CashbackPercent:            dec("5"),
				Cashback:                   dec("15"),
				RevenueAfterPlatformTake:   dec("240"),
				OwnerEarnings:              dec("120"),
				NetRevenue:                 dec("135"),
				AgentCommissionsAttributed: dec("70"),
				Costs:                      domain.CostBreakdown{Marketing: dec("30"), Tool: decimal.Zero, Other: decimal.Zero, Custom: decimal.Zero, Total: dec("30")},
				AgencyProfit:               dec("35.005"),
			},
		},
		Totals: domain.Totals{
			TotalCommissionsOwed: dec("60"),
			TotalPayments:        dec("70"),
			NetAgencyProfit:      dec("35.005"),
		},
	}
	if bounded {
		owed := dec("-10")
		report.Totals.TotalOwedNetOfPayments = &owed
	}
	return report
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, sampleReport(true)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{AgentsSheet, ContentOwnersSheet, TotalsSheet}, f.GetSheetList())

	agents, err := f.GetRows(AgentsSheet)
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, agentHeaders, agents[0])
	assert.Equal(t, "Ana", agents[1][1])
	assert.Equal(t, "60", agents[1][8])
	assert.Equal(t, "-10", agents[1][10])

	owners, err := f.GetRows(ContentOwnersSheet)
	require.NoError(t, err)
	require.Len(t, owners, 2)
	assert.Equal(t, "Xena", owners[1][1])
	assert.Equal(t, "REVENUE_SHARE", owners[1][2])

	totals, err := f.GetRows(TotalsSheet)
	require.NoError(t, err)
	assert.Contains(t, totals, []string{"Total Owed Net Of Payments", "-10"})
}

func TestWriteExcel_CumulativeOmitsNetOwed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, sampleReport(false)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	totals, err := f.GetRows(TotalsSheet)
	require.NoError(t, err)
	for _, row := range totals {
		assert.NotEqual(t, "Total Owed Net Of Payments", row[0])
	}
	assert.Contains(t, totals, []string{"Mode", "CUMULATIVE"})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport(true)))

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// Blank separator lines are skipped by the reader.
	require.Len(t, records, 4)
	assert.Equal(t, agentHeaders, records[0])
	assert.Equal(t, "60.00", records[1][8])
	assert.Equal(t, "-10.00", records[1][10])
	assert.Equal(t, ownerHeaders, records[2])
	assert.Equal(t, "35.01", records[3][17])
}
