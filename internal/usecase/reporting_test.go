package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"agency-reconciliation/internal/domain"
	"agency-reconciliation/internal/period"
	"agency-reconciliation/internal/usecase"
	mock_usecase "agency-reconciliation/internal/usecase/mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	anaID  = uuid.MustParse("3f1d0c7a-1111-4c41-9a8e-000000000001")
	boID   = uuid.MustParse("3f1d0c7a-1111-4c41-9a8e-000000000002")
	cyID   = uuid.MustParse("3f1d0c7a-1111-4c41-9a8e-000000000003")
	xenaID = uuid.MustParse("9a0e2b44-2222-40de-944b-000000000001")
	yuriID = uuid.MustParse("9a0e2b44-2222-40de-944b-000000000002")
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullMoney(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(money(s))
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, money(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func fixtureAgents() []domain.Agent {
	return []domain.Agent{
		{ID: boID, Name: "Bo", Active: true, Compensation: domain.AgentCompensation{FlatSalaryPerMonth: nullMoney("300")}},
		{ID: cyID, Name: "Cy", Active: false, Compensation: domain.AgentCompensation{CommissionPercent: nullMoney("5")}},
		{ID: anaID, Name: "Ana", Active: true, Compensation: domain.AgentCompensation{CommissionPercent: nullMoney("10")}},
	}
}

func fixtureOwners() []domain.ContentOwner {
	return []domain.ContentOwner{
		{ID: yuriID, Name: "Yuri", Active: true, Compensation: domain.OwnerCompensation{
			Mode: domain.FixedCost, FixedCost: nullMoney("100"), PlatformTakePercent: money("20"),
		}},
		{ID: xenaID, Name: "Xena", Active: true, Compensation: domain.OwnerCompensation{
			Mode: domain.RevenueShare, RevenueSharePercent: nullMoney("50"), PlatformTakePercent: money("15"),
		}},
	}
}

func tx(agent, owner uuid.UUID, month time.Month, day int, variable, flat string, kind domain.Kind) domain.Transaction {
	return domain.Transaction{
		ID:             uuid.New(),
		AgentID:        agent,
		ContentOwnerID: owner,
		OccurredAt:     time.Date(2025, month, day, 14, 0, 0, 0, time.UTC),
		VariableAmount: money(variable),
		FlatAmount:     money(flat),
		Kind:           kind,
	}
}

func fixtureTransactions() []domain.Transaction {
	return []domain.Transaction{
		tx(anaID, xenaID, time.March, 3, "100", "0", domain.KindTip),
		tx(anaID, xenaID, time.March, 4, "0", "50", domain.KindFlat),
		tx(boID, yuriID, time.March, 10, "400", "20", domain.KindSubscription),
		tx(cyID, xenaID, time.March, 12, "200", "0", domain.KindMessage),
	}
}

func fixturePayments() []domain.Payment {
	return []domain.Payment{
		{ID: uuid.New(), AgentID: anaID, PaidAt: time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC), Amount: money("70")},
		{ID: uuid.New(), AgentID: boID, PaidAt: time.Date(2025, time.March, 28, 0, 0, 0, 0, time.UTC), Amount: money("100")},
	}
}

func fixtureCostLedger() []domain.CostLedgerEntry {
	return []domain.CostLedgerEntry{
		{ContentOwnerID: xenaID, Year: 2025, Month: time.March, MarketingCost: money("30"), ToolCost: decimal.Zero, OtherCost: decimal.Zero},
	}
}

func march2025Request() usecase.ReportRequest {
	return usecase.ReportRequest{Mode: domain.SingleMonth, Month: time.March, Year: 2025}
}

func newUseCase(repo usecase.Repository) *usecase.ReportingUseCase {
	resolver := period.NewResolver(domain.NewYearMonth(2025, time.January), time.UTC)
	return usecase.NewReportingUseCase(repo, resolver, usecase.NewAggregator(4))
}

type repoErrors struct {
	agents       error
	owners       error
	transactions error
	payments     error
	costLedger   error
}

func TestReportingUseCase_Report(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	march := domain.NewYearMonth(2025, time.March)

	tests := []struct {
		name    string
		req     usecase.ReportRequest
		errs    repoErrors
		wantErr bool
	}{
		{
			name: "single month report",
			req:  march2025Request(),
		},
		{
			name:    "agent listing fails",
			req:     march2025Request(),
			errs:    repoErrors{agents: errors.New("connection reset")},
			wantErr: true,
		},
		{
			name:    "owner listing fails",
			req:     march2025Request(),
			errs:    repoErrors{owners: errors.New("connection reset")},
			wantErr: true,
		},
		{
			name:    "transaction query fails",
			req:     march2025Request(),
			errs:    repoErrors{transactions: errors.New("timeout")},
			wantErr: true,
		},
		{
			name:    "payment query fails",
			req:     march2025Request(),
			errs:    repoErrors{payments: errors.New("timeout")},
			wantErr: true,
		},
		{
			name:    "cost ledger query fails",
			req:     march2025Request(),
			errs:    repoErrors{costLedger: errors.New("timeout")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := mock_usecase.NewMockRepository(ctrl)

			// Calls stop at the first failure.
			mRepo.EXPECT().ListAgents(gomock.Any()).Return(fixtureAgents(), tt.errs.agents)
			if tt.errs.agents == nil {
				mRepo.EXPECT().ListContentOwners(gomock.Any()).Return(fixtureOwners(), tt.errs.owners)
			}
			if tt.errs.agents == nil && tt.errs.owners == nil {
				mRepo.EXPECT().
					QueryTransactions(gomock.Any(), domain.TransactionQuery{Start: start, End: end}).
					Return(fixtureTransactions(), tt.errs.transactions)
			}
			if tt.errs.agents == nil && tt.errs.owners == nil && tt.errs.transactions == nil {
				mRepo.EXPECT().
					QueryPayments(gomock.Any(), domain.PaymentQuery{Start: start, End: end}).
					Return(fixturePayments(), tt.errs.payments)
			}
			if tt.errs.agents == nil && tt.errs.owners == nil && tt.errs.transactions == nil && tt.errs.payments == nil {
				mRepo.EXPECT().
					QueryCostLedger(gomock.Any(), domain.CostLedgerQuery{From: march, To: march}).
					Return(fixtureCostLedger(), tt.errs.costLedger)
			}

			got, err := newUseCase(mRepo).Report(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, domain.SingleMonth, got.Window.Mode)
			assert.Equal(t, 1, got.Window.MonthSpan)

			require.Len(t, got.Agents, 2)
			ana, bo := got.Agents[0], got.Agents[1]
			assert.Equal(t, "Ana", ana.AgentName)
			assertMoney(t, "60", ana.TotalEarnings, "Ana TotalEarnings")
			assertMoney(t, "70", ana.PaymentsInWindow, "Ana PaymentsInWindow")
			assertMoney(t, "-10", ana.AmountOwed, "Ana AmountOwed")
			assert.Equal(t, "Bo", bo.AgentName)
			assertMoney(t, "300", bo.SalaryComponent, "Bo SalaryComponent")
			assertMoney(t, "320", bo.TotalEarnings, "Bo TotalEarnings")
			assertMoney(t, "220", bo.AmountOwed, "Bo AmountOwed")

			require.Len(t, got.ContentOwners, 2)
			xena, yuri := got.ContentOwners[0], got.ContentOwners[1]
			assert.Equal(t, "Xena", xena.ContentOwnerName)
			assertMoney(t, "300", xena.GrossVariable, "Xena GrossVariable")
			assertMoney(t, "120", xena.OwnerEarnings, "Xena OwnerEarnings")
			assertMoney(t, "15", xena.Cashback, "Xena Cashback")
			assertMoney(t, "135", xena.NetRevenue, "Xena NetRevenue")
			assertMoney(t, "70", xena.AgentCommissionsAttributed, "Xena AgentCommissionsAttributed")
			assertMoney(t, "35", xena.AgencyProfit, "Xena AgencyProfit")
			assert.Equal(t, "Yuri", yuri.ContentOwnerName)
			assertMoney(t, "100", yuri.OwnerEarnings, "Yuri OwnerEarnings")
			assertMoney(t, "20", yuri.AgentCommissionsAttributed, "Yuri AgentCommissionsAttributed")
			assertMoney(t, "200", yuri.AgencyProfit, "Yuri AgencyProfit")

			totals := got.Totals
			assertMoney(t, "380", totals.TotalCommissionsOwed, "TotalCommissionsOwed")
			assertMoney(t, "300", totals.TotalFlatSalaries, "TotalFlatSalaries")
			assertMoney(t, "170", totals.TotalPayments, "TotalPayments")
			require.NotNil(t, totals.TotalOwedNetOfPayments)
			assertMoney(t, "210", *totals.TotalOwedNetOfPayments, "TotalOwedNetOfPayments")
			assertMoney(t, "700", totals.TotalGrossVariable, "TotalGrossVariable")
			assertMoney(t, "15", totals.TotalCashback, "TotalCashback")
			assertMoney(t, "220", totals.TotalOwnerEarnings, "TotalOwnerEarnings")
			assertMoney(t, "355", totals.TotalNetRevenue, "TotalNetRevenue")
			assertMoney(t, "30", totals.TotalCosts, "TotalCosts")
			assertMoney(t, "235", totals.TotalAgencyProfit, "TotalAgencyProfit")
			assertMoney(t, "-65", totals.NetAgencyProfit, "NetAgencyProfit")
		})
	}
}

func TestReportingUseCase_Report_InvalidPeriodSkipsRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mRepo := mock_usecase.NewMockRepository(ctrl)

	got, err := newUseCase(mRepo).Report(context.Background(), usecase.ReportRequest{Mode: domain.Cumulative, Month: time.December, Year: 2024})

	assert.ErrorIs(t, err, period.ErrBeforeInception)
	assert.Nil(t, got)
}

// snapshotRepository is a store that can serve a consistent snapshot.
type snapshotRepository struct {
	*mock_usecase.MockRepository
	*mock_usecase.MockSnapshotLoader
}

func TestReportingUseCase_Report_UsesSnapshotLoader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := snapshotRepository{
		MockRepository:     mock_usecase.NewMockRepository(ctrl),
		MockSnapshotLoader: mock_usecase.NewMockSnapshotLoader(ctrl),
	}

	wantWindow := domain.ReportingWindow{
		Mode:      domain.Cumulative,
		Start:     time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		MonthSpan: 3,
	}
	repo.MockSnapshotLoader.EXPECT().
		LoadSnapshot(gomock.Any(), domain.SnapshotQuery{Window: wantWindow}).
		Return(&domain.Snapshot{
			Agents:        fixtureAgents(),
			ContentOwners: fixtureOwners(),
			Transactions:  fixtureTransactions(),
			Payments:      fixturePayments(),
			CostLedger:    fixtureCostLedger(),
		}, nil)

	got, err := newUseCase(repo).Report(context.Background(), usecase.ReportRequest{Mode: domain.Cumulative, Month: time.March, Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, wantWindow, got.Window)
	assert.Nil(t, got.Totals.TotalOwedNetOfPayments)
	assertMoney(t, "900", got.Totals.TotalFlatSalaries, "TotalFlatSalaries")
	// Three months of Yuri's fixed cost.
	assertMoney(t, "300", got.ContentOwners[1].OwnerEarnings, "Yuri OwnerEarnings")
}

func TestReportingUseCase_Report_SnapshotLoaderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := snapshotRepository{
		MockRepository:     mock_usecase.NewMockRepository(ctrl),
		MockSnapshotLoader: mock_usecase.NewMockSnapshotLoader(ctrl),
	}
	repo.MockSnapshotLoader.EXPECT().LoadSnapshot(gomock.Any(), gomock.Any()).Return(nil, errors.New("serialization failure"))

	got, err := newUseCase(repo).Report(context.Background(), march2025Request())

	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestReportingUseCase_AgentReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	t.Run("known agent", func(t *testing.T) {
		mRepo := mock_usecase.NewMockRepository(ctrl)
		agentID := anaID
		mRepo.EXPECT().ListAgents(gomock.Any()).Return(fixtureAgents(), nil)
		mRepo.EXPECT().
			QueryTransactions(gomock.Any(), domain.TransactionQuery{Start: start, End: end, AgentID: &agentID}).
			Return(fixtureTransactions()[:2], nil)
		mRepo.EXPECT().
			QueryPayments(gomock.Any(), domain.PaymentQuery{Start: start, End: end, AgentID: &agentID}).
			Return(fixturePayments()[:1], nil)

		got, err := newUseCase(mRepo).AgentReport(context.Background(), march2025Request(), anaID)
		require.NoError(t, err)

		assert.Equal(t, "Ana", got.AgentName)
		assertMoney(t, "60", got.TotalEarnings, "TotalEarnings")
		assertMoney(t, "-10", got.AmountOwed, "AmountOwed")
	})

	t.Run("unknown agent", func(t *testing.T) {
		mRepo := mock_usecase.NewMockRepository(ctrl)
		mRepo.EXPECT().ListAgents(gomock.Any()).Return(fixtureAgents(), nil)

		got, err := newUseCase(mRepo).AgentReport(context.Background(), march2025Request(), uuid.New())

		assert.ErrorIs(t, err, usecase.ErrAgentNotFound)
		assert.Nil(t, got)
	})
}

func TestReportingUseCase_OwnerReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	march := domain.NewYearMonth(2025, time.March)

	t.Run("known owner", func(t *testing.T) {
		mRepo := mock_usecase.NewMockRepository(ctrl)
		ownerID := xenaID
		mRepo.EXPECT().ListContentOwners(gomock.Any()).Return(fixtureOwners(), nil)
		mRepo.EXPECT().ListAgents(gomock.Any()).Return(fixtureAgents(), nil)
		mRepo.EXPECT().
			QueryTransactions(gomock.Any(), domain.TransactionQuery{Start: start, End: end, ContentOwnerID: &ownerID}).
			Return([]domain.Transaction{fixtureTransactions()[0], fixtureTransactions()[1], fixtureTransactions()[3]}, nil)
		mRepo.EXPECT().
			QueryCostLedger(gomock.Any(), domain.CostLedgerQuery{From: march, To: march, ContentOwnerID: &ownerID}).
			Return(fixtureCostLedger(), nil)

		got, err := newUseCase(mRepo).OwnerReport(context.Background(), march2025Request(), xenaID)
		require.NoError(t, err)

		assert.Equal(t, "Xena", got.ContentOwnerName)
		assertMoney(t, "135", got.NetRevenue, "NetRevenue")
		assertMoney(t, "35", got.AgencyProfit, "AgencyProfit")
	})

	t.Run("unknown owner", func(t *testing.T) {
		mRepo := mock_usecase.NewMockRepository(ctrl)
		mRepo.EXPECT().ListContentOwners(gomock.Any()).Return(fixtureOwners(), nil)

		got, err := newUseCase(mRepo).OwnerReport(context.Background(), march2025Request(), uuid.New())

		assert.ErrorIs(t, err, usecase.ErrContentOwnerNotFound)
		assert.Nil(t, got)
	})
}
