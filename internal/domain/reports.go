package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgentEarningsResult is what one agent earned in a window, netted against
// payments already issued. AmountOwed is negative on overpayment.
type AgentEarningsResult struct {
	AgentID             uuid.UUID                `json:"agent_id"`
	AgentName           string                   `json:"agent_name,omitempty"`
	TransactionCount    int                      `json:"transaction_count"`
	VariableTotal       decimal.Decimal          `json:"variable_total"`
	FlatTotal           decimal.Decimal          `json:"flat_total"`
	SalesTotal          decimal.Decimal          `json:"sales_total"`
	VariableByKind      map[Kind]decimal.Decimal `json:"variable_by_kind"`
	CommissionComponent decimal.Decimal          `json:"commission_component"`
	SalaryComponent     decimal.Decimal          `json:"salary_component"`
	TotalEarnings       decimal.Decimal          `json:"total_earnings"`
	PaymentsInWindow    decimal.Decimal          `json:"payments_in_window"`
	AmountOwed          decimal.Decimal          `json:"amount_owed"`
}

// CostBreakdown splits an owner's cost-ledger total by category.
type CostBreakdown struct {
	Marketing decimal.Decimal `json:"marketing"`
	Tool      decimal.Decimal `json:"tool"`
	Other     decimal.Decimal `json:"other"`
	Custom    decimal.Decimal `json:"custom"`
	Total     decimal.Decimal `json:"total"`
}

// ContentOwnerReconciliationResult is the revenue and profit attributable to
// one content owner in a window.
type ContentOwnerReconciliationResult struct {
	ContentOwnerID             uuid.UUID        `json:"content_owner_id"`
	ContentOwnerName           string           `json:"content_owner_name,omitempty"`
	CompensationMode           CompensationMode `json:"compensation_mode"`
	TransactionCount           int              `json:"transaction_count"`
	GrossVariable              decimal.Decimal  `json:"gross_variable"`
	PlatformTakePercent        decimal.Decimal  `json:"platform_take_percent"`
	CashbackPercent            decimal.Decimal  `json:"cashback_percent"`
	Cashback                   decimal.Decimal  `json:"cashback"`
	RevenueAfterPlatformTake   decimal.Decimal  `json:"revenue_after_platform_take"`
	OwnerEarnings              decimal.Decimal  `json:"owner_earnings"`
	NetRevenue                 decimal.Decimal  `json:"net_revenue"`
	AgentCommissionsAttributed decimal.Decimal  `json:"agent_commissions_attributed"`
	Costs                      CostBreakdown    `json:"costs"`
	AgencyProfit               decimal.Decimal  `json:"agency_profit"`
}

// Totals are the agency-wide roll-up figures.
// TotalOwedNetOfPayments is nil for cumulative windows.
type Totals struct {
	TotalCommissionsOwed   decimal.Decimal  `json:"total_commissions_owed"`
	TotalFlatSalaries      decimal.Decimal  `json:"total_flat_salaries"`
	TotalPayments          decimal.Decimal  `json:"total_payments"`
	TotalOwedNetOfPayments *decimal.Decimal `json:"total_owed_net_of_payments,omitempty"`
	TotalGrossVariable     decimal.Decimal  `json:"total_gross_variable"`
	TotalCashback          decimal.Decimal  `json:"total_cashback"`
	TotalOwnerEarnings     decimal.Decimal  `json:"total_owner_earnings"`
	TotalNetRevenue        decimal.Decimal  `json:"total_net_revenue"`
	TotalCosts             decimal.Decimal  `json:"total_costs"`
	TotalAgencyProfit      decimal.Decimal  `json:"total_agency_profit"`
	NetAgencyProfit        decimal.Decimal  `json:"net_agency_profit"`
}

// Report is the top-level structure handed to dashboards and exporters.
type Report struct {
	Window        ReportingWindow                    `json:"window"`
	Agents        []AgentEarningsResult              `json:"agents"`
	ContentOwners []ContentOwnerReconciliationResult `json:"content_owners"`
	Totals        Totals                             `json:"totals"`
}
