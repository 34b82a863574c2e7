package earnings

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agency-reconciliation/internal/domain"
)

// OwnerTransaction is a sale together with the compensation of the agent who made it.
type OwnerTransaction struct {
	domain.Transaction
	Agent domain.AgentCompensation
}

// AttachAgentCompensation pairs each transaction with its agent's
// compensation. Transactions of unknown agents get a zero compensation, which
// attributes only their flat amounts.
func AttachAgentCompensation(transactions []domain.Transaction, agents []domain.Agent) []OwnerTransaction {
	byID := make(map[uuid.UUID]domain.AgentCompensation, len(agents))
	for _, a := range agents {
		byID[a.ID] = a.Compensation
	}
	out := make([]OwnerTransaction, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, OwnerTransaction{Transaction: tx, Agent: byID[tx.AgentID]})
	}
	return out
}

// revenueAfterCanonicalTake is the share of gross left after the canonical
// platform fee: (100 - 20) / 100.
var revenueAfterCanonicalTake = decimal.NewFromInt(100).Sub(domain.CanonicalPlatformTakePercent)

// ComputeOwnerReconciliation computes the revenue, costs and agency profit
// attributable to ownerID in window.
//
// The owner's earnings are always based on gross after the canonical 20%
// platform fee. A reduced take rate only adds a cashback, and the cashback
// belongs to the agency, not the owner.
func ComputeOwnerReconciliation(
	ownerID uuid.UUID,
	compensation domain.OwnerCompensation,
	transactions []OwnerTransaction,
	costLedger []domain.CostLedgerEntry,
	window domain.ReportingWindow,
) domain.ContentOwnerReconciliationResult {
	result := domain.ContentOwnerReconciliationResult{
		ContentOwnerID:             ownerID,
		CompensationMode:           compensation.Mode,
		GrossVariable:              decimal.Zero,
		PlatformTakePercent:        compensation.PlatformTakePercent,
		CashbackPercent:            compensation.CashbackPercent(),
		OwnerEarnings:              decimal.Zero,
		AgentCommissionsAttributed: decimal.Zero,
	}

	for _, tx := range transactions {
		if tx.ContentOwnerID != ownerID || !window.Contains(tx.OccurredAt) {
			continue
		}
		result.TransactionCount++
		result.GrossVariable = result.GrossVariable.Add(tx.VariableAmount)

		attributed := tx.FlatAmount
		if tx.Agent.HasCommission() {
			attributed = attributed.Add(domain.Percent(tx.VariableAmount, tx.Agent.CommissionPercent.Decimal))
		}
		result.AgentCommissionsAttributed = result.AgentCommissionsAttributed.Add(attributed)
	}

	result.Cashback = domain.Percent(result.GrossVariable, result.CashbackPercent)
	result.RevenueAfterPlatformTake = domain.Percent(result.GrossVariable, revenueAfterCanonicalTake)

	switch compensation.Mode {
	case domain.RevenueShare:
		result.OwnerEarnings = domain.Percent(result.RevenueAfterPlatformTake, compensation.RevenueSharePercent.Decimal)
	case domain.FixedCost:
		result.OwnerEarnings = compensation.FixedCost.Decimal.Mul(decimal.NewFromInt(int64(window.MonthSpan)))
	}

	result.NetRevenue = result.RevenueAfterPlatformTake.Sub(result.OwnerEarnings).Add(result.Cashback)
	result.Costs = sumCosts(ownerID, costLedger, window)
	result.AgencyProfit = result.NetRevenue.Sub(result.AgentCommissionsAttributed).Sub(result.Costs.Total)

	return result
}

// sumCosts adds up every entry of ownerID whose month overlaps window.
// Missing months simply contribute nothing.
func sumCosts(ownerID uuid.UUID, costLedger []domain.CostLedgerEntry, window domain.ReportingWindow) domain.CostBreakdown {
	costs := domain.CostBreakdown{
		Marketing: decimal.Zero,
		Tool:      decimal.Zero,
		Other:     decimal.Zero,
		Custom:    decimal.Zero,
	}
	for _, entry := range costLedger {
		if entry.ContentOwnerID != ownerID || !window.OverlapsMonth(entry.Period()) {
			continue
		}
		costs.Marketing = costs.Marketing.Add(entry.MarketingCost)
		costs.Tool = costs.Tool.Add(entry.ToolCost)
		costs.Other = costs.Other.Add(entry.OtherCost)
		costs.Custom = costs.Custom.Add(entry.CustomTotal())
	}
	costs.Total = costs.Marketing.Add(costs.Tool).Add(costs.Other).Add(costs.Custom)
	return costs
}
