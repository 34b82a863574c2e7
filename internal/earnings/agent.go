// Package earnings holds the pure compensation and revenue calculators. Every
// function here is a deterministic function of its arguments: no I/O, no
// logging, no shared state.
package earnings

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agency-reconciliation/internal/domain"
)

// ComputeAgentEarnings computes what agentID earned in window and what is
// still owed after the payments issued in the same window. Transactions and
// payments of other agents or outside the window are ignored, so callers may
// pass a whole snapshot.
func ComputeAgentEarnings(
	agentID uuid.UUID,
	compensation domain.AgentCompensation,
	transactions []domain.Transaction,
	payments []domain.Payment,
	window domain.ReportingWindow,
) domain.AgentEarningsResult {
	result := domain.AgentEarningsResult{
		AgentID:             agentID,
		VariableTotal:       decimal.Zero,
		FlatTotal:           decimal.Zero,
		VariableByKind:      make(map[domain.Kind]decimal.Decimal),
		CommissionComponent: decimal.Zero,
		SalaryComponent:     decimal.Zero,
		PaymentsInWindow:    decimal.Zero,
	}

	for _, tx := range transactions {
		if tx.AgentID != agentID || !window.Contains(tx.OccurredAt) {
			continue
		}
		result.TransactionCount++
		result.VariableTotal = result.VariableTotal.Add(tx.VariableAmount)
		result.FlatTotal = result.FlatTotal.Add(tx.FlatAmount)
		if tx.VariableAmount.IsPositive() {
			result.VariableByKind[tx.Kind] = result.VariableByKind[tx.Kind].Add(tx.VariableAmount)
		}
	}
	result.SalesTotal = result.VariableTotal.Add(result.FlatTotal)

	if compensation.HasCommission() {
		result.CommissionComponent = domain.Percent(result.VariableTotal, compensation.CommissionPercent.Decimal)
	}
	if compensation.HasSalary() {
		result.SalaryComponent = compensation.FlatSalaryPerMonth.Decimal.Mul(decimal.NewFromInt(int64(window.MonthSpan)))
	}

	// Flat amounts are always paid in full, whatever the compensation mode.
	result.TotalEarnings = result.CommissionComponent.Add(result.SalaryComponent).Add(result.FlatTotal)

	for _, p := range payments {
		if p.AgentID != agentID || !window.Contains(p.PaidAt) {
			continue
		}
		result.PaymentsInWindow = result.PaymentsInWindow.Add(p.Amount)
	}
	result.AmountOwed = result.TotalEarnings.Sub(result.PaymentsInWindow)

	return result
}
