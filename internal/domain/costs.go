package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomCost is an administrator-labelled extra cost line.
type CustomCost struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CostLedgerEntry holds one content owner's manually entered costs for one
// calendar month. A month without an entry costs nothing.
type CostLedgerEntry struct {
	ContentOwnerID uuid.UUID       `json:"content_owner_id"`
	Year           int             `json:"year"`
	Month          time.Month      `json:"month"`
	MarketingCost  decimal.Decimal `json:"marketing_cost"`
	ToolCost       decimal.Decimal `json:"tool_cost"`
	OtherCost      decimal.Decimal `json:"other_cost"`
	CustomCosts    []CustomCost    `json:"custom_costs"`
}

// Period returns the calendar month the entry is keyed on.
func (e CostLedgerEntry) Period() YearMonth {
	return YearMonth{Year: e.Year, Month: e.Month}
}

// CustomTotal sums the custom cost lines.
func (e CostLedgerEntry) CustomTotal() decimal.Decimal {
	total := decimal.Zero
	for _, c := range e.CustomCosts {
		total = total.Add(c.Amount)
	}
	return total
}

// Total is marketing + tool + other + every custom line.
func (e CostLedgerEntry) Total() decimal.Decimal {
	return e.MarketingCost.Add(e.ToolCost).Add(e.OtherCost).Add(e.CustomTotal())
}

// Validate rejects negative costs and impossible months.
func (e CostLedgerEntry) Validate() error {
	if !e.Period().Valid() {
		return fmt.Errorf("cost ledger %s/%s: invalid month %d", e.ContentOwnerID, e.Period(), e.Month)
	}
	if e.MarketingCost.IsNegative() || e.ToolCost.IsNegative() || e.OtherCost.IsNegative() {
		return fmt.Errorf("cost ledger %s/%s: %w", e.ContentOwnerID, e.Period(), ErrNegativeAmount)
	}
	for _, c := range e.CustomCosts {
		if c.Amount.IsNegative() {
			return fmt.Errorf("cost ledger %s/%s custom cost %q: %w", e.ContentOwnerID, e.Period(), c.Label, ErrNegativeAmount)
		}
	}
	return nil
}

// CostLedgerQuery selects entries keyed on months From..To inclusive.
type CostLedgerQuery struct {
	From           YearMonth
	To             YearMonth
	ContentOwnerID *uuid.UUID
}

// Matches reports whether e satisfies the query.
func (q CostLedgerQuery) Matches(e CostLedgerEntry) bool {
	p := e.Period()
	if p.Before(q.From) || q.To.Before(p) {
		return false
	}
	return q.ContentOwnerID == nil || e.ContentOwnerID == *q.ContentOwnerID
}

// Snapshot is one consistent read of everything a roll-up needs. Every
// per-agent and per-owner computation of a report works off the same Snapshot.
type Snapshot struct {
	Agents        []Agent
	ContentOwners []ContentOwner
	Transactions  []Transaction
	Payments      []Payment
	CostLedger    []CostLedgerEntry
}

// SnapshotQuery describes the data one report needs.
type SnapshotQuery struct {
	Window ReportingWindow
}

// TransactionQuery returns the transaction filter covering the window.
func (q SnapshotQuery) TransactionQuery() TransactionQuery {
	return TransactionQuery{Start: q.Window.Start, End: q.Window.End}
}

// PaymentQuery returns the payment filter covering the window.
func (q SnapshotQuery) PaymentQuery() PaymentQuery {
	return PaymentQuery{Start: q.Window.Start, End: q.Window.End}
}

// CostLedgerQuery returns the cost-ledger filter for every month the window touches.
func (q SnapshotQuery) CostLedgerQuery() CostLedgerQuery {
	first, last := q.Window.Months()
	return CostLedgerQuery{From: first, To: last}
}
