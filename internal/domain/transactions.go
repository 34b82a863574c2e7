package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the sale category of a transaction.
type Kind string

const (
	KindSubscription Kind = "SUBSCRIPTION"
	KindTip          Kind = "TIP"
	KindMessage      Kind = "MESSAGE"
	KindPost         Kind = "POST"
	KindStream       Kind = "STREAM"
	KindReferral     Kind = "REFERRAL"
	// KindFlat is a sale carrying only a flat (BASE) amount for the agent.
	KindFlat Kind = "FLAT"
)

// Valid reports whether k is a known sale category.
func (k Kind) Valid() bool {
	switch k {
	case KindSubscription, KindTip, KindMessage, KindPost, KindStream, KindReferral, KindFlat:
		return true
	}
	return false
}

var (
	ErrUnknownKind     = errors.New("unknown transaction kind")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrNonPositiveSale = errors.New("sale amount must be positive")
)

// Transaction is a single sale attributed to an agent and a content owner.
// VariableAmount is commissionable; FlatAmount goes 1:1 to the agent and never
// counts as content-owner revenue.
type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	AgentID        uuid.UUID       `json:"agent_id"`
	ContentOwnerID uuid.UUID       `json:"content_owner_id"`
	OccurredAt     time.Time       `json:"occurred_at"`
	VariableAmount decimal.Decimal `json:"variable_amount"`
	FlatAmount     decimal.Decimal `json:"flat_amount"`
	Kind           Kind            `json:"kind"`
}

// Validate checks the kind and amounts of a transaction.
func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return fmt.Errorf("transaction %s: %w %q", t.ID, ErrUnknownKind, t.Kind)
	}
	if t.VariableAmount.IsNegative() || t.FlatAmount.IsNegative() {
		return fmt.Errorf("transaction %s: %w", t.ID, ErrNegativeAmount)
	}
	if t.Kind == KindFlat {
		if !t.VariableAmount.IsPositive() && !t.FlatAmount.IsPositive() {
			return fmt.Errorf("transaction %s: %w", t.ID, ErrNonPositiveSale)
		}
		return nil
	}
	if !t.VariableAmount.IsPositive() {
		return fmt.Errorf("transaction %s: %w", t.ID, ErrNonPositiveSale)
	}
	return nil
}

// Payment is money already disbursed to an agent.
type Payment struct {
	ID      uuid.UUID       `json:"id"`
	AgentID uuid.UUID       `json:"agent_id"`
	PaidAt  time.Time       `json:"paid_at"`
	Amount  decimal.Decimal `json:"amount"`
}

// Validate rejects negative disbursements.
func (p Payment) Validate() error {
	if p.Amount.IsNegative() {
		return fmt.Errorf("payment %s: %w", p.ID, ErrNegativeAmount)
	}
	return nil
}

// TransactionQuery selects transactions in the half-open range [Start, End).
// Nil ids mean "any".
type TransactionQuery struct {
	Start          time.Time
	End            time.Time
	AgentID        *uuid.UUID
	ContentOwnerID *uuid.UUID
}

// Matches reports whether tx satisfies the query.
func (q TransactionQuery) Matches(tx Transaction) bool {
	if !InRange(tx.OccurredAt, q.Start, q.End) {
		return false
	}
	if q.AgentID != nil && tx.AgentID != *q.AgentID {
		return false
	}
	if q.ContentOwnerID != nil && tx.ContentOwnerID != *q.ContentOwnerID {
		return false
	}
	return true
}

// PaymentQuery selects payments with PaidAt in [Start, End).
type PaymentQuery struct {
	Start   time.Time
	End     time.Time
	AgentID *uuid.UUID
}

// Matches reports whether p satisfies the query.
func (q PaymentQuery) Matches(p Payment) bool {
	if !InRange(p.PaidAt, q.Start, q.End) {
		return false
	}
	return q.AgentID == nil || p.AgentID == *q.AgentID
}

// InRange reports whether t lies in the half-open interval [start, end).
func InRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
