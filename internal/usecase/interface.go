package usecase

import (
	"context"

	"agency-reconciliation/internal/domain"
)

// Repository is the read-only data-access port the reporting usecase depends on.
// Implementations filter by the query; the usecase never mutates what it reads.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type Repository interface {
	QueryTransactions(ctx context.Context, q domain.TransactionQuery) ([]domain.Transaction, error)
	QueryPayments(ctx context.Context, q domain.PaymentQuery) ([]domain.Payment, error)
	QueryCostLedger(ctx context.Context, q domain.CostLedgerQuery) ([]domain.CostLedgerEntry, error)
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	ListContentOwners(ctx context.Context) ([]domain.ContentOwner, error)
}

// SnapshotLoader is implemented by stores able to serve every read of one
// report from a single consistent view of the data.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, q domain.SnapshotQuery) (*domain.Snapshot, error)
}
