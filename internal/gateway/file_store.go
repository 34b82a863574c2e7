package gateway

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"agency-reconciliation/internal/domain"
)

const (
	TransactionsFile = "transactions.csv"
	PaymentsFile     = "payments.csv"
	LedgerFile       = "ledger.yaml"
)

// FileStore serves reports from a data directory holding transactions.csv,
// payments.csv and ledger.yaml. Everything is read and validated once at
// load time; queries filter in memory.
type FileStore struct {
	dir    string
	logger zerolog.Logger

	agents        []domain.Agent
	contentOwners []domain.ContentOwner
	transactions  []domain.Transaction
	payments      []domain.Payment
	costLedger    []domain.CostLedgerEntry
}

// LoadFileStore reads the data directory. payments.csv is optional; the
// other two files are required.
func LoadFileStore(ctx context.Context, dir string, logger zerolog.Logger) (*FileStore, error) {
	s := &FileStore{
		dir:    dir,
		logger: logger.With().Str("component", "FileStore").Logger(),
	}

	l, err := readLedger(filepath.Join(dir, LedgerFile))
	if err != nil {
		return nil, err
	}
	s.agents, s.contentOwners, s.costLedger = l.agents, l.contentOwners, l.costLedger

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.transactions, err = readTransactions(filepath.Join(dir, TransactionsFile)); err != nil {
		return nil, err
	}

	paymentsPath := filepath.Join(dir, PaymentsFile)
	s.payments, err = readPayments(paymentsPath)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Warn().Str("path", paymentsPath).Msg("No payments file, treating as no payments")
		err = nil
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("dir", dir).
		Int("agents", len(s.agents)).
		Int("content_owners", len(s.contentOwners)).
		Int("transactions", len(s.transactions)).
		Int("payments", len(s.payments)).
		Int("cost_entries", len(s.costLedger)).
		Msg("Loaded data directory")

	return s, nil
}

// QueryTransactions returns the transactions matching q.
func (s *FileStore) QueryTransactions(ctx context.Context, q domain.TransactionQuery) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []domain.Transaction
	for _, tx := range s.transactions {
		if q.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// QueryPayments returns the payments matching q.
func (s *FileStore) QueryPayments(ctx context.Context, q domain.PaymentQuery) ([]domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []domain.Payment
	for _, p := range s.payments {
		if q.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// QueryCostLedger returns the cost-ledger entries matching q.
func (s *FileStore) QueryCostLedger(ctx context.Context, q domain.CostLedgerQuery) ([]domain.CostLedgerEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []domain.CostLedgerEntry
	for _, e := range s.costLedger {
		if q.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListAgents returns every configured agent, active or not.
func (s *FileStore) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Agent(nil), s.agents...), nil
}

// ListContentOwners returns every configured content owner, active or not.
func (s *FileStore) ListContentOwners(ctx context.Context) ([]domain.ContentOwner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.ContentOwner(nil), s.contentOwners...), nil
}

// LoadSnapshot serves all reads of one report from the data loaded at start-up.
func (s *FileStore) LoadSnapshot(ctx context.Context, q domain.SnapshotQuery) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	var err error
	if snap.Agents, err = s.ListAgents(ctx); err != nil {
		return nil, err
	}
	if snap.ContentOwners, err = s.ListContentOwners(ctx); err != nil {
		return nil, err
	}
	if snap.Transactions, err = s.QueryTransactions(ctx, q.TransactionQuery()); err != nil {
		return nil, err
	}
	if snap.Payments, err = s.QueryPayments(ctx, q.PaymentQuery()); err != nil {
		return nil, err
	}
	if snap.CostLedger, err = s.QueryCostLedger(ctx, q.CostLedgerQuery()); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("mode", string(q.Window.Mode)).
		Time("start", q.Window.Start).
		Time("end", q.Window.End).
		Int("transactions", len(snap.Transactions)).
		Msg("Snapshot loaded")

	return snap, nil
}
