package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"agency-reconciliation/internal/domain"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS agents (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    commission_percent NUMERIC(7,4),
    flat_salary_per_month NUMERIC(14,2),
    CONSTRAINT agents_single_compensation CHECK (commission_percent IS NULL OR flat_salary_per_month IS NULL)
);

CREATE TABLE IF NOT EXISTS content_owners (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    compensation_mode TEXT NOT NULL DEFAULT '',
    revenue_share_percent NUMERIC(7,4),
    fixed_cost NUMERIC(14,2),
    platform_take_percent NUMERIC(7,4) NOT NULL DEFAULT 20
);

CREATE TABLE IF NOT EXISTS transactions (
    id UUID PRIMARY KEY,
    agent_id UUID NOT NULL REFERENCES agents(id),
    content_owner_id UUID NOT NULL REFERENCES content_owners(id),
    occurred_at TIMESTAMPTZ NOT NULL,
    kind TEXT NOT NULL,
    variable_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
    flat_amount NUMERIC(14,2) NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_transactions_occurred_at ON transactions (occurred_at);
CREATE INDEX IF NOT EXISTS idx_transactions_agent ON transactions (agent_id, occurred_at);
CREATE INDEX IF NOT EXISTS idx_transactions_owner ON transactions (content_owner_id, occurred_at);

CREATE TABLE IF NOT EXISTS payments (
    id UUID PRIMARY KEY,
    agent_id UUID NOT NULL REFERENCES agents(id),
    paid_at TIMESTAMPTZ NOT NULL,
    amount NUMERIC(14,2) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_payments_agent ON payments (agent_id, paid_at);

CREATE TABLE IF NOT EXISTS cost_ledger (
    content_owner_id UUID NOT NULL REFERENCES content_owners(id),
    year INT NOT NULL,
    month INT NOT NULL CHECK (month BETWEEN 1 AND 12),
    marketing_cost NUMERIC(14,2) NOT NULL DEFAULT 0,
    tool_cost NUMERIC(14,2) NOT NULL DEFAULT 0,
    other_cost NUMERIC(14,2) NOT NULL DEFAULT 0,
    custom_costs JSONB NOT NULL DEFAULT '[]'::jsonb,
    PRIMARY KEY (content_owner_id, year, month)
);
`

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// PostgresStore reads reporting data from PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// OpenPostgres connects to databaseURL and verifies the connection.
func OpenPostgres(ctx context.Context, databaseURL string, logger zerolog.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgresStore(db, logger), nil
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *sql.DB, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger.With().Str("component", "PostgresStore").Logger(),
	}
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Migrate creates the schema if it does not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	s.logger.Info().Msg("Schema is up to date")
	return nil
}

// QueryTransactions returns the transactions matching q.
func (s *PostgresStore) QueryTransactions(ctx context.Context, q domain.TransactionQuery) ([]domain.Transaction, error) {
	return queryTransactions(ctx, s.db, q)
}

// QueryPayments returns the payments matching q.
func (s *PostgresStore) QueryPayments(ctx context.Context, q domain.PaymentQuery) ([]domain.Payment, error) {
	return queryPayments(ctx, s.db, q)
}

// QueryCostLedger returns the cost-ledger entries matching q.
func (s *PostgresStore) QueryCostLedger(ctx context.Context, q domain.CostLedgerQuery) ([]domain.CostLedgerEntry, error) {
	return queryCostLedger(ctx, s.db, q)
}

// ListAgents returns every agent, active or not.
func (s *PostgresStore) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return listAgents(ctx, s.db)
}

// ListContentOwners returns every content owner, active or not.
func (s *PostgresStore) ListContentOwners(ctx context.Context) ([]domain.ContentOwner, error) {
	return listContentOwners(ctx, s.db)
}

// LoadSnapshot runs every read of one report inside a single repeatable-read,
// read-only transaction so concurrent writes cannot skew the totals.
func (s *PostgresStore) LoadSnapshot(ctx context.Context, q domain.SnapshotQuery) (*domain.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer tx.Rollback()

	snap := &domain.Snapshot{}
	if snap.Agents, err = listAgents(ctx, tx); err != nil {
		return nil, err
	}
	if snap.ContentOwners, err = listContentOwners(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Transactions, err = queryTransactions(ctx, tx, q.TransactionQuery()); err != nil {
		return nil, err
	}
	if snap.Payments, err = queryPayments(ctx, tx, q.PaymentQuery()); err != nil {
		return nil, err
	}
	if snap.CostLedger, err = queryCostLedger(ctx, tx, q.CostLedgerQuery()); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to close snapshot: %w", err)
	}

	s.logger.Debug().
		Str("mode", string(q.Window.Mode)).
		Time("start", q.Window.Start).
		Time("end", q.Window.End).
		Int("transactions", len(snap.Transactions)).
		Int("payments", len(snap.Payments)).
		Msg("Snapshot loaded")

	return snap, nil
}

// whereBuilder collects AND-ed conditions with numbered placeholders.
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(cond, len(b.args)))
}

func (b *whereBuilder) String() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

func buildTransactionQuery(q domain.TransactionQuery) (string, []any) {
	var w whereBuilder
	if !q.Start.IsZero() {
		w.add("occurred_at >= $%d", q.Start)
	}
	if !q.End.IsZero() {
		w.add("occurred_at < $%d", q.End)
	}
	if q.AgentID != nil {
		w.add("agent_id = $%d", *q.AgentID)
	}
	if q.ContentOwnerID != nil {
		w.add("content_owner_id = $%d", *q.ContentOwnerID)
	}
	return "SELECT id, agent_id, content_owner_id, occurred_at, kind, variable_amount, flat_amount FROM transactions" +
		w.String() + " ORDER BY occurred_at, id", w.args
}

func buildPaymentQuery(q domain.PaymentQuery) (string, []any) {
	var w whereBuilder
	if !q.Start.IsZero() {
		w.add("paid_at >= $%d", q.Start)
	}
	if !q.End.IsZero() {
		w.add("paid_at < $%d", q.End)
	}
	if q.AgentID != nil {
		w.add("agent_id = $%d", *q.AgentID)
	}
	return "SELECT id, agent_id, paid_at, amount FROM payments" + w.String() + " ORDER BY paid_at, id", w.args
}

func buildCostLedgerQuery(q domain.CostLedgerQuery) (string, []any) {
	var w whereBuilder
	w.add("(year * 12 + month - 1) >= $%d", q.From.Index())
	w.add("(year * 12 + month - 1) <= $%d", q.To.Index())
	if q.ContentOwnerID != nil {
		w.add("content_owner_id = $%d", *q.ContentOwnerID)
	}
	return "SELECT content_owner_id, year, month, marketing_cost, tool_cost, other_cost, custom_costs FROM cost_ledger" +
		w.String() + " ORDER BY content_owner_id, year, month", w.args
}

func queryTransactions(ctx context.Context, db queryer, q domain.TransactionQuery) ([]domain.Transaction, error) {
	query, args := buildTransactionQuery(q)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var kind string
		if err := rows.Scan(&tx.ID, &tx.AgentID, &tx.ContentOwnerID, &tx.OccurredAt, &kind, &tx.VariableAmount, &tx.FlatAmount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Kind = domain.Kind(kind)
		if err := tx.Validate(); err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return out, nil
}

func queryPayments(ctx context.Context, db queryer, q domain.PaymentQuery) ([]domain.Payment, error) {
	query, args := buildPaymentQuery(q)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.AgentID, &p.PaidAt, &p.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return out, nil
}

func queryCostLedger(ctx context.Context, db queryer, q domain.CostLedgerQuery) ([]domain.CostLedgerEntry, error) {
	query, args := buildCostLedgerQuery(q)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost ledger: %w", err)
	}
	defer rows.Close()

	var out []domain.CostLedgerEntry
	for rows.Next() {
		var e domain.CostLedgerEntry
		var month int
		var custom []byte
		if err := rows.Scan(&e.ContentOwnerID, &e.Year, &month, &e.MarketingCost, &e.ToolCost, &e.OtherCost, &custom); err != nil {
			return nil, fmt.Errorf("failed to scan cost ledger entry: %w", err)
		}
		e.Month = time.Month(month)
		if e.CustomCosts, err = decodeCustomCosts(custom); err != nil {
			return nil, fmt.Errorf("cost ledger %s/%s: %w", e.ContentOwnerID, e.Period(), err)
		}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cost ledger: %w", err)
	}
	return out, nil
}

func listAgents(ctx context.Context, db queryer) ([]domain.Agent, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, name, active, commission_percent, flat_salary_per_month FROM agents ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var out []domain.Agent
	for rows.Next() {
		var a domain.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Active, &a.Compensation.CommissionPercent, &a.Compensation.FlatSalaryPerMonth); err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		if err := a.Compensation.Validate(); err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.ID, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agents: %w", err)
	}
	return out, nil
}

func listContentOwners(ctx context.Context, db queryer) ([]domain.ContentOwner, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, name, active, compensation_mode, revenue_share_percent, fixed_cost, platform_take_percent FROM content_owners ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list content owners: %w", err)
	}
	defer rows.Close()

	var out []domain.ContentOwner
	for rows.Next() {
		var o domain.ContentOwner
		var mode string
		c := &o.Compensation
		if err := rows.Scan(&o.ID, &o.Name, &o.Active, &mode, &c.RevenueSharePercent, &c.FixedCost, &c.PlatformTakePercent); err != nil {
			return nil, fmt.Errorf("failed to scan content owner: %w", err)
		}
		c.Mode = domain.CompensationMode(mode)
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("content owner %s: %w", o.ID, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate content owners: %w", err)
	}
	return out, nil
}

// customCostRow is the JSONB shape of one custom cost line.
type customCostRow struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

func decodeCustomCosts(raw []byte) ([]domain.CustomCost, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []customCostRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("could not decode custom costs: %w", err)
	}
	var out []domain.CustomCost
	for _, r := range rows {
		out = append(out, domain.CustomCost{Label: r.Label, Amount: r.Amount})
	}
	return out, nil
}
