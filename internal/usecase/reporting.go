package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"agency-reconciliation/internal/domain"
	"agency-reconciliation/internal/earnings"
	"agency-reconciliation/internal/period"
)

var (
	ErrAgentNotFound        = errors.New("agent not found")
	ErrContentOwnerNotFound = errors.New("content owner not found")
)

// ReportRequest selects the reporting window. Range is required for
// RANGE mode and optional for YEAR_TO_DATE.
type ReportRequest struct {
	Mode  domain.PeriodMode
	Month time.Month
	Year  int
	Range *period.ExplicitRange
}

// ReportingUseCase is the entry point used by dashboards and exporters.
type ReportingUseCase struct {
	repo       Repository
	resolver   *period.Resolver
	aggregator *Aggregator
}

// NewReportingUseCase wires the resolver and aggregator to a data source.
func NewReportingUseCase(repo Repository, resolver *period.Resolver, aggregator *Aggregator) *ReportingUseCase {
	return &ReportingUseCase{repo: repo, resolver: resolver, aggregator: aggregator}
}

// Resolve turns the request into a concrete reporting window.
func (uc *ReportingUseCase) Resolve(req ReportRequest) (domain.ReportingWindow, error) {
	window, err := uc.resolver.Resolve(req.Mode, req.Month, req.Year, req.Range)
	if err != nil {
		return domain.ReportingWindow{}, fmt.Errorf("could not resolve period: %w", err)
	}
	return window, nil
}

// Report builds the agency-wide report. All figures come from one snapshot
// fetched up front.
func (uc *ReportingUseCase) Report(ctx context.Context, req ReportRequest) (*domain.Report, error) {
	window, err := uc.Resolve(req)
	if err != nil {
		return nil, err
	}

	snap, err := uc.loadSnapshot(ctx, domain.SnapshotQuery{Window: window})
	if err != nil {
		return nil, err
	}

	return uc.aggregator.Aggregate(ctx, window, snap)
}

// AgentReport builds the single-agent dashboard view.
func (uc *ReportingUseCase) AgentReport(ctx context.Context, req ReportRequest, agentID uuid.UUID) (*domain.AgentEarningsResult, error) {
	window, err := uc.Resolve(req)
	if err != nil {
		return nil, err
	}

	agents, err := uc.repo.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list agents: %w", err)
	}
	agent, ok := findAgent(agents, agentID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, agentID)
	}

	transactions, err := uc.repo.QueryTransactions(ctx, domain.TransactionQuery{Start: window.Start, End: window.End, AgentID: &agentID})
	if err != nil {
		return nil, fmt.Errorf("could not get transactions: %w", err)
	}
	payments, err := uc.repo.QueryPayments(ctx, domain.PaymentQuery{Start: window.Start, End: window.End, AgentID: &agentID})
	if err != nil {
		return nil, fmt.Errorf("could not get payments: %w", err)
	}

	result := earnings.ComputeAgentEarnings(agent.ID, agent.Compensation, transactions, payments, window)
	result.AgentName = agent.Name
	return &result, nil
}

// OwnerReport builds the single content-owner financial view.
func (uc *ReportingUseCase) OwnerReport(ctx context.Context, req ReportRequest, ownerID uuid.UUID) (*domain.ContentOwnerReconciliationResult, error) {
	window, err := uc.Resolve(req)
	if err != nil {
		return nil, err
	}

	owners, err := uc.repo.ListContentOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list content owners: %w", err)
	}
	owner, ok := findOwner(owners, ownerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentOwnerNotFound, ownerID)
	}

	agents, err := uc.repo.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list agents: %w", err)
	}
	transactions, err := uc.repo.QueryTransactions(ctx, domain.TransactionQuery{Start: window.Start, End: window.End, ContentOwnerID: &ownerID})
	if err != nil {
		return nil, fmt.Errorf("could not get transactions: %w", err)
	}
	ledgerQuery := domain.SnapshotQuery{Window: window}.CostLedgerQuery()
	ledgerQuery.ContentOwnerID = &ownerID
	costLedger, err := uc.repo.QueryCostLedger(ctx, ledgerQuery)
	if err != nil {
		return nil, fmt.Errorf("could not get cost ledger: %w", err)
	}

	result := earnings.ComputeOwnerReconciliation(owner.ID, owner.Compensation, earnings.AttachAgentCompensation(transactions, agents), costLedger, window)
	result.ContentOwnerName = owner.Name
	return &result, nil
}

// loadSnapshot reads everything a report needs exactly once. Stores that can
// pin the reads to one consistent view do so through SnapshotLoader.
func (uc *ReportingUseCase) loadSnapshot(ctx context.Context, q domain.SnapshotQuery) (*domain.Snapshot, error) {
	if loader, ok := uc.repo.(SnapshotLoader); ok {
		snap, err := loader.LoadSnapshot(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("could not load snapshot: %w", err)
		}
		return snap, nil
	}

	agents, err := uc.repo.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list agents: %w", err)
	}
	owners, err := uc.repo.ListContentOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list content owners: %w", err)
	}
	transactions, err := uc.repo.QueryTransactions(ctx, q.TransactionQuery())
	if err != nil {
		return nil, fmt.Errorf("could not get transactions: %w", err)
	}
	payments, err := uc.repo.QueryPayments(ctx, q.PaymentQuery())
	if err != nil {
		return nil, fmt.Errorf("could not get payments: %w", err)
	}
	costLedger, err := uc.repo.QueryCostLedger(ctx, q.CostLedgerQuery())
	if err != nil {
		return nil, fmt.Errorf("could not get cost ledger: %w", err)
	}

	return &domain.Snapshot{
		Agents:        agents,
		ContentOwners: owners,
		Transactions:  transactions,
		Payments:      payments,
		CostLedger:    costLedger,
	}, nil
}

func findAgent(agents []domain.Agent, id uuid.UUID) (domain.Agent, bool) {
	for _, a := range agents {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Agent{}, false
}

func findOwner(owners []domain.ContentOwner, id uuid.UUID) (domain.ContentOwner, bool) {
	for _, o := range owners {
		if o.ID == id {
			return o, true
		}
	}
	return domain.ContentOwner{}, false
}
