package usecase

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"agency-reconciliation/internal/domain"
	"agency-reconciliation/internal/earnings"
)

// Aggregator runs the per-agent and per-owner calculators over one snapshot
// and rolls the results up into agency totals.
type Aggregator struct {
	concurrency int
}

// NewAggregator creates an aggregator running at most concurrency
// calculations at once. Values below 1 default to GOMAXPROCS.
func NewAggregator(concurrency int) *Aggregator {
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &Aggregator{concurrency: concurrency}
}

// Aggregate computes a full report for window from snap. Only active agents
// and owners are reported. Results are ordered by name, then id.
func (a *Aggregator) Aggregate(ctx context.Context, window domain.ReportingWindow, snap *domain.Snapshot) (*domain.Report, error) {
	if snap == nil {
		snap = &domain.Snapshot{}
	}

	agents := activeAgents(snap.Agents)
	owners := activeOwners(snap.ContentOwners)

	// Bucket once; every task reads its own bucket and nothing is shared for writing.
	txByAgent := make(map[uuid.UUID][]domain.Transaction)
	for _, tx := range snap.Transactions {
		txByAgent[tx.AgentID] = append(txByAgent[tx.AgentID], tx)
	}
	paymentsByAgent := make(map[uuid.UUID][]domain.Payment)
	for _, p := range snap.Payments {
		paymentsByAgent[p.AgentID] = append(paymentsByAgent[p.AgentID], p)
	}
	txByOwner := make(map[uuid.UUID][]earnings.OwnerTransaction)
	for _, tx := range earnings.AttachAgentCompensation(snap.Transactions, snap.Agents) {
		txByOwner[tx.ContentOwnerID] = append(txByOwner[tx.ContentOwnerID], tx)
	}
	costsByOwner := make(map[uuid.UUID][]domain.CostLedgerEntry)
	for _, e := range snap.CostLedger {
		costsByOwner[e.ContentOwnerID] = append(costsByOwner[e.ContentOwnerID], e)
	}

	agentResults := make([]domain.AgentEarningsResult, len(agents))
	ownerResults := make([]domain.ContentOwnerReconciliationResult, len(owners))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, agent := range agents {
		i, agent := i, agent
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := earnings.ComputeAgentEarnings(agent.ID, agent.Compensation, txByAgent[agent.ID], paymentsByAgent[agent.ID], window)
			result.AgentName = agent.Name
			agentResults[i] = result
			return nil
		})
	}
	for i, owner := range owners {
		i, owner := i, owner
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := earnings.ComputeOwnerReconciliation(owner.ID, owner.Compensation, txByOwner[owner.ID], costsByOwner[owner.ID], window)
			result.ContentOwnerName = owner.Name
			ownerResults[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregation aborted: %w", err)
	}

	return &domain.Report{
		Window:        window,
		Agents:        agentResults,
		ContentOwners: ownerResults,
		Totals:        Summarize(window, agentResults, ownerResults),
	}, nil
}

// Summarize rolls per-agent and per-owner results up into agency totals.
// Flat salaries are charged once here, never per owner.
func Summarize(window domain.ReportingWindow, agents []domain.AgentEarningsResult, owners []domain.ContentOwnerReconciliationResult) domain.Totals {
	totals := domain.Totals{
		TotalCommissionsOwed: decimal.Zero,
		TotalFlatSalaries:    decimal.Zero,
		TotalPayments:        decimal.Zero,
		TotalGrossVariable:   decimal.Zero,
		TotalCashback:        decimal.Zero,
		TotalOwnerEarnings:   decimal.Zero,
		TotalNetRevenue:      decimal.Zero,
		TotalCosts:           decimal.Zero,
		TotalAgencyProfit:    decimal.Zero,
	}

	for _, r := range agents {
		totals.TotalCommissionsOwed = totals.TotalCommissionsOwed.Add(r.TotalEarnings)
		totals.TotalFlatSalaries = totals.TotalFlatSalaries.Add(r.SalaryComponent)
		totals.TotalPayments = totals.TotalPayments.Add(r.PaymentsInWindow)
	}
	if window.Bounded() {
		owed := totals.TotalCommissionsOwed.Sub(totals.TotalPayments)
		totals.TotalOwedNetOfPayments = &owed
	}

	for _, r := range owners {
		totals.TotalGrossVariable = totals.TotalGrossVariable.Add(r.GrossVariable)
		totals.TotalCashback = totals.TotalCashback.Add(r.Cashback)
		totals.TotalOwnerEarnings = totals.TotalOwnerEarnings.Add(r.OwnerEarnings)
		totals.TotalNetRevenue = totals.TotalNetRevenue.Add(r.NetRevenue)
		totals.TotalCosts = totals.TotalCosts.Add(r.Costs.Total)
		totals.TotalAgencyProfit = totals.TotalAgencyProfit.Add(r.AgencyProfit)
	}
	totals.NetAgencyProfit = totals.TotalAgencyProfit.Sub(totals.TotalFlatSalaries)

	return totals
}

func activeAgents(all []domain.Agent) []domain.Agent {
	out := make([]domain.Agent, 0, len(all))
	for _, a := range all {
		if a.Active {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func activeOwners(all []domain.ContentOwner) []domain.ContentOwner {
	out := make([]domain.ContentOwner, 0, len(all))
	for _, o := range all {
		if o.Active {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
