package gateway

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"agency-reconciliation/internal/domain"
)

// ledgerFile mirrors ledger.yaml. Numbers are kept as strings so they reach
// decimal.Decimal without passing through float64.
type ledgerFile struct {
	Agents        []agentRecord     `yaml:"agents"`
	ContentOwners []ownerRecord     `yaml:"content_owners"`
	CostLedger    []costEntryRecord `yaml:"cost_ledger"`
}

type agentRecord struct {
	ID                 string  `yaml:"id"`
	Name               string  `yaml:"name"`
	Active             *bool   `yaml:"active"`
	CommissionPercent  *string `yaml:"commission_percent"`
	FlatSalaryPerMonth *string `yaml:"flat_salary_per_month"`
}

type ownerRecord struct {
	ID                  string  `yaml:"id"`
	Name                string  `yaml:"name"`
	Active              *bool   `yaml:"active"`
	CompensationMode    string  `yaml:"compensation_mode"`
	RevenueSharePercent *string `yaml:"revenue_share_percent"`
	FixedCost           *string `yaml:"fixed_cost"`
	PlatformTakePercent *string `yaml:"platform_take_percent"`
}

type costEntryRecord struct {
	ContentOwnerID string             `yaml:"content_owner_id"`
	Month          string             `yaml:"month"`
	MarketingCost  string             `yaml:"marketing_cost"`
	ToolCost       string             `yaml:"tool_cost"`
	OtherCost      string             `yaml:"other_cost"`
	CustomCosts    []customCostRecord `yaml:"custom_costs"`
}

type customCostRecord struct {
	Label  string `yaml:"label"`
	Amount string `yaml:"amount"`
}

// ledger is the decoded and validated content of ledger.yaml.
type ledger struct {
	agents        []domain.Agent
	contentOwners []domain.ContentOwner
	costLedger    []domain.CostLedgerEntry
}

// readLedger reads agents, content owners and the monthly cost ledger.
func readLedger(path string) (*ledger, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	var f ledgerFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	out := &ledger{}
	for i, r := range f.Agents {
		agent, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s agents[%d]: %w", path, i, err)
		}
		out.agents = append(out.agents, agent)
	}
	for i, r := range f.ContentOwners {
		owner, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s content_owners[%d]: %w", path, i, err)
		}
		out.contentOwners = append(out.contentOwners, owner)
	}
	for i, r := range f.CostLedger {
		entry, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s cost_ledger[%d]: %w", path, i, err)
		}
		out.costLedger = append(out.costLedger, entry)
	}
	return out, nil
}

func (r agentRecord) toDomain() (domain.Agent, error) {
	id, err := parseUUID("id", r.ID)
	if err != nil {
		return domain.Agent{}, err
	}
	commission, err := parseNullMoney("commission_percent", r.CommissionPercent)
	if err != nil {
		return domain.Agent{}, err
	}
	salary, err := parseNullMoney("flat_salary_per_month", r.FlatSalaryPerMonth)
	if err != nil {
		return domain.Agent{}, err
	}

	agent := domain.Agent{
		ID:     id,
		Name:   r.Name,
		Active: r.Active == nil || *r.Active,
		Compensation: domain.AgentCompensation{
			CommissionPercent:  commission,
			FlatSalaryPerMonth: salary,
		},
	}
	if err := agent.Compensation.Validate(); err != nil {
		return domain.Agent{}, fmt.Errorf("agent %s: %w", id, err)
	}
	return agent, nil
}

func (r ownerRecord) toDomain() (domain.ContentOwner, error) {
	id, err := parseUUID("id", r.ID)
	if err != nil {
		return domain.ContentOwner{}, err
	}
	share, err := parseNullMoney("revenue_share_percent", r.RevenueSharePercent)
	if err != nil {
		return domain.ContentOwner{}, err
	}
	fixed, err := parseNullMoney("fixed_cost", r.FixedCost)
	if err != nil {
		return domain.ContentOwner{}, err
	}
	take := domain.CanonicalPlatformTakePercent
	if r.PlatformTakePercent != nil {
		if take, err = parseMoney("platform_take_percent", *r.PlatformTakePercent); err != nil {
			return domain.ContentOwner{}, err
		}
	}

	owner := domain.ContentOwner{
		ID:     id,
		Name:   r.Name,
		Active: r.Active == nil || *r.Active,
		Compensation: domain.OwnerCompensation{
			Mode:                domain.CompensationMode(strings.ToUpper(r.CompensationMode)),
			RevenueSharePercent: share,
			FixedCost:           fixed,
			PlatformTakePercent: take,
		},
	}
	if err := owner.Compensation.Validate(); err != nil {
		return domain.ContentOwner{}, fmt.Errorf("content owner %s: %w", id, err)
	}
	return owner, nil
}

func (r costEntryRecord) toDomain() (domain.CostLedgerEntry, error) {
	ownerID, err := parseUUID("content_owner_id", r.ContentOwnerID)
	if err != nil {
		return domain.CostLedgerEntry{}, err
	}
	month, err := domain.ParseYearMonth(r.Month)
	if err != nil {
		return domain.CostLedgerEntry{}, err
	}

	entry := domain.CostLedgerEntry{ContentOwnerID: ownerID, Year: month.Year, Month: month.Month}
	if entry.MarketingCost, err = parseMoney("marketing_cost", r.MarketingCost); err != nil {
		return domain.CostLedgerEntry{}, err
	}
	if entry.ToolCost, err = parseMoney("tool_cost", r.ToolCost); err != nil {
		return domain.CostLedgerEntry{}, err
	}
	if entry.OtherCost, err = parseMoney("other_cost", r.OtherCost); err != nil {
		return domain.CostLedgerEntry{}, err
	}
	for _, c := range r.CustomCosts {
		amount, err := parseMoney("custom_costs.amount", c.Amount)
		if err != nil {
			return domain.CostLedgerEntry{}, err
		}
		entry.CustomCosts = append(entry.CustomCosts, domain.CustomCost{Label: c.Label, Amount: amount})
	}

	if err := entry.Validate(); err != nil {
		return domain.CostLedgerEntry{}, err
	}
	return entry, nil
}

// parseNullMoney maps a missing or blank value to an unset NullDecimal.
func parseNullMoney(field string, s *string) (decimal.NullDecimal, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := parseMoney(field, *s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
