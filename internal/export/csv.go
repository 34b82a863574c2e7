package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"agency-reconciliation/internal/domain"
)

// WriteCSV writes the agent section, a blank line, then the content-owner
// section. Money is printed with two decimals.
func WriteCSV(w io.Writer, report *domain.Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(agentHeaders); err != nil {
		return fmt.Errorf("failed to write agent header: %w", err)
	}
	for _, a := range report.Agents {
		record := []string{
			a.AgentID.String(), a.AgentName, strconv.Itoa(a.TransactionCount), fixed(a.SalesTotal),
			fixed(a.VariableTotal), fixed(a.FlatTotal), fixed(a.CommissionComponent),
			fixed(a.SalaryComponent), fixed(a.TotalEarnings), fixed(a.PaymentsInWindow),
			fixed(a.AmountOwed),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write agent %s: %w", a.AgentID, err)
		}
	}

	if err := writer.Write(nil); err != nil {
		return err
	}

	if err := writer.Write(ownerHeaders); err != nil {
		return fmt.Errorf("failed to write content owner header: %w", err)
	}
	for _, o := range report.ContentOwners {
		record := []string{
			o.ContentOwnerID.String(), o.ContentOwnerName, string(o.CompensationMode), strconv.Itoa(o.TransactionCount),
			fixed(o.GrossVariable), fixed(o.PlatformTakePercent), fixed(o.CashbackPercent), fixed(o.Cashback),
			fixed(o.RevenueAfterPlatformTake), fixed(o.OwnerEarnings), fixed(o.NetRevenue),
			fixed(o.AgentCommissionsAttributed), fixed(o.Costs.Marketing), fixed(o.Costs.Tool),
			fixed(o.Costs.Other), fixed(o.Costs.Custom), fixed(o.Costs.Total), fixed(o.AgencyProfit),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write content owner %s: %w", o.ContentOwnerID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
