// Package export renders a report as a spreadsheet for back-office users.
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"agency-reconciliation/internal/domain"
)

const (
	AgentsSheet        = "Agents"
	ContentOwnersSheet = "Content Owners"
	TotalsSheet        = "Totals"
)

var agentHeaders = []string{
	"Agent ID", "Agent", "Transactions", "Sales", "Variable", "Flat",
	"Commission", "Salary", "Total Earnings", "Payments", "Amount Owed",
}

var ownerHeaders = []string{
	"Content Owner ID", "Content Owner", "Mode", "Transactions", "Gross Variable",
	"Platform Take %", "Cashback %", "Cashback", "Revenue After Take", "Owner Earnings",
	"Net Revenue", "Agent Commissions", "Marketing", "Tool", "Other", "Custom",
	"Total Costs", "Agency Profit",
}

// WriteExcel writes report as an .xlsx workbook with one sheet per section.
func WriteExcel(w io.Writer, report *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with a single "Sheet1"; it becomes the first section.
	if err := f.SetSheetName("Sheet1", AgentsSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", AgentsSheet, err)
	}
	if _, err := f.NewSheet(ContentOwnersSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", ContentOwnersSheet, err)
	}
	if _, err := f.NewSheet(TotalsSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", TotalsSheet, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	agentRows := make([][]any, 0, len(report.Agents))
	for _, a := range report.Agents {
		agentRows = append(agentRows, []any{
			a.AgentID.String(), a.AgentName, a.TransactionCount, money(a.SalesTotal),
			money(a.VariableTotal), money(a.FlatTotal), money(a.CommissionComponent),
			money(a.SalaryComponent), money(a.TotalEarnings), money(a.PaymentsInWindow),
			money(a.AmountOwed),
		})
	}
	if err := writeTable(f, AgentsSheet, bold, agentHeaders, agentRows); err != nil {
		return err
	}

	ownerRows := make([][]any, 0, len(report.ContentOwners))
	for _, o := range report.ContentOwners {
		ownerRows = append(ownerRows, []any{
			o.ContentOwnerID.String(), o.ContentOwnerName, string(o.CompensationMode), o.TransactionCount,
			money(o.GrossVariable), money(o.PlatformTakePercent), money(o.CashbackPercent), money(o.Cashback),
			money(o.RevenueAfterPlatformTake), money(o.OwnerEarnings), money(o.NetRevenue),
			money(o.AgentCommissionsAttributed), money(o.Costs.Marketing), money(o.Costs.Tool),
			money(o.Costs.Other), money(o.Costs.Custom), money(o.Costs.Total), money(o.AgencyProfit),
		})
	}
	if err := writeTable(f, ContentOwnersSheet, bold, ownerHeaders, ownerRows); err != nil {
		return err
	}

	if err := writeTable(f, TotalsSheet, bold, []string{"Metric", "Value"}, totalsRows(report)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, headerStyle int, headers []string, rows [][]any) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("%s: %w", sheet, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("%s: %w", sheet, err)
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, r+2, err)
		}
	}
	return nil
}

// totalsRows lists the agency-wide figures, window first.
func totalsRows(report *domain.Report) [][]any {
	t := report.Totals
	rows := [][]any{
		{"Mode", string(report.Window.Mode)},
		{"Start", report.Window.Start.Format("2006-01-02")},
		{"End (exclusive)", report.Window.End.Format("2006-01-02")},
		{"Months", report.Window.MonthSpan},
		{"Total Commissions Owed", money(t.TotalCommissionsOwed)},
		{"Total Flat Salaries", money(t.TotalFlatSalaries)},
		{"Total Payments", money(t.TotalPayments)},
	}
	if t.TotalOwedNetOfPayments != nil {
		rows = append(rows, []any{"Total Owed Net Of Payments", money(*t.TotalOwedNetOfPayments)})
	}
	return append(rows,
		[]any{"Total Gross Variable", money(t.TotalGrossVariable)},
		[]any{"Total Cashback", money(t.TotalCashback)},
		[]any{"Total Owner Earnings", money(t.TotalOwnerEarnings)},
		[]any{"Total Net Revenue", money(t.TotalNetRevenue)},
		[]any{"Total Costs", money(t.TotalCosts)},
		[]any{"Total Agency Profit", money(t.TotalAgencyProfit)},
		[]any{"Net Agency Profit", money(t.NetAgencyProfit)},
	)
}

// money rounds for display only.
func money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
