package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"agency-reconciliation/internal/domain"
	"agency-reconciliation/internal/export"
	"agency-reconciliation/internal/period"
	"agency-reconciliation/internal/usecase"
)

// buildRequest turns the period flags into a report request. A zero month or
// year falls back to the current one in loc.
func buildRequest(modeStr string, month, year int, startDateStr, endDateStr string, loc *time.Location) (usecase.ReportRequest, error) {
	mode, err := period.ParseMode(modeStr)
	if err != nil {
		return usecase.ReportRequest{}, err
	}

	now := time.Now().In(loc)
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	req := usecase.ReportRequest{Mode: mode, Month: time.Month(month), Year: year}

	if startDateStr == "" && endDateStr == "" {
		return req, nil
	}
	if startDateStr == "" || endDateStr == "" {
		return usecase.ReportRequest{}, fmt.Errorf("-start and -end must be given together")
	}
	if mode != domain.Range && mode != domain.YearToDate {
		return usecase.ReportRequest{}, fmt.Errorf("-start/-end only apply to range and ytd modes")
	}

	startDate, err := time.Parse(time.DateOnly, startDateStr)
	if err != nil {
		return usecase.ReportRequest{}, fmt.Errorf("could not parse start date: %w", err)
	}
	endDate, err := time.Parse(time.DateOnly, endDateStr)
	if err != nil {
		return usecase.ReportRequest{}, fmt.Errorf("could not parse end date: %w", err)
	}
	r := period.DateRange(startDate, endDate, loc)
	req.Range = &r
	return req, nil
}

// writeResult renders result in format. csv and xlsx need a full report.
func writeResult(w io.Writer, format string, result any) error {
	if format == "json" {
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to generate JSON report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	}

	report, ok := result.(*domain.Report)
	if !ok {
		return fmt.Errorf("%s output is only available for the full report", format)
	}
	switch format {
	case "csv":
		return export.WriteCSV(w, report)
	case "xlsx":
		return export.WriteExcel(w, report)
	}
	return fmt.Errorf("unknown format %q", format)
}
