package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fedha/internal/report"
)

// SheetsExporter appends monthly report snapshots to a Google Sheets
// spreadsheet. One row per export run.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsExporter builds a client from OAuth client credentials and a
// previously obtained refresh token, both as raw JSON.
func NewSheetsExporter(ctx context.Context, spreadsheetID, sheetName string, clientJSON, tokenJSON []byte) (*SheetsExporter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	cfg, err := google.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("oauth config: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	svc, err := gsheet.NewService(ctx, goption.WithTokenSource(cfg.TokenSource(ctx, &token)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// AppendReport writes one summary row for an owner's monthly report:
// date, owner, period, income, expenses, balance, savings progress.
func (e *SheetsExporter) AppendReport(ctx context.Context, username string, year int, month time.Month, rep *report.Report) (string, error) {
	if e.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:G", e.sheetName)
	row := []any{
		time.Now().UTC().Format("2006-01-02"),
		username,
		fmt.Sprintf("%04d-%02d", year, int(month)),
		rep.TotalIncome.StringFixed(2),
		rep.TotalExpenses.StringFixed(2),
		rep.Balance.StringFixed(2),
		rep.SavingsProgress.StringFixed(1) + "%",
	}

	resp, err := e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rng,
		&gsheet.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append report row to %s: %w", e.sheetName, err)
	}

	ref := ""
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}
	slog.InfoContext(ctx, "Exported monthly report",
		"username", username,
		"period", fmt.Sprintf("%04d-%02d", year, int(month)),
		"range", ref)
	return ref, nil
}
