package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"playbook/internal/metrics"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const sheetRange = "A1:Z"

// SheetPublisher mirrors tabular data into one Google Sheet, creating it on
// first use when no spreadsheet id is configured.
type SheetPublisher struct {
	sheetsSr   *sheets.Service
	driveSr    *drive.Service
	ownerEmail string
	metrics    *metrics.Recorder

	mu      sync.Mutex
	sheetID string
	url     string
}

func NewSheetPublisher(ctx context.Context, spreadsheetID, ownerEmail string, recorder *metrics.Recorder, opts ...option.ClientOption) (*SheetPublisher, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Sheets client: %w", err)
	}

	drv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Drive client: %w", err)
	}

	p := &SheetPublisher{
		sheetsSr:   srv,
		driveSr:    drv,
		ownerEmail: ownerEmail,
		metrics:    recorder,
		sheetID:    spreadsheetID,
	}
	if spreadsheetID != "" {
		p.url = spreadsheetURL(spreadsheetID)
	}
	return p, nil
}

// Publish replaces the sheet contents with rows and returns the sheet URL.
func (p *SheetPublisher) Publish(ctx context.Context, title string, rows [][]interface{}) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	err := p.publish(ctx, title, rows)
	p.metrics.RecordExternalCall(metrics.ServiceSheets, metrics.Outcome(err, nil), time.Since(start))
	if err != nil {
		return "", err
	}
	return p.url, nil
}

func (p *SheetPublisher) publish(ctx context.Context, title string, rows [][]interface{}) error {
	if err := p.ensureSheet(ctx, title); err != nil {
		return err
	}

	_, err := p.sheetsSr.Spreadsheets.Values.Clear(p.sheetID, sheetRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}

	valRange := &sheets.ValueRange{Values: rows}
	_, err = p.sheetsSr.Spreadsheets.Values.Update(p.sheetID, "A1", valRange).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update sheet: %w", err)
	}
	return nil
}

func (p *SheetPublisher) ensureSheet(ctx context.Context, title string) error {
	if p.sheetID != "" {
		return nil
	}

	resp, err := p.sheetsSr.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("create spreadsheet: %w", err)
	}
	id := resp.SpreadsheetId

	if p.ownerEmail != "" {
		_, err = p.driveSr.Permissions.Create(id, &drive.Permission{
			Type:         "user",
			Role:         "writer",
			EmailAddress: p.ownerEmail,
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to add owner: %w", err)
		}
	}

	_, err = p.driveSr.Permissions.Create(id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to make public: %w", err)
	}

	p.sheetID = id
	p.url = resp.SpreadsheetUrl
	if p.url == "" {
		p.url = spreadsheetURL(id)
	}
	return nil
}

func spreadsheetURL(id string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", id)
}
