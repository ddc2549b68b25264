package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const defaultValueInput = "USER_ENTERED"

// Client writes rows into Google Sheets
type Client struct {
	service    *sheets.Service
	valueInput string
}

// Config holds Sheets credentials. Exactly one of CredentialsPath and
// CredentialsJSON is expected; Endpoint overrides the API host in tests.
type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
	Endpoint        string
	// RawValues stores cells as typed instead of parsing them like the UI would
	RawValues bool
}

// NewClient builds a Sheets client scoped to spreadsheets
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}

	switch {
	case cfg.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	case cfg.Endpoint != "":
		opts = append(opts, option.WithoutAuthentication())
	default:
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	valueInput := defaultValueInput
	if cfg.RawValues {
		valueInput = "RAW"
	}
	return &Client{service: service, valueInput: valueInput}, nil
}

// Append adds rows after the last non-empty row of the range
func (c *Client) Append(ctx context.Context, spreadsheetID, a1Range string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := c.service.Spreadsheets.Values.
		Append(spreadsheetID, a1Range, &sheets.ValueRange{Values: rows}).
		ValueInputOption(c.valueInput).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append %s: %w", a1Range, err)
	}
	return nil
}

// Update overwrites the cells starting at the range
func (c *Client) Update(ctx context.Context, spreadsheetID, a1Range string, rows [][]any) error {
	_, err := c.service.Spreadsheets.Values.
		Update(spreadsheetID, a1Range, &sheets.ValueRange{Values: rows}).
		ValueInputOption(c.valueInput).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: update %s: %w", a1Range, err)
	}
	return nil
}

// Clear empties the range without removing formatting
func (c *Client) Clear(ctx context.Context, spreadsheetID, a1Range string) error {
	_, err := c.service.Spreadsheets.Values.
		Clear(spreadsheetID, a1Range, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: clear %s: %w", a1Range, err)
	}
	return nil
}
