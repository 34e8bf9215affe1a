package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

const statsWriteRange = "Stats!A:I"

// GoogleSheetRepository appends dashboard snapshots to a spreadsheet using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed exporter instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendStatsSnapshot writes one snapshot as a row of the Stats sheet.
func (r *GoogleSheetRepository) AppendStatsSnapshot(ctx context.Context, record models.StatsRecord) error {
	return r.writeRow(ctx, statsWriteRange, SnapshotRow(record))
}

// SnapshotRow lays a snapshot out in the column order of the Stats sheet.
func SnapshotRow(record models.StatsRecord) []interface{} {
	return []interface{}{
		record.TakenAt.Format("2006-01-02 15:04:05"),
		record.SKUs,
		record.ActiveSKUs,
		record.Warehouses,
		record.OwnWarehouses,
		record.EcommerceWarehouses,
		record.ThirdPartyWarehouses,
		record.InventoryRows,
		record.TotalAvailable,
	}
}

func (r *GoogleSheetRepository) writeRow(ctx context.Context, sheetRange string, values []interface{}) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}
