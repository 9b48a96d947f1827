package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"

	"github.com/dtroode/findoc-server/internal/logger"
	"github.com/dtroode/findoc-server/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Importer bulk-imports income rows from CSV uploads into finance documents.
type Importer struct {
	finance *Finance
	archive model.Archive
	clock   model.Clock
	logger  *logger.Logger
}

// NewImporter creates an Importer. archive may be nil to skip archiving uploads.
func NewImporter(finance *Finance, archive model.Archive, clock model.Clock, logger *logger.Logger) *Importer {
	if clock == nil {
		clock = time.Now
	}
	return &Importer{finance: finance, archive: archive, clock: clock, logger: logger}
}

// Incomes reads a CSV with a header row (date,name,amount[,currency]) and merges
// its rows into the user's incomes. It returns the number of imported rows.
func (i *Importer) Incomes(ctx context.Context, userID uuid.UUID, r io.Reader) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read upload: %w", err)
	}

	i.archiveUpload(ctx, userID, raw)

	rows, err := ParseIncomeCSV(raw)
	if err != nil {
		i.logger.Info("Import service: rejected upload",
			"user_id", userID,
			"size", len(raw),
			"error", err.Error())
		return 0, err
	}

	imported, err := i.finance.MergeIncomes(ctx, userID, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to merge incomes: %w", err)
	}

	return imported, nil
}

func (i *Importer) archiveUpload(ctx context.Context, userID uuid.UUID, raw []byte) {
	if i.archive == nil {
		return
	}

	key := fmt.Sprintf("imports/%s/%d.csv", userID, i.clock().UnixNano())
	if err := i.archive.Upload(ctx, key, bytes.NewReader(raw), int64(len(raw))); err != nil {
		i.logger.Warn("Import service: failed to archive upload",
			"user_id", userID,
			"key", key,
			"error", err.Error())
		return
	}

	i.logger.Debug("Import service: upload archived",
		"user_id", userID,
		"key", key)
}

// ParseIncomeCSV decodes raw as UTF-8, falling back to Latin-1, and maps every
// data row onto the header columns. Rows the CSV reader cannot parse are skipped.
// An empty upload has no rows.
func ParseIncomeCSV(raw []byte) ([]model.IncomeRow, error) {
	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedImport, err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := columns[name]; !seen {
			columns[name] = idx
		}
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	var rows []model.IncomeRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, fmt.Errorf("%w: %w", model.ErrMalformedImport, err)
		}

		rows = append(rows, model.IncomeRow{
			Date:     field(record, "date"),
			Name:     field(record, "name"),
			Amount:   field(record, "amount"),
			Currency: field(record, "currency"),
		})
	}

	return rows, nil
}

func decodeText(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrMalformedImport, err)
	}

	return string(decoded), nil
}
