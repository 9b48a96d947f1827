package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dtroode/findoc-server/internal/logger"
	"github.com/dtroode/findoc-server/internal/model"
)

// Finance owns the single finance document of every user.
//
// Replace is a single atomic upsert, so concurrent replaces are last-writer-wins.
// MergeIncomes is read-modify-write: an import racing another import or a
// replace of the same user can lose the other side's update.
type Finance struct {
	financeStore model.FinanceStore
	logger       *logger.Logger
}

func NewFinance(financeStore model.FinanceStore, logger *logger.Logger) *Finance {
	return &Finance{financeStore: financeStore, logger: logger}
}

// Get returns the user's document content, or an empty document if none exists.
func (f *Finance) Get(ctx context.Context, userID uuid.UUID) (model.FinanceData, error) {
	data, err := f.financeStore.Get(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.FinanceData{}, nil
	}
	if err != nil {
		f.logger.Error("Finance service: failed to get document",
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to get finance document: %w", err)
	}

	return data.Content(), nil
}

// Replace overwrites the user's document with content and returns what was stored.
func (f *Finance) Replace(ctx context.Context, userID uuid.UUID, content model.FinanceData) (model.FinanceData, error) {
	if err := f.financeStore.Upsert(ctx, userID, content.Content()); err != nil {
		f.logger.Error("Finance service: failed to replace document",
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to replace finance document: %w", err)
	}

	saved, err := f.financeStore.Get(ctx, userID)
	if err != nil {
		f.logger.Error("Finance service: failed to read back document",
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to read saved finance document: %w", err)
	}

	f.logger.Info("Finance service: document replaced",
		"user_id", userID,
		"fields", len(saved))

	return saved.Content(), nil
}

// MergeIncomes appends every acceptable row to the document's incomes list and
// returns how many rows were accepted. Invalid rows are skipped.
func (f *Finance) MergeIncomes(ctx context.Context, userID uuid.UUID, rows []model.IncomeRow) (int, error) {
	base, err := f.Get(ctx, userID)
	if err != nil {
		return 0, err
	}

	incomes, ok := base[model.FieldIncomes].([]any)
	if !ok {
		incomes = []any{}
	}

	docCurrency, _ := base[model.FieldCurrency].(string)

	imported, unknownCurrencies := 0, 0
	for _, row := range rows {
		record, ok := incomeRecord(row, docCurrency)
		if !ok {
			continue
		}
		if !knownCurrency(record.currency) {
			unknownCurrencies++
		}
		incomes = append(incomes, record.value())
		imported++
	}

	base[model.FieldIncomes] = incomes

	if err := f.financeStore.Upsert(ctx, userID, base); err != nil {
		f.logger.Error("Finance service: failed to store merged incomes",
			"user_id", userID,
			"error", err.Error())
		return 0, fmt.Errorf("failed to store merged incomes: %w", err)
	}

	if unknownCurrencies > 0 {
		f.logger.Warn("Finance service: imported incomes with unknown currency codes",
			"user_id", userID,
			"count", unknownCurrencies)
	}

	f.logger.Info("Finance service: incomes merged",
		"user_id", userID,
		"rows", len(rows),
		"imported", imported)

	return imported, nil
}

type income struct {
	date     string
	name     string
	amount   float64
	currency string
}

func (i income) value() map[string]any {
	return map[string]any{
		"id":   IncomeID(i.date, i.name),
		"date": i.date,
		"name": i.name,
		"amount": map[string]any{
			"amount":   i.amount,
			"currency": i.currency,
		},
	}
}

// incomeRecord validates row and converts it into a document income record.
func incomeRecord(row model.IncomeRow, docCurrency string) (income, bool) {
	date := strings.TrimSpace(row.Date)
	name := strings.TrimSpace(row.Name)
	if date == "" || name == "" {
		return income{}, false
	}

	amount, ok := ParseAmount(row.Amount)
	if !ok {
		return income{}, false
	}

	return income{
		date:     date,
		name:     name,
		amount:   amount.InexactFloat64(),
		currency: pickCurrency(row.Currency, docCurrency),
	}, true
}

// IncomeID derives the record id from date and name. Rows sharing both get the same id.
func IncomeID(date, name string) string {
	return "inc_import_" + date + "_" + name
}

// ParseAmount parses a decimal amount accepting a comma as decimal separator.
// Amounts outside the float64 range are rejected.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if math.IsInf(d.InexactFloat64(), 0) {
		return decimal.Decimal{}, false
	}

	return d, true
}

// pickCurrency returns the trimmed row currency, else the document currency,
// else the default. Codes are kept as written.
func pickCurrency(rowCurrency, docCurrency string) string {
	for _, c := range []string{rowCurrency, docCurrency} {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}

	return model.DefaultCurrency
}

func knownCurrency(code string) bool {
	return money.GetCurrency(strings.ToUpper(code)) != nil
}
