package model

import (
	"context"

	"github.com/google/uuid"
)

const (
	// FieldIncomes is the document key holding the list of income records.
	FieldIncomes = "incomes"
	// FieldCurrency is the document-wide default currency.
	FieldCurrency = "currency"
	// DefaultCurrency is used when neither the row nor the document names one.
	DefaultCurrency = "EUR"
)

// Linkage fields owned by the storage layer. They never appear in content
// returned to clients and are dropped from content sent by clients.
const (
	FieldStorageID = "_id"
	FieldUserID    = "user_id"
)

// FinanceStore persists one finance document per user.
type FinanceStore interface {
	// Get returns ErrNotFound when the user has no document yet.
	Get(ctx context.Context, userID uuid.UUID) (FinanceData, error)
	// Upsert atomically inserts or fully replaces the user's document.
	Upsert(ctx context.Context, userID uuid.UUID, data FinanceData) error
}

// FinanceData is the schema-less content of a finance document. Values are
// what encoding/json produces: map[string]any, []any, string, float64, bool, nil.
type FinanceData map[string]any

// IncomeRow is a single unvalidated line of an income import.
type IncomeRow struct {
	Date     string
	Name     string
	Amount   string
	Currency string
}

// Content returns a deep copy of d without the linkage fields.
// The result is never nil.
func (d FinanceData) Content() FinanceData {
	out := make(FinanceData, len(d))
	for k, v := range d {
		if k == FieldStorageID || k == FieldUserID {
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

// Clone returns a deep copy of d.
func (d FinanceData) Clone() FinanceData {
	if d == nil {
		return nil
	}
	out := make(FinanceData, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case FinanceData:
		return map[string]any(t.Clone())
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	case []map[string]any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}
