package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/findoc-server/internal/model"
)

var _ model.FinanceStore = (*FinanceRepository)(nil)

// FinanceRepository keeps every user's document as one JSONB row.
type FinanceRepository struct {
	db DBTX
}

func NewFinanceRepository(db DBTX) *FinanceRepository {
	return &FinanceRepository{
		db: db,
	}
}

func (r *FinanceRepository) Get(ctx context.Context, userID uuid.UUID) (model.FinanceData, error) {
	query := `SELECT data FROM finance_documents WHERE user_id = $1`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to get finance document: %w", model.ErrPersistence, err)
	}

	data := model.FinanceData{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: failed to decode finance document: %w", model.ErrPersistence, err)
	}
	data[model.FieldUserID] = userID.String()

	return data, nil
}

func (r *FinanceRepository) Upsert(ctx context.Context, userID uuid.UUID, data model.FinanceData) error {
	raw, err := json.Marshal(data.Content())
	if err != nil {
		return fmt.Errorf("failed to encode finance document: %w", err)
	}

	query := `INSERT INTO finance_documents (user_id, data, updated_at)
			  VALUES ($1, $2::jsonb, now())
			  ON CONFLICT (user_id) DO UPDATE
			  SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, userID, string(raw)); err != nil {
		return fmt.Errorf("%w: failed to upsert finance document: %w", model.ErrPersistence, err)
	}

	return nil
}
