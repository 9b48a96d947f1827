package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/findoc-server/internal/model"
)

var _ model.FinanceStore = (*FinanceRepository)(nil)

type FinanceRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]model.FinanceData
}

func NewFinanceRepository() *FinanceRepository {
	return &FinanceRepository{docs: make(map[uuid.UUID]model.FinanceData)}
}

func (r *FinanceRepository) Get(_ context.Context, userID uuid.UUID) (model.FinanceData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[userID]
	if !ok {
		return nil, model.ErrNotFound
	}

	out := doc.Clone()
	out[model.FieldUserID] = userID.String()

	return out, nil
}

func (r *FinanceRepository) Upsert(_ context.Context, userID uuid.UUID, data model.FinanceData) error {
	doc := data.Content()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[userID] = doc

	return nil
}
