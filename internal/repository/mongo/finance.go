package mongo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dtroode/findoc-server/internal/model"
)

var _ model.FinanceStore = (*FinanceRepository)(nil)

// FinanceRepository keeps one document per user in the finance collection,
// keyed by a unique user_id field next to the document content.
type FinanceRepository struct {
	db *Connection
}

func NewFinanceRepository(db *Connection) *FinanceRepository {
	return &FinanceRepository{db: db}
}

func (r *FinanceRepository) Get(ctx context.Context, userID uuid.UUID) (model.FinanceData, error) {
	var doc bson.D
	err := r.db.collection(financeCollection).FindOne(ctx, bson.M{model.FieldUserID: userID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to get finance document: %w", model.ErrPersistence, err)
	}

	return fromBSON(doc), nil
}

func (r *FinanceRepository) Upsert(ctx context.Context, userID uuid.UUID, data model.FinanceData) error {
	filter := bson.M{model.FieldUserID: userID.String()}
	replacement := toBSON(userID, data)

	replace := func() error {
		_, err := r.db.collection(financeCollection).ReplaceOne(ctx, filter, replacement,
			options.Replace().SetUpsert(true))
		return err
	}

	err := replace()
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent upsert inserted the document first; it now matches the filter.
		err = replace()
	}
	if err != nil {
		return fmt.Errorf("%w: failed to upsert finance document: %w", model.ErrPersistence, err)
	}

	return nil
}

func toBSON(userID uuid.UUID, data model.FinanceData) bson.M {
	content := data.Content()

	doc := make(bson.M, len(content)+1)
	for k, v := range content {
		doc[k] = v
	}
	doc[model.FieldUserID] = userID.String()

	return doc
}

func fromBSON(doc bson.D) model.FinanceData {
	data := make(model.FinanceData, len(doc))
	for _, e := range doc {
		if e.Key == model.FieldStorageID {
			continue
		}
		data[e.Key] = normalize(e.Value)
	}

	return data
}

// normalize converts decoded BSON values into the plain JSON value shapes
// used everywhere else: objects as map[string]any, arrays as []any, numbers
// as float64, dates as RFC 3339 strings and object ids as hex. Decimals that
// do not fit a float64 are kept as their string form.
func normalize(v any) any {
	switch val := v.(type) {
	case bson.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = normalize(e)
		}
		return m
	case bson.A:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = normalize(e)
		}
		return out
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case bson.ObjectID:
		return val.Hex()
	case bson.DateTime:
		return val.Time().UTC().Format(time.RFC3339Nano)
	case bson.Decimal128:
		return decimal128(val)
	default:
		return v
	}
}

func decimal128(v bson.Decimal128) any {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return v.String()
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) {
		return v.String()
	}
	return f
}
