package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dtroode/findoc-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type userDocument struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

func toUserDocument(u model.User) userDocument {
	return userDocument{
		ID:           u.ID.String(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt.UTC(),
	}
}

func (d userDocument) toModel() (model.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("malformed user id %q: %w", d.ID, err)
	}

	return model.User{
		ID:           id,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}, nil
}

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var doc userDocument
	err := r.db.collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("%w: failed to get user by email: %w", model.ErrPersistence, err)
	}

	user, err := doc.toModel()
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %w", model.ErrPersistence, err)
	}

	return user, nil
}

// Create inserts the user. The unique email index rejects a second account
// with the same email even when both inserts race.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	doc := toUserDocument(user)

	_, err := r.db.collection(usersCollection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("%w: failed to create user: %w", model.ErrPersistence, err)
	}

	return doc.toModel()
}
