package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/odm"
	"github.com/locaflow/locaflow/internal/utils"
)

// UserRepo persists user accounts.
type UserRepo struct{ Users *odm.Model[model.User] }

func NewUserRepo(users *odm.Model[model.User]) *UserRepo { return &UserRepo{Users: users} }

// Create hashes the password and inserts a new user, returning its id.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	u := model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.Users.Create(ctx, &u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrEmailExists
		}
		return "", err
	}
	return u.ID, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := r.Users.FindOne(ctx, bson.M{"email": email})
	if errors.Is(err, odm.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := r.Users.FindByID(ctx, id)
	if errors.Is(err, odm.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

// CompleteOnboarding flips onboardingCompleted to true. The flag only ever
// moves in that direction.
func (r *UserRepo) CompleteOnboarding(ctx context.Context, id string) error {
	_, err := r.Users.FindByIDAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"onboardingCompleted": true,
		"updatedAt":           time.Now().UTC(),
	}})
	if errors.Is(err, odm.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// List returns users for the superadmin dashboard, optionally filtered by
// role.
func (r *UserRepo) List(ctx context.Context, role string) ([]*model.User, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	return r.Users.Find(ctx, filter)
}

// Count returns the number of users matching the role filter.
func (r *UserRepo) Count(ctx context.Context, role string) (int64, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	return r.Users.CountDocuments(ctx, filter)
}
