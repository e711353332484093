package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/odm"
)

// TokenRepo persists/validates refresh tokens (hash at rest only).
type TokenRepo struct{ Tokens *odm.Model[model.RefreshToken] }

func NewTokenRepo(tokens *odm.Model[model.RefreshToken]) *TokenRepo {
	return &TokenRepo{Tokens: tokens}
}

// StoreRefresh inserts a refresh token hash document.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error {
	return r.Tokens.Create(ctx, &model.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: exp,
		CreatedAt: time.Now().UTC(),
	})
}

// ValidateRefresh returns the owning user id if a non-revoked, non-expired
// token exists for the hash.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	t, err := r.Tokens.FindOne(ctx, bson.M{"tokenHash": tokenHash})
	if errors.Is(err, odm.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if t.RevokedAt != nil || time.Now().UTC().After(t.ExpiresAt) {
		return "", ErrNotFound
	}
	return t.UserID, nil
}

// RevokeByHash marks a token as revoked.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	now := time.Now().UTC()
	_, err := r.Tokens.FindOneAndUpdate(ctx,
		bson.M{"tokenHash": tokenHash, "revokedAt": nil},
		bson.M{"$set": bson.M{"revokedAt": now}}, false)
	if errors.Is(err, odm.ErrNotFound) {
		return nil
	}
	return err
}

// RevokeAllForUser revokes all of a user's active tokens.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	_, err := r.Tokens.UpdateMany(ctx,
		bson.M{"userId": userID, "revokedAt": nil},
		bson.M{"$set": bson.M{"revokedAt": now}})
	return err
}
