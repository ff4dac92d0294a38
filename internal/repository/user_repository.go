package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orderflow/internal/db"
	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/nikolayk812/orderflow/internal/port"
)

type userRepository struct {
	q *db.Queries
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return newUserRepository(pool)
}

func newUserRepository(dbtx db.DBTX) *userRepository {
	return &userRepository{
		q: db.New(dbtx),
	}
}

func (r *userRepository) GetUser(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	dbUser, err := r.q.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("q.GetUser: %w", domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("q.GetUser: %w", err)
	}

	return mapDBUserToDomain(dbUser), nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, errors.New("email is empty")
	}

	dbUser, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("q.GetUserByEmail: %w", domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("q.GetUserByEmail: %w", err)
	}

	return mapDBUserToDomain(dbUser), nil
}

func (r *userRepository) ExistsUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	exists, err := r.q.ExistsUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("q.ExistsUser: %w", err)
	}

	return exists, nil
}

func mapDBUserToDomain(u db.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      domain.Role(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
