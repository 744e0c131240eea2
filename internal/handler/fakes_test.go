package handler

import (
	"context"

	"github.com/cabwise/dispatch-go/internal/model"
	"github.com/cabwise/dispatch-go/internal/repository"
)

// Empty stores: every lookup misses. Enough to exercise the handlers'
// status-code mapping without a database.

type emptyUserStore struct{}

func (emptyUserStore) GetByID(context.Context, int64) (*model.User, error) {
	return nil, repository.ErrUserNotFound
}

func (emptyUserStore) GetByPublicID(context.Context, string) (*model.User, error) {
	return nil, repository.ErrUserNotFound
}

func (emptyUserStore) GetByUsername(context.Context, string) (*model.User, error) {
	return nil, repository.ErrUserNotFound
}

func (emptyUserStore) List(context.Context) ([]model.User, error) { return nil, nil }

func (emptyUserStore) Create(context.Context, *model.User) error { return nil }

func (emptyUserStore) Update(context.Context, int64, map[string]any) error { return nil }

func (emptyUserStore) Delete(context.Context, int64) error { return repository.ErrUserNotFound }

type emptyJobStore struct{}

func (emptyJobStore) GetByPublicID(context.Context, string) (*model.Job, error) {
	return nil, repository.ErrJobNotFound
}

func (emptyJobStore) List(context.Context) ([]model.Job, error) { return nil, nil }

func (emptyJobStore) ListByDriver(context.Context, int64) ([]model.Job, error) { return nil, nil }

func (emptyJobStore) Create(context.Context, *model.Job) error { return nil }

func (emptyJobStore) Update(context.Context, int64, map[string]any) error { return nil }

func (emptyJobStore) Delete(context.Context, int64) error { return repository.ErrJobNotFound }
