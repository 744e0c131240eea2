package service

import (
	"context"

	"github.com/cabwise/dispatch-go/internal/model"
)

// UserStore is the slice of the user repository the services consume.
// Implemented by repository.UserRepository; lookups signal a missing
// record with repository.ErrUserNotFound.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByPublicID(ctx context.Context, publicID string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// JobStore is the slice of the job repository the services consume.
// Implemented by repository.JobRepository; lookups signal a missing
// record with repository.ErrJobNotFound.
type JobStore interface {
	GetByPublicID(ctx context.Context, publicID string) (*model.Job, error)
	List(ctx context.Context) ([]model.Job, error)
	ListByDriver(ctx context.Context, driverID int64) ([]model.Job, error)
	Create(ctx context.Context, job *model.Job) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}
