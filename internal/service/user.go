package service

import (
	"context"
	"errors"
	"strings"

	"github.com/cabwise/dispatch-go/internal/config"
	"github.com/cabwise/dispatch-go/internal/crypto"
	"github.com/cabwise/dispatch-go/internal/model"
	"github.com/cabwise/dispatch-go/internal/notify"
	"github.com/cabwise/dispatch-go/internal/repository"
)

var (
	ErrUsernameRequired = errors.New("username required")
	ErrEmailRequired    = errors.New("email required")
	ErrPasswordRequired = errors.New("password required")
	ErrUserNotFound     = errors.New("user not found")

	ErrInvalidCredentials = errors.New("invalid auth credentials")
	ErrUnknownUser        = errors.New("unknown user")
	ErrWrongPassword      = errors.New("wrong password")
	ErrNotConfirmed       = errors.New("user not confirmed")
	ErrAlreadyConfirmed   = errors.New("user already confirmed")
	ErrInvalidToken       = errors.New("token is invalid")
)

// UserService handles the user lifecycle: signup, confirmation, login,
// CRUD and the jobs-for-user listing.
type UserService struct {
	users  UserStore
	jobs   JobStore
	mailer notify.Mailer
	cfg    config.Config
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, jobs JobStore, mailer notify.Mailer, cfg config.Config) *UserService {
	return &UserService{users: users, jobs: jobs, mailer: mailer, cfg: cfg}
}

// Create registers a new user. Each missing required field has its own
// error so the handler can reply with the matching code. In dev mode the
// account is confirmed immediately; otherwise a confirmation mail with a
// signed link goes to the admin.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	if req.Username == nil {
		return model.UserResponse{}, ErrUsernameRequired
	}
	if req.Email == nil {
		return model.UserResponse{}, ErrEmailRequired
	}
	if req.Password == nil {
		return model.UserResponse{}, ErrPasswordRequired
	}

	hash, err := crypto.HashPassword(*req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := model.NewUser(*req.Username, *req.Email, hash, s.cfg.Dev())
	if err := s.users.Create(ctx, user); err != nil {
		return model.UserResponse{}, err
	}

	if !s.cfg.Dev() {
		token, err := crypto.NewConfirmToken(user.PublicID, user.Email, s.cfg.SecretKey)
		if err != nil {
			return model.UserResponse{}, err
		}
		confirmURL := s.cfg.BaseURL + "/confirm/" + token
		if err := s.mailer.SendConfirmation(user.Username, confirmURL); err != nil {
			return model.UserResponse{}, err
		}
	}

	return user.Response(), nil
}

// Get retrieves a user by public identifier.
func (s *UserService) Get(ctx context.Context, publicID string) (model.UserResponse, error) {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return user.Response(), nil
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]model.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, users[i].Response())
	}
	return resp, nil
}

// Update applies whatever known fields are present in the body onto the
// record. There is no allow-list here: password is re-hashed, confirmed
// can be flipped, unknown keys are silently skipped.
func (s *UserService) Update(ctx context.Context, publicID string, fields map[string]any) error {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	cols := make(map[string]any)
	for key, value := range fields {
		switch key {
		case "username", "email", "confirmed":
			cols[key] = value
		case "password":
			str, ok := value.(string)
			if !ok {
				return ErrPasswordRequired
			}
			hash, err := crypto.HashPassword(str)
			if err != nil {
				return err
			}
			cols["password_hash"] = hash
		}
	}

	return s.users.Update(ctx, user.ID, cols)
}

// Delete removes a user. Jobs still referencing the user as driver keep
// a dangling reference; the schema nulls it out, nothing else happens.
func (s *UserService) Delete(ctx context.Context, publicID string) error {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.users.Delete(ctx, user.ID)
}

// Jobs lists all jobs assigned to the user.
func (s *UserService) Jobs(ctx context.Context, publicID string) ([]model.JobResponse, error) {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	jobs, err := s.jobs.ListByDriver(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]model.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp = append(resp, jobs[i].Response(user))
	}
	return resp, nil
}

// Login verifies username and password for a confirmed account and
// issues a signed token embedding the user's public identifier, valid
// for one hour. All failures collapse into ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !user.Confirmed || !crypto.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	return crypto.NewLoginToken(user.PublicID, s.cfg.SecretKey)
}

// Authenticate checks basic-auth credentials for request authorization,
// reporting each failure mode distinctly: unknown username, wrong
// password, unconfirmed account.
func (s *UserService) Authenticate(ctx context.Context, username, password string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUnknownUser
		}
		return err
	}

	if !crypto.CheckPassword(user.PasswordHash, password) {
		return ErrWrongPassword
	}
	if !user.Confirmed {
		return ErrNotConfirmed
	}

	return nil
}

// Confirm completes the email confirmation round-trip. The token must
// decode against the shared secret, reference an existing unconfirmed
// user, and carry an email that matches the stored one case-insensitively.
func (s *UserService) Confirm(ctx context.Context, token string) error {
	claims, err := crypto.DecodeToken(token, s.cfg.SecretKey)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := s.users.GetByPublicID(ctx, claims.PublicID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if user.Confirmed {
		return ErrAlreadyConfirmed
	}
	if !strings.EqualFold(user.Email, claims.Email) {
		return ErrInvalidToken
	}

	return s.users.Update(ctx, user.ID, map[string]any{"confirmed": true})
}
