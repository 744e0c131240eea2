package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cabwise/dispatch-go/internal/model"
	"github.com/cabwise/dispatch-go/internal/repository"
)

// In-memory stores mirroring the repository contract, including the
// column-map update behavior, so service semantics can be exercised
// without a database.

type fakeUserStore struct {
	users      map[int64]*model.User
	nextID     int64
	lastFields map[string]any
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserStore) GetByPublicID(_ context.Context, publicID string) (*model.User, error) {
	for _, u := range f.users {
		if u.PublicID == publicID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserStore) Update(_ context.Context, id int64, fields map[string]any) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	f.lastFields = fields
	for col, v := range fields {
		switch col {
		case "username":
			u.Username = v.(string)
		case "email":
			u.Email = v.(string)
		case "password_hash":
			u.PasswordHash = v.([]byte)
		case "confirmed":
			u.Confirmed = v.(bool)
		case "avatar_hash":
			u.AvatarHash = v.(string)
		case "last_active":
			u.LastActive = v.(time.Time)
		default:
			return fmt.Errorf("unknown column %q", col)
		}
	}
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeJobStore struct {
	jobs       map[int64]*model.Job
	nextID     int64
	lastFields map[string]any
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[int64]*model.Job)}
}

func (f *fakeJobStore) Create(_ context.Context, job *model.Job) error {
	f.nextID++
	job.ID = f.nextID
	clone := *job
	f.jobs[job.ID] = &clone
	return nil
}

func (f *fakeJobStore) GetByPublicID(_ context.Context, publicID string) (*model.Job, error) {
	for _, j := range f.jobs {
		if j.PublicID == publicID {
			clone := *j
			return &clone, nil
		}
	}
	return nil, repository.ErrJobNotFound
}

func (f *fakeJobStore) List(_ context.Context) ([]model.Job, error) {
	jobs := make([]model.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		jobs = append(jobs, *j)
	}
	return jobs, nil
}

func (f *fakeJobStore) ListByDriver(_ context.Context, driverID int64) ([]model.Job, error) {
	var jobs []model.Job
	for _, j := range f.jobs {
		if j.DriverID != nil && *j.DriverID == driverID {
			jobs = append(jobs, *j)
		}
	}
	return jobs, nil
}

func (f *fakeJobStore) Update(_ context.Context, id int64, fields map[string]any) error {
	j, ok := f.jobs[id]
	if !ok {
		return repository.ErrJobNotFound
	}
	f.lastFields = fields
	for col, v := range fields {
		switch col {
		case "number_of_people":
			j.NumberOfPeople = toInt(v)
		case "pickup_time":
			j.PickupTime = v.(time.Time)
		case "name":
			j.Name = v.(string)
		case "contact_number":
			j.ContactNumber = v.(string)
		case "time_allowed":
			j.TimeAllowed = toInt(v)
		case "price":
			j.Price = toInt(v)
		case "is_complete":
			j.IsComplete = v.(bool)
		case "driver_id":
			if v == nil {
				j.DriverID = nil
			} else {
				id := int64(toInt(v))
				j.DriverID = &id
			}
		case "pickup_house":
			j.PickupHouse = v.(string)
		case "pickup_road":
			j.PickupRoad = v.(string)
		case "pickup_village":
			j.PickupVillage = v.(string)
		case "pickup_postcode":
			j.PickupPostcode = v.(string)
		case "dropoff_house":
			j.DropoffHouse = v.(string)
		case "dropoff_road":
			j.DropoffRoad = v.(string)
		case "dropoff_village":
			j.DropoffVillage = v.(string)
		case "dropoff_postcode":
			j.DropoffPostcode = v.(string)
		default:
			return fmt.Errorf("unknown column %q", col)
		}
	}
	return nil
}

func (f *fakeJobStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.jobs[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(f.jobs, id)
	return nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

type publishedEvent struct {
	name    string
	payload any
}

type fakeBroadcaster struct {
	events []publishedEvent
}

func (f *fakeBroadcaster) Publish(event string, payload any) error {
	f.events = append(f.events, publishedEvent{name: event, payload: payload})
	return nil
}

type sentMail struct {
	username   string
	confirmURL string
}

type fakeMailer struct {
	sent []sentMail
}

func (f *fakeMailer) SendConfirmation(username, confirmURL string) error {
	f.sent = append(f.sent, sentMail{username: username, confirmURL: confirmURL})
	return nil
}
