package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cabwise/dispatch-go/internal/model"
	"github.com/cabwise/dispatch-go/internal/notify"
	"github.com/cabwise/dispatch-go/internal/repository"
)

var (
	ErrJobNotFound       = errors.New("job not found")
	ErrInvalidPickupTime = errors.New("invalid pickup_time")
)

// JobService handles the job lifecycle. Every mutation publishes a
// lifecycle event with the job's full representation to the broadcast
// channel.
type JobService struct {
	jobs   JobStore
	users  UserStore
	events notify.Broadcaster
}

// NewJobService creates a new JobService.
func NewJobService(jobs JobStore, users UserStore, events notify.Broadcaster) *JobService {
	return &JobService{jobs: jobs, users: users, events: events}
}

// Create builds a job from the allow-listed request fields, assigns the
// driver if a known public identifier was given, and publishes the
// created event. An unknown driver_id leaves the job unassigned.
func (s *JobService) Create(ctx context.Context, req model.CreateJobRequest) (model.JobResponse, error) {
	job := model.NewJob()

	if req.NumberOfPeople != nil {
		job.NumberOfPeople = *req.NumberOfPeople
	}
	if req.PickupTime != nil {
		t, err := model.ParsePickupTime(*req.PickupTime)
		if err != nil {
			return model.JobResponse{}, ErrInvalidPickupTime
		}
		job.PickupTime = t
	}
	if req.Name != nil {
		job.Name = *req.Name
	}
	if req.ContactNumber != nil {
		job.ContactNumber = *req.ContactNumber
	}
	if req.TimeAllowed != nil {
		job.TimeAllowed = *req.TimeAllowed
	}
	if req.Price != nil {
		job.Price = *req.Price
	}
	if req.PickupAddress != nil {
		job.SetPickupAddress(*req.PickupAddress)
	}
	if req.DropoffAddress != nil {
		job.SetDropoffAddress(*req.DropoffAddress)
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return model.JobResponse{}, err
	}

	if req.DriverID != nil {
		driver, err := s.users.GetByPublicID(ctx, *req.DriverID)
		switch {
		case err == nil:
			if err := s.jobs.Update(ctx, job.ID, map[string]any{"driver_id": driver.ID}); err != nil {
				return model.JobResponse{}, err
			}
			job.DriverID = &driver.ID
		case errors.Is(err, repository.ErrUserNotFound):
			// unresolvable driver leaves the job unassigned
		default:
			return model.JobResponse{}, err
		}
	}

	resp, err := s.response(ctx, job)
	if err != nil {
		return model.JobResponse{}, err
	}

	if err := s.events.Publish(notify.EventJobCreated, resp); err != nil {
		return model.JobResponse{}, err
	}

	return resp, nil
}

// Get retrieves a job by public identifier.
func (s *JobService) Get(ctx context.Context, publicID string) (model.JobResponse, error) {
	job, err := s.jobs.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return model.JobResponse{}, ErrJobNotFound
		}
		return model.JobResponse{}, err
	}
	return s.response(ctx, job)
}

// List retrieves all jobs.
func (s *JobService) List(ctx context.Context) ([]model.JobResponse, error) {
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]model.JobResponse, 0, len(jobs))
	for i := range jobs {
		jr, err := s.response(ctx, &jobs[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, jr)
	}
	return resp, nil
}

// Update applies whatever known fields are present in the body onto the
// record, then publishes the updated event with the fresh representation.
// Unlike create there is no allow-list: is_complete and driver_id are
// writable here, unknown keys are silently skipped.
func (s *JobService) Update(ctx context.Context, publicID string, fields map[string]any) error {
	job, err := s.jobs.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return err
	}

	cols, err := s.jobColumns(ctx, fields)
	if err != nil {
		return err
	}

	if err := s.jobs.Update(ctx, job.ID, cols); err != nil {
		return err
	}

	fresh, err := s.jobs.GetByPublicID(ctx, publicID)
	if err != nil {
		return err
	}
	resp, err := s.response(ctx, fresh)
	if err != nil {
		return err
	}

	return s.events.Publish(notify.EventJobUpdated, resp)
}

// Delete removes a job and publishes the deleted event carrying the
// job's last-known representation.
func (s *JobService) Delete(ctx context.Context, publicID string) error {
	job, err := s.jobs.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return err
	}

	resp, err := s.response(ctx, job)
	if err != nil {
		return err
	}

	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		return err
	}

	return s.events.Publish(notify.EventJobDeleted, resp)
}

// jobColumns translates a wire field map into storage columns: addresses
// split into their sub-field columns, pickup_time parsed (and rejected
// when malformed), driver_id resolved from public identifier to internal
// reference. Unknown keys are dropped.
func (s *JobService) jobColumns(ctx context.Context, fields map[string]any) (map[string]any, error) {
	cols := make(map[string]any)

	for key, value := range fields {
		switch key {
		case "number_of_people", "name", "contact_number", "time_allowed", "price", "is_complete":
			cols[key] = value

		case "pickup_time":
			str, ok := value.(string)
			if !ok {
				return nil, ErrInvalidPickupTime
			}
			t, err := model.ParsePickupTime(str)
			if err != nil {
				return nil, ErrInvalidPickupTime
			}
			cols["pickup_time"] = t

		case "pickup_address":
			addr, err := decodeAddress(value)
			if err != nil {
				return nil, err
			}
			cols["pickup_house"] = addr.House
			cols["pickup_road"] = addr.Road
			cols["pickup_village"] = addr.Village
			cols["pickup_postcode"] = addr.Postcode

		case "dropoff_address":
			addr, err := decodeAddress(value)
			if err != nil {
				return nil, err
			}
			cols["dropoff_house"] = addr.House
			cols["dropoff_road"] = addr.Road
			cols["dropoff_village"] = addr.Village
			cols["dropoff_postcode"] = addr.Postcode

		case "driver_id":
			id, err := s.resolveDriver(ctx, value)
			if err != nil {
				return nil, err
			}
			cols["driver_id"] = id
		}
	}

	return cols, nil
}

// resolveDriver maps a driver public identifier to the internal numeric
// reference. Anything unresolvable (null, wrong type, unknown id) clears
// the assignment.
func (s *JobService) resolveDriver(ctx context.Context, value any) (any, error) {
	publicID, ok := value.(string)
	if !ok {
		return nil, nil
	}

	driver, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return driver.ID, nil
}

func (s *JobService) response(ctx context.Context, job *model.Job) (model.JobResponse, error) {
	var driver *model.User
	if job.DriverID != nil {
		u, err := s.users.GetByID(ctx, *job.DriverID)
		switch {
		case err == nil:
			driver = u
		case errors.Is(err, repository.ErrUserNotFound):
			// dangling reference after a driver delete; serialize as null
		default:
			return model.JobResponse{}, err
		}
	}
	return job.Response(driver), nil
}

func decodeAddress(value any) (model.Address, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return model.Address{}, err
	}
	var addr model.Address
	if err := json.Unmarshal(raw, &addr); err != nil {
		return model.Address{}, err
	}
	return addr, nil
}
