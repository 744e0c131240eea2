package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cabwise/dispatch-go/internal/model"
)

var ErrJobNotFound = errors.New("job not found")

const jobColumns = `id, public_id, number_of_people, pickup_time, name, contact_number,
	time_allowed, price, is_complete, driver_id,
	pickup_house, pickup_road, pickup_village, pickup_postcode,
	dropoff_house, dropoff_road, dropoff_village, dropoff_postcode`

// jobUpdateColumns is the set of columns a partial job update may touch.
var jobUpdateColumns = map[string]bool{
	"number_of_people": true,
	"pickup_time":      true,
	"name":             true,
	"contact_number":   true,
	"time_allowed":     true,
	"price":            true,
	"is_complete":      true,
	"driver_id":        true,
	"pickup_house":     true,
	"pickup_road":      true,
	"pickup_village":   true,
	"pickup_postcode":  true,
	"dropoff_house":    true,
	"dropoff_road":     true,
	"dropoff_village":  true,
	"dropoff_postcode": true,
}

// JobRepository handles job persistence operations.
type JobRepository struct {
	db *sql.DB
}

var _ Store[model.Job] = (*JobRepository)(nil)

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job and sets the generated ID on the record.
func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	query := `INSERT INTO jobs (public_id, number_of_people, pickup_time, name, contact_number,
		time_allowed, price, is_complete, driver_id,
		pickup_house, pickup_road, pickup_village, pickup_postcode,
		dropoff_house, dropoff_road, dropoff_village, dropoff_postcode)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		job.PublicID, job.NumberOfPeople, job.PickupTime, job.Name, job.ContactNumber,
		job.TimeAllowed, job.Price, job.IsComplete, nullableID(job.DriverID),
		job.PickupHouse, job.PickupRoad, job.PickupVillage, job.PickupPostcode,
		job.DropoffHouse, job.DropoffRoad, job.DropoffVillage, job.DropoffPostcode,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	job.ID = id
	return nil
}

// GetByID retrieves a job by internal numeric id.
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`
	return r.scanJob(r.db.QueryRowContext(ctx, query, id))
}

// GetByPublicID retrieves a job by public identifier.
func (r *JobRepository) GetByPublicID(ctx context.Context, publicID string) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE public_id = ?`
	return r.scanJob(r.db.QueryRowContext(ctx, query, publicID))
}

// List retrieves all jobs.
func (r *JobRepository) List(ctx context.Context) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	return r.queryJobs(ctx, query)
}

// ListByDriver retrieves all jobs assigned to the given driver.
func (r *JobRepository) ListByDriver(ctx context.Context, driverID int64) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE driver_id = ?`
	return r.queryJobs(ctx, query, driverID)
}

// Update overwrites only the named columns and persists immediately.
func (r *JobRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	query, args, err := buildUpdate("jobs", jobUpdateColumns, fields, id)
	if err != nil {
		return err
	}
	if query == "" {
		return nil
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// Delete removes a job record.
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}

	return nil
}

func (r *JobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]model.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		var driverID sql.NullInt64
		if err := rows.Scan(
			&j.ID, &j.PublicID, &j.NumberOfPeople, &j.PickupTime, &j.Name, &j.ContactNumber,
			&j.TimeAllowed, &j.Price, &j.IsComplete, &driverID,
			&j.PickupHouse, &j.PickupRoad, &j.PickupVillage, &j.PickupPostcode,
			&j.DropoffHouse, &j.DropoffRoad, &j.DropoffVillage, &j.DropoffPostcode,
		); err != nil {
			return nil, err
		}
		if driverID.Valid {
			j.DriverID = &driverID.Int64
		}
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

func (r *JobRepository) scanJob(row *sql.Row) (*model.Job, error) {
	job := &model.Job{}
	var driverID sql.NullInt64
	err := row.Scan(
		&job.ID, &job.PublicID, &job.NumberOfPeople, &job.PickupTime, &job.Name, &job.ContactNumber,
		&job.TimeAllowed, &job.Price, &job.IsComplete, &driverID,
		&job.PickupHouse, &job.PickupRoad, &job.PickupVillage, &job.PickupPostcode,
		&job.DropoffHouse, &job.DropoffRoad, &job.DropoffVillage, &job.DropoffPostcode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if driverID.Valid {
		job.DriverID = &driverID.Int64
	}

	return job, nil
}

// nullableID converts an optional internal reference for the driver
// column, writing NULL for unassigned jobs.
func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
