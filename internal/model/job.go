package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PickupTimeLayout is the only accepted textual format for pickup times
// crossing the API boundary. Anything else is rejected, never defaulted.
const PickupTimeLayout = "2006-01-02T15:04:05.000000"

// Job represents a transport task. Addresses are stored flattened into
// one column per sub-field and merged back into nested structures at the
// API boundary.
type Job struct {
	ID             int64
	PublicID       string
	NumberOfPeople int
	PickupTime     time.Time
	Name           string
	ContactNumber  string
	TimeAllowed    int
	Price          int
	IsComplete     bool
	DriverID       *int64

	PickupHouse    string
	PickupRoad     string
	PickupVillage  string
	PickupPostcode string

	DropoffHouse    string
	DropoffRoad     string
	DropoffVillage  string
	DropoffPostcode string
}

// NewJob builds a job record with a fresh public identifier and the
// stock defaults: -1 passengers, pickup now, a 30 minute window.
func NewJob() *Job {
	return &Job{
		PublicID:       uuid.NewString(),
		NumberOfPeople: -1,
		PickupTime:     time.Now().UTC(),
		Name:           "No Name",
		ContactNumber:  "No Contact",
		TimeAllowed:    30,
		Price:          0,
	}
}

// Address is the nested address structure used on the wire.
type Address struct {
	House    string `json:"house"`
	Road     string `json:"road"`
	Village  string `json:"village"`
	Postcode string `json:"postcode"`
}

// PickupAddress merges the pickup sub-fields into one nested structure.
func (j *Job) PickupAddress() Address {
	return Address{
		House:    j.PickupHouse,
		Road:     j.PickupRoad,
		Village:  j.PickupVillage,
		Postcode: j.PickupPostcode,
	}
}

// SetPickupAddress splits a nested address into the pickup sub-fields.
func (j *Job) SetPickupAddress(a Address) {
	j.PickupHouse = a.House
	j.PickupRoad = a.Road
	j.PickupVillage = a.Village
	j.PickupPostcode = a.Postcode
}

// DropoffAddress merges the dropoff sub-fields into one nested structure.
func (j *Job) DropoffAddress() Address {
	return Address{
		House:    j.DropoffHouse,
		Road:     j.DropoffRoad,
		Village:  j.DropoffVillage,
		Postcode: j.DropoffPostcode,
	}
}

// SetDropoffAddress splits a nested address into the dropoff sub-fields.
func (j *Job) SetDropoffAddress(a Address) {
	j.DropoffHouse = a.House
	j.DropoffRoad = a.Road
	j.DropoffVillage = a.Village
	j.DropoffPostcode = a.Postcode
}

// ParsePickupTime parses a wire pickup time. Malformed input is an error.
func ParsePickupTime(s string) (time.Time, error) {
	t, err := time.Parse(PickupTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pickup_time %q: %w", s, err)
	}
	return t, nil
}

// CreateJobRequest represents a job creation request. The fields here are
// the creation allow-list; unknown keys in the body are dropped by the
// decoder. driver_id carries the driver's public identifier and is
// resolved to an internal reference at write time.
type CreateJobRequest struct {
	NumberOfPeople *int     `json:"number_of_people"`
	PickupTime     *string  `json:"pickup_time"`
	Name           *string  `json:"name"`
	ContactNumber  *string  `json:"contact_number"`
	TimeAllowed    *int     `json:"time_allowed"`
	Price          *int     `json:"price"`
	PickupAddress  *Address `json:"pickup_address"`
	DropoffAddress *Address `json:"dropoff_address"`
	DriverID       *string  `json:"driver_id"`
}

// JobResponse is the full job representation returned by the API. Driver
// is null when the job has no assigned driver.
type JobResponse struct {
	PublicID       string       `json:"public_id"`
	NumberOfPeople int          `json:"number_of_people"`
	PickupTime     time.Time    `json:"pickup_time"`
	Name           string       `json:"name"`
	ContactNumber  string       `json:"contact_number"`
	TimeAllowed    int          `json:"time_allowed"`
	Price          int          `json:"price"`
	IsComplete     bool         `json:"is_complete"`
	Driver         *UserMinimal `json:"driver"`
	PickupAddress  Address      `json:"pickup_address"`
	DropoffAddress Address      `json:"dropoff_address"`
}

// Response converts the record to its wire representation, embedding the
// minimal shape of the given driver (nil for an unassigned job).
func (j *Job) Response(driver *User) JobResponse {
	resp := JobResponse{
		PublicID:       j.PublicID,
		NumberOfPeople: j.NumberOfPeople,
		PickupTime:     j.PickupTime,
		Name:           j.Name,
		ContactNumber:  j.ContactNumber,
		TimeAllowed:    j.TimeAllowed,
		Price:          j.Price,
		IsComplete:     j.IsComplete,
		PickupAddress:  j.PickupAddress(),
		DropoffAddress: j.DropoffAddress(),
	}
	if driver != nil {
		m := driver.Minimal()
		resp.Driver = &m
	}
	return resp
}
