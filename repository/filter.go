package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-advisorybackend/models"
)

// AppointmentFilter carries one nullable field per filterable dimension.
// A nil field places no restriction on that dimension.
type AppointmentFilter struct {
	PatientID       *primitive.ObjectID
	DoctorID        *primitive.ObjectID
	Statuses        []models.AppointmentStatus
	ExcludeStatuses []models.AppointmentStatus
	Types           []models.AppointmentType
	StartFrom       *time.Time
	StartTo         *time.Time
	Department      *string
	LocationType    *string
}

// Query turns the set fields into the store's native filter form.
func (f *AppointmentFilter) Query() bson.M {
	query := bson.M{}
	if f == nil {
		return query
	}

	if f.PatientID != nil {
		query["patient_id"] = *f.PatientID
	}
	if f.DoctorID != nil {
		query["doctor_id"] = *f.DoctorID
	}
	if f.Department != nil {
		query["department"] = *f.Department
	}
	if f.LocationType != nil {
		query["location.type"] = *f.LocationType
	}

	if len(f.Statuses) == 1 {
		query["status"] = f.Statuses[0]
	} else if len(f.Statuses) > 1 {
		query["status"] = bson.M{"$in": f.Statuses}
	} else if len(f.ExcludeStatuses) > 0 {
		query["status"] = bson.M{"$nin": f.ExcludeStatuses}
	}

	if len(f.Types) == 1 {
		query["type"] = f.Types[0]
	} else if len(f.Types) > 1 {
		query["type"] = bson.M{"$in": f.Types}
	}

	if f.StartFrom != nil || f.StartTo != nil {
		timeRange := bson.M{}
		if f.StartFrom != nil {
			timeRange["$gte"] = *f.StartFrom
		}
		if f.StartTo != nil {
			timeRange["$lte"] = *f.StartTo
		}
		query["start_time"] = timeRange
	}

	return query
}

// PageOptions controls offset pagination and sorting for list queries.
type PageOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalize applies the defaults: page 1, ten records per page, start time
// ascending.
func (p PageOptions) Normalize() PageOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.SortBy == "" {
		p.SortBy = "start_time"
	}
	if p.SortOrder != "desc" {
		p.SortOrder = "asc"
	}
	return p
}

// Skip returns the offset for the normalized page.
func (p PageOptions) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// SortValue returns the mongo sort direction for the normalized order.
func (p PageOptions) SortValue() int {
	if p.SortOrder == "desc" {
		return -1
	}
	return 1
}
