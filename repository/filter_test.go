package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-advisorybackend/models"
)

func TestAppointmentFilterQuery(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		filter := &AppointmentFilter{}
		assert.Equal(t, bson.M{}, filter.Query())
	})

	t.Run("nil filter matches everything", func(t *testing.T) {
		var filter *AppointmentFilter
		assert.Equal(t, bson.M{}, filter.Query())
	})

	t.Run("single status is a direct match", func(t *testing.T) {
		filter := &AppointmentFilter{Statuses: []models.AppointmentStatus{models.StatusScheduled}}
		assert.Equal(t, bson.M{"status": models.StatusScheduled}, filter.Query())
	})

	t.Run("multiple statuses use in", func(t *testing.T) {
		filter := &AppointmentFilter{
			Statuses: []models.AppointmentStatus{models.StatusScheduled, models.StatusConfirmed},
		}
		query := filter.Query()
		assert.Equal(t, bson.M{"$in": filter.Statuses}, query["status"])
	})

	t.Run("exclusions apply only without inclusions", func(t *testing.T) {
		filter := &AppointmentFilter{
			Statuses:        []models.AppointmentStatus{models.StatusScheduled},
			ExcludeStatuses: []models.AppointmentStatus{models.StatusCancelled},
		}
		assert.Equal(t, models.StatusScheduled, filter.Query()["status"])

		filter.Statuses = nil
		assert.Equal(t, bson.M{"$nin": filter.ExcludeStatuses}, filter.Query()["status"])
	})

	t.Run("time range uses inclusive bounds on start time", func(t *testing.T) {
		from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
		filter := &AppointmentFilter{StartFrom: &from, StartTo: &to}

		assert.Equal(t, bson.M{"$gte": from, "$lte": to}, filter.Query()["start_time"])
	})

	t.Run("open ended range keeps one bound", func(t *testing.T) {
		from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		filter := &AppointmentFilter{StartFrom: &from}

		assert.Equal(t, bson.M{"$gte": from}, filter.Query()["start_time"])
	})

	t.Run("identity and location filters", func(t *testing.T) {
		doctorID := primitive.NewObjectID()
		department := "wealth"
		locationType := "virtual"
		filter := &AppointmentFilter{
			DoctorID:     &doctorID,
			Department:   &department,
			LocationType: &locationType,
		}

		query := filter.Query()
		assert.Equal(t, doctorID, query["doctor_id"])
		assert.Equal(t, "wealth", query["department"])
		assert.Equal(t, "virtual", query["location.type"])
	})
}

func TestPageOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		page := PageOptions{}.Normalize()

		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.Limit)
		assert.Equal(t, "start_time", page.SortBy)
		assert.Equal(t, "asc", page.SortOrder)
	})

	t.Run("skip follows the page", func(t *testing.T) {
		page := PageOptions{Page: 3, Limit: 10}.Normalize()
		assert.Equal(t, int64(20), page.Skip())
	})

	t.Run("unknown sort order falls back to ascending", func(t *testing.T) {
		page := PageOptions{SortOrder: "sideways"}.Normalize()
		assert.Equal(t, 1, page.SortValue())

		page = PageOptions{SortOrder: "desc"}.Normalize()
		assert.Equal(t, -1, page.SortValue())
	})

	t.Run("negative values are normalized", func(t *testing.T) {
		page := PageOptions{Page: -2, Limit: -5}.Normalize()
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.Limit)
		assert.Equal(t, int64(0), page.Skip())
	})
}
