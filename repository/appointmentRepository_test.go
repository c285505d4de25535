package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-advisorybackend/models"
)

func TestOverlapQuery(t *testing.T) {
	doctorID := primitive.NewObjectID()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	t.Run("bounds are strict so back-to-back slots do not collide", func(t *testing.T) {
		query := overlapQuery(doctorID, start, end, nil)

		assert.Equal(t, doctorID, query["doctor_id"])
		// Strict comparisons: an appointment ending exactly at start, or
		// starting exactly at end, falls outside both bounds.
		assert.Equal(t, bson.M{"$lt": end}, query["start_time"])
		assert.Equal(t, bson.M{"$gt": start}, query["end_time"])
	})

	t.Run("cancelled and completed appointments never block a slot", func(t *testing.T) {
		query := overlapQuery(doctorID, start, end, nil)
		assert.Equal(t,
			bson.M{"$nin": bson.A{models.StatusCancelled, models.StatusCompleted}},
			query["status"])
	})

	t.Run("no id exclusion by default", func(t *testing.T) {
		query := overlapQuery(doctorID, start, end, nil)
		assert.NotContains(t, query, "_id")
	})

	t.Run("reschedules exclude the appointment being moved", func(t *testing.T) {
		excludeID := primitive.NewObjectID()
		query := overlapQuery(doctorID, start, end, &excludeID)
		assert.Equal(t, bson.M{"$ne": excludeID}, query["_id"])
	})
}
