package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"golang-advisorybackend/models"
)

// AppointmentRepository is the persistence surface the appointment service
// depends on.
type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	Find(ctx context.Context, filter *AppointmentFilter, page PageOptions) ([]models.Appointment, int64, error)
	FindByStartAsc(ctx context.Context, filter *AppointmentFilter, limit int64) ([]models.Appointment, error)
	HasOverlap(ctx context.Context, doctorID primitive.ObjectID, startTime, endTime time.Time, excludeID *primitive.ObjectID) (bool, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Appointment, error)
	Stats(ctx context.Context, doctorID *primitive.ObjectID, startDate, endDate *time.Time) (*models.AppointmentStats, error)
}

type mongoAppointmentRepository struct {
	collection *mongo.Collection
}

// NewAppointmentRepository returns the mongo-backed repository.
func NewAppointmentRepository(collection *mongo.Collection) AppointmentRepository {
	return &mongoAppointmentRepository{collection: collection}
}

func (r *mongoAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	_, err := r.collection.InsertOne(ctx, appointment)
	return err
}

func (r *mongoAppointmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&appointment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *mongoAppointmentRepository) Find(ctx context.Context, filter *AppointmentFilter, page PageOptions) ([]models.Appointment, int64, error) {
	page = page.Normalize()
	query := filter.Query()

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: page.SortBy, Value: page.SortValue()}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

func (r *mongoAppointmentRepository) FindByStartAsc(ctx context.Context, filter *AppointmentFilter, limit int64) ([]models.Appointment, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter.Query(), findOptions)
	if err != nil {
		return nil, err
	}

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// HasOverlap reports whether any non-cancelled, non-completed appointment
// for the doctor overlaps the half-open range [startTime, endTime). A
// back-to-back appointment, one ending exactly when the next starts, does
// not overlap.
func (r *mongoAppointmentRepository) HasOverlap(ctx context.Context, doctorID primitive.ObjectID, startTime, endTime time.Time, excludeID *primitive.ObjectID) (bool, error) {
	err := r.collection.FindOne(ctx, overlapQuery(doctorID, startTime, endTime, excludeID)).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// overlapQuery matches active appointments for the doctor whose half-open
// interval intersects [startTime, endTime). The strict $lt/$gt bounds keep
// back-to-back slots from matching each other.
func overlapQuery(doctorID primitive.ObjectID, startTime, endTime time.Time, excludeID *primitive.ObjectID) bson.M {
	query := bson.M{
		"doctor_id":  doctorID,
		"status":     bson.M{"$nin": bson.A{models.StatusCancelled, models.StatusCompleted}},
		"start_time": bson.M{"$lt": endTime},
		"end_time":   bson.M{"$gt": startTime},
	}
	if excludeID != nil {
		query["_id"] = bson.M{"$ne": *excludeID}
	}
	return query
}

func (r *mongoAppointmentRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Appointment, error) {
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var appointment models.Appointment
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&appointment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *mongoAppointmentRepository) Stats(ctx context.Context, doctorID *primitive.ObjectID, startDate, endDate *time.Time) (*models.AppointmentStats, error) {
	match := bson.M{}
	if doctorID != nil {
		match["doctor_id"] = *doctorID
	}
	if startDate != nil || endDate != nil {
		timeRange := bson.M{}
		if startDate != nil {
			timeRange["$gte"] = *startDate
		}
		if endDate != nil {
			timeRange["$lte"] = *endDate
		}
		match["start_time"] = timeRange
	}

	countByStatus := func(status models.AppointmentStatus) bson.D {
		return bson.D{{Key: "$sum", Value: bson.D{
			{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$eq", Value: bson.A{"$status", status}}}, 1, 0,
			}},
		}}}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_appointments", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "scheduled_count", Value: countByStatus(models.StatusScheduled)},
			{Key: "confirmed_count", Value: countByStatus(models.StatusConfirmed)},
			{Key: "completed_count", Value: countByStatus(models.StatusCompleted)},
			{Key: "cancelled_count", Value: countByStatus(models.StatusCancelled)},
			{Key: "no_show_count", Value: countByStatus(models.StatusNoShow)},
			{Key: "average_duration", Value: bson.D{{Key: "$avg", Value: "$duration"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var results []models.AppointmentStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return &models.AppointmentStats{}, nil
	}
	return &results[0], nil
}
