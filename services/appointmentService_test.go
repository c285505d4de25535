package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-advisorybackend/errs"
	"golang-advisorybackend/logger"
	"golang-advisorybackend/models"
	"golang-advisorybackend/repository"
)

// MockAppointmentRepository is a mock implementation of AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Find(ctx context.Context, filter *repository.AppointmentFilter, page repository.PageOptions) ([]models.Appointment, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]models.Appointment), args.Get(1).(int64), args.Error(2)
}

func (m *MockAppointmentRepository) FindByStartAsc(ctx context.Context, filter *repository.AppointmentFilter, limit int64) ([]models.Appointment, error) {
	args := m.Called(ctx, filter, limit)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) HasOverlap(ctx context.Context, doctorID primitive.ObjectID, startTime, endTime time.Time, excludeID *primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, doctorID, startTime, endTime, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Appointment, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Stats(ctx context.Context, doctorID *primitive.ObjectID, startDate, endDate *time.Time) (*models.AppointmentStats, error) {
	args := m.Called(ctx, doctorID, startDate, endDate)
	return args.Get(0).(*models.AppointmentStats), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByObjectID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendAppointmentConfirmation(appointment *models.Appointment, patient, doctor *models.User) error {
	args := m.Called(appointment, patient, doctor)
	return args.Error(0)
}

func (m *MockNotifier) SendAppointmentCancellation(appointment *models.Appointment, reason string) error {
	args := m.Called(appointment, reason)
	return args.Error(0)
}

func (m *MockNotifier) SendAppointmentReschedule(appointment *models.Appointment, previousTime string) error {
	args := m.Called(appointment, previousTime)
	return args.Error(0)
}

func (m *MockNotifier) SendContactConfirmation(email, name string) error {
	args := m.Called(email, name)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func testUser(email string) *models.User {
	return &models.User{
		ID:        primitive.NewObjectID(),
		FirstName: strPtr("Jane"),
		LastName:  strPtr("Doe"),
		Email:     strPtr(email),
	}
}

func newTestService(appointments *MockAppointmentRepository, users *MockUserRepository, notifier *MockNotifier) *AppointmentService {
	svc := NewAppointmentService(appointments, users, notifier, logger.New("error"))
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateAppointment(t *testing.T) {
	doctor := testUser("doctor@example.com")
	patient := testUser("patient@example.com")
	actor := primitive.NewObjectID()

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	input := CreateAppointmentInput{
		PatientID: patient.ID.Hex(),
		DoctorID:  doctor.ID.Hex(),
		Title:     "Portfolio review",
		StartTime: start,
		EndTime:   end,
	}

	t.Run("successful creation", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		users.On("FindByObjectID", mock.Anything, doctor.ID).Return(doctor, nil)
		users.On("FindByObjectID", mock.Anything, patient.ID).Return(patient, nil)
		appointments.On("HasOverlap", mock.Anything, doctor.ID, start, end, (*primitive.ObjectID)(nil)).Return(false, nil)
		appointments.On("Insert", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil)
		notifier.On("SendAppointmentConfirmation", mock.Anything, patient, doctor).Return(nil)

		result, err := svc.Create(context.Background(), input, actor.Hex())

		assert.NoError(t, err)
		assert.Equal(t, models.StatusScheduled, result.Status)
		assert.Equal(t, models.TypeConsultation, result.Type)
		assert.Equal(t, 30, result.Duration)
		assert.Contains(t, result.AppointmentID, "APT-")
		appointments.AssertExpectations(t)
	})

	t.Run("overlapping slot is rejected", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		users.On("FindByObjectID", mock.Anything, doctor.ID).Return(doctor, nil)
		users.On("FindByObjectID", mock.Anything, patient.ID).Return(patient, nil)
		appointments.On("HasOverlap", mock.Anything, doctor.ID, start, end, (*primitive.ObjectID)(nil)).Return(true, nil)

		_, err := svc.Create(context.Background(), input, actor.Hex())

		var conflictErr *errs.ConflictError
		assert.ErrorAs(t, err, &conflictErr)
		appointments.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("unknown doctor is rejected", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		users.On("FindByObjectID", mock.Anything, doctor.ID).Return(nil, nil)
		users.On("FindByObjectID", mock.Anything, patient.ID).Return(patient, nil)

		_, err := svc.Create(context.Background(), input, actor.Hex())

		var notFoundErr *errs.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("start must precede end", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		bad := input
		bad.StartTime = end
		bad.EndTime = start

		_, err := svc.Create(context.Background(), bad, actor.Hex())

		var validationErr *errs.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("zero length slot is rejected", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		bad := input
		bad.EndTime = bad.StartTime

		_, err := svc.Create(context.Background(), bad, actor.Hex())

		var validationErr *errs.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("notification failure does not fail creation", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		users.On("FindByObjectID", mock.Anything, doctor.ID).Return(doctor, nil)
		users.On("FindByObjectID", mock.Anything, patient.ID).Return(patient, nil)
		appointments.On("HasOverlap", mock.Anything, doctor.ID, start, end, (*primitive.ObjectID)(nil)).Return(false, nil)
		appointments.On("Insert", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil)
		notifier.On("SendAppointmentConfirmation", mock.Anything, patient, doctor).Return(assert.AnError)

		result, err := svc.Create(context.Background(), input, actor.Hex())

		assert.NoError(t, err)
		assert.NotNil(t, result)
	})
}

func TestCancelAppointment(t *testing.T) {
	actor := primitive.NewObjectID()

	makeAppointment := func(status models.AppointmentStatus) *models.Appointment {
		return &models.Appointment{
			ID:            primitive.NewObjectID(),
			AppointmentID: models.NewAppointmentID(),
			PatientID:     primitive.NewObjectID(),
			DoctorID:      primitive.NewObjectID(),
			Status:        status,
			StartTime:     time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
			EndTime:       time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
		}
	}

	t.Run("cancels a scheduled appointment", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		apt := makeAppointment(models.StatusScheduled)
		cancelled := *apt
		cancelled.Status = models.StatusCancelled

		appointments.On("FindByID", mock.Anything, apt.ID).Return(apt, nil)
		appointments.On("UpdateByID", mock.Anything, apt.ID, mock.Anything).Return(&cancelled, nil)
		users.On("FindByObjectID", mock.Anything, mock.Anything).Return(nil, nil)
		notifier.On("SendAppointmentCancellation", &cancelled, "client request").Return(nil)

		result, err := svc.Cancel(context.Background(), apt.ID.Hex(), CancelAppointmentInput{Reason: "client request"}, actor.Hex())

		assert.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, result.Status)
		notifier.AssertExpectations(t)
	})

	t.Run("rejects a completed appointment", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		apt := makeAppointment(models.StatusCompleted)
		appointments.On("FindByID", mock.Anything, apt.ID).Return(apt, nil)

		_, err := svc.Cancel(context.Background(), apt.ID.Hex(), CancelAppointmentInput{Reason: "too late"}, actor.Hex())

		var stateErr *errs.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})

	t.Run("rejects a second cancellation", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		apt := makeAppointment(models.StatusCancelled)
		appointments.On("FindByID", mock.Anything, apt.ID).Return(apt, nil)

		_, err := svc.Cancel(context.Background(), apt.ID.Hex(), CancelAppointmentInput{Reason: "again"}, actor.Hex())

		var stateErr *errs.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})

	t.Run("requires a reason", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		apt := makeAppointment(models.StatusScheduled)

		_, err := svc.Cancel(context.Background(), apt.ID.Hex(), CancelAppointmentInput{}, actor.Hex())

		var validationErr *errs.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		appointments.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing appointment returns not found", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		id := primitive.NewObjectID()
		appointments.On("FindByID", mock.Anything, id).Return(nil, nil)

		_, err := svc.Cancel(context.Background(), id.Hex(), CancelAppointmentInput{Reason: "gone"}, actor.Hex())

		var notFoundErr *errs.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})
}

func TestRescheduleAppointment(t *testing.T) {
	actor := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	apt := &models.Appointment{
		ID:            primitive.NewObjectID(),
		AppointmentID: models.NewAppointmentID(),
		PatientID:     primitive.NewObjectID(),
		DoctorID:      doctorID,
		Status:        models.StatusScheduled,
		StartTime:     time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
		Duration:      30,
	}

	newStart := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	newEnd := newStart.Add(45 * time.Minute)
	input := RescheduleAppointmentInput{
		NewStartTime: newStart,
		NewEndTime:   newEnd,
		Reason:       "client travel",
	}

	t.Run("moves to a free slot", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		moved := *apt
		moved.Status = models.StatusRescheduled
		moved.StartTime = newStart
		moved.EndTime = newEnd
		moved.Duration = 45

		appointments.On("FindByID", mock.Anything, apt.ID).Return(apt, nil)
		appointments.On("HasOverlap", mock.Anything, doctorID, newStart, newEnd, &apt.ID).Return(false, nil)
		appointments.On("UpdateByID", mock.Anything, apt.ID, mock.MatchedBy(func(update bson.M) bool {
			set := update["$set"].(bson.M)
			return set["duration"] == 45 && set["status"] == models.StatusRescheduled
		})).Return(&moved, nil)
		users.On("FindByObjectID", mock.Anything, mock.Anything).Return(nil, nil)
		notifier.On("SendAppointmentReschedule", &moved, apt.StartTime.Format(time.RFC3339)).Return(nil)

		result, err := svc.Reschedule(context.Background(), apt.ID.Hex(), input, actor.Hex())

		assert.NoError(t, err)
		assert.Equal(t, models.StatusRescheduled, result.Status)
		assert.Equal(t, 45, result.Duration)
		appointments.AssertExpectations(t)
	})

	t.Run("rejects an occupied slot", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		appointments.On("FindByID", mock.Anything, apt.ID).Return(apt, nil)
		appointments.On("HasOverlap", mock.Anything, doctorID, newStart, newEnd, &apt.ID).Return(true, nil)

		_, err := svc.Reschedule(context.Background(), apt.ID.Hex(), input, actor.Hex())

		var conflictErr *errs.ConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})

	t.Run("rejects a cancelled appointment", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		cancelled := *apt
		cancelled.Status = models.StatusCancelled
		appointments.On("FindByID", mock.Anything, apt.ID).Return(&cancelled, nil)

		_, err := svc.Reschedule(context.Background(), apt.ID.Hex(), input, actor.Hex())

		var stateErr *errs.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})
}

func TestUpdateAppointment(t *testing.T) {
	actor := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	apt := &models.Appointment{
		ID:        primitive.NewObjectID(),
		DoctorID:  doctorID,
		Status:    models.StatusScheduled,
		StartTime: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
		Duration:  30,
	}

	t.Run("moving the start recomputes the duration", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		newStart := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

		appointments.On("FindByID", mock.Anything, apt.ID).Return(apt, nil)
		appointments.On("HasOverlap", mock.Anything, doctorID, newStart, apt.EndTime, &apt.ID).Return(false, nil)
		appointments.On("UpdateByID", mock.Anything, apt.ID, mock.MatchedBy(func(update bson.M) bool {
			set := update["$set"].(bson.M)
			return set["duration"] == 60
		})).Return(apt, nil)
		users.On("FindByObjectID", mock.Anything, mock.Anything).Return(nil, nil)

		_, err := svc.Update(context.Background(), apt.ID.Hex(), UpdateAppointmentInput{StartTime: &newStart}, actor.Hex())

		assert.NoError(t, err)
		appointments.AssertExpectations(t)
	})

	t.Run("cannot move a terminal appointment", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		done := *apt
		done.Status = models.StatusCompleted
		appointments.On("FindByID", mock.Anything, apt.ID).Return(&done, nil)

		newStart := apt.StartTime.Add(time.Hour)
		_, err := svc.Update(context.Background(), apt.ID.Hex(), UpdateAppointmentInput{StartTime: &newStart}, actor.Hex())

		var stateErr *errs.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})

	t.Run("title change on a terminal appointment is allowed", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		done := *apt
		done.Status = models.StatusCompleted
		appointments.On("FindByID", mock.Anything, apt.ID).Return(&done, nil)
		appointments.On("UpdateByID", mock.Anything, apt.ID, mock.Anything).Return(&done, nil)
		users.On("FindByObjectID", mock.Anything, mock.Anything).Return(nil, nil)

		title := "Final summary"
		_, err := svc.Update(context.Background(), apt.ID.Hex(), UpdateAppointmentInput{Title: &title}, actor.Hex())

		assert.NoError(t, err)
	})
}

func TestCompleteAppointment(t *testing.T) {
	actor := primitive.NewObjectID()

	t.Run("completes and stores notes", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		apt := &models.Appointment{ID: primitive.NewObjectID(), Status: models.StatusCompleted}
		notes := "reviewed allocations"

		appointments.On("UpdateByID", mock.Anything, apt.ID, mock.MatchedBy(func(update bson.M) bool {
			set := update["$set"].(bson.M)
			return set["status"] == models.StatusCompleted && set["notes"] == notes
		})).Return(apt, nil)
		users.On("FindByObjectID", mock.Anything, mock.Anything).Return(nil, nil)

		result, err := svc.Complete(context.Background(), apt.ID.Hex(), CompleteAppointmentInput{Notes: &notes}, actor.Hex())

		assert.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, result.Status)
	})

	t.Run("missing appointment returns not found", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		id := primitive.NewObjectID()
		appointments.On("UpdateByID", mock.Anything, id, mock.Anything).Return(nil, nil)

		_, err := svc.Complete(context.Background(), id.Hex(), CompleteAppointmentInput{}, actor.Hex())

		var notFoundErr *errs.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})
}

func TestUpcomingAppointments(t *testing.T) {
	t.Run("advisor sees their own calendar", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		advisorID := primitive.NewObjectID()

		appointments.On("FindByStartAsc", mock.Anything, mock.MatchedBy(func(filter *repository.AppointmentFilter) bool {
			return filter.DoctorID != nil && *filter.DoctorID == advisorID &&
				filter.PatientID == nil &&
				len(filter.Statuses) == 2 && filter.StartFrom != nil
		}), int64(10)).Return([]models.Appointment{}, nil)

		result, err := svc.Upcoming(context.Background(), advisorID.Hex(), models.RoleAdvisor)

		assert.NoError(t, err)
		assert.Empty(t, result)
		appointments.AssertExpectations(t)
	})

	t.Run("client is scoped to their own bookings", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		clientID := primitive.NewObjectID()

		appointments.On("FindByStartAsc", mock.Anything, mock.MatchedBy(func(filter *repository.AppointmentFilter) bool {
			return filter.PatientID != nil && *filter.PatientID == clientID &&
				filter.DoctorID == nil
		}), int64(10)).Return([]models.Appointment{}, nil)

		_, err := svc.Upcoming(context.Background(), clientID.Hex(), models.RoleUser)

		assert.NoError(t, err)
		appointments.AssertExpectations(t)
	})

	t.Run("admin is scoped to the advisor dimension", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		svc := newTestService(appointments, users, notifier)

		adminID := primitive.NewObjectID()

		appointments.On("FindByStartAsc", mock.Anything, mock.MatchedBy(func(filter *repository.AppointmentFilter) bool {
			return filter.DoctorID != nil && *filter.DoctorID == adminID &&
				filter.PatientID == nil
		}), int64(10)).Return([]models.Appointment{}, nil)

		_, err := svc.Upcoming(context.Background(), adminID.Hex(), models.RoleAdmin)

		assert.NoError(t, err)
		appointments.AssertExpectations(t)
	})
}

func TestTodaySchedule(t *testing.T) {
	appointments := new(MockAppointmentRepository)
	users := new(MockUserRepository)
	notifier := new(MockNotifier)
	svc := newTestService(appointments, users, notifier)

	advisorID := primitive.NewObjectID()

	appointments.On("FindByStartAsc", mock.Anything, mock.MatchedBy(func(filter *repository.AppointmentFilter) bool {
		if filter.StartFrom == nil || filter.StartTo == nil {
			return false
		}
		sameDay := filter.StartFrom.Day() == filter.StartTo.Day()
		excluded := len(filter.ExcludeStatuses) == 1 && filter.ExcludeStatuses[0] == models.StatusCancelled
		return sameDay && excluded
	}), int64(0)).Return([]models.Appointment{}, nil)

	result, err := svc.Today(context.Background(), advisorID.Hex())

	assert.NoError(t, err)
	assert.Empty(t, result)
	appointments.AssertExpectations(t)
}

func TestAppointmentStats(t *testing.T) {
	appointments := new(MockAppointmentRepository)
	users := new(MockUserRepository)
	notifier := new(MockNotifier)
	svc := newTestService(appointments, users, notifier)

	doctorID := primitive.NewObjectID()
	expected := &models.AppointmentStats{
		TotalAppointments: 6,
		CompletedCount:    3,
		CancelledCount:    1,
		AverageDuration:   38.33,
	}

	appointments.On("Stats", mock.Anything, &doctorID, (*time.Time)(nil), (*time.Time)(nil)).Return(expected, nil)

	stats, err := svc.Stats(context.Background(), doctorID.Hex(), nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, expected, stats)

	t.Run("invalid doctor id", func(t *testing.T) {
		_, err := svc.Stats(context.Background(), "not-an-id", nil, nil)

		var validationErr *errs.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestListAppointments(t *testing.T) {
	appointments := new(MockAppointmentRepository)
	users := new(MockUserRepository)
	notifier := new(MockNotifier)
	svc := newTestService(appointments, users, notifier)

	records := make([]models.Appointment, 10)
	for i := range records {
		records[i] = models.Appointment{ID: primitive.NewObjectID()}
	}

	appointments.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(records, int64(25), nil)
	users.On("FindByObjectID", mock.Anything, mock.Anything).Return(nil, nil)

	list, err := svc.List(context.Background(), ListAppointmentsInput{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, int64(25), list.Total)
	assert.Equal(t, 3, list.TotalPages)
	assert.Len(t, list.Appointments, 10)
}
