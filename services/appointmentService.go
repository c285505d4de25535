package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-advisorybackend/errs"
	"golang-advisorybackend/models"
	"golang-advisorybackend/repository"
)

// AppointmentService owns the appointment lifecycle: scheduling with
// conflict detection, status transitions, queries and statistics.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	users        repository.UserRepository
	notifier     Notifier
	log          *logrus.Logger
	now          func() time.Time
}

func NewAppointmentService(
	appointments repository.AppointmentRepository,
	users repository.UserRepository,
	notifier Notifier,
	log *logrus.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		users:        users,
		notifier:     notifier,
		log:          log,
		now:          time.Now,
	}
}

func (s *AppointmentService) Create(ctx context.Context, input CreateAppointmentInput, actorID string) (*AppointmentResponse, error) {
	patientID, err := primitive.ObjectIDFromHex(input.PatientID)
	if err != nil {
		return nil, errs.Validation("invalid patient id")
	}
	doctorID, err := primitive.ObjectIDFromHex(input.DoctorID)
	if err != nil {
		return nil, errs.Validation("invalid doctor id")
	}
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, errs.Unauthorized("invalid acting user")
	}

	if !input.StartTime.Before(input.EndTime) {
		return nil, errs.Validation("start time must be before end time")
	}

	doctor, err := s.users.FindByObjectID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}
	patient, err := s.users.FindByObjectID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}
	if doctor == nil || patient == nil {
		return nil, errs.NotFound("doctor or patient")
	}

	conflict, err := s.appointments.HasOverlap(ctx, doctorID, input.StartTime, input.EndTime, nil)
	if err != nil {
		return nil, fmt.Errorf("checking schedule conflict: %w", err)
	}
	if conflict {
		return nil, errs.Conflict("doctor has a conflicting appointment at this time")
	}

	appointmentType := models.AppointmentType(input.Type)
	if appointmentType == "" {
		appointmentType = models.TypeConsultation
	}

	participants := make([]models.Participant, 0, len(input.Participants))
	for _, p := range input.Participants {
		participantID, err := primitive.ObjectIDFromHex(p.UserID)
		if err != nil {
			return nil, errs.Validation("invalid participant id")
		}
		participants = append(participants, models.Participant{
			UserID: participantID,
			Role:   p.Role,
			Status: "pending",
		})
	}

	now := s.now()
	appointment := &models.Appointment{
		ID:            primitive.NewObjectID(),
		AppointmentID: models.NewAppointmentID(),
		PatientID:     patientID,
		DoctorID:      doctorID,
		Department:    input.Department,
		Title:         input.Title,
		Description:   input.Description,
		Type:          appointmentType,
		Status:        models.StatusScheduled,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Duration:      models.DurationMinutes(input.StartTime, input.EndTime),
		Location:      input.Location,
		Participants:  participants,
		Notes:         input.Notes,
		CreatedBy:     actor,
		UpdatedBy:     actor,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.appointments.Insert(ctx, appointment); err != nil {
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	if err := s.notifier.SendAppointmentConfirmation(appointment, patient, doctor); err != nil {
		s.log.WithError(err).WithField("appointment_id", appointment.AppointmentID).
			Warn("failed to send appointment confirmation")
	}

	s.log.WithField("appointment_id", appointment.AppointmentID).Info("appointment created")

	return s.toResponse(ctx, appointment), nil
}

func (s *AppointmentService) GetByID(ctx context.Context, id string) (*AppointmentResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Validation("invalid appointment id")
	}

	appointment, err := s.appointments.FindByID(ctx, objectID)
	if err != nil {
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	if appointment == nil {
		return nil, errs.NotFound("appointment")
	}

	return s.toResponse(ctx, appointment), nil
}

func (s *AppointmentService) List(ctx context.Context, input ListAppointmentsInput) (*AppointmentList, error) {
	filter, err := buildFilter(input)
	if err != nil {
		return nil, err
	}

	page := repository.PageOptions{
		Page:      input.Page,
		Limit:     input.Limit,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
	}.Normalize()

	appointments, total, err := s.appointments.Find(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	return &AppointmentList{
		Appointments: s.toResponses(ctx, appointments),
		Total:        total,
		Page:         page.Page,
		TotalPages:   int(math.Ceil(float64(total) / float64(page.Limit))),
	}, nil
}

func (s *AppointmentService) Update(ctx context.Context, id string, input UpdateAppointmentInput, actorID string) (*AppointmentResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Validation("invalid appointment id")
	}
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, errs.Unauthorized("invalid acting user")
	}

	appointment, err := s.appointments.FindByID(ctx, objectID)
	if err != nil {
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	if appointment == nil {
		return nil, errs.NotFound("appointment")
	}

	set := bson.M{
		"updated_by": actor,
		"updated_at": s.now(),
	}

	if input.StartTime != nil || input.EndTime != nil {
		if appointment.Status.IsTerminal() {
			return nil, errs.InvalidState(fmt.Sprintf("cannot move a %s appointment", appointment.Status))
		}

		startTime := appointment.StartTime
		endTime := appointment.EndTime
		if input.StartTime != nil {
			startTime = *input.StartTime
		}
		if input.EndTime != nil {
			endTime = *input.EndTime
		}

		if !startTime.Before(endTime) {
			return nil, errs.Validation("start time must be before end time")
		}

		conflict, err := s.appointments.HasOverlap(ctx, appointment.DoctorID, startTime, endTime, &objectID)
		if err != nil {
			return nil, fmt.Errorf("checking schedule conflict: %w", err)
		}
		if conflict {
			return nil, errs.Conflict("doctor has a conflicting appointment at this time")
		}

		set["start_time"] = startTime
		set["end_time"] = endTime
		set["duration"] = models.DurationMinutes(startTime, endTime)
	}

	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Type != nil {
		set["type"] = models.AppointmentType(*input.Type)
	}
	if input.Location != nil {
		set["location"] = input.Location
	}
	if input.Notes != nil {
		set["notes"] = *input.Notes
	}

	updated, err := s.appointments.UpdateByID(ctx, objectID, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("updating appointment: %w", err)
	}
	if updated == nil {
		return nil, errs.NotFound("appointment")
	}

	s.log.WithField("appointment_id", updated.AppointmentID).Info("appointment updated")

	return s.toResponse(ctx, updated), nil
}

func (s *AppointmentService) Cancel(ctx context.Context, id string, input CancelAppointmentInput, actorID string) (*AppointmentResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Validation("invalid appointment id")
	}
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, errs.Unauthorized("invalid acting user")
	}

	if input.Reason == "" {
		return nil, errs.Validation("cancellation reason is required")
	}

	appointment, err := s.appointments.FindByID(ctx, objectID)
	if err != nil {
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	if appointment == nil {
		return nil, errs.NotFound("appointment")
	}

	if appointment.Status == models.StatusCompleted {
		return nil, errs.InvalidState("cannot cancel a completed appointment")
	}
	if appointment.Status == models.StatusCancelled {
		return nil, errs.InvalidState("appointment is already cancelled")
	}

	update := bson.M{"$set": bson.M{
		"status": models.StatusCancelled,
		"cancellation": models.Cancellation{
			Reason:      input.Reason,
			CancelledBy: actor,
			CancelledAt: s.now(),
		},
		"updated_by": actor,
		"updated_at": s.now(),
	}}

	cancelled, err := s.appointments.UpdateByID(ctx, objectID, update)
	if err != nil {
		return nil, fmt.Errorf("cancelling appointment: %w", err)
	}
	if cancelled == nil {
		return nil, errs.NotFound("appointment")
	}

	if err := s.notifier.SendAppointmentCancellation(cancelled, input.Reason); err != nil {
		s.log.WithError(err).WithField("appointment_id", cancelled.AppointmentID).
			Warn("failed to send cancellation notice")
	}

	s.log.WithField("appointment_id", cancelled.AppointmentID).Info("appointment cancelled")

	return s.toResponse(ctx, cancelled), nil
}

func (s *AppointmentService) Reschedule(ctx context.Context, id string, input RescheduleAppointmentInput, actorID string) (*AppointmentResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Validation("invalid appointment id")
	}
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, errs.Unauthorized("invalid acting user")
	}

	if !input.NewStartTime.Before(input.NewEndTime) {
		return nil, errs.Validation("start time must be before end time")
	}

	appointment, err := s.appointments.FindByID(ctx, objectID)
	if err != nil {
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	if appointment == nil {
		return nil, errs.NotFound("appointment")
	}

	if appointment.Status == models.StatusCompleted {
		return nil, errs.InvalidState("cannot reschedule a completed appointment")
	}
	if appointment.Status == models.StatusCancelled {
		return nil, errs.InvalidState("cannot reschedule a cancelled appointment")
	}

	conflict, err := s.appointments.HasOverlap(ctx, appointment.DoctorID, input.NewStartTime, input.NewEndTime, &objectID)
	if err != nil {
		return nil, fmt.Errorf("checking schedule conflict: %w", err)
	}
	if conflict {
		return nil, errs.Conflict("doctor has a conflicting appointment at this time")
	}

	update := bson.M{"$set": bson.M{
		"status":     models.StatusRescheduled,
		"start_time": input.NewStartTime,
		"end_time":   input.NewEndTime,
		"duration":   models.DurationMinutes(input.NewStartTime, input.NewEndTime),
		"reschedule": models.Reschedule{
			PreviousTime:  appointment.StartTime,
			RequestedTime: input.NewStartTime,
			Reason:        input.Reason,
			Status:        "approved",
			RequestedBy:   actor,
		},
		"updated_by": actor,
		"updated_at": s.now(),
	}}

	rescheduled, err := s.appointments.UpdateByID(ctx, objectID, update)
	if err != nil {
		return nil, fmt.Errorf("rescheduling appointment: %w", err)
	}
	if rescheduled == nil {
		return nil, errs.NotFound("appointment")
	}

	if err := s.notifier.SendAppointmentReschedule(rescheduled, appointment.StartTime.Format(time.RFC3339)); err != nil {
		s.log.WithError(err).WithField("appointment_id", rescheduled.AppointmentID).
			Warn("failed to send reschedule notice")
	}

	s.log.WithField("appointment_id", rescheduled.AppointmentID).Info("appointment rescheduled")

	return s.toResponse(ctx, rescheduled), nil
}

func (s *AppointmentService) Confirm(ctx context.Context, id string, actorID string) (*AppointmentResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Validation("invalid appointment id")
	}
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, errs.Unauthorized("invalid acting user")
	}

	update := bson.M{"$set": bson.M{
		"status":     models.StatusConfirmed,
		"updated_by": actor,
		"updated_at": s.now(),
	}}

	confirmed, err := s.appointments.UpdateByID(ctx, objectID, update)
	if err != nil {
		return nil, fmt.Errorf("confirming appointment: %w", err)
	}
	if confirmed == nil {
		return nil, errs.NotFound("appointment")
	}

	if err := s.notifier.SendAppointmentConfirmation(confirmed, nil, nil); err != nil {
		s.log.WithError(err).WithField("appointment_id", confirmed.AppointmentID).
			Warn("failed to send appointment confirmation")
	}

	return s.toResponse(ctx, confirmed), nil
}

// Complete marks the appointment completed, overwriting any existing notes
// when new notes are supplied. Unlike cancel and reschedule it does not
// reject cancelled appointments; that matches the observed behaviour of
// the system it replaces.
func (s *AppointmentService) Complete(ctx context.Context, id string, input CompleteAppointmentInput, actorID string) (*AppointmentResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Validation("invalid appointment id")
	}
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, errs.Unauthorized("invalid acting user")
	}

	set := bson.M{
		"status":     models.StatusCompleted,
		"updated_by": actor,
		"updated_at": s.now(),
	}
	if input.Notes != nil {
		set["notes"] = *input.Notes
	}

	completed, err := s.appointments.UpdateByID(ctx, objectID, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("completing appointment: %w", err)
	}
	if completed == nil {
		return nil, errs.NotFound("appointment")
	}

	return s.toResponse(ctx, completed), nil
}

func (s *AppointmentService) AddAttachment(ctx context.Context, id string, input AddAttachmentInput, actorID string) (*AppointmentResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Validation("invalid appointment id")
	}
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, errs.Unauthorized("invalid acting user")
	}

	update := bson.M{
		"$push": bson.M{"attachments": models.Attachment{
			Name:       input.Name,
			URL:        input.URL,
			UploadedAt: s.now(),
		}},
		"$set": bson.M{
			"updated_by": actor,
			"updated_at": s.now(),
		},
	}

	updated, err := s.appointments.UpdateByID(ctx, objectID, update)
	if err != nil {
		return nil, fmt.Errorf("adding attachment: %w", err)
	}
	if updated == nil {
		return nil, errs.NotFound("appointment")
	}

	return s.toResponse(ctx, updated), nil
}

// Upcoming returns the next ten scheduled or confirmed appointments for
// the requesting patient or doctor.
func (s *AppointmentService) Upcoming(ctx context.Context, userID string, role string) ([]AppointmentResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errs.Unauthorized("invalid acting user")
	}

	now := s.now()
	filter := &repository.AppointmentFilter{
		Statuses:  []models.AppointmentStatus{models.StatusScheduled, models.StatusConfirmed},
		StartFrom: &now,
	}
	// Clients are scoped to their own bookings; every other role sees the
	// advisor side of the calendar.
	if role == models.RoleUser {
		filter.PatientID = &objectID
	} else {
		filter.DoctorID = &objectID
	}

	appointments, err := s.appointments.FindByStartAsc(ctx, filter, 10)
	if err != nil {
		return nil, fmt.Errorf("fetching upcoming appointments: %w", err)
	}

	return s.toResponses(ctx, appointments), nil
}

// Today returns the doctor's appointments within the local calendar day,
// excluding cancelled ones.
func (s *AppointmentService) Today(ctx context.Context, doctorID string) ([]AppointmentResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, errs.Unauthorized("invalid acting user")
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24*time.Hour - time.Millisecond)

	filter := &repository.AppointmentFilter{
		DoctorID:        &objectID,
		ExcludeStatuses: []models.AppointmentStatus{models.StatusCancelled},
		StartFrom:       &startOfDay,
		StartTo:         &endOfDay,
	}

	appointments, err := s.appointments.FindByStartAsc(ctx, filter, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching today's appointments: %w", err)
	}

	return s.toResponses(ctx, appointments), nil
}

func (s *AppointmentService) Stats(ctx context.Context, doctorID string, startDate, endDate *time.Time) (*models.AppointmentStats, error) {
	var doctor *primitive.ObjectID
	if doctorID != "" {
		objectID, err := primitive.ObjectIDFromHex(doctorID)
		if err != nil {
			return nil, errs.Validation("invalid doctor id")
		}
		doctor = &objectID
	}

	stats, err := s.appointments.Stats(ctx, doctor, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("aggregating appointment stats: %w", err)
	}
	return stats, nil
}

func buildFilter(input ListAppointmentsInput) (*repository.AppointmentFilter, error) {
	filter := &repository.AppointmentFilter{
		StartFrom: input.StartDate,
		StartTo:   input.EndDate,
	}

	if input.PatientID != "" {
		id, err := primitive.ObjectIDFromHex(input.PatientID)
		if err != nil {
			return nil, errs.Validation("invalid patient id")
		}
		filter.PatientID = &id
	}
	if input.DoctorID != "" {
		id, err := primitive.ObjectIDFromHex(input.DoctorID)
		if err != nil {
			return nil, errs.Validation("invalid doctor id")
		}
		filter.DoctorID = &id
	}
	if input.Department != "" {
		filter.Department = &input.Department
	}
	if input.Location != "" {
		filter.LocationType = &input.Location
	}
	for _, status := range input.Statuses {
		filter.Statuses = append(filter.Statuses, models.AppointmentStatus(status))
	}
	for _, appointmentType := range input.Types {
		filter.Types = append(filter.Types, models.AppointmentType(appointmentType))
	}

	return filter, nil
}

func (s *AppointmentService) toResponses(ctx context.Context, appointments []models.Appointment) []AppointmentResponse {
	responses := make([]AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *s.toResponse(ctx, &appointments[i]))
	}
	return responses
}

func (s *AppointmentService) toResponse(ctx context.Context, appointment *models.Appointment) *AppointmentResponse {
	now := s.now()
	return &AppointmentResponse{
		ID:            appointment.ID.Hex(),
		AppointmentID: appointment.AppointmentID,
		Patient:       s.userSummary(ctx, appointment.PatientID),
		Doctor:        s.userSummary(ctx, appointment.DoctorID),
		Department:    appointment.Department,
		Title:         appointment.Title,
		Description:   appointment.Description,
		Type:          appointment.Type,
		Status:        appointment.Status,
		StartTime:     appointment.StartTime,
		EndTime:       appointment.EndTime,
		Duration:      appointment.Duration,
		Location:      appointment.Location,
		Participants:  appointment.Participants,
		Notes:         appointment.Notes,
		Attachments:   appointment.Attachments,
		Cancellation:  appointment.Cancellation,
		Reschedule:    appointment.Reschedule,
		IsUpcoming:    appointment.IsUpcoming(now),
		IsInProgress:  appointment.IsInProgress(now),
		CreatedAt:     appointment.CreatedAt,
		UpdatedAt:     appointment.UpdatedAt,
	}
}

// userSummary resolves a participant reference at read time; references
// are never embedded by value so a renamed user is never served stale.
func (s *AppointmentService) userSummary(ctx context.Context, id primitive.ObjectID) UserSummary {
	summary := UserSummary{ID: id.Hex()}

	user, err := s.users.FindByObjectID(ctx, id)
	if err != nil || user == nil {
		return summary
	}

	summary.Name = user.FullName()
	if user.Email != nil {
		summary.Email = *user.Email
	}
	summary.Phone = user.Phone
	return summary
}
