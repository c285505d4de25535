package services

import (
	"time"

	"golang-advisorybackend/models"
)

type ParticipantInput struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required"`
}

type CreateAppointmentInput struct {
	PatientID    string             `json:"patient_id" validate:"required"`
	DoctorID     string             `json:"doctor_id" validate:"required"`
	Department   string             `json:"department"`
	Title        string             `json:"title" validate:"required,max=200"`
	Description  string             `json:"description"`
	Type         string             `json:"type" validate:"omitempty,oneof=consultation follow_up initial_assessment review emergency routine"`
	StartTime    time.Time          `json:"start_time" validate:"required"`
	EndTime      time.Time          `json:"end_time" validate:"required"`
	Location     *models.Location   `json:"location"`
	Notes        string             `json:"notes"`
	Participants []ParticipantInput `json:"participants"`
}

type UpdateAppointmentInput struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Type        *string          `json:"type" validate:"omitempty,oneof=consultation follow_up initial_assessment review emergency routine"`
	StartTime   *time.Time       `json:"start_time"`
	EndTime     *time.Time       `json:"end_time"`
	Location    *models.Location `json:"location"`
	Notes       *string          `json:"notes"`
}

type CancelAppointmentInput struct {
	Reason string `json:"reason" validate:"required"`
}

type RescheduleAppointmentInput struct {
	NewStartTime time.Time `json:"new_start_time" validate:"required"`
	NewEndTime   time.Time `json:"new_end_time" validate:"required"`
	Reason       string    `json:"reason" validate:"required"`
}

type CompleteAppointmentInput struct {
	Notes *string `json:"notes"`
}

type AddAttachmentInput struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

// ListAppointmentsInput mirrors the query string of the list endpoint.
// Empty fields place no restriction on their dimension.
type ListAppointmentsInput struct {
	PatientID  string
	DoctorID   string
	Statuses   []string
	Types      []string
	StartDate  *time.Time
	EndDate    *time.Time
	Department string
	Location   string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

// UserSummary is the populated participant reference returned in place of
// a bare ObjectID.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type AppointmentResponse struct {
	ID            string                   `json:"id"`
	AppointmentID string                   `json:"appointment_id"`
	Patient       UserSummary              `json:"patient"`
	Doctor        UserSummary              `json:"doctor"`
	Department    string                   `json:"department,omitempty"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description,omitempty"`
	Type          models.AppointmentType   `json:"type"`
	Status        models.AppointmentStatus `json:"status"`
	StartTime     time.Time                `json:"start_time"`
	EndTime       time.Time                `json:"end_time"`
	Duration      int                      `json:"duration"`
	Location      *models.Location         `json:"location,omitempty"`
	Participants  []models.Participant     `json:"participants,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	Attachments   []models.Attachment      `json:"attachments,omitempty"`
	Cancellation  *models.Cancellation     `json:"cancellation,omitempty"`
	Reschedule    *models.Reschedule       `json:"reschedule,omitempty"`
	IsUpcoming    bool                     `json:"is_upcoming"`
	IsInProgress  bool                     `json:"is_in_progress"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

type AppointmentList struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	TotalPages   int                   `json:"total_pages"`
}
