package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusInProgress  AppointmentStatus = "in_progress"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusNoShow      AppointmentStatus = "no_show"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

// IsTerminal reports whether no further status or time mutation is
// permitted (attachments and notes are still allowed).
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type AppointmentType string

const (
	TypeConsultation      AppointmentType = "consultation"
	TypeFollowUp          AppointmentType = "follow_up"
	TypeInitialAssessment AppointmentType = "initial_assessment"
	TypeReview            AppointmentType = "review"
	TypeEmergency         AppointmentType = "emergency"
	TypeRoutine           AppointmentType = "routine"
)

// Location is a discriminated variant: virtual appointments carry a link,
// in-person ones a room or address, phone ones neither.
type Location struct {
	Type    string `json:"type" bson:"type" validate:"required,oneof=virtual in-person phone"`
	Link    string `json:"link,omitempty" bson:"link,omitempty"`
	Room    string `json:"room,omitempty" bson:"room,omitempty"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
}

type Participant struct {
	UserID primitive.ObjectID `json:"user_id" bson:"user_id"`
	Role   string             `json:"role" bson:"role"`
	Status string             `json:"status" bson:"status"`
}

type Reminder struct {
	Type   string    `json:"type" bson:"type"`
	SentAt time.Time `json:"sent_at" bson:"sent_at"`
	Status string    `json:"status" bson:"status"`
}

type Attachment struct {
	Name       string    `json:"name" bson:"name"`
	URL        string    `json:"url" bson:"url"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// Cancellation is present iff the appointment status is cancelled.
type Cancellation struct {
	Reason      string             `json:"reason" bson:"reason"`
	CancelledBy primitive.ObjectID `json:"cancelled_by" bson:"cancelled_by"`
	CancelledAt time.Time          `json:"cancelled_at" bson:"cancelled_at"`
}

// Reschedule is present iff the appointment has been moved after its
// initial scheduling.
type Reschedule struct {
	PreviousTime  time.Time          `json:"previous_time" bson:"previous_time"`
	RequestedTime time.Time          `json:"requested_time" bson:"requested_time"`
	Reason        string             `json:"reason" bson:"reason"`
	Status        string             `json:"status" bson:"status"`
	RequestedBy   primitive.ObjectID `json:"requested_by" bson:"requested_by"`
}

type Appointment struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	AppointmentID string             `json:"appointment_id" bson:"appointment_id"`
	PatientID     primitive.ObjectID `json:"patient_id" bson:"patient_id"`
	DoctorID      primitive.ObjectID `json:"doctor_id" bson:"doctor_id"`
	Department    string             `json:"department,omitempty" bson:"department,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Type          AppointmentType    `json:"type" bson:"type"`
	Status        AppointmentStatus  `json:"status" bson:"status"`
	StartTime     time.Time          `json:"start_time" bson:"start_time"`
	EndTime       time.Time          `json:"end_time" bson:"end_time"`
	Duration      int                `json:"duration" bson:"duration"`
	Location      *Location          `json:"location,omitempty" bson:"location,omitempty"`
	Participants  []Participant      `json:"participants,omitempty" bson:"participants,omitempty"`
	Reminders     []Reminder         `json:"reminders,omitempty" bson:"reminders,omitempty"`
	Notes         string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Attachments   []Attachment       `json:"attachments,omitempty" bson:"attachments,omitempty"`
	Cancellation  *Cancellation      `json:"cancellation,omitempty" bson:"cancellation,omitempty"`
	Reschedule    *Reschedule        `json:"reschedule,omitempty" bson:"reschedule,omitempty"`
	CreatedBy     primitive.ObjectID `json:"created_by" bson:"created_by"`
	UpdatedBy     primitive.ObjectID `json:"updated_by" bson:"updated_by"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// NewAppointmentID generates the human-meaningful appointment identifier
// stored alongside the ObjectID primary key.
func NewAppointmentID() string {
	return "APT-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// DurationMinutes computes the derived duration field. It is never
// accepted as input; callers recompute it whenever either bound changes.
func DurationMinutes(startTime, endTime time.Time) int {
	return int(endTime.Sub(startTime).Round(time.Minute) / time.Minute)
}

// IsUpcoming reports whether the appointment starts in the future and is
// still scheduled or confirmed.
func (a *Appointment) IsUpcoming(now time.Time) bool {
	return a.StartTime.After(now) && (a.Status == StatusScheduled || a.Status == StatusConfirmed)
}

// IsInProgress reports whether a confirmed appointment is currently
// underway.
func (a *Appointment) IsInProgress(now time.Time) bool {
	return !now.Before(a.StartTime) && !now.After(a.EndTime) && a.Status == StatusConfirmed
}
