package services

import (
	"github.com/sirupsen/logrus"

	"golang-advisorybackend/models"
)

// Notifier dispatches appointment messages. Dispatch is fire-and-forget:
// a failure is logged by the caller and never fails the triggering
// operation.
type Notifier interface {
	SendAppointmentConfirmation(appointment *models.Appointment, patient, doctor *models.User) error
	SendAppointmentCancellation(appointment *models.Appointment, reason string) error
	SendAppointmentReschedule(appointment *models.Appointment, previousTime string) error
	SendContactConfirmation(email, name string) error
}

// LogNotifier records every dispatch in the application log. Wiring a real
// mail transport replaces this implementation behind the same interface.
type LogNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendAppointmentConfirmation(appointment *models.Appointment, patient, doctor *models.User) error {
	fields := logrus.Fields{
		"appointment_id": appointment.AppointmentID,
		"start_time":     appointment.StartTime,
	}
	if patient != nil && patient.Email != nil {
		fields["patient"] = *patient.Email
	}
	if doctor != nil && doctor.Email != nil {
		fields["doctor"] = *doctor.Email
	}
	n.log.WithFields(fields).Info("appointment confirmation sent")
	return nil
}

func (n *LogNotifier) SendAppointmentCancellation(appointment *models.Appointment, reason string) error {
	n.log.WithFields(logrus.Fields{
		"appointment_id": appointment.AppointmentID,
		"reason":         reason,
	}).Info("appointment cancellation sent")
	return nil
}

func (n *LogNotifier) SendAppointmentReschedule(appointment *models.Appointment, previousTime string) error {
	n.log.WithFields(logrus.Fields{
		"appointment_id": appointment.AppointmentID,
		"previous_time":  previousTime,
		"new_time":       appointment.StartTime,
	}).Info("appointment reschedule notice sent")
	return nil
}

func (n *LogNotifier) SendContactConfirmation(email, name string) error {
	n.log.WithFields(logrus.Fields{
		"email": email,
		"name":  name,
	}).Info("contact confirmation sent")
	return nil
}
