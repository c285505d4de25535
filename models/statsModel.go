package models

// AppointmentStats is the single-pass status grouping over a filtered
// appointment set. AverageDuration is 0 when the set is empty.
type AppointmentStats struct {
	TotalAppointments int64   `json:"total_appointments" bson:"total_appointments"`
	ScheduledCount    int64   `json:"scheduled_count" bson:"scheduled_count"`
	ConfirmedCount    int64   `json:"confirmed_count" bson:"confirmed_count"`
	CompletedCount    int64   `json:"completed_count" bson:"completed_count"`
	CancelledCount    int64   `json:"cancelled_count" bson:"cancelled_count"`
	NoShowCount       int64   `json:"no_show_count" bson:"no_show_count"`
	AverageDuration   float64 `json:"average_duration" bson:"average_duration"`
}
