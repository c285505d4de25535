package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 30, DurationMinutes(start, start.Add(30*time.Minute)))
	assert.Equal(t, 90, DurationMinutes(start, start.Add(90*time.Minute)))
	assert.Equal(t, 0, DurationMinutes(start, start))

	// Sub-minute remainders round to the nearest minute.
	assert.Equal(t, 30, DurationMinutes(start, start.Add(30*time.Minute+20*time.Second)))
	assert.Equal(t, 31, DurationMinutes(start, start.Add(30*time.Minute+40*time.Second)))
}

func TestNewAppointmentID(t *testing.T) {
	id := NewAppointmentID()

	assert.True(t, strings.HasPrefix(id, "APT-"))
	assert.Len(t, id, 16)
	assert.Equal(t, strings.ToUpper(id), id)
	assert.NotEqual(t, id, NewAppointmentID())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	assert.False(t, StatusScheduled.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusRescheduled.IsTerminal())
	assert.False(t, StatusNoShow.IsTerminal())
}

func TestIsUpcoming(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	apt := &Appointment{
		Status:    StatusScheduled,
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
	}
	assert.True(t, apt.IsUpcoming(now))

	apt.Status = StatusCancelled
	assert.False(t, apt.IsUpcoming(now))

	apt.Status = StatusConfirmed
	apt.StartTime = now.Add(-time.Hour)
	assert.False(t, apt.IsUpcoming(now))
}

func TestIsInProgress(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 15, 0, 0, time.UTC)

	apt := &Appointment{
		Status:    StatusConfirmed,
		StartTime: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
	}
	assert.True(t, apt.IsInProgress(now))

	apt.Status = StatusScheduled
	assert.False(t, apt.IsInProgress(now))

	apt.Status = StatusConfirmed
	assert.False(t, apt.IsInProgress(apt.EndTime.Add(time.Minute)))
}
