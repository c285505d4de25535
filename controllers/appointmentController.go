package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"golang-advisorybackend/middleware"
	"golang-advisorybackend/services"
)

type AppointmentController struct {
	service *services.AppointmentService
	log     *logrus.Logger
}

func NewAppointmentController(service *services.AppointmentService, log *logrus.Logger) *AppointmentController {
	return &AppointmentController{service: service, log: log}
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDateParam(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

func (ctrl *AppointmentController) CreateAppointment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var input services.CreateAppointmentInput
		if err := c.BindJSON(&input); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(input); err != nil {
			respondValidation(c, err)
			return
		}

		appointment, err := ctrl.service.Create(ctx, input, c.GetString(middleware.ContextUserID))
		if err != nil {
			respondError(c, err)
			return
		}

		respondData(c, http.StatusCreated, appointment)
	}
}

func (ctrl *AppointmentController) GetAppointments() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))

		input := services.ListAppointmentsInput{
			PatientID:  c.Query("patient_id"),
			DoctorID:   c.Query("doctor_id"),
			Statuses:   splitParam(c.Query("status")),
			Types:      splitParam(c.Query("type")),
			StartDate:  parseDateParam(c.Query("start_date")),
			EndDate:    parseDateParam(c.Query("end_date")),
			Department: c.Query("department"),
			Location:   c.Query("location"),
			Page:       page,
			Limit:      limit,
			SortBy:     c.Query("sort_by"),
			SortOrder:  c.Query("sort_order"),
		}

		list, err := ctrl.service.List(ctx, input)
		if err != nil {
			respondError(c, err)
			return
		}

		respondData(c, http.StatusOK, list)
	}
}

func (ctrl *AppointmentController) GetAppointment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		appointment, err := ctrl.service.GetByID(ctx, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		respondData(c, http.StatusOK, appointment)
	}
}

func (ctrl *AppointmentController) UpdateAppointment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var input services.UpdateAppointmentInput
		if err := c.BindJSON(&input); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(input); err != nil {
			respondValidation(c, err)
			return
		}

		appointment, err := ctrl.service.Update(ctx, c.Param("id"), input, c.GetString(middleware.ContextUserID))
		if err != nil {
			respondError(c, err)
			return
		}

		respondData(c, http.StatusOK, appointment)
	}
}

func (ctrl *AppointmentController) CancelAppointment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var input services.CancelAppointmentInput
		if err := c.BindJSON(&input); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(input); err != nil {
			respondValidation(c, err)
			return
		}

		appointment, err := ctrl.service.Cancel(ctx, c.Param("id"), input, c.GetString(middleware.ContextUserID))
		if err != nil {
			respondError(c, err)
			return
		}

		respondMessage(c, http.StatusOK, "appointment cancelled successfully", appointment)
	}
}

func (ctrl *AppointmentController) RescheduleAppointment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var input services.RescheduleAppointmentInput
		if err := c.BindJSON(&input); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(input); err != nil {
			respondValidation(c, err)
			return
		}

		appointment, err := ctrl.service.Reschedule(ctx, c.Param("id"), input, c.GetString(middleware.ContextUserID))
		if err != nil {
			respondError(c, err)
			return
		}

		respondMessage(c, http.StatusOK, "appointment rescheduled successfully", appointment)
	}
}

func (ctrl *AppointmentController) ConfirmAppointment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		appointment, err := ctrl.service.Confirm(ctx, c.Param("id"), c.GetString(middleware.ContextUserID))
		if err != nil {
			respondError(c, err)
			return
		}

		respondMessage(c, http.StatusOK, "appointment confirmed successfully", appointment)
	}
}

func (ctrl *AppointmentController) CompleteAppointment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var input services.CompleteAppointmentInput
		if c.Request.ContentLength > 0 {
			if err := c.BindJSON(&input); err != nil {
				respondValidation(c, err)
				return
			}
		}

		appointment, err := ctrl.service.Complete(ctx, c.Param("id"), input, c.GetString(middleware.ContextUserID))
		if err != nil {
			respondError(c, err)
			return
		}

		respondMessage(c, http.StatusOK, "appointment completed successfully", appointment)
	}
}

func (ctrl *AppointmentController) AddAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var input services.AddAttachmentInput
		if err := c.BindJSON(&input); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(input); err != nil {
			respondValidation(c, err)
			return
		}

		appointment, err := ctrl.service.AddAttachment(ctx, c.Param("id"), input, c.GetString(middleware.ContextUserID))
		if err != nil {
			respondError(c, err)
			return
		}

		respondData(c, http.StatusOK, appointment)
	}
}

// GetUpcomingAppointments returns the next appointments for the caller,
// scoped by their role.
func (ctrl *AppointmentController) GetUpcomingAppointments() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		appointments, err := ctrl.service.Upcoming(ctx,
			c.GetString(middleware.ContextUserID),
			c.GetString(middleware.ContextRole),
		)
		if err != nil {
			respondError(c, err)
			return
		}

		respondData(c, http.StatusOK, gin.H{"appointments": appointments, "count": len(appointments)})
	}
}

// GetTodaySchedule lists an advisor's schedule for the current day.
func (ctrl *AppointmentController) GetTodaySchedule() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		doctorID := c.Query("doctor_id")
		if doctorID == "" {
			doctorID = c.GetString(middleware.ContextUserID)
		}

		appointments, err := ctrl.service.Today(ctx, doctorID)
		if err != nil {
			respondError(c, err)
			return
		}

		respondData(c, http.StatusOK, gin.H{"appointments": appointments, "count": len(appointments)})
	}
}

func (ctrl *AppointmentController) GetAppointmentStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		stats, err := ctrl.service.Stats(ctx,
			c.Query("doctor_id"),
			parseDateParam(c.Query("start_date")),
			parseDateParam(c.Query("end_date")),
		)
		if err != nil {
			respondError(c, err)
			return
		}

		respondData(c, http.StatusOK, stats)
	}
}
