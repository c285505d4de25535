package routes

import (
	"github.com/gin-gonic/gin"

	"golang-advisorybackend/controllers"
	"golang-advisorybackend/middleware"
)

func AppointmentRoutes(incomingRoutes *gin.RouterGroup, ctrl *controllers.AppointmentController) {
	incomingRoutes.POST("/appointments", ctrl.CreateAppointment())
	incomingRoutes.GET("/appointments", ctrl.GetAppointments())

	// Fixed paths before the :id parameter so gin does not shadow them.
	incomingRoutes.GET("/appointments/upcoming", ctrl.GetUpcomingAppointments())
	incomingRoutes.GET("/appointments/today", middleware.RequireAdvisor(), ctrl.GetTodaySchedule())
	incomingRoutes.GET("/appointments/stats", middleware.RequireAdvisor(), ctrl.GetAppointmentStats())

	incomingRoutes.GET("/appointments/:id", ctrl.GetAppointment())
	incomingRoutes.PUT("/appointments/:id", ctrl.UpdateAppointment())
	incomingRoutes.POST("/appointments/:id/cancel", ctrl.CancelAppointment())
	incomingRoutes.POST("/appointments/:id/reschedule", ctrl.RescheduleAppointment())
	incomingRoutes.POST("/appointments/:id/confirm", middleware.RequireAdvisor(), ctrl.ConfirmAppointment())
	incomingRoutes.POST("/appointments/:id/complete", middleware.RequireAdvisor(), ctrl.CompleteAppointment())
	incomingRoutes.POST("/appointments/:id/attachments", ctrl.AddAttachment())
}
