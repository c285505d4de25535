package routes

import (
	"github.com/gin-gonic/gin"

	"golang-advisorybackend/controllers"
	"golang-advisorybackend/middleware"
)

func InvestmentRoutes(incomingRoutes *gin.RouterGroup, ctrl *controllers.InvestmentController) {
	incomingRoutes.POST("/investments", ctrl.CreateInvestment())
	incomingRoutes.GET("/investments", ctrl.GetInvestments())
	incomingRoutes.GET("/investments/:id", ctrl.GetInvestment())
	incomingRoutes.DELETE("/investments/:id", ctrl.DeleteInvestment())

	incomingRoutes.PUT("/investments/:id/status", middleware.Authorize("admin"), ctrl.UpdateInvestmentStatus())
}
