package routes

import (
	"github.com/gin-gonic/gin"

	"golang-advisorybackend/controllers"
	"golang-advisorybackend/middleware"
)

func AuthRoutes(incomingRoutes *gin.RouterGroup, ctrl *controllers.AuthController) {
	incomingRoutes.POST("/auth/signup", ctrl.SignUp())
	incomingRoutes.POST("/auth/login", ctrl.Login())
	incomingRoutes.POST("/auth/refresh", ctrl.RefreshToken())
}

func UserRoutes(incomingRoutes *gin.RouterGroup, ctrl *controllers.AuthController) {
	incomingRoutes.GET("/auth/me", ctrl.Me())
	incomingRoutes.POST("/auth/logout", ctrl.Logout())
}

func AdminUserRoutes(incomingRoutes *gin.RouterGroup, ctrl *controllers.AdminController) {
	admin := incomingRoutes.Group("/admin", middleware.Authorize("admin"))
	admin.GET("/dashboard", ctrl.GetDashboard())
	admin.GET("/users", ctrl.GetUsers())
	admin.PUT("/users/:id/role", ctrl.UpdateUserRole())
}
