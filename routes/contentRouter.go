package routes

import (
	"github.com/gin-gonic/gin"

	"golang-advisorybackend/controllers"
	"golang-advisorybackend/middleware"
)

// ContentRoutes covers the public website surface: contact form,
// newsletter, published blog posts and insights, careers and market data.
func ContentRoutes(
	incomingRoutes *gin.RouterGroup,
	contact *controllers.ContactController,
	newsletter *controllers.NewsletterController,
	blog *controllers.BlogController,
	insight *controllers.InsightController,
	job *controllers.JobController,
	market *controllers.MarketController,
) {
	incomingRoutes.POST("/contact", contact.SubmitContact())

	incomingRoutes.POST("/newsletter/subscribe", newsletter.Subscribe())
	incomingRoutes.POST("/newsletter/unsubscribe", newsletter.Unsubscribe())

	incomingRoutes.GET("/blog", blog.GetBlogPosts())
	incomingRoutes.GET("/blog/:id", blog.GetBlogPost())

	incomingRoutes.GET("/insights", insight.GetInsights())
	incomingRoutes.GET("/insights/:slug", insight.GetInsightBySlug())

	incomingRoutes.POST("/careers/apply", job.SubmitApplication())

	incomingRoutes.GET("/market/quotes", market.GetQuotes())
	incomingRoutes.GET("/market/quotes/:symbol", market.GetQuote())
}

// AdminContentRoutes covers the back-office side of the same content.
func AdminContentRoutes(
	incomingRoutes *gin.RouterGroup,
	contact *controllers.ContactController,
	newsletter *controllers.NewsletterController,
	blog *controllers.BlogController,
	insight *controllers.InsightController,
	job *controllers.JobController,
) {
	admin := incomingRoutes.Group("/admin", middleware.Authorize("admin"))

	admin.GET("/contacts", contact.GetContacts())
	admin.PUT("/contacts/:id/status", contact.UpdateContactStatus())

	admin.GET("/newsletter/subscribers", newsletter.GetSubscribers())

	admin.POST("/blog", blog.CreateBlogPost())
	admin.PUT("/blog/:id", blog.UpdateBlogPost())
	admin.DELETE("/blog/:id", blog.DeleteBlogPost())

	admin.POST("/insights", insight.CreateInsight())
	admin.PUT("/insights/:id", insight.UpdateInsight())
	admin.DELETE("/insights/:id", insight.DeleteInsight())

	admin.GET("/applications", job.GetApplications())
	admin.PUT("/applications/:id/status", job.UpdateApplicationStatus())
}
