package routes

import (
	"github.com/gin-gonic/gin"

	"coursecatalog/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	pageController *controllers.PageController,
) {
	// Course lifecycle routes
	router.GET("/", courseController.List)
	router.GET("/form", courseController.NewForm)
	router.POST("/form", courseController.Create)
	router.GET("/form/:id", courseController.EditForm)
	router.POST("/form/:id", courseController.Update)
	router.POST("/delete/:id", courseController.Delete)

	// Static pages
	router.GET("/about", pageController.About)
}
