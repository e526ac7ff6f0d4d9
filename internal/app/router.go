package app

import (
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		a.registerLearnerRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/dashboard", c.dashboard.GetDashboard)

	rg.GET("/profile", c.user.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.POST("/profile/avatar", c.user.UploadAvatar)

	rg.GET("/courses", c.course.ListMyCourses)
	rg.GET("/courses/:id", c.course.GetCourseContent)

	rg.POST("/lessons/:id/quiz", c.quiz.Start)
	quiz := rg.Group("/quiz")
	{
		quiz.GET("/:session", c.quiz.Get)
		quiz.DELETE("/:session", c.quiz.Discard)
		quiz.POST("/:session/select", c.quiz.Select)
		quiz.POST("/:session/next", c.quiz.Advance)
		quiz.POST("/:session/retry", c.quiz.Retry)
	}

	calendar := rg.Group("/calendar")
	{
		calendar.GET("", c.calendar.Grid)
		calendar.GET("/events", c.calendar.ListEvents)
		calendar.POST("/events", c.calendar.CreateEvent)
		calendar.DELETE("/events/:id", c.calendar.DeleteEvent)
	}

	messages := rg.Group("/messages")
	{
		messages.GET("", c.message.Conversations)
		messages.POST("", c.message.Send)
		messages.GET("/stream", c.message.Stream)
		messages.GET("/:userId", c.message.Read)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/stats", c.admin.Stats)

		admin.GET("/users", c.admin.ListUsers)
		admin.POST("/users", c.admin.CreateUser)
		admin.PUT("/users/:id/role", c.admin.ChangeRole)

		admin.POST("/enrollments", c.admin.Enroll)

		admin.GET("/courses", c.admin.ListCourses)
		admin.POST("/courses", c.admin.CreateCourse)
		admin.DELETE("/courses/:id", c.admin.DeleteCourse)
		admin.GET("/courses/:id/lessons", c.admin.ListLessons)
		admin.POST("/courses/:id/lessons", c.admin.AddLesson)
		admin.DELETE("/lessons/:id", c.admin.DeleteLesson)
	}
}
