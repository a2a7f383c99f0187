package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/controllers"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
)

// Controllers bundles every controller required by the router
type Controllers struct {
	Auth         *controllers.AuthController
	Student      *controllers.StudentController
	Credit       *controllers.CreditController
	Goal         *controllers.GoalController
	Interest     *controllers.InterestController
	Achievement  *controllers.AchievementController
	Sanction     *controllers.SanctionController
	Event        *controllers.EventController
	Portfolio    *controllers.PortfolioController
	Notification *controllers.NotificationController
	Statistics   *controllers.StatisticsController
	Report       *controllers.ReportController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	auditMiddleware *middleware.AuditMiddleware,
) {
	v1 := router.Group("/api/v1")
	v1.Use(auditMiddleware.Audit())

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.POST("/forgot-password", c.Auth.ForgotPassword)
		auth.POST("/reset-password", c.Auth.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticatedAuth := authenticated.Group("/auth")
		{
			authenticatedAuth.POST("/logout", c.Auth.Logout)
			authenticatedAuth.POST("/change-password", c.Auth.ChangePassword)
			authenticatedAuth.POST("/2fa/setup", c.Auth.SetupTwoFactor)
			authenticatedAuth.POST("/2fa/verify", c.Auth.VerifyTwoFactor)
			authenticatedAuth.DELETE("/2fa", c.Auth.DisableTwoFactor)

			authAdmin := authenticatedAuth.Group("")
			authAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				authAdmin.POST("/unlock/:id", c.Auth.UnlockAccount)
			}
		}

		students := authenticated.Group("/students")
		{
			students.GET("/me", c.Student.GetOwn)
			students.GET("/:id", c.Student.GetByID)
			students.PUT("/:id", c.Student.Update)

			// Per-student nested resources; fine-grained ownership rules
			// are enforced by the policy engine in the service layer
			students.GET("/:id/credits", c.Credit.ListForStudent)

			students.GET("/:id/goals", c.Goal.List)
			students.GET("/:id/goals/:category", c.Goal.Get)
			students.PUT("/:id/goals/:category", c.Goal.Upsert)
			students.DELETE("/:id/goals/:category", c.Goal.Delete)

			students.GET("/:id/interests", c.Interest.Get)
			students.PUT("/:id/interests", c.Interest.Update)

			students.GET("/:id/achievements", c.Achievement.List)
			students.POST("/:id/achievements", c.Achievement.Create)
			students.DELETE("/:id/achievements/:achievementId", c.Achievement.Delete)

			students.GET("/:id/sanctions", c.Sanction.Get)

			students.GET("/:id/portfolio", c.Portfolio.Get)
			students.PUT("/:id/portfolio", c.Portfolio.Update)
			students.POST("/:id/portfolio/recommendations", c.Portfolio.AddRecommendation)
			students.DELETE("/:id/portfolio/recommendations/:recommendationId", c.Portfolio.DeleteRecommendation)

			// Staff-only student routes
			studentsStaff := students.Group("")
			studentsStaff.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleAdmin))
			{
				studentsStaff.GET("", c.Student.List)
				studentsStaff.PUT("/:id/sanctions/absences", c.Sanction.UpdateAbsences)
				studentsStaff.PUT("/:id/sanctions/schoolo-remarks", c.Sanction.UpdateRemarks)
				studentsStaff.POST("/:id/sanctions/active", c.Sanction.AddActiveSanction)
				studentsStaff.DELETE("/:id/sanctions/active/:sanctionId", c.Sanction.RemoveActiveSanction)
			}

			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				studentsAdmin.POST("", c.Student.CreateProfile)
				studentsAdmin.DELETE("/:id", c.Student.Delete)
			}
		}

		credits := authenticated.Group("/credits")
		{
			credits.POST("", c.Credit.Create)
			credits.DELETE("/:id", c.Credit.Delete)
			credits.GET("/categories", c.Credit.ListCategories)

			creditsStaff := credits.Group("")
			creditsStaff.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleAdmin))
			{
				creditsStaff.GET("/pending", c.Credit.ListPending)
				creditsStaff.PATCH("/:id/validate", c.Credit.Validate)
			}

			creditsAdmin := credits.Group("")
			creditsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				creditsAdmin.POST("/categories", c.Credit.CreateCategory)
				creditsAdmin.DELETE("/categories/:id", c.Credit.DeleteCategory)
			}
		}

		events := authenticated.Group("/events")
		{
			events.GET("", c.Event.List)
			events.GET("/:id", c.Event.GetByID)
			events.POST("/:id/participations", c.Event.Register)
			events.DELETE("/:id/participations", c.Event.CancelParticipation)

			eventsStaff := events.Group("")
			eventsStaff.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleAdmin))
			{
				eventsStaff.POST("", c.Event.Create)
				eventsStaff.PUT("/:id", c.Event.Update)
				eventsStaff.DELETE("/:id", c.Event.Delete)
				eventsStaff.GET("/:id/participations", c.Event.ListParticipations)
			}
		}

		participations := authenticated.Group("/participations")
		{
			participations.PATCH("/:participationId/status", c.Event.SetParticipationStatus)
			participations.POST("/:participationId/feedback", c.Event.SubmitFeedback)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", c.Notification.List)
			notifications.GET("/unread-count", c.Notification.CountUnread)
			notifications.PATCH("/read-all", c.Notification.MarkAllRead)
			notifications.PATCH("/:id/read", c.Notification.MarkRead)
			notifications.DELETE("/:id", c.Notification.Delete)
		}

		statistics := authenticated.Group("/statistics")
		statistics.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleAdmin))
		{
			statistics.GET("/overview", c.Statistics.Overview)
			statistics.GET("/credits", c.Statistics.Credits)
			statistics.GET("/events", c.Statistics.Events)
			statistics.GET("/absences", c.Statistics.Absences)
		}

		reports := authenticated.Group("/reports")
		{
			reports.GET("/students/:id/:format", c.Report.Download)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})
}
