package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/controllers"
	"github.com/yeremiapane/jobportal-app/middlewares"
	"github.com/yeremiapane/jobportal-app/utils"
)

func SetupRouter(app *App) *gin.Engine {
	r := gin.New()

	// Apply global middlewares
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(app.Config.CORSOrigins))
	r.Use(middlewares.AuthMiddleware(app.Tokens))
	r.Use(middlewares.WebSocketAuthMiddleware(app.Tokens))
	r.Use(middlewares.PermissionGuard(app.Registry, app.Pipeline))

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, utils.NotFound("route not found"))
	})

	// Initialize controllers
	authController := controllers.NewAuthController(app.Auth)
	userController := controllers.NewUserController(app.Users)
	roleController := controllers.NewRoleController(app.Roles)
	companyController := controllers.NewCompanyController(app.Companies)
	jobController := controllers.NewJobController(app.Jobs)
	applicationController := controllers.NewApplicationController(app.Applications)
	savedJobController := controllers.NewSavedJobController(app.SavedJobs)
	notificationController := controllers.NewNotificationController(app.Notifications)
	activityLogController := controllers.NewActivityLogController(app.ActivityLogs)
	employerProfileController := controllers.NewEmployerProfileController(app.EmployerProfiles)
	seekerProfileController := controllers.NewSeekerProfileController(app.SeekerProfiles)
	conversationController := controllers.NewConversationController(app.Conversations)
	adminController := controllers.NewAdminController(app.Jobs, app.Companies, app.Users)
	realtimeController := controllers.NewRealtimeController(app.Hub, app.Config.CORSOrigins)

	r.GET("/ping", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "pong", nil)
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", app.LoginLimiter.RateLimit(), authController.Login)
		auth.GET("/me", authController.Me)
	}

	users := r.Group("/users")
	{
		users.POST("", userController.CreateUser)
		users.GET("", userController.GetAllUsers)
		users.GET("/:id", userController.GetUserByID)
		users.PATCH("/:id", userController.UpdateUser)
		users.DELETE("/:id", userController.DeleteUser)
	}

	roles := r.Group("/roles")
	{
		roles.POST("", roleController.CreateRole)
		roles.GET("", roleController.GetAllRoles)
		roles.GET("/:id", roleController.GetRoleByID)
		roles.PUT("/:id", roleController.ReplaceRole)
		roles.PATCH("/:id", roleController.PatchRole)
		roles.DELETE("/:id", roleController.DeleteRole)
	}

	companies := r.Group("/companies")
	{
		companies.POST("", companyController.CreateCompany)
		companies.GET("", companyController.GetAllCompanies)
		companies.GET("/my", companyController.GetMyCompanies)
		companies.GET("/:id", companyController.GetCompanyByID)
		companies.PATCH("/:id", companyController.UpdateCompany)
		companies.DELETE("/:id", companyController.DeleteCompany)
	}

	jobs := r.Group("/jobs")
	{
		jobs.POST("", jobController.CreateJob)
		jobs.GET("", jobController.SearchJobs)
		jobs.GET("/my", jobController.GetMyJobs)
		jobs.GET("/:id", jobController.GetJobByID)
		jobs.PATCH("/:id", jobController.UpdateJob)
		jobs.PATCH("/:id/status", jobController.UpdateJobStatus)
		jobs.DELETE("/:id", jobController.DeleteJob)
	}

	applications := r.Group("/applications")
	{
		applications.POST("", app.ApplyLimiter.RateLimit(), applicationController.CreateApplication)
		applications.GET("/my", applicationController.GetMyApplications)
		applications.GET("/job/:jobId", applicationController.GetApplicationsByJob)
		applications.GET("/:id", applicationController.GetApplicationByID)
		applications.PATCH("/:id/status", applicationController.UpdateApplicationStatus)
		applications.DELETE("/:id", applicationController.DeleteApplication)
	}

	savedJobs := r.Group("/saved-jobs")
	{
		savedJobs.POST("/:jobId", savedJobController.SaveJob)
		savedJobs.GET("", savedJobController.GetSavedJobs)
		savedJobs.GET("/:jobId/check", savedJobController.CheckSavedJob)
		savedJobs.DELETE("/:jobId", savedJobController.RemoveSavedJob)
	}

	notifications := r.Group("/notifications")
	{
		notifications.GET("", notificationController.GetMyNotifications)
		notifications.GET("/count/unread", notificationController.GetUnreadCount)
		notifications.GET("/:id", notificationController.GetNotificationByID)
		notifications.PATCH("/read-all", notificationController.MarkAllAsRead)
		notifications.PATCH("/:id/read", notificationController.MarkAsRead)
	}

	employerProfiles := r.Group("/employer-profiles")
	{
		employerProfiles.POST("", employerProfileController.CreateProfile)
		employerProfiles.GET("/me", employerProfileController.GetMyProfile)
		employerProfiles.GET("/:id", employerProfileController.GetProfileByID)
		employerProfiles.PATCH("/me", employerProfileController.UpdateMyProfile)
		employerProfiles.PATCH("/:id", employerProfileController.UpdateProfile)
		employerProfiles.DELETE("/:id", employerProfileController.DeleteProfile)
	}

	seekerProfiles := r.Group("/job-seeker-profiles")
	{
		seekerProfiles.POST("", seekerProfileController.CreateProfile)
		seekerProfiles.GET("/me", seekerProfileController.GetMyProfile)
		seekerProfiles.GET("/:id", seekerProfileController.GetProfileByID)
		seekerProfiles.PATCH("/me", seekerProfileController.UpdateMyProfile)
		seekerProfiles.PATCH("/:id", seekerProfileController.UpdateProfile)
		seekerProfiles.DELETE("/:id", seekerProfileController.DeleteProfile)
	}

	conversations := r.Group("/conversations")
	{
		conversations.POST("", conversationController.CreateConversation)
		conversations.GET("", conversationController.GetMyConversations)
		conversations.GET("/:id", conversationController.GetConversationByID)
		conversations.POST("/:id/messages", conversationController.SendMessage)
		conversations.GET("/:id/messages", conversationController.GetMessages)
		conversations.PATCH("/:id/messages/:messageId/read", conversationController.MarkMessageRead)
	}

	r.GET("/activity-logs/my", activityLogController.GetMyActivity)

	admin := r.Group("/admin")
	{
		admin.GET("/jobs/pending", adminController.GetPendingJobs)
		admin.GET("/companies/pending", adminController.GetPendingCompanies)
		admin.PATCH("/jobs/:id/moderate", adminController.ModerateJob)
		admin.PATCH("/companies/:id/verify", adminController.VerifyCompany)
		admin.PATCH("/users/:id/ban", adminController.BanUser)
	}

	r.GET("/ws/notifications", realtimeController.NotificationsSocket)

	return r
}
