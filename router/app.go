package router

import (
	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/config"
	"github.com/yeremiapane/jobportal-app/middlewares"
	"github.com/yeremiapane/jobportal-app/realtime"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/gorm"
)

// App holds the wired services behind the HTTP surface.
type App struct {
	Config config.Config
	DB     *gorm.DB

	Tokens     *utils.TokenIssuer
	Hub        *realtime.Hub
	Dispatcher *services.Dispatcher
	Registry   *authz.Registry
	Pipeline   *authz.Pipeline

	LoginLimiter *middlewares.RateLimiter
	ApplyLimiter *middlewares.RateLimiter

	Auth          *services.AuthService
	Users         *services.UserService
	Roles         *services.RoleService
	Companies     *services.CompanyService
	Jobs          *services.JobService
	Applications  *services.ApplicationService
	SavedJobs     *services.SavedJobService
	Notifications *services.NotificationService
	ActivityLogs  *services.ActivityLogService
	Sweeper       *services.ExpirySweeper

	EmployerProfiles *services.EmployerProfileService
	SeekerProfiles   *services.SeekerProfileService
	Conversations    *services.ConversationService
}

// NewApp wires every service on top of db. The dispatcher is returned
// unstarted; effects run inline until Dispatcher.Start is called.
func NewApp(db *gorm.DB, cfg config.Config) (*App, error) {
	appPolicy, err := services.ApplicationPolicyByName(cfg.ApplicationStatusPolicy)
	if err != nil {
		return nil, err
	}
	registry, err := NewRegistry(Permissions)
	if err != nil {
		return nil, err
	}

	hub := realtime.NewHub()
	notifications := services.NewNotificationService(db)
	activityLogs := services.NewActivityLogService(db)
	dispatcher := services.NewDispatcher(notifications, activityLogs, hub, cfg.DispatchQueueSize)

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	roles := services.NewRoleService(db)
	users := services.NewUserService(db, roles, dispatcher)

	var banChecker authz.BanChecker
	if cfg.EnforceBan {
		banChecker = users
	}

	return &App{
		Config:       cfg,
		DB:           db,
		Tokens:       tokens,
		Hub:          hub,
		Dispatcher:   dispatcher,
		Registry:     registry,
		Pipeline:     authz.DefaultPipeline(banChecker),
		LoginLimiter: middlewares.NewStrictRateLimiter(),
		ApplyLimiter: middlewares.NewStrictRateLimiter(),

		Auth:      services.NewAuthService(users, tokens),
		Users:     users,
		Roles:     roles,
		Companies: services.NewCompanyService(db, dispatcher),
		Jobs: services.NewJobService(db, dispatcher, services.JobServiceOptions{
			StatusPolicy: services.PermissiveJobPolicy{},
			Listing:      services.ListingPolicy{RequireApproval: cfg.ListingRequiresApproval},
			AutoApprove:  cfg.JobAutoApprove,
		}),
		Applications:  services.NewApplicationService(db, dispatcher, appPolicy),
		SavedJobs:     services.NewSavedJobService(db),
		Notifications: notifications,
		ActivityLogs:  activityLogs,
		Sweeper:       services.NewExpirySweeper(db),

		EmployerProfiles: services.NewEmployerProfileService(db),
		SeekerProfiles:   services.NewSeekerProfileService(db),
		Conversations:    services.NewConversationService(db, dispatcher),
	}, nil
}
