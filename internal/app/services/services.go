package services

import (
	"github.com/redis/go-redis/v9"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/events"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/policy"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/auth"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/email"
)

// Principal is the authenticated caller, extracted from the JWT by the
// auth middleware and passed into every service operation
type Principal struct {
	UserID int64
	Role   models.RoleType
}

// IsStaff reports whether the principal holds a privileged role
func (p Principal) IsStaff() bool {
	return p.Role.Privileged()
}

// Services holds all the service instances
type Services struct {
	AuthService         AuthService
	StudentService      StudentService
	CreditService       CreditService
	GoalService         GoalService
	InterestService     InterestService
	AchievementService  AchievementService
	SanctionService     SanctionService
	EventService        EventService
	PortfolioService    PortfolioService
	NotificationService NotificationService
	StatisticsService   StatisticsService
	ReportService       ReportService
}

// NewServices wires all services together. The notification service
// subscribes to the event bus so that domain state transitions fan out
// into in-app notifications and best-effort emails.
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	bus events.Bus,
	redisClient *redis.Client,
) *Services {
	engine := policy.NewEngine()

	notificationService := NewNotificationService(
		repos.NotificationRepository, repos.UserRepository, emailService)
	notificationService.SubscribeTo(bus)

	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository, repos.StudentRepository, repos.TokenRepository,
			jwtService, emailService),
		StudentService: NewStudentService(repos.StudentRepository, repos.UserRepository, engine),
		CreditService: NewCreditService(
			repos.CreditRepository, repos.CreditCategoryRepository,
			repos.StudentRepository, repos.UserRepository, engine, bus),
		GoalService:        NewGoalService(repos.GoalRepository, repos.StudentRepository, engine),
		InterestService:    NewInterestService(repos.InterestRepository, repos.StudentRepository, engine),
		AchievementService: NewAchievementService(repos.AchievementRepository, repos.StudentRepository, engine),
		SanctionService: NewSanctionService(
			repos.SanctionRepository, repos.StudentRepository, engine, bus),
		EventService: NewEventService(
			repos.EventRepository, repos.StudentRepository, engine, bus),
		PortfolioService: NewPortfolioService(
			repos.PortfolioRepository, repos.StudentRepository, repos.UserRepository, engine, bus),
		NotificationService: notificationService,
		StatisticsService: NewStatisticsService(
			repos.CreditRepository, repos.EventRepository, repos.AchievementRepository,
			repos.InterestRepository, repos.StudentRepository, repos.SanctionRepository,
			redisClient),
		ReportService: NewReportService(
			repos.StudentRepository, repos.CreditRepository, repos.GoalRepository,
			repos.AchievementRepository, repos.SanctionRepository, engine),
	}
}
