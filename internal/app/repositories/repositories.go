package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository           *UserRepository
	StudentRepository        *StudentRepository
	CreditRepository         *CreditRepository
	CreditCategoryRepository *CreditCategoryRepository
	GoalRepository           *GoalRepository
	InterestRepository       *InterestRepository
	AchievementRepository    *AchievementRepository
	SanctionRepository       *SanctionRepository
	EventRepository          *EventRepository
	PortfolioRepository      *PortfolioRepository
	NotificationRepository   *NotificationRepository
	AuditLogRepository       *AuditLogRepository
	TokenRepository          *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:           NewUserRepository(db),
		StudentRepository:        NewStudentRepository(db),
		CreditRepository:         NewCreditRepository(db),
		CreditCategoryRepository: NewCreditCategoryRepository(db),
		GoalRepository:           NewGoalRepository(db),
		InterestRepository:       NewInterestRepository(db),
		AchievementRepository:    NewAchievementRepository(db),
		SanctionRepository:       NewSanctionRepository(db),
		EventRepository:          NewEventRepository(db),
		PortfolioRepository:      NewPortfolioRepository(db),
		NotificationRepository:   NewNotificationRepository(db),
		AuditLogRepository:       NewAuditLogRepository(db),
		TokenRepository:          NewTokenRepository(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
