package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/helpers"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

const (
	statsCacheTTL = 5 * time.Minute

	topAchieversLimit   = 5
	popularHobbiesLimit = 10
)

// StatisticsService computes read-only rollups for dashboards.
// Role enforcement happens in the routing layer; every endpoint backed
// by this service is teacher/admin only.
type StatisticsService interface {
	CreditStatistics(ctx context.Context) (*dto.CreditStatistics, error)
	AbsenceReport(ctx context.Context) (*dto.AbsenceReport, error)
	EventStatistics(ctx context.Context) (*dto.EventStatistics, error)
	Overview(ctx context.Context) (*dto.OverviewStatistics, error)
}

// statisticsServiceImpl implements StatisticsService with a short-lived
// Redis cache in front of the aggregation queries
type statisticsServiceImpl struct {
	creditRepo      *repositories.CreditRepository
	eventRepo       *repositories.EventRepository
	achievementRepo *repositories.AchievementRepository
	interestRepo    *repositories.InterestRepository
	studentRepo     *repositories.StudentRepository
	sanctionRepo    *repositories.SanctionRepository
	cache           *redis.Client
}

// NewStatisticsService creates a new StatisticsService. The Redis client
// may be nil; caching is then skipped entirely.
func NewStatisticsService(
	creditRepo *repositories.CreditRepository,
	eventRepo *repositories.EventRepository,
	achievementRepo *repositories.AchievementRepository,
	interestRepo *repositories.InterestRepository,
	studentRepo *repositories.StudentRepository,
	sanctionRepo *repositories.SanctionRepository,
	cache *redis.Client,
) StatisticsService {
	return &statisticsServiceImpl{
		creditRepo:      creditRepo,
		eventRepo:       eventRepo,
		achievementRepo: achievementRepo,
		interestRepo:    interestRepo,
		studentRepo:     studentRepo,
		sanctionRepo:    sanctionRepo,
		cache:           cache,
	}
}

// cacheGet loads a cached rollup. Cache failures are logged and treated
// as a miss so statistics stay available without Redis.
func (s *statisticsServiceImpl) cacheGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn().Err(err).Str("key", key).Msg("Statistics cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Statistics cache entry unreadable")
		return false
	}
	return true
}

func (s *statisticsServiceImpl) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, statsCacheTTL).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Statistics cache write failed")
	}
}

// CreditStatistics computes credit counts and the validation rate
func (s *statisticsServiceImpl) CreditStatistics(ctx context.Context) (*dto.CreditStatistics, error) {
	const key = "stats:credits"
	var cached dto.CreditStatistics
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	byStatus, err := s.creditRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPillar, err := s.creditRepo.CountByPillar(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}

	stats := &dto.CreditStatistics{
		Total:          total,
		ByStatus:       byStatus,
		ByPillar:       byPillar,
		ValidationRate: helpers.Percentage(byStatus[string(models.CreditValidated)], total),
	}
	s.cacheSet(ctx, key, stats)
	return stats, nil
}

// AbsenceReport computes the per-student absence report with critical
// flags and a per-grade breakdown
func (s *statisticsServiceImpl) AbsenceReport(ctx context.Context) (*dto.AbsenceReport, error) {
	const key = "stats:absences"
	var cached dto.AbsenceReport
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := s.sanctionRepo.ListAbsences(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.AbsenceReport{
		Rows:    make([]dto.AbsenceReportRow, 0, len(rows)),
		ByGrade: make(map[int]int64),
	}
	for _, row := range rows {
		critical := IsCriticalAbsences(row.Absences)
		report.Rows = append(report.Rows, dto.AbsenceReportRow{
			StudentID:   row.StudentID,
			StudentName: row.StudentName,
			Grade:       row.Grade,
			Excused:     row.Absences.Excused,
			Unexcused:   row.Absences.Unexcused,
			MaxAllowed:  row.Absences.MaxAllowed,
			UsedPercent: helpers.Percentage(int64(row.Absences.Total()), int64(row.Absences.MaxAllowed)),
			Critical:    critical,
		})
		report.TotalStudents++
		report.ByGrade[row.Grade] += int64(row.Absences.Total())
		if critical {
			report.CriticalCount++
		}
	}

	s.cacheSet(ctx, key, report)
	return report, nil
}

// EventStatistics computes attendance and participation rates
func (s *statisticsServiceImpl) EventStatistics(ctx context.Context) (*dto.EventStatistics, error) {
	const key = "stats:events"
	var cached dto.EventStatistics
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	totalEvents, err := s.eventRepo.CountEvents(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.eventRepo.CountParticipationsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	studentsWithData, err := s.eventRepo.CountStudentsWithParticipation(ctx)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.studentRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	var totalParticipations int64
	for _, count := range byStatus {
		totalParticipations += count
	}

	stats := &dto.EventStatistics{
		TotalEvents:       totalEvents,
		TotalRegistered:   totalParticipations,
		TotalAttended:     byStatus[models.ParticipationAttended],
		AttendanceRate:    helpers.Percentage(byStatus[models.ParticipationAttended], totalParticipations),
		ParticipationRate: helpers.Percentage(studentsWithData, totalStudents),
	}
	s.cacheSet(ctx, key, stats)
	return stats, nil
}

// RankHobbies counts hobbies across students (case-insensitive, trimmed)
// and returns the most popular ones. Ties break alphabetically so the
// ranking is stable.
func RankHobbies(hobbyLists [][]string, limit int) []dto.RankedHobby {
	counts := make(map[string]int64)
	display := make(map[string]string)
	for _, hobbies := range hobbyLists {
		for _, hobby := range hobbies {
			trimmed := strings.TrimSpace(hobby)
			if trimmed == "" {
				continue
			}
			key := strings.ToLower(trimmed)
			counts[key]++
			if _, ok := display[key]; !ok {
				display[key] = trimmed
			}
		}
	}

	ranked := make([]dto.RankedHobby, 0, len(counts))
	for key, count := range counts {
		ranked = append(ranked, dto.RankedHobby{Hobby: display[key], Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Hobby < ranked[j].Hobby
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Overview assembles the staff dashboard rollup
func (s *statisticsServiceImpl) Overview(ctx context.Context) (*dto.OverviewStatistics, error) {
	const key = "stats:overview"
	var cached dto.OverviewStatistics
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	credits, err := s.CreditStatistics(ctx)
	if err != nil {
		return nil, err
	}
	eventStats, err := s.EventStatistics(ctx)
	if err != nil {
		return nil, err
	}
	topAchievers, err := s.achievementRepo.TopAchievers(ctx, topAchieversLimit)
	if err != nil {
		return nil, err
	}
	hobbyLists, err := s.interestRepo.ListAllHobbies(ctx)
	if err != nil {
		return nil, err
	}
	byGrade, err := s.studentRepo.CountByGrade(ctx)
	if err != nil {
		return nil, err
	}

	overview := &dto.OverviewStatistics{
		Credits:         *credits,
		Events:          *eventStats,
		TopAchievers:    topAchievers,
		PopularHobbies:  RankHobbies(hobbyLists, popularHobbiesLimit),
		StudentsByGrade: byGrade,
	}
	s.cacheSet(ctx, key, overview)
	return overview, nil
}
