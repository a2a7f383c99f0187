package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/policy"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/export"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/helpers"
)

// ReportFormat selects the rendered document type
type ReportFormat string

const (
	FormatExcel ReportFormat = "excel"
	FormatPDF   ReportFormat = "pdf"
)

// ParseReportFormat maps a path segment to a ReportFormat
func ParseReportFormat(raw string) (ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(FormatExcel), "xlsx":
		return FormatExcel, nil
	case string(FormatPDF):
		return FormatPDF, nil
	}
	return "", apperrors.NewValidationError("format must be excel or pdf")
}

// RenderedReport is a downloadable document
type RenderedReport struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ReportService assembles and renders per-student summary documents
type ReportService interface {
	StudentReport(ctx context.Context, principal Principal, studentID int64, format ReportFormat) (*RenderedReport, error)
}

// reportServiceImpl implements ReportService
type reportServiceImpl struct {
	studentRepo     *repositories.StudentRepository
	creditRepo      *repositories.CreditRepository
	goalRepo        *repositories.GoalRepository
	achievementRepo *repositories.AchievementRepository
	sanctionRepo    *repositories.SanctionRepository
	engine          *policy.Engine
}

// NewReportService creates a new ReportService
func NewReportService(
	studentRepo *repositories.StudentRepository,
	creditRepo *repositories.CreditRepository,
	goalRepo *repositories.GoalRepository,
	achievementRepo *repositories.AchievementRepository,
	sanctionRepo *repositories.SanctionRepository,
	engine *policy.Engine,
) ReportService {
	return &reportServiceImpl{
		studentRepo:     studentRepo,
		creditRepo:      creditRepo,
		goalRepo:        goalRepo,
		achievementRepo: achievementRepo,
		sanctionRepo:    sanctionRepo,
		engine:          engine,
	}
}

// StudentReport builds the full student summary and renders it in the
// requested format, owner/teacher/admin
func (s *reportServiceImpl) StudentReport(ctx context.Context, principal Principal, studentID int64, format ReportFormat) (*RenderedReport, error) {
	profile, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if err := s.engine.Authorize(policy.ResourcePortfolio, policy.OpRead, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    profile.UserID,
	}); err != nil {
		return nil, err
	}

	report, err := s.buildReport(ctx, profile)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatExcel:
		data, err := export.RenderExcel(*report)
		if err != nil {
			return nil, err
		}
		return &RenderedReport{
			FileName:    reportFileName(profile, "xlsx"),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case FormatPDF:
		data, err := export.RenderPDF(*report)
		if err != nil {
			return nil, err
		}
		return &RenderedReport{
			FileName:    reportFileName(profile, "pdf"),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	}
	return nil, apperrors.NewValidationError("format must be excel or pdf")
}

func reportFileName(profile *models.StudentProfile, ext string) string {
	return fmt.Sprintf("student-%d-report.%s", profile.ID, ext)
}

func (s *reportServiceImpl) buildReport(ctx context.Context, profile *models.StudentProfile) (*export.StudentReport, error) {
	name := fmt.Sprintf("Ученик №%d", profile.ID)
	if profile.User != nil {
		name = profile.User.FullName()
	}
	report := &export.StudentReport{
		StudentName: name,
		Grade:       profile.Grade,
	}

	report.Sections = append(report.Sections, export.ReportSection{
		Title: "Профил",
		Rows: [][2]string{
			{"Специалност", profile.Specialization},
			{"Среден успех", strconv.FormatFloat(profile.AverageGrade, 'f', 2, 64)},
		},
	})

	credits, err := s.creditRepo.ListByStudent(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	creditRows := make([][2]string, 0, len(credits))
	var validated int
	for _, credit := range credits {
		if credit.Status == models.CreditValidated {
			validated++
		}
		creditRows = append(creditRows, [2]string{
			fmt.Sprintf("%s — %s", credit.Pillar, credit.Activity),
			creditStatusLabel(credit.Status),
		})
	}
	creditRows = append(creditRows, [2]string{
		"Потвърдени",
		fmt.Sprintf("%d от %d (%.2f%%)", validated, len(credits),
			helpers.Percentage(int64(validated), int64(len(credits)))),
	})
	report.Sections = append(report.Sections, export.ReportSection{Title: "Кредити", Rows: creditRows})

	goals, err := s.goalRepo.ListByStudent(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	goalRows := make([][2]string, 0, len(goals))
	for _, goal := range goals {
		goalRows = append(goalRows, [2]string{goal.Title, goal.Description})
	}
	report.Sections = append(report.Sections, export.ReportSection{Title: "Цели", Rows: goalRows})

	achievements, err := s.achievementRepo.ListByStudent(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	achievementRows := make([][2]string, 0, len(achievements))
	for _, achievement := range achievements {
		achievementRows = append(achievementRows, [2]string{
			achievement.Date.Format(helpers.DateLayout),
			achievement.Title,
		})
	}
	report.Sections = append(report.Sections, export.ReportSection{Title: "Постижения", Rows: achievementRows})

	sanction, err := s.sanctionRepo.GetByStudent(ctx, profile.ID)
	if err != nil {
		if err != apperrors.ErrNotFound {
			return nil, err
		}
		sanction = models.DefaultSanction(profile.ID)
	}
	sanctionRows := [][2]string{
		{"Извинени отсъствия", strconv.Itoa(sanction.Absences.Excused)},
		{"Неизвинени отсъствия", strconv.Itoa(sanction.Absences.Unexcused)},
		{"Допустими отсъствия", strconv.Itoa(sanction.Absences.MaxAllowed)},
		{"Забележки в Школо", strconv.Itoa(sanction.SchooloRemarks)},
	}
	for _, active := range sanction.ActiveSanctions {
		sanctionRows = append(sanctionRows, [2]string{
			fmt.Sprintf("Санкция от %s", active.StartDate.Format(helpers.DateLayout)),
			fmt.Sprintf("%s: %s", active.Type, active.Reason),
		})
	}
	report.Sections = append(report.Sections, export.ReportSection{Title: "Отсъствия и санкции", Rows: sanctionRows})

	return report, nil
}

func creditStatusLabel(status models.CreditStatus) string {
	switch status {
	case models.CreditValidated:
		return "потвърден"
	case models.CreditRejected:
		return "отхвърлен"
	default:
		return "изчакващ"
	}
}
