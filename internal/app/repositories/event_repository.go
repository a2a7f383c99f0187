package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/helpers"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

// EventRepository handles database operations for Event and
// EventParticipation
type EventRepository struct {
	DB *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{DB: db}
}

var eventColumns = []string{
	"id", "title", "description", "start_date", "end_date", "location",
	"organizer", "feedback_url", "created_by", "created_at", "updated_at",
}

var participationColumns = []string{
	"id", "event_id", "student_id", "status", "registered_at",
	"confirmed_at", "attended_at", "feedback", "feedback_date",
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.Location,
		&e.Organizer, &e.FeedbackURL, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Msg("Error scanning event row")
		return nil, err
	}
	return &e, nil
}

func scanParticipation(row pgx.Row) (*models.EventParticipation, error) {
	var p models.EventParticipation
	err := row.Scan(
		&p.ID, &p.EventID, &p.StudentID, &p.Status, &p.RegisteredAt,
		&p.ConfirmedAt, &p.AttendedAt, &p.Feedback, &p.FeedbackDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrParticipationNotFound
		}
		logger.Error().Err(err).Msg("Error scanning participation row")
		return nil, err
	}
	return &p, nil
}

// Create inserts a new event and returns its id
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	sql, args, err := squirrel.Insert("events").
		Columns("title", "description", "start_date", "end_date", "location",
			"organizer", "feedback_url", "created_by").
		Values(event.Title, event.Description, event.StartDate, event.EndDate,
			event.Location, event.Organizer, event.FeedbackURL, event.CreatedBy).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create event query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves an event by id
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := squirrel.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanEvent(r.DB.QueryRow(ctx, sql, args...))
}

// List retrieves a paginated list of events, upcoming first
func (r *EventRepository) List(ctx context.Context, upcomingOnly bool, page, size int) ([]*models.Event, dto.PaginationInfo, error) {
	builder := squirrel.Select(eventColumns...).From("events").PlaceholderFormat(squirrel.Dollar)
	countBuilder := squirrel.Select("count(*)").From("events").PlaceholderFormat(squirrel.Dollar)

	if upcomingOnly {
		builder = builder.Where(squirrel.Gt{"start_date": time.Now()})
		countBuilder = countBuilder.Where(squirrel.Gt{"start_date": time.Now()})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	var total int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	page, size = helpers.NormalizePage(page, size)
	sqlStr, args, err := builder.
		OrderBy("start_date ASC").
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size)).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return events, helpers.NewPaginationInfo(page, size, total), nil
}

// Update modifies an event's mutable fields
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	sql, args, err := squirrel.Update("events").
		Set("title", event.Title).
		Set("description", event.Description).
		Set("start_date", event.StartDate).
		Set("end_date", event.EndDate).
		Set("location", event.Location).
		Set("organizer", event.Organizer).
		Set("feedback_url", event.FeedbackURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": event.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event and all its participations in one transaction
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM event_participations WHERE event_id = $1", id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return tx.Commit(ctx)
}

// CreateParticipation registers a student for an event.
// The unique (event_id, student_id) constraint rejects double registration.
func (r *EventRepository) CreateParticipation(ctx context.Context, eventID, studentID int64) (int64, error) {
	sql, args, err := squirrel.Insert("event_participations").
		Columns("event_id", "student_id", "status").
		Values(eventID, studentID, models.ParticipationRegistered).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrAlreadyRegistered
		}
		return 0, err
	}
	return id, nil
}

// GetParticipationByID retrieves a participation by id
func (r *EventRepository) GetParticipationByID(ctx context.Context, id int64) (*models.EventParticipation, error) {
	sql, args, err := squirrel.Select(participationColumns...).
		From("event_participations").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanParticipation(r.DB.QueryRow(ctx, sql, args...))
}

// GetParticipation retrieves the participation of one student for one event
func (r *EventRepository) GetParticipation(ctx context.Context, eventID, studentID int64) (*models.EventParticipation, error) {
	sql, args, err := squirrel.Select(participationColumns...).
		From("event_participations").
		Where(squirrel.Eq{"event_id": eventID, "student_id": studentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanParticipation(r.DB.QueryRow(ctx, sql, args...))
}

// ListParticipations retrieves all participations of one event
func (r *EventRepository) ListParticipations(ctx context.Context, eventID int64) ([]*models.EventParticipation, error) {
	sql, args, err := squirrel.Select(participationColumns...).
		From("event_participations").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("registered_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participations := make([]*models.EventParticipation, 0)
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, err
		}
		participations = append(participations, p)
	}
	return participations, rows.Err()
}

// ListByStudent retrieves all participations of one student
func (r *EventRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.EventParticipation, error) {
	sql, args, err := squirrel.Select(participationColumns...).
		From("event_participations").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("registered_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participations := make([]*models.EventParticipation, 0)
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, err
		}
		participations = append(participations, p)
	}
	return participations, rows.Err()
}

// ActiveParticipantUserIDs resolves registered/confirmed participants of an
// event to their user account ids, for notification fan-out
func (r *EventRepository) ActiveParticipantUserIDs(ctx context.Context, eventID int64) ([]int64, error) {
	sql, args, err := squirrel.Select("sp.user_id").
		From("event_participations ep").
		Join("student_profiles sp ON ep.student_id = sp.id").
		Where(squirrel.Eq{"ep.event_id": eventID}).
		Where(squirrel.Eq{"ep.status": []models.ParticipationStatus{
			models.ParticipationRegistered, models.ParticipationConfirmed,
		}}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	userIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

// UpdateParticipationStatus writes the new status with its timestamp.
// State machine validity is enforced by the service layer.
func (r *EventRepository) UpdateParticipationStatus(ctx context.Context, id int64, status models.ParticipationStatus) error {
	builder := squirrel.Update("event_participations").Set("status", status)
	switch status {
	case models.ParticipationConfirmed:
		builder = builder.Set("confirmed_at", time.Now())
	case models.ParticipationAttended:
		builder = builder.Set("attended_at", time.Now())
	}

	sql, args, err := builder.
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrParticipationNotFound
	}
	return nil
}

// SetFeedback stores participant feedback
func (r *EventRepository) SetFeedback(ctx context.Context, id int64, feedback string) error {
	sql, args, err := squirrel.Update("event_participations").
		Set("feedback", feedback).
		Set("feedback_date", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrParticipationNotFound
	}
	return nil
}

// CountEvents returns the total number of events
func (r *EventRepository) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx, "SELECT count(*) FROM events").Scan(&count)
	return count, err
}

// CountParticipationsByStatus returns participation counts grouped by status
func (r *EventRepository) CountParticipationsByStatus(ctx context.Context) (map[models.ParticipationStatus]int64, error) {
	rows, err := r.DB.Query(ctx, "SELECT status, count(*) FROM event_participations GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.ParticipationStatus]int64)
	for rows.Next() {
		var status models.ParticipationStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// CountStudentsWithParticipation returns how many distinct students have
// at least one participation
func (r *EventRepository) CountStudentsWithParticipation(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx, "SELECT count(DISTINCT student_id) FROM event_participations").Scan(&count)
	return count, err
}
