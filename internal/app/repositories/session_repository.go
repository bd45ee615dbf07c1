package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/pkg/apperrors"
	"github.com/yigit/unisession/internal/pkg/dberrors"
	"github.com/yigit/unisession/internal/pkg/logger"
)

var sessionColumns = []string{"id", "control_type", "session_date", "group_id", "subject_id", "teacher_id"}

// SessionRepository handles class session database operations
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanSession(row pgx.Row) (*models.Session, error) {
	session := &models.Session{}
	var date time.Time
	err := row.Scan(&session.ID, &session.ControlType, &date, &session.GroupID, &session.SubjectID, &session.TeacherID)
	session.SessionDate = models.Date{Time: date}
	return session, err
}

// CreateSession creates a new session. Parent existence is checked by the
// service; a foreign key violation here means a parent vanished in between.
func (r *SessionRepository) CreateSession(ctx context.Context, session *models.Session) (int64, error) {
	sql, args, err := r.sb.Insert("sessions").
		Columns("control_type", "session_date", "group_id", "subject_id", "teacher_id").
		Values(session.ControlType, session.SessionDate.Time, session.GroupID, session.SubjectID, session.TeacherID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create session SQL")
		return 0, fmt.Errorf("failed to build create session query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.ErrReferencedRowNotFound
		}
		logger.Error().Err(err).Msg("Error executing create session query")
		return 0, fmt.Errorf("error creating session: %w", err)
	}

	return id, nil
}

// GetSessionByID retrieves a session by ID
func (r *SessionRepository) GetSessionByID(ctx context.Context, id int64) (*models.Session, error) {
	sql, args, err := r.sb.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get session SQL")
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	session, err := scanSession(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		logger.Error().Err(err).Int64("sessionID", id).Msg("Error scanning session row")
		return nil, fmt.Errorf("error getting session: %w", err)
	}

	return session, nil
}

// ListSessions retrieves a page of sessions ordered by ID
func (r *SessionRepository) ListSessions(ctx context.Context, skip, limit uint64) ([]*models.Session, error) {
	sql, args, err := paginate(r.sb.Select(sessionColumns...).From("sessions").OrderBy("id ASC"), skip, limit).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list sessions SQL")
		return nil, fmt.Errorf("failed to build list sessions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list sessions query")
		return nil, fmt.Errorf("error querying sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning session row during list")
			return nil, fmt.Errorf("error scanning session row: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating session rows")
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	return sessions, nil
}

// buildSessionDetailsQuery joins each session with its group, subject and teacher
func buildSessionDetailsQuery(sb squirrel.StatementBuilderType, skip, limit uint64) squirrel.SelectBuilder {
	q := sb.Select(
		"s.id", "s.control_type", "s.session_date", "s.group_id", "s.subject_id", "s.teacher_id",
		"g.id", "g.code", "g.course", "g.num_students", "g.faculty_id",
		"sub.id", "sub.name", "sub.num_hours", "sub.department_id", "sub.extra",
		"t.id", "t.name",
	).
		From("sessions s").
		Join("groups g ON g.id = s.group_id").
		Join("subjects sub ON sub.id = s.subject_id").
		Join("teachers t ON t.id = s.teacher_id").
		OrderBy("s.id ASC")
	return paginate(q, skip, limit)
}

// ListSessionDetails retrieves a page of sessions with related rows resolved
func (r *SessionRepository) ListSessionDetails(ctx context.Context, skip, limit uint64) ([]*models.SessionDetails, error) {
	sql, args, err := buildSessionDetailsQuery(r.sb, skip, limit).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building session details SQL")
		return nil, fmt.Errorf("failed to build session details query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing session details query")
		return nil, fmt.Errorf("error querying session details: %w", err)
	}
	defer rows.Close()

	details := []*models.SessionDetails{}
	for rows.Next() {
		d := &models.SessionDetails{}
		var date time.Time
		err := rows.Scan(
			&d.ID, &d.ControlType, &date, &d.GroupID, &d.SubjectID, &d.TeacherID,
			&d.Group.ID, &d.Group.Code, &d.Group.Course, &d.Group.NumStudents, &d.Group.FacultyID,
			&d.Subject.ID, &d.Subject.Name, &d.Subject.NumHours, &d.Subject.DepartmentID, &d.Subject.Extra,
			&d.Teacher.ID, &d.Teacher.Name,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning session details row")
			return nil, fmt.Errorf("error scanning session details row: %w", err)
		}
		d.SessionDate = models.Date{Time: date}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating session details rows")
		return nil, fmt.Errorf("error iterating session details rows: %w", err)
	}

	return details, nil
}
