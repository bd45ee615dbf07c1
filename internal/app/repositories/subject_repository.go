package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/pkg/apperrors"
	"github.com/yigit/unisession/internal/pkg/dberrors"
	"github.com/yigit/unisession/internal/pkg/logger"
)

var subjectColumns = []string{"id", "name", "num_hours", "department_id", "extra"}

// notesExpr extracts the searchable notes text from the JSON annotation.
// The trigram index idx_subject_notes_trgm is built on this exact expression.
const notesExpr = "(extra->>'notes')"

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanSubject(row pgx.Row) (*models.Subject, error) {
	subject := &models.Subject{}
	err := row.Scan(&subject.ID, &subject.Name, &subject.NumHours, &subject.DepartmentID, &subject.Extra)
	return subject, err
}

// extraArg keeps a missing annotation as SQL NULL rather than JSON null
func extraArg(extra map[string]interface{}) interface{} {
	if extra == nil {
		return nil
	}
	return extra
}

// CreateSubject creates a new subject
func (r *SubjectRepository) CreateSubject(ctx context.Context, subject *models.Subject) (int64, error) {
	sql, args, err := r.sb.Insert("subjects").
		Columns("name", "num_hours", "department_id", "extra").
		Values(subject.Name, subject.NumHours, subject.DepartmentID, extraArg(subject.Extra)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create subject SQL")
		return 0, fmt.Errorf("failed to build create subject query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		switch {
		case dberrors.IsDuplicateKeyError(err):
			return 0, apperrors.ErrSubjectAlreadyExists
		case dberrors.IsForeignKeyError(err):
			return 0, apperrors.ErrDepartmentNotFound
		}
		logger.Error().Err(err).Str("name", subject.Name).Msg("Error executing create subject query")
		return 0, fmt.Errorf("error creating subject: %w", err)
	}

	return id, nil
}

// GetSubjectByID retrieves a subject by ID
func (r *SubjectRepository) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	return r.getSubject(ctx, squirrel.Eq{"id": id})
}

// GetSubjectByName retrieves a subject by its unique name
func (r *SubjectRepository) GetSubjectByName(ctx context.Context, name string) (*models.Subject, error) {
	return r.getSubject(ctx, squirrel.Eq{"name": name})
}

func (r *SubjectRepository) getSubject(ctx context.Context, where squirrel.Eq) (*models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns...).
		From("subjects").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get subject SQL")
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	subject, err := scanSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Interface("where", where).Msg("Error scanning subject row")
		return nil, fmt.Errorf("error getting subject: %w", err)
	}

	return subject, nil
}

// ListSubjects retrieves a page of subjects ordered by ID
func (r *SubjectRepository) ListSubjects(ctx context.Context, skip, limit uint64) ([]*models.Subject, error) {
	q := r.sb.Select(subjectColumns...).From("subjects").OrderBy("id ASC")
	return r.querySubjects(ctx, paginate(q, skip, limit), "list")
}

// buildTrigramSearchQuery selects subjects whose notes are trigram-similar to
// query (pg_trgm % operator), most similar first
func buildTrigramSearchQuery(sb squirrel.StatementBuilderType, query string, skip, limit uint64) squirrel.SelectBuilder {
	q := sb.Select(subjectColumns...).
		From("subjects").
		Where(squirrel.Expr(notesExpr+" % ?", query)).
		OrderByClause("similarity("+notesExpr+", ?) DESC", query).
		OrderBy("id ASC")
	return paginate(q, skip, limit)
}

// SearchSubjectsBySimilarity returns subjects whose notes are similar to query
func (r *SubjectRepository) SearchSubjectsBySimilarity(ctx context.Context, query string, skip, limit uint64) ([]*models.Subject, error) {
	return r.querySubjects(ctx, buildTrigramSearchQuery(r.sb, query, skip, limit), "trigram search")
}

// buildRegexSearchQuery selects subjects whose notes match pattern (case-sensitive)
func buildRegexSearchQuery(sb squirrel.StatementBuilderType, pattern string, skip, limit uint64) squirrel.SelectBuilder {
	q := sb.Select(subjectColumns...).
		From("subjects").
		Where(squirrel.Expr(notesExpr+" ~ ?", pattern)).
		OrderBy("id ASC")
	return paginate(q, skip, limit)
}

// SearchSubjectsByRegex returns subjects whose notes match a POSIX regular expression
func (r *SubjectRepository) SearchSubjectsByRegex(ctx context.Context, pattern string, skip, limit uint64) ([]*models.Subject, error) {
	subjects, err := r.querySubjects(ctx, buildRegexSearchQuery(r.sb, pattern, skip, limit), "regex search")
	if err != nil && dberrors.IsInvalidRegexError(err) {
		return nil, apperrors.ErrInvalidSearchPattern
	}
	return subjects, err
}

func (r *SubjectRepository) querySubjects(ctx context.Context, q squirrel.SelectBuilder, op string) ([]*models.Subject, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building subjects SQL")
		return nil, fmt.Errorf("failed to build subjects %s query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		if !dberrors.IsInvalidRegexError(err) {
			logger.Error().Err(err).Str("op", op).Msg("Error executing subjects query")
		}
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	subjects := []*models.Subject{}
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			logger.Error().Err(err).Str("op", op).Msg("Error scanning subject row")
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		if !dberrors.IsInvalidRegexError(err) {
			logger.Error().Err(err).Str("op", op).Msg("Error iterating subject rows")
		}
		return nil, fmt.Errorf("error iterating subject rows: %w", err)
	}

	return subjects, nil
}
