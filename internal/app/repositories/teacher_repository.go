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
	"github.com/yigit/unisession/internal/pkg/logger"
)

var teacherColumns = []string{"id", "name"}

// TeacherRepository handles teacher database operations
type TeacherRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// CreateTeacher creates a new teacher
func (r *TeacherRepository) CreateTeacher(ctx context.Context, teacher *models.Teacher) (int64, error) {
	sql, args, err := r.sb.Insert("teachers").
		Columns("name").
		Values(teacher.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create teacher SQL")
		return 0, fmt.Errorf("failed to build create teacher query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create teacher query")
		return 0, fmt.Errorf("error creating teacher: %w", err)
	}

	return id, nil
}

// GetTeacherByID retrieves a teacher by ID
func (r *TeacherRepository) GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return r.getTeacher(ctx, squirrel.Eq{"id": id})
}

// GetTeacherByName retrieves the first teacher (lowest ID) with the given name.
// Teacher names are not unique.
func (r *TeacherRepository) GetTeacherByName(ctx context.Context, name string) (*models.Teacher, error) {
	return r.getTeacher(ctx, squirrel.Eq{"name": name})
}

func (r *TeacherRepository) getTeacher(ctx context.Context, where squirrel.Eq) (*models.Teacher, error) {
	sql, args, err := r.sb.Select(teacherColumns...).
		From("teachers").
		Where(where).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get teacher SQL")
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	teacher := &models.Teacher{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&teacher.ID, &teacher.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Interface("where", where).Msg("Error scanning teacher row")
		return nil, fmt.Errorf("error getting teacher: %w", err)
	}

	return teacher, nil
}

// ListTeachers retrieves a page of teachers ordered by ID
func (r *TeacherRepository) ListTeachers(ctx context.Context, skip, limit uint64) ([]*models.Teacher, error) {
	sql, args, err := paginate(r.sb.Select(teacherColumns...).From("teachers").OrderBy("id ASC"), skip, limit).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list teachers SQL")
		return nil, fmt.Errorf("failed to build list teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list teachers query")
		return nil, fmt.Errorf("error querying teachers: %w", err)
	}
	defer rows.Close()

	teachers := []*models.Teacher{}
	for rows.Next() {
		teacher := &models.Teacher{}
		if err := rows.Scan(&teacher.ID, &teacher.Name); err != nil {
			logger.Error().Err(err).Msg("Error scanning teacher row during list")
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating teacher rows")
		return nil, fmt.Errorf("error iterating teacher rows: %w", err)
	}

	return teachers, nil
}
