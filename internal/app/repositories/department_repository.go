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

var departmentColumns = []string{"id", "name"}

// DepartmentRepository handles department database operations
type DepartmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// CreateDepartment creates a new department
func (r *DepartmentRepository) CreateDepartment(ctx context.Context, department *models.Department) (int64, error) {
	sql, args, err := r.sb.Insert("departments").
		Columns("name").
		Values(department.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create department SQL")
		return 0, fmt.Errorf("failed to build create department query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrDepartmentAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create department query")
		return 0, fmt.Errorf("error creating department: %w", err)
	}

	return id, nil
}

// GetDepartmentByID retrieves a department by ID
func (r *DepartmentRepository) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	return r.getDepartment(ctx, squirrel.Eq{"id": id})
}

// GetDepartmentByName retrieves a department by its unique name
func (r *DepartmentRepository) GetDepartmentByName(ctx context.Context, name string) (*models.Department, error) {
	return r.getDepartment(ctx, squirrel.Eq{"name": name})
}

func (r *DepartmentRepository) getDepartment(ctx context.Context, where squirrel.Eq) (*models.Department, error) {
	sql, args, err := r.sb.Select(departmentColumns...).
		From("departments").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get department SQL")
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	department := &models.Department{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&department.ID, &department.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		logger.Error().Err(err).Interface("where", where).Msg("Error scanning department row")
		return nil, fmt.Errorf("error getting department: %w", err)
	}

	return department, nil
}

// ListDepartments retrieves a page of departments ordered by ID
func (r *DepartmentRepository) ListDepartments(ctx context.Context, skip, limit uint64) ([]*models.Department, error) {
	sql, args, err := paginate(r.sb.Select(departmentColumns...).From("departments").OrderBy("id ASC"), skip, limit).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list departments SQL")
		return nil, fmt.Errorf("failed to build list departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list departments query")
		return nil, fmt.Errorf("error querying departments: %w", err)
	}
	defer rows.Close()

	departments := []*models.Department{}
	for rows.Next() {
		department := &models.Department{}
		if err := rows.Scan(&department.ID, &department.Name); err != nil {
			logger.Error().Err(err).Msg("Error scanning department row during list")
			return nil, fmt.Errorf("error scanning department row: %w", err)
		}
		departments = append(departments, department)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating department rows")
		return nil, fmt.Errorf("error iterating department rows: %w", err)
	}

	return departments, nil
}
