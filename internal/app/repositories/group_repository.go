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

var groupColumns = []string{"id", "code", "course", "num_students", "faculty_id"}

// groupSortColumns maps the sort allow-list onto SQL columns
var groupSortColumns = map[models.GroupSortField]string{
	models.GroupSortCode:        "code",
	models.GroupSortCourse:      "course",
	models.GroupSortNumStudents: "num_students",
}

// GroupRepository handles student group database operations
type GroupRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanGroup(row pgx.Row) (*models.Group, error) {
	group := &models.Group{}
	err := row.Scan(&group.ID, &group.Code, &group.Course, &group.NumStudents, &group.FacultyID)
	return group, err
}

// CreateGroup creates a new group
func (r *GroupRepository) CreateGroup(ctx context.Context, group *models.Group) (int64, error) {
	sql, args, err := r.sb.Insert("groups").
		Columns("code", "course", "num_students", "faculty_id").
		Values(group.Code, group.Course, group.NumStudents, group.FacultyID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create group SQL")
		return 0, fmt.Errorf("failed to build create group query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		switch {
		case dberrors.IsDuplicateKeyError(err):
			return 0, apperrors.ErrGroupAlreadyExists
		case dberrors.IsForeignKeyError(err):
			return 0, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Str("code", group.Code).Msg("Error executing create group query")
		return 0, fmt.Errorf("error creating group: %w", err)
	}

	return id, nil
}

// GetGroupByID retrieves a group by ID
func (r *GroupRepository) GetGroupByID(ctx context.Context, id int64) (*models.Group, error) {
	return r.getGroup(ctx, squirrel.Eq{"id": id})
}

// GetGroupByCode retrieves a group by its unique code
func (r *GroupRepository) GetGroupByCode(ctx context.Context, code string) (*models.Group, error) {
	return r.getGroup(ctx, squirrel.Eq{"code": code})
}

func (r *GroupRepository) getGroup(ctx context.Context, where squirrel.Eq) (*models.Group, error) {
	sql, args, err := r.sb.Select(groupColumns...).
		From("groups").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get group SQL")
		return nil, fmt.Errorf("failed to build get group query: %w", err)
	}

	group, err := scanGroup(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		logger.Error().Err(err).Interface("where", where).Msg("Error scanning group row")
		return nil, fmt.Errorf("error getting group: %w", err)
	}

	return group, nil
}

// ListGroups retrieves a page of groups ordered by ID
func (r *GroupRepository) ListGroups(ctx context.Context, skip, limit uint64) ([]*models.Group, error) {
	return r.SearchGroups(ctx, models.GroupSearchFilter{Skip: skip, Limit: limit})
}

// buildSearchGroupsQuery translates a filter into SQL. Sort fields outside
// the allow-list are ignored, leaving the natural ID order.
func buildSearchGroupsQuery(sb squirrel.StatementBuilderType, filter models.GroupSearchFilter) squirrel.SelectBuilder {
	q := sb.Select(groupColumns...).From("groups")

	if filter.FacultyID > 0 {
		q = q.Where(squirrel.Eq{"faculty_id": filter.FacultyID})
	}
	if filter.MinStudents > 0 {
		q = q.Where(squirrel.GtOrEq{"num_students": filter.MinStudents})
	}
	if column, ok := groupSortColumns[filter.SortBy]; ok {
		q = q.OrderBy(column+" ASC", "id ASC")
	} else {
		q = q.OrderBy("id ASC")
	}

	return paginate(q, filter.Skip, filter.Limit)
}

// SearchGroups lists groups matching every predicate of the filter
func (r *GroupRepository) SearchGroups(ctx context.Context, filter models.GroupSearchFilter) ([]*models.Group, error) {
	sql, args, err := buildSearchGroupsQuery(r.sb, filter).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building search groups SQL")
		return nil, fmt.Errorf("failed to build search groups query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing search groups query")
		return nil, fmt.Errorf("error querying groups: %w", err)
	}
	defer rows.Close()

	groups := []*models.Group{}
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning group row during search")
			return nil, fmt.Errorf("error scanning group row: %w", err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating group rows")
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}

	return groups, nil
}

// buildPromoteGroupsQuery increments course for every group in currentCourse
func buildPromoteGroupsQuery(sb squirrel.StatementBuilderType, currentCourse int) squirrel.UpdateBuilder {
	return sb.Update("groups").
		Set("course", squirrel.Expr("course + 1")).
		Where(squirrel.Eq{"course": currentCourse})
}

// PromoteGroups moves every group of currentCourse to the next course and
// returns the number of groups updated
func (r *GroupRepository) PromoteGroups(ctx context.Context, currentCourse int) (int64, error) {
	sql, args, err := buildPromoteGroupsQuery(r.sb, currentCourse).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building promote groups SQL")
		return 0, fmt.Errorf("failed to build promote groups query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int("course", currentCourse).Msg("Error executing promote groups query")
		return 0, fmt.Errorf("error promoting groups: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
