package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/pkg/apperrors"
	"github.com/yigit/unisession/internal/pkg/logger"
)

// GroupQuery carries the raw parameters of a group search
type GroupQuery struct {
	FacultyID   int64
	MinStudents int
	SortBy      string
	Skip        uint64
	Limit       uint64
}

// GroupService defines the interface for student group operations
type GroupService interface {
	CreateGroup(ctx context.Context, group *models.Group) (*models.Group, error)
	GetGroupByID(ctx context.Context, id int64) (*models.Group, error)
	ListGroups(ctx context.Context, skip, limit uint64) ([]*models.Group, error)
	SearchGroups(ctx context.Context, query GroupQuery) ([]*models.Group, error)
	PromoteGroups(ctx context.Context, currentCourse int) (int64, error)
}

type groupServiceImpl struct {
	groupRepo   GroupStore
	facultyRepo FacultyStore
}

// NewGroupService creates a new group service instance
func NewGroupService(groupRepo GroupStore, facultyRepo FacultyStore) GroupService {
	return &groupServiceImpl{
		groupRepo:   groupRepo,
		facultyRepo: facultyRepo,
	}
}

func (s *groupServiceImpl) validateGroup(group *models.Group) error {
	if group == nil {
		return fmt.Errorf("%w: group is nil", apperrors.ErrValidationFailed)
	}
	group.Code = strings.TrimSpace(group.Code)
	if group.Code == "" {
		return apperrors.NewValidationError("Group code cannot be empty")
	}
	if group.Course <= 0 {
		return apperrors.NewValidationError("Course must be a positive number")
	}
	if group.NumStudents <= 0 {
		return apperrors.NewValidationError("Number of students must be a positive number")
	}
	if group.FacultyID <= 0 {
		return apperrors.NewValidationError("Faculty ID must be a positive number")
	}
	return nil
}

// CreateGroup rejects a duplicate code first, then a missing faculty, then inserts
func (s *groupServiceImpl) CreateGroup(ctx context.Context, group *models.Group) (*models.Group, error) {
	if err := s.validateGroup(group); err != nil {
		return nil, err
	}

	existing, err := s.groupRepo.GetGroupByCode(ctx, group.Code)
	if err != nil && !errors.Is(err, apperrors.ErrGroupNotFound) {
		return nil, fmt.Errorf("error checking group code: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrGroupAlreadyExists
	}

	if _, err := s.facultyRepo.GetFacultyByID(ctx, group.FacultyID); err != nil {
		if errors.Is(err, apperrors.ErrFacultyNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error checking faculty: %w", err)
	}

	created := *group
	id, err := s.groupRepo.CreateGroup(ctx, &created)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrGroupAlreadyExists, apperrors.ErrFacultyNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating group: %w", err)
	}
	created.ID = id
	return &created, nil
}

// GetGroupByID retrieves a group by ID
func (s *groupServiceImpl) GetGroupByID(ctx context.Context, id int64) (*models.Group, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid group ID", apperrors.ErrValidationFailed)
	}

	group, err := s.groupRepo.GetGroupByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrGroupNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error retrieving group: %w", err)
	}
	return group, nil
}

// ListGroups retrieves a page of groups in ID order
func (s *groupServiceImpl) ListGroups(ctx context.Context, skip, limit uint64) ([]*models.Group, error) {
	groups, err := s.groupRepo.ListGroups(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}
	return groups, nil
}

// SearchGroups filters and optionally sorts groups. A sort field outside the
// allow-list is ignored and the natural order is kept.
func (s *groupServiceImpl) SearchGroups(ctx context.Context, query GroupQuery) ([]*models.Group, error) {
	if query.MinStudents < 0 {
		return nil, apperrors.NewValidationError("min_students cannot be negative")
	}

	filter := models.GroupSearchFilter{
		FacultyID:   query.FacultyID,
		MinStudents: query.MinStudents,
		Skip:        query.Skip,
		Limit:       query.Limit,
	}
	if query.SortBy != "" {
		sortBy, ok := models.ParseGroupSortField(query.SortBy)
		if !ok {
			logger.Debug().Str("sort_by", query.SortBy).Msg("Ignoring unsupported group sort field")
		}
		filter.SortBy = sortBy
	}

	groups, err := s.groupRepo.SearchGroups(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error searching groups: %w", err)
	}
	return groups, nil
}

// PromoteGroups moves every group of currentCourse to the next course and
// returns how many were moved. Moving none is reported as not found.
func (s *groupServiceImpl) PromoteGroups(ctx context.Context, currentCourse int) (int64, error) {
	if currentCourse <= 0 {
		return 0, apperrors.NewValidationError("current_course must be a positive number")
	}

	updated, err := s.groupRepo.PromoteGroups(ctx, currentCourse)
	if err != nil {
		return 0, fmt.Errorf("error promoting groups: %w", err)
	}
	if updated == 0 {
		return 0, &apperrors.CustomError{
			Err:     apperrors.ErrNoGroupsToPromote,
			Message: fmt.Sprintf("No groups found for course %d to promote.", currentCourse),
		}
	}

	logger.Info().Int("current_course", currentCourse).Int64("updated", updated).Msg("Promoted groups")
	return updated, nil
}
