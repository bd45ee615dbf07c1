package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/pkg/apperrors"
)

// TeacherService defines the interface for teacher-related operations
type TeacherService interface {
	CreateTeacher(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error)
	GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error)
	ListTeachers(ctx context.Context, skip, limit uint64) ([]*models.Teacher, error)
}

type teacherServiceImpl struct {
	teacherRepo TeacherStore
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(teacherRepo TeacherStore) TeacherService {
	return &teacherServiceImpl{teacherRepo: teacherRepo}
}

// CreateTeacher creates a new teacher. Teacher names are not unique.
func (s *teacherServiceImpl) CreateTeacher(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error) {
	if teacher == nil {
		return nil, fmt.Errorf("%w: teacher is nil", apperrors.ErrValidationFailed)
	}
	name, err := validateName("Teacher", teacher.Name)
	if err != nil {
		return nil, err
	}

	created := &models.Teacher{Name: name}
	id, err := s.teacherRepo.CreateTeacher(ctx, created)
	if err != nil {
		return nil, fmt.Errorf("error creating teacher: %w", err)
	}
	created.ID = id
	return created, nil
}

// GetTeacherByID retrieves a teacher by ID
func (s *teacherServiceImpl) GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid teacher ID", apperrors.ErrValidationFailed)
	}

	teacher, err := s.teacherRepo.GetTeacherByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTeacherNotFound) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	return teacher, nil
}

// ListTeachers retrieves a page of teachers
func (s *teacherServiceImpl) ListTeachers(ctx context.Context, skip, limit uint64) ([]*models.Teacher, error) {
	teachers, err := s.teacherRepo.ListTeachers(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teachers: %w", err)
	}
	return teachers, nil
}
