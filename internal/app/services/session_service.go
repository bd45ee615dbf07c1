package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/pkg/apperrors"
)

// SessionService defines the interface for class session operations
type SessionService interface {
	CreateSession(ctx context.Context, session *models.Session) (*models.Session, error)
	GetSessionByID(ctx context.Context, id int64) (*models.Session, error)
	ListSessions(ctx context.Context, skip, limit uint64) ([]*models.Session, error)
	ListSessionDetails(ctx context.Context, skip, limit uint64) ([]*models.SessionDetails, error)
}

type sessionServiceImpl struct {
	sessionRepo SessionStore
	groupRepo   GroupStore
	subjectRepo SubjectStore
	teacherRepo TeacherStore
}

// NewSessionService creates a new session service instance
func NewSessionService(sessionRepo SessionStore, groupRepo GroupStore, subjectRepo SubjectStore, teacherRepo TeacherStore) SessionService {
	return &sessionServiceImpl{
		sessionRepo: sessionRepo,
		groupRepo:   groupRepo,
		subjectRepo: subjectRepo,
		teacherRepo: teacherRepo,
	}
}

func (s *sessionServiceImpl) validateSession(session *models.Session) error {
	if session == nil {
		return fmt.Errorf("%w: session is nil", apperrors.ErrValidationFailed)
	}
	session.ControlType = strings.TrimSpace(session.ControlType)
	if session.ControlType == "" {
		return apperrors.NewValidationError("Control type cannot be empty")
	}
	if session.SessionDate.IsZero() {
		return apperrors.NewValidationError("Session date is required (YYYY-MM-DD)")
	}
	if session.GroupID <= 0 || session.SubjectID <= 0 || session.TeacherID <= 0 {
		return apperrors.NewValidationError("Group, subject and teacher IDs must be positive numbers")
	}
	return nil
}

// CreateSession checks group, subject and teacher exist, in that order, then inserts
func (s *sessionServiceImpl) CreateSession(ctx context.Context, session *models.Session) (*models.Session, error) {
	if err := s.validateSession(session); err != nil {
		return nil, err
	}

	if _, err := s.groupRepo.GetGroupByID(ctx, session.GroupID); err != nil {
		if errors.Is(err, apperrors.ErrGroupNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error checking group: %w", err)
	}
	if _, err := s.subjectRepo.GetSubjectByID(ctx, session.SubjectID); err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error checking subject: %w", err)
	}
	if _, err := s.teacherRepo.GetTeacherByID(ctx, session.TeacherID); err != nil {
		if errors.Is(err, apperrors.ErrTeacherNotFound) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error checking teacher: %w", err)
	}

	created := *session
	id, err := s.sessionRepo.CreateSession(ctx, &created)
	if err != nil {
		if errors.Is(err, apperrors.ErrReferencedRowNotFound) {
			return nil, apperrors.ErrReferencedRowNotFound
		}
		return nil, fmt.Errorf("error creating session: %w", err)
	}
	created.ID = id
	return &created, nil
}

// GetSessionByID retrieves a session by ID
func (s *sessionServiceImpl) GetSessionByID(ctx context.Context, id int64) (*models.Session, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid session ID", apperrors.ErrValidationFailed)
	}

	session, err := s.sessionRepo.GetSessionByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}
	return session, nil
}

// ListSessions retrieves a page of sessions
func (s *sessionServiceImpl) ListSessions(ctx context.Context, skip, limit uint64) ([]*models.Session, error) {
	sessions, err := s.sessionRepo.ListSessions(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving sessions: %w", err)
	}
	return sessions, nil
}

// ListSessionDetails retrieves a page of sessions with group, subject and teacher resolved
func (s *sessionServiceImpl) ListSessionDetails(ctx context.Context, skip, limit uint64) ([]*models.SessionDetails, error) {
	details, err := s.sessionRepo.ListSessionDetails(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving session details: %w", err)
	}
	return details, nil
}
