// Package memory provides an in-memory implementation of every repository
// used for tests and ephemeral environments (database driver "memory").
// It enforces the same uniqueness and foreign-key rules as the PostgreSQL
// schema and returns the same typed errors as the PostgreSQL repositories.
package memory

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/pkg/apperrors"
	"github.com/yigit/unisession/internal/pkg/trigram"
)

// Store keeps every table as an ID-ordered slice guarded by a single lock.
type Store struct {
	mu sync.RWMutex

	faculties   []models.Faculty
	departments []models.Department
	teachers    []models.Teacher
	groups      []models.Group
	subjects    []models.Subject
	sessions    []models.Session

	nextID map[string]int64
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{nextID: make(map[string]int64)}
}

func (s *Store) allocateID(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// page returns the [skip, skip+limit) window of n items. A zero limit means no limit.
func page(n int, skip, limit uint64) (int, int) {
	start := int(min(skip, uint64(n)))
	end := n
	if limit > 0 && uint64(start)+limit < uint64(n) {
		end = start + int(limit)
	}
	return start, end
}

func copyExtra(extra map[string]interface{}) map[string]interface{} {
	if extra == nil {
		return nil
	}
	out := make(map[string]interface{}, len(extra))
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// --- Faculties ---

// CreateFaculty inserts a faculty, rejecting duplicate names
func (s *Store) CreateFaculty(_ context.Context, faculty *models.Faculty) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.faculties {
		if f.Name == faculty.Name {
			return 0, apperrors.ErrFacultyAlreadyExists
		}
	}
	row := *faculty
	row.ID = s.allocateID("faculties")
	s.faculties = append(s.faculties, row)
	return row.ID, nil
}

// GetFacultyByID retrieves a faculty by ID
func (s *Store) GetFacultyByID(_ context.Context, id int64) (*models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if f, ok := s.facultyByID(id); ok {
		return &f, nil
	}
	return nil, apperrors.ErrFacultyNotFound
}

func (s *Store) facultyByID(id int64) (models.Faculty, bool) {
	for _, f := range s.faculties {
		if f.ID == id {
			return f, true
		}
	}
	return models.Faculty{}, false
}

// GetFacultyByName retrieves a faculty by its unique name
func (s *Store) GetFacultyByName(_ context.Context, name string) (*models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.faculties {
		if f.Name == name {
			f := f
			return &f, nil
		}
	}
	return nil, apperrors.ErrFacultyNotFound
}

// ListFaculties retrieves a page of faculties ordered by ID
func (s *Store) ListFaculties(_ context.Context, skip, limit uint64) ([]*models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := page(len(s.faculties), skip, limit)
	out := make([]*models.Faculty, 0, end-start)
	for _, f := range s.faculties[start:end] {
		f := f
		out = append(out, &f)
	}
	return out, nil
}

// --- Departments ---

// CreateDepartment inserts a department, rejecting duplicate names
func (s *Store) CreateDepartment(_ context.Context, department *models.Department) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.departments {
		if d.Name == department.Name {
			return 0, apperrors.ErrDepartmentAlreadyExists
		}
	}
	row := *department
	row.ID = s.allocateID("departments")
	s.departments = append(s.departments, row)
	return row.ID, nil
}

// GetDepartmentByID retrieves a department by ID
func (s *Store) GetDepartmentByID(_ context.Context, id int64) (*models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.departmentByID(id); ok {
		return &d, nil
	}
	return nil, apperrors.ErrDepartmentNotFound
}

func (s *Store) departmentByID(id int64) (models.Department, bool) {
	for _, d := range s.departments {
		if d.ID == id {
			return d, true
		}
	}
	return models.Department{}, false
}

// GetDepartmentByName retrieves a department by its unique name
func (s *Store) GetDepartmentByName(_ context.Context, name string) (*models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.departments {
		if d.Name == name {
			d := d
			return &d, nil
		}
	}
	return nil, apperrors.ErrDepartmentNotFound
}

// ListDepartments retrieves a page of departments ordered by ID
func (s *Store) ListDepartments(_ context.Context, skip, limit uint64) ([]*models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := page(len(s.departments), skip, limit)
	out := make([]*models.Department, 0, end-start)
	for _, d := range s.departments[start:end] {
		d := d
		out = append(out, &d)
	}
	return out, nil
}

// --- Teachers ---

// CreateTeacher inserts a teacher. Names may repeat.
func (s *Store) CreateTeacher(_ context.Context, teacher *models.Teacher) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := *teacher
	row.ID = s.allocateID("teachers")
	s.teachers = append(s.teachers, row)
	return row.ID, nil
}

// GetTeacherByID retrieves a teacher by ID
func (s *Store) GetTeacherByID(_ context.Context, id int64) (*models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.teacherByID(id); ok {
		return &t, nil
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (s *Store) teacherByID(id int64) (models.Teacher, bool) {
	for _, t := range s.teachers {
		if t.ID == id {
			return t, true
		}
	}
	return models.Teacher{}, false
}

// GetTeacherByName retrieves the first teacher with the given name
func (s *Store) GetTeacherByName(_ context.Context, name string) (*models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.teachers {
		if t.Name == name {
			t := t
			return &t, nil
		}
	}
	return nil, apperrors.ErrTeacherNotFound
}

// ListTeachers retrieves a page of teachers ordered by ID
func (s *Store) ListTeachers(_ context.Context, skip, limit uint64) ([]*models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := page(len(s.teachers), skip, limit)
	out := make([]*models.Teacher, 0, end-start)
	for _, t := range s.teachers[start:end] {
		t := t
		out = append(out, &t)
	}
	return out, nil
}

// --- Groups ---

// CreateGroup inserts a group, rejecting duplicate codes and unknown faculties
func (s *Store) CreateGroup(_ context.Context, group *models.Group) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups {
		if g.Code == group.Code {
			return 0, apperrors.ErrGroupAlreadyExists
		}
	}
	if _, ok := s.facultyByID(group.FacultyID); !ok {
		return 0, apperrors.ErrFacultyNotFound
	}
	row := *group
	row.ID = s.allocateID("groups")
	s.groups = append(s.groups, row)
	return row.ID, nil
}

// GetGroupByID retrieves a group by ID
func (s *Store) GetGroupByID(_ context.Context, id int64) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if g, ok := s.groupByID(id); ok {
		return &g, nil
	}
	return nil, apperrors.ErrGroupNotFound
}

func (s *Store) groupByID(id int64) (models.Group, bool) {
	for _, g := range s.groups {
		if g.ID == id {
			return g, true
		}
	}
	return models.Group{}, false
}

// GetGroupByCode retrieves a group by its unique code
func (s *Store) GetGroupByCode(_ context.Context, code string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if g.Code == code {
			g := g
			return &g, nil
		}
	}
	return nil, apperrors.ErrGroupNotFound
}

// ListGroups retrieves a page of groups ordered by ID
func (s *Store) ListGroups(ctx context.Context, skip, limit uint64) ([]*models.Group, error) {
	return s.SearchGroups(ctx, models.GroupSearchFilter{Skip: skip, Limit: limit})
}

// SearchGroups filters, optionally sorts by an allow-listed field, then paginates
func (s *Store) SearchGroups(_ context.Context, filter models.GroupSearchFilter) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		if filter.FacultyID > 0 && g.FacultyID != filter.FacultyID {
			continue
		}
		if filter.MinStudents > 0 && g.NumStudents < filter.MinStudents {
			continue
		}
		matched = append(matched, g)
	}

	var less func(a, b models.Group) bool
	switch filter.SortBy {
	case models.GroupSortCode:
		less = func(a, b models.Group) bool { return a.Code < b.Code }
	case models.GroupSortCourse:
		less = func(a, b models.Group) bool { return a.Course < b.Course }
	case models.GroupSortNumStudents:
		less = func(a, b models.Group) bool { return a.NumStudents < b.NumStudents }
	}
	if less != nil {
		// Stable on an ID-ordered slice keeps id as the tiebreaker
		sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	}

	start, end := page(len(matched), filter.Skip, filter.Limit)
	out := make([]*models.Group, 0, end-start)
	for _, g := range matched[start:end] {
		g := g
		out = append(out, &g)
	}
	return out, nil
}

// PromoteGroups increments course for every group currently in currentCourse
func (s *Store) PromoteGroups(_ context.Context, currentCourse int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for i := range s.groups {
		if s.groups[i].Course == currentCourse {
			s.groups[i].Course++
			updated++
		}
	}
	return updated, nil
}

// --- Subjects ---

// CreateSubject inserts a subject, rejecting duplicate names and unknown departments
func (s *Store) CreateSubject(_ context.Context, subject *models.Subject) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subjects {
		if sub.Name == subject.Name {
			return 0, apperrors.ErrSubjectAlreadyExists
		}
	}
	if _, ok := s.departmentByID(subject.DepartmentID); !ok {
		return 0, apperrors.ErrDepartmentNotFound
	}
	row := *subject
	row.Extra = copyExtra(subject.Extra)
	row.ID = s.allocateID("subjects")
	s.subjects = append(s.subjects, row)
	return row.ID, nil
}

// GetSubjectByID retrieves a subject by ID
func (s *Store) GetSubjectByID(_ context.Context, id int64) (*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sub, ok := s.subjectByID(id); ok {
		return &sub, nil
	}
	return nil, apperrors.ErrSubjectNotFound
}

func (s *Store) subjectByID(id int64) (models.Subject, bool) {
	for _, sub := range s.subjects {
		if sub.ID == id {
			sub.Extra = copyExtra(sub.Extra)
			return sub, true
		}
	}
	return models.Subject{}, false
}

// GetSubjectByName retrieves a subject by its unique name
func (s *Store) GetSubjectByName(_ context.Context, name string) (*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subjects {
		if sub.Name == name {
			sub.Extra = copyExtra(sub.Extra)
			return &sub, nil
		}
	}
	return nil, apperrors.ErrSubjectNotFound
}

// ListSubjects retrieves a page of subjects ordered by ID
func (s *Store) ListSubjects(_ context.Context, skip, limit uint64) ([]*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return subjectPage(s.subjects, skip, limit), nil
}

func subjectPage(subjects []models.Subject, skip, limit uint64) []*models.Subject {
	start, end := page(len(subjects), skip, limit)
	out := make([]*models.Subject, 0, end-start)
	for _, sub := range subjects[start:end] {
		sub.Extra = copyExtra(sub.Extra)
		out = append(out, &sub)
	}
	return out
}

// SearchSubjectsBySimilarity returns subjects whose notes are trigram-similar
// to query, most similar first
func (s *Store) SearchSubjectsBySimilarity(_ context.Context, query string, skip, limit uint64) ([]*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		subject models.Subject
		score   float64
	}
	var hits []scored
	for _, sub := range s.subjects {
		notes, ok := sub.Notes()
		if !ok {
			continue
		}
		if score := trigram.Similarity(notes, query); score >= trigram.DefaultThreshold {
			hits = append(hits, scored{subject: sub, score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	matched := make([]models.Subject, 0, len(hits))
	for _, h := range hits {
		matched = append(matched, h.subject)
	}
	return subjectPage(matched, skip, limit), nil
}

// SearchSubjectsByRegex returns subjects whose notes match pattern.
// Go's RE2 syntax stands in for PostgreSQL's POSIX regular expressions.
func (s *Store) SearchSubjectsByRegex(_ context.Context, pattern string, skip, limit uint64) ([]*models.Subject, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, apperrors.ErrInvalidSearchPattern
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Subject
	for _, sub := range s.subjects {
		if notes, ok := sub.Notes(); ok && re.MatchString(notes) {
			matched = append(matched, sub)
		}
	}
	return subjectPage(matched, skip, limit), nil
}

// --- Sessions ---

// CreateSession inserts a session after checking every referenced row exists
func (s *Store) CreateSession(_ context.Context, session *models.Session) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, okGroup := s.groupByID(session.GroupID)
	_, okSubject := s.subjectByID(session.SubjectID)
	_, okTeacher := s.teacherByID(session.TeacherID)
	if !okGroup || !okSubject || !okTeacher {
		return 0, apperrors.ErrReferencedRowNotFound
	}
	row := *session
	row.ID = s.allocateID("sessions")
	s.sessions = append(s.sessions, row)
	return row.ID, nil
}

// GetSessionByID retrieves a session by ID
func (s *Store) GetSessionByID(_ context.Context, id int64) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.ID == id {
			return &sess, nil
		}
	}
	return nil, apperrors.ErrSessionNotFound
}

// ListSessions retrieves a page of sessions ordered by ID
func (s *Store) ListSessions(_ context.Context, skip, limit uint64) ([]*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := page(len(s.sessions), skip, limit)
	out := make([]*models.Session, 0, end-start)
	for _, sess := range s.sessions[start:end] {
		out = append(out, &sess)
	}
	return out, nil
}

// ListSessionDetails retrieves a page of sessions joined with their group,
// subject and teacher. Sessions whose parents are missing are skipped, as an
// inner join would.
func (s *Store) ListSessionDetails(_ context.Context, skip, limit uint64) ([]*models.SessionDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	joined := make([]models.SessionDetails, 0, len(s.sessions))
	for _, sess := range s.sessions {
		g, okGroup := s.groupByID(sess.GroupID)
		sub, okSubject := s.subjectByID(sess.SubjectID)
		t, okTeacher := s.teacherByID(sess.TeacherID)
		if !okGroup || !okSubject || !okTeacher {
			continue
		}
		joined = append(joined, models.SessionDetails{Session: sess, Group: g, Subject: sub, Teacher: t})
	}

	start, end := page(len(joined), skip, limit)
	out := make([]*models.SessionDetails, 0, end-start)
	for _, d := range joined[start:end] {
		out = append(out, &d)
	}
	return out, nil
}

// --- Reports ---

// StudentsPerFaculty sums num_students per faculty name, ordered by name.
// Faculties without groups are omitted.
func (s *Store) StudentsPerFaculty(_ context.Context) ([]*models.FacultyStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]int64)
	for _, g := range s.groups {
		f, ok := s.facultyByID(g.FacultyID)
		if !ok {
			continue
		}
		totals[f.Name] += int64(g.NumStudents)
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return strings.Compare(names[i], names[j]) < 0 })

	stats := make([]*models.FacultyStats, 0, len(names))
	for _, name := range names {
		stats = append(stats, &models.FacultyStats{FacultyName: name, TotalStudents: totals[name]})
	}
	return stats, nil
}
