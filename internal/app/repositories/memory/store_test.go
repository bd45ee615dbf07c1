package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/pkg/apperrors"
)

func seedFaculties(t *testing.T, s *Store, names ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, err := s.CreateFaculty(context.Background(), &models.Faculty{Name: name})
		if err != nil {
			t.Fatalf("create faculty %q: %v", name, err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestStoreFacultyUniqueness(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedFaculties(t, s, "CS")

	if _, err := s.CreateFaculty(ctx, &models.Faculty{Name: "CS"}); !errors.Is(err, apperrors.ErrFacultyAlreadyExists) {
		t.Fatalf("expected ErrFacultyAlreadyExists, got %v", err)
	}
	list, _ := s.ListFaculties(ctx, 0, 0)
	if len(list) != 1 {
		t.Fatalf("expected 1 faculty after duplicate insert, got %d", len(list))
	}
	if _, err := s.GetFacultyByID(ctx, 99); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreGroupRequiresFaculty(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.CreateGroup(ctx, &models.Group{Code: "A", Course: 1, NumStudents: 10, FacultyID: 7})
	if !errors.Is(err, apperrors.ErrFacultyNotFound) {
		t.Fatalf("expected ErrFacultyNotFound, got %v", err)
	}
	groups, _ := s.ListGroups(ctx, 0, 0)
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestStoreSearchGroups(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ids := seedFaculties(t, s, "CS", "Math")

	for _, g := range []models.Group{
		{Code: "C", Course: 3, NumStudents: 20, FacultyID: ids[0]},
		{Code: "A", Course: 1, NumStudents: 30, FacultyID: ids[0]},
		{Code: "B", Course: 2, NumStudents: 10, FacultyID: ids[1]},
	} {
		g := g
		if _, err := s.CreateGroup(ctx, &g); err != nil {
			t.Fatalf("create group: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter models.GroupSearchFilter
		want   []string
	}{
		{"natural order", models.GroupSearchFilter{}, []string{"C", "A", "B"}},
		{"by faculty", models.GroupSearchFilter{FacultyID: ids[0]}, []string{"C", "A"}},
		{"min students", models.GroupSearchFilter{MinStudents: 20}, []string{"C", "A"}},
		{"sort by code", models.GroupSearchFilter{SortBy: models.GroupSortCode}, []string{"A", "B", "C"}},
		{"sort by students", models.GroupSearchFilter{SortBy: models.GroupSortNumStudents}, []string{"B", "C", "A"}},
		{"paged", models.GroupSearchFilter{SortBy: models.GroupSortCourse, Skip: 1, Limit: 1}, []string{"B"}},
		{"skip past end", models.GroupSearchFilter{Skip: 10}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SearchGroups(ctx, tt.filter)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d groups, got %d", len(tt.want), len(got))
			}
			for i, g := range got {
				if g.Code != tt.want[i] {
					t.Errorf("position %d: expected %s, got %s", i, tt.want[i], g.Code)
				}
			}
		})
	}
}

func TestStorePromoteGroups(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ids := seedFaculties(t, s, "CS")
	s.CreateGroup(ctx, &models.Group{Code: "A", Course: 1, NumStudents: 10, FacultyID: ids[0]})
	s.CreateGroup(ctx, &models.Group{Code: "B", Course: 2, NumStudents: 10, FacultyID: ids[0]})

	n, err := s.PromoteGroups(ctx, 1)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 promoted, got %d (%v)", n, err)
	}
	a, _ := s.GetGroupByCode(ctx, "A")
	b, _ := s.GetGroupByCode(ctx, "B")
	if a.Course != 2 || b.Course != 2 {
		t.Fatalf("expected both groups in course 2, got A=%d B=%d", a.Course, b.Course)
	}
	if n, _ := s.PromoteGroups(ctx, 1); n != 0 {
		t.Fatalf("expected nothing left in course 1, got %d", n)
	}
}

func TestStoreStudentsPerFaculty(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ids := seedFaculties(t, s, "Math", "CS", "Empty")
	s.CreateGroup(ctx, &models.Group{Code: "CS1", Course: 1, NumStudents: 20, FacultyID: ids[1]})
	s.CreateGroup(ctx, &models.Group{Code: "CS2", Course: 2, NumStudents: 25, FacultyID: ids[1]})
	s.CreateGroup(ctx, &models.Group{Code: "M1", Course: 1, NumStudents: 12, FacultyID: ids[0]})

	stats, err := s.StudentsPerFaculty(ctx)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 rows, faculties without groups excluded, got %d", len(stats))
	}
	if stats[0].FacultyName != "CS" || stats[0].TotalStudents != 45 {
		t.Errorf("unexpected first row %+v", stats[0])
	}
	if stats[1].FacultyName != "Math" || stats[1].TotalStudents != 12 {
		t.Errorf("unexpected second row %+v", stats[1])
	}
}

func TestStoreSubjectSearch(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	dep, _ := s.CreateDepartment(ctx, &models.Department{Name: "SE"})

	subjects := []models.Subject{
		{Name: "Algorithms", NumHours: 64, DepartmentID: dep, Extra: map[string]interface{}{"notes": "graph algorithms and sorting"}},
		{Name: "Databases", NumHours: 48, DepartmentID: dep, Extra: map[string]interface{}{"notes": "relational databases"}},
		{Name: "Ethics", NumHours: 32, DepartmentID: dep},
	}
	for i := range subjects {
		if _, err := s.CreateSubject(ctx, &subjects[i]); err != nil {
			t.Fatalf("create subject: %v", err)
		}
	}

	t.Run("regex", func(t *testing.T) {
		got, err := s.SearchSubjectsByRegex(ctx, "^rel", 0, 0)
		if err != nil {
			t.Fatalf("regex: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Databases" {
			t.Fatalf("unexpected regex result %+v", got)
		}
	})

	t.Run("invalid regex", func(t *testing.T) {
		_, err := s.SearchSubjectsByRegex(ctx, "(", 0, 0)
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("trigram", func(t *testing.T) {
		got, err := s.SearchSubjectsBySimilarity(ctx, "relational databases", 0, 0)
		if err != nil {
			t.Fatalf("trigram: %v", err)
		}
		if len(got) == 0 || got[0].Name != "Databases" {
			t.Fatalf("expected Databases first, got %+v", got)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := s.CreateSubject(ctx, &models.Subject{Name: "Ethics", NumHours: 10, DepartmentID: dep})
		if !errors.Is(err, apperrors.ErrSubjectAlreadyExists) {
			t.Fatalf("expected ErrSubjectAlreadyExists, got %v", err)
		}
	})

	t.Run("returned extra is a copy", func(t *testing.T) {
		got, _ := s.GetSubjectByName(ctx, "Algorithms")
		got.Extra["notes"] = "changed"
		again, _ := s.GetSubjectByName(ctx, "Algorithms")
		if notes, _ := again.Notes(); notes != "graph algorithms and sorting" {
			t.Fatalf("store was mutated through returned value: %q", notes)
		}
	})
}

func TestStoreSessionDetails(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	fac := seedFaculties(t, s, "CS")[0]
	dep, _ := s.CreateDepartment(ctx, &models.Department{Name: "SE"})
	grp, _ := s.CreateGroup(ctx, &models.Group{Code: "G1", Course: 1, NumStudents: 20, FacultyID: fac})
	sub, _ := s.CreateSubject(ctx, &models.Subject{Name: "Go", NumHours: 32, DepartmentID: dep})
	tch, _ := s.CreateTeacher(ctx, &models.Teacher{Name: "Rob"})

	if _, err := s.CreateSession(ctx, &models.Session{ControlType: "exam", GroupID: grp, SubjectID: sub, TeacherID: 42}); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found for missing teacher, got %v", err)
	}

	date := models.NewDate(2025, time.January, 20)
	if _, err := s.CreateSession(ctx, &models.Session{ControlType: "exam", SessionDate: date, GroupID: grp, SubjectID: sub, TeacherID: tch}); err != nil {
		t.Fatalf("create session: %v", err)
	}

	details, err := s.ListSessionDetails(ctx, 0, 10)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 session, got %d", len(details))
	}
	d := details[0]
	if d.Group.Code != "G1" || d.Subject.Name != "Go" || d.Teacher.Name != "Rob" {
		t.Fatalf("unexpected join %+v", d)
	}
	if d.SessionDate.String() != "2025-01-20" {
		t.Fatalf("unexpected date %s", d.SessionDate)
	}
}
