package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/app/repositories/memory"
	"github.com/yigit/unisession/internal/pkg/apperrors"
)

func newTestServices() (*Services, *memory.Store) {
	store := memory.NewStore()
	return NewServices(store), store
}

func TestCreateFacultyDuplicate(t *testing.T) {
	svc, _ := newTestServices()
	ctx := context.Background()

	created, err := svc.Faculty.CreateFaculty(ctx, &models.Faculty{Name: "  Computer Science "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Name != "Computer Science" {
		t.Fatalf("unexpected faculty %+v", created)
	}

	_, err = svc.Faculty.CreateFaculty(ctx, &models.Faculty{Name: "Computer Science"})
	if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Fatalf("expected conflict, got %v", err)
	}
	list, _ := svc.Faculty.ListFaculties(ctx, 0, 100)
	if len(list) != 1 {
		t.Fatalf("expected exactly one faculty, got %d", len(list))
	}
}

func TestCreateRejectsBlankNames(t *testing.T) {
	svc, _ := newTestServices()
	ctx := context.Background()

	if _, err := svc.Faculty.CreateFaculty(ctx, &models.Faculty{Name: "   "}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("faculty: expected validation error, got %v", err)
	}
	if _, err := svc.Department.CreateDepartment(ctx, &models.Department{Name: ""}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("department: expected validation error, got %v", err)
	}
	if _, err := svc.Teacher.CreateTeacher(ctx, &models.Teacher{Name: "\t"}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("teacher: expected validation error, got %v", err)
	}
}

func TestTeacherNamesMayRepeat(t *testing.T) {
	svc, _ := newTestServices()
	ctx := context.Background()

	a, err := svc.Teacher.CreateTeacher(ctx, &models.Teacher{Name: "Ada"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := svc.Teacher.CreateTeacher(ctx, &models.Teacher{Name: "Ada"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %d twice", a.ID)
	}
}

func TestCreateGroupChecks(t *testing.T) {
	svc, _ := newTestServices()
	ctx := context.Background()

	_, err := svc.Group.CreateGroup(ctx, &models.Group{Code: "G1", Course: 1, NumStudents: 20, FacultyID: 1})
	if !errors.Is(err, apperrors.ErrFacultyNotFound) {
		t.Fatalf("expected faculty not found, got %v", err)
	}
	groups, _ := svc.Group.ListGroups(ctx, 0, 100)
	if len(groups) != 0 {
		t.Fatalf("expected no groups inserted, got %d", len(groups))
	}

	fac, _ := svc.Faculty.CreateFaculty(ctx, &models.Faculty{Name: "CS"})
	if _, err := svc.Group.CreateGroup(ctx, &models.Group{Code: "G1", Course: 1, NumStudents: 20, FacultyID: fac.ID}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// duplicate code is reported before the missing faculty
	_, err = svc.Group.CreateGroup(ctx, &models.Group{Code: "G1", Course: 1, NumStudents: 20, FacultyID: 99})
	if !errors.Is(err, apperrors.ErrGroupAlreadyExists) {
		t.Fatalf("expected duplicate group, got %v", err)
	}

	invalid := []models.Group{
		{Code: "", Course: 1, NumStudents: 1, FacultyID: fac.ID},
		{Code: "X", Course: 0, NumStudents: 1, FacultyID: fac.ID},
		{Code: "X", Course: 1, NumStudents: 0, FacultyID: fac.ID},
	}
	for _, g := range invalid {
		g := g
		if _, err := svc.Group.CreateGroup(ctx, &g); !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("group %+v: expected validation error, got %v", g, err)
		}
	}
}

func TestPromoteGroups(t *testing.T) {
	svc, store := newTestServices()
	ctx := context.Background()
	fac, _ := svc.Faculty.CreateFaculty(ctx, &models.Faculty{Name: "CS"})
	svc.Group.CreateGroup(ctx, &models.Group{Code: "A", Course: 1, NumStudents: 10, FacultyID: fac.ID})
	svc.Group.CreateGroup(ctx, &models.Group{Code: "B", Course: 2, NumStudents: 10, FacultyID: fac.ID})

	n, err := svc.Group.PromoteGroups(ctx, 1)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 promoted, got %d", n)
	}
	a, _ := store.GetGroupByCode(ctx, "A")
	b, _ := store.GetGroupByCode(ctx, "B")
	if a.Course != 2 || b.Course != 2 {
		t.Fatalf("expected A=2 B=2, got A=%d B=%d", a.Course, b.Course)
	}

	_, err = svc.Group.PromoteGroups(ctx, 1)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if got := apperrors.Message(err); got != "No groups found for course 1 to promote." {
		t.Fatalf("unexpected message %q", got)
	}

	if _, err := svc.Group.PromoteGroups(ctx, 0); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error for course 0, got %v", err)
	}
}

func TestSearchGroupsUnknownSortIgnored(t *testing.T) {
	svc, _ := newTestServices()
	ctx := context.Background()
	fac, _ := svc.Faculty.CreateFaculty(ctx, &models.Faculty{Name: "CS"})
	for _, code := range []string{"Z", "A", "M"} {
		svc.Group.CreateGroup(ctx, &models.Group{Code: code, Course: 1, NumStudents: 10, FacultyID: fac.ID})
	}

	unsorted, err := svc.Group.SearchGroups(ctx, GroupQuery{SortBy: "bogus", Limit: 100})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	natural, _ := svc.Group.ListGroups(ctx, 0, 100)
	if len(unsorted) != len(natural) {
		t.Fatalf("expected %d groups, got %d", len(natural), len(unsorted))
	}
	for i := range natural {
		if unsorted[i].ID != natural[i].ID {
			t.Fatalf("position %d: expected id %d, got %d", i, natural[i].ID, unsorted[i].ID)
		}
	}

	sorted, _ := svc.Group.SearchGroups(ctx, GroupQuery{SortBy: "code", Limit: 100})
	if sorted[0].Code != "A" || sorted[2].Code != "Z" {
		t.Fatalf("expected code order, got %s..%s", sorted[0].Code, sorted[2].Code)
	}
}

func TestCreateSubjectChecks(t *testing.T) {
	svc, _ := newTestServices()
	ctx := context.Background()

	_, err := svc.Subject.CreateSubject(ctx, &models.Subject{Name: "Go", NumHours: 32, DepartmentID: 5})
	if !errors.Is(err, apperrors.ErrDepartmentNotFound) {
		t.Fatalf("expected department not found, got %v", err)
	}

	dep, _ := svc.Department.CreateDepartment(ctx, &models.Department{Name: "SE"})
	sub, err := svc.Subject.CreateSubject(ctx, &models.Subject{
		Name: "Go", NumHours: 32, DepartmentID: dep.ID,
		Extra: map[string]interface{}{"notes": "concurrency patterns"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Subject.GetSubjectByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if notes, _ := got.Notes(); notes != "concurrency patterns" {
		t.Fatalf("unexpected notes %q", notes)
	}

	if _, err := svc.Subject.SearchByRegex(ctx, "[", 0, 10); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected invalid pattern, got %v", err)
	}
	if _, err := svc.Subject.SearchBySimilarity(ctx, " ", 0, 10); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected query required, got %v", err)
	}
	hits, err := svc.Subject.SearchByRegex(ctx, "patterns$", 0, 10)
	if err != nil || len(hits) != 1 {
		t.Fatalf("expected one regex hit, got %d (%v)", len(hits), err)
	}
}

func TestCreateSessionChecksParentsInOrder(t *testing.T) {
	svc, _ := newTestServices()
	ctx := context.Background()
	date := models.NewDate(2025, time.March, 3)

	_, err := svc.Session.CreateSession(ctx, &models.Session{ControlType: "exam", SessionDate: date, GroupID: 1, SubjectID: 1, TeacherID: 1})
	if !errors.Is(err, apperrors.ErrGroupNotFound) {
		t.Fatalf("expected group not found first, got %v", err)
	}

	fac, _ := svc.Faculty.CreateFaculty(ctx, &models.Faculty{Name: "CS"})
	grp, _ := svc.Group.CreateGroup(ctx, &models.Group{Code: "G", Course: 1, NumStudents: 5, FacultyID: fac.ID})
	_, err = svc.Session.CreateSession(ctx, &models.Session{ControlType: "exam", SessionDate: date, GroupID: grp.ID, SubjectID: 1, TeacherID: 1})
	if !errors.Is(err, apperrors.ErrSubjectNotFound) {
		t.Fatalf("expected subject not found, got %v", err)
	}

	dep, _ := svc.Department.CreateDepartment(ctx, &models.Department{Name: "SE"})
	sub, _ := svc.Subject.CreateSubject(ctx, &models.Subject{Name: "Go", NumHours: 32, DepartmentID: dep.ID})
	_, err = svc.Session.CreateSession(ctx, &models.Session{ControlType: "exam", SessionDate: date, GroupID: grp.ID, SubjectID: sub.ID, TeacherID: 1})
	if !errors.Is(err, apperrors.ErrTeacherNotFound) {
		t.Fatalf("expected teacher not found, got %v", err)
	}

	sessions, _ := svc.Session.ListSessions(ctx, 0, 100)
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions inserted, got %d", len(sessions))
	}

	tch, _ := svc.Teacher.CreateTeacher(ctx, &models.Teacher{Name: "Rob"})
	if _, err := svc.Session.CreateSession(ctx, &models.Session{ControlType: "exam", GroupID: grp.ID, SubjectID: sub.ID, TeacherID: tch.ID}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error for missing date, got %v", err)
	}
	created, err := svc.Session.CreateSession(ctx, &models.Session{ControlType: "exam", SessionDate: date, GroupID: grp.ID, SubjectID: sub.ID, TeacherID: tch.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	details, _ := svc.Session.ListSessionDetails(ctx, 0, 10)
	if len(details) != 1 || details[0].ID != created.ID || details[0].Teacher.Name != "Rob" {
		t.Fatalf("unexpected details %+v", details)
	}
}

func TestStudentsPerFaculty(t *testing.T) {
	svc, _ := newTestServices()
	ctx := context.Background()
	cs, _ := svc.Faculty.CreateFaculty(ctx, &models.Faculty{Name: "CS"})
	svc.Group.CreateGroup(ctx, &models.Group{Code: "A", Course: 1, NumStudents: 20, FacultyID: cs.ID})
	svc.Group.CreateGroup(ctx, &models.Group{Code: "B", Course: 1, NumStudents: 25, FacultyID: cs.ID})

	stats, err := svc.Report.StudentsPerFaculty(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(stats) != 1 || stats[0].FacultyName != "CS" || stats[0].TotalStudents != 45 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
