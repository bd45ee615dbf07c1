package repositories

import (
	"reflect"
	"strings"
	"testing"

	"github.com/yigit/unisession/internal/app/models"
)

func TestBuildSearchGroupsQuery(t *testing.T) {
	sb := statementBuilder()
	base := "SELECT id, code, course, num_students, faculty_id FROM groups"

	tests := []struct {
		name     string
		filter   models.GroupSearchFilter
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "no predicates",
			filter:   models.GroupSearchFilter{Limit: 100},
			wantSQL:  base + " ORDER BY id ASC LIMIT 100",
			wantArgs: nil,
		},
		{
			name:     "faculty and minimum students",
			filter:   models.GroupSearchFilter{FacultyID: 3, MinStudents: 20, Skip: 10, Limit: 5},
			wantSQL:  base + " WHERE faculty_id = $1 AND num_students >= $2 ORDER BY id ASC LIMIT 5 OFFSET 10",
			wantArgs: []interface{}{int64(3), 20},
		},
		{
			name:     "sorted by allow-listed field",
			filter:   models.GroupSearchFilter{SortBy: models.GroupSortNumStudents, Limit: 100},
			wantSQL:  base + " ORDER BY num_students ASC, id ASC LIMIT 100",
			wantArgs: nil,
		},
		{
			name:     "unknown sort field is ignored",
			filter:   models.GroupSearchFilter{SortBy: models.GroupSortField("faculty_id; --"), Limit: 100},
			wantSQL:  base + " ORDER BY id ASC LIMIT 100",
			wantArgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := buildSearchGroupsQuery(sb, tt.filter).ToSql()
			if err != nil {
				t.Fatalf("ToSql: %v", err)
			}
			if sql != tt.wantSQL {
				t.Fatalf("sql =\n%s\nwant\n%s", sql, tt.wantSQL)
			}
			if len(args) != len(tt.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tt.wantArgs)) {
				t.Fatalf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestBuildPromoteGroupsQuery(t *testing.T) {
	sql, args, err := buildPromoteGroupsQuery(statementBuilder(), 2).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if want := "UPDATE groups SET course = course + 1 WHERE course = $1"; sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []interface{}{2}) {
		t.Fatalf("args = %#v", args)
	}
}

func TestBuildSessionDetailsQuery(t *testing.T) {
	sql, _, err := buildSessionDetailsQuery(statementBuilder(), 20, 10).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	for _, fragment := range []string{
		"FROM sessions s",
		"JOIN groups g ON g.id = s.group_id",
		"JOIN subjects sub ON sub.id = s.subject_id",
		"JOIN teachers t ON t.id = s.teacher_id",
		"ORDER BY s.id ASC LIMIT 10 OFFSET 20",
	} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("missing %q in %s", fragment, sql)
		}
	}
}

func TestBuildStudentsPerFacultyQuery(t *testing.T) {
	sql, args, err := buildStudentsPerFacultyQuery(statementBuilder()).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	want := "SELECT f.name AS faculty_name, SUM(g.num_students) AS total_students FROM faculties f " +
		"JOIN groups g ON g.faculty_id = f.id GROUP BY f.name ORDER BY f.name ASC"
	if sql != want {
		t.Fatalf("sql =\n%s\nwant\n%s", sql, want)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args %#v", args)
	}
}

func TestBuildSubjectSearchQueries(t *testing.T) {
	sb := statementBuilder()

	sql, args, err := buildTrigramSearchQuery(sb, "data structures", 0, 100).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	want := "SELECT id, name, num_hours, department_id, extra FROM subjects WHERE (extra->>'notes') % $1 " +
		"ORDER BY similarity((extra->>'notes'), $2) DESC, id ASC LIMIT 100"
	if sql != want {
		t.Fatalf("trigram sql =\n%s\nwant\n%s", sql, want)
	}
	if !reflect.DeepEqual(args, []interface{}{"data structures", "data structures"}) {
		t.Fatalf("trigram args = %#v", args)
	}

	sql, args, err = buildRegexSearchQuery(sb, "^Intro.*", 5, 0).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	want = "SELECT id, name, num_hours, department_id, extra FROM subjects WHERE (extra->>'notes') ~ $1 ORDER BY id ASC OFFSET 5"
	if sql != want {
		t.Fatalf("regex sql =\n%s\nwant\n%s", sql, want)
	}
	if !reflect.DeepEqual(args, []interface{}{"^Intro.*"}) {
		t.Fatalf("regex args = %#v", args)
	}
}

func TestExtraArg(t *testing.T) {
	if extraArg(nil) != nil {
		t.Fatalf("nil map must become SQL NULL")
	}
	if extraArg(map[string]interface{}{"notes": "x"}) == nil {
		t.Fatalf("non-nil map must be passed through")
	}
}
