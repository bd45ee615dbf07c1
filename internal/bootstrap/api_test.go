package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/app/models/dto"
	"github.com/yigit/unisession/internal/app/repositories/memory"
	appRoutes "github.com/yigit/unisession/internal/app/routes"
	"github.com/yigit/unisession/internal/config"
)

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.BasePath = "/"
	deps := BuildDependencies(memory.NewStore(), zerolog.Nop())
	return &testAPI{t: t, router: SetupRouter(cfg, deps)}
}

func (a *testAPI) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			a.t.Fatalf("decode %s %s: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func (a *testAPI) create(path string, body interface{}) int64 {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, path, body)
	if rec.Code != http.StatusCreated {
		a.t.Fatalf("POST %s: expected 201, got %d: %s", path, rec.Code, rec.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	json.Unmarshal(env.Data, &created)
	return created.ID
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestServiceEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec, _ := api.do(http.MethodGet, "/", nil)
	var welcome dto.MessageResponse
	json.Unmarshal(rec.Body.Bytes(), &welcome)
	if rec.Code != http.StatusOK || welcome.Message != appRoutes.WelcomeMessage {
		t.Fatalf("unexpected root response %d %s", rec.Code, rec.Body.String())
	}

	if rec, env := api.do(http.MethodGet, "/health", nil); rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}

	rec, env := api.do(http.MethodGet, "/nowhere", nil)
	if rec.Code != http.StatusNotFound || env.Error == nil {
		t.Fatalf("expected 404 envelope, got %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = api.do(http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "unisession_http_requests_total") {
		t.Fatalf("expected request counter in metrics output, got %d", rec.Code)
	}
}

func TestFacultyLifecycle(t *testing.T) {
	api := newTestAPI(t)

	id := api.create("/faculties/", dto.CreateFacultyRequest{Name: "CS"})

	rec, env := api.do(http.MethodPost, "/faculties/", dto.CreateFacultyRequest{Name: "CS"})
	if rec.Code != http.StatusConflict || env.Error.Code != dto.ErrorCodeResourceAlreadyExists {
		t.Fatalf("expected 409 on duplicate, got %d %s", rec.Code, rec.Body.String())
	}

	_, env = api.do(http.MethodGet, "/faculties/", nil)
	var list []models.Faculty
	decodeData(t, env, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 faculty after rejected duplicate, got %d", len(list))
	}

	rec, env = api.do(http.MethodGet, fmt.Sprintf("/faculties/%d", id), nil)
	var got models.Faculty
	decodeData(t, env, &got)
	if rec.Code != http.StatusOK || got.Name != "CS" {
		t.Fatalf("unexpected lookup %d %s", rec.Code, rec.Body.String())
	}

	if rec, _ := api.do(http.MethodGet, "/faculties/999", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec, _ := api.do(http.MethodGet, "/faculties/abc", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
	if rec, _ := api.do(http.MethodPost, "/faculties/", map[string]string{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", rec.Code)
	}
}

func TestGroupRequiresExistingFaculty(t *testing.T) {
	api := newTestAPI(t)

	rec, _ := api.do(http.MethodPost, "/groups/", dto.CreateGroupRequest{Code: "G1", Course: 1, NumStudents: 20, FacultyID: 42})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown faculty, got %d %s", rec.Code, rec.Body.String())
	}

	_, env := api.do(http.MethodGet, "/groups/", nil)
	var groups []models.Group
	decodeData(t, env, &groups)
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestGroupSearchAndPromote(t *testing.T) {
	api := newTestAPI(t)
	cs := api.create("/faculties/", dto.CreateFacultyRequest{Name: "CS"})
	math := api.create("/faculties/", dto.CreateFacultyRequest{Name: "Math"})

	api.create("/groups/", dto.CreateGroupRequest{Code: "B", Course: 2, NumStudents: 25, FacultyID: cs})
	api.create("/groups/", dto.CreateGroupRequest{Code: "A", Course: 1, NumStudents: 20, FacultyID: cs})
	api.create("/groups/", dto.CreateGroupRequest{Code: "M", Course: 3, NumStudents: 12, FacultyID: math})

	codes := func(path string) []string {
		t.Helper()
		rec, env := api.do(http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d %s", path, rec.Code, rec.Body.String())
		}
		var groups []models.Group
		decodeData(t, env, &groups)
		out := make([]string, 0, len(groups))
		for _, g := range groups {
			out = append(out, g.Code)
		}
		return out
	}

	tests := []struct {
		path string
		want string
	}{
		{"/groups/search/", "B,A,M"},
		{"/groups/search/?sort_by=code", "A,B,M"},
		{"/groups/search/?sort_by=num_students", "M,A,B"},
		{"/groups/search/?sort_by=name", "B,A,M"},
		{fmt.Sprintf("/groups/search/?faculty_id=%d&min_students=21", cs), "B"},
		{"/groups/search/?sort_by=course&skip=1&limit=1", "B"},
		{"/groups/search/?limit=5000", "B,A,M"},
	}
	for _, tt := range tests {
		if got := strings.Join(codes(tt.path), ","); got != tt.want {
			t.Errorf("GET %s: expected %s, got %s", tt.path, tt.want, got)
		}
	}

	if rec, _ := api.do(http.MethodGet, "/groups/search/?skip=-1", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative skip, got %d", rec.Code)
	}
	if rec, _ := api.do(http.MethodGet, "/groups/?limit=0", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero limit, got %d", rec.Code)
	}

	rec, env := api.do(http.MethodPut, "/groups/promote/?current_course=1", nil)
	var promoted dto.PromoteGroupsResponse
	decodeData(t, env, &promoted)
	if rec.Code != http.StatusOK || promoted.UpdatedCount != 1 || promoted.Message != "Promoted 1 groups from course 1." {
		t.Fatalf("unexpected promote result %d %s", rec.Code, rec.Body.String())
	}
	if got := strings.Join(codes("/groups/search/?sort_by=course"), ","); got != "B,A,M" {
		t.Fatalf("expected A moved to course 2, got %s", got)
	}

	rec, env = api.do(http.MethodPut, "/groups/promote/?current_course=1", nil)
	if rec.Code != http.StatusNotFound || env.Error.Message != "No groups found for course 1 to promote." {
		t.Fatalf("expected 404 when nothing to promote, got %d %s", rec.Code, rec.Body.String())
	}
	if rec, _ := api.do(http.MethodPut, "/groups/promote/", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without current_course, got %d", rec.Code)
	}

	rec, env = api.do(http.MethodGet, "/reports/students-per-faculty/", nil)
	var stats []models.FacultyStats
	decodeData(t, env, &stats)
	if rec.Code != http.StatusOK || len(stats) != 2 {
		t.Fatalf("unexpected report %d %s", rec.Code, rec.Body.String())
	}
	if stats[0].FacultyName != "CS" || stats[0].TotalStudents != 45 || stats[1].TotalStudents != 12 {
		t.Fatalf("unexpected aggregation %+v", stats)
	}
}

func TestPaginationIsConsistent(t *testing.T) {
	api := newTestAPI(t)
	for i := 0; i < 7; i++ {
		api.create("/teachers/", dto.CreateTeacherRequest{Name: fmt.Sprintf("Teacher %d", i)})
	}

	_, env := api.do(http.MethodGet, "/teachers/", nil)
	var all []models.Teacher
	decodeData(t, env, &all)

	var paged []models.Teacher
	for skip := 0; skip < len(all); skip += 3 {
		_, env := api.do(http.MethodGet, fmt.Sprintf("/teachers/?skip=%d&limit=3", skip), nil)
		var page []models.Teacher
		decodeData(t, env, &page)
		paged = append(paged, page...)
	}
	if len(paged) != len(all) || len(all) != 7 {
		t.Fatalf("expected 7 teachers in both, got all=%d paged=%d", len(all), len(paged))
	}
	for i := range all {
		if all[i].ID != paged[i].ID {
			t.Fatalf("position %d differs: %d vs %d", i, all[i].ID, paged[i].ID)
		}
	}
}

func TestSubjectSearchAndSessions(t *testing.T) {
	api := newTestAPI(t)
	dep := api.create("/departments/", dto.CreateDepartmentRequest{Name: "SE"})
	fac := api.create("/faculties/", dto.CreateFacultyRequest{Name: "CS"})
	grp := api.create("/groups/", dto.CreateGroupRequest{Code: "G1", Course: 1, NumStudents: 20, FacultyID: fac})
	tch := api.create("/teachers/", dto.CreateTeacherRequest{Name: "Dr. Alan Turing"})
	algo := api.create("/subjects/", dto.CreateSubjectRequest{Name: "Algorithms", NumHours: 64, DepartmentID: dep,
		Extra: map[string]interface{}{"notes": "This subject covers topics 1 and patterns 2."}})
	api.create("/subjects/", dto.CreateSubjectRequest{Name: "History", NumHours: 32, DepartmentID: dep,
		Extra: map[string]interface{}{"notes": "ancient empires"}})

	rec, env := api.do(http.MethodGet, "/subjects/search-regex/?pattern=topics%20%5B0-9%5D", nil)
	var subjects []models.Subject
	decodeData(t, env, &subjects)
	if rec.Code != http.StatusOK || len(subjects) != 1 || subjects[0].ID != algo {
		t.Fatalf("unexpected regex result %d %s", rec.Code, rec.Body.String())
	}

	if rec, _ := api.do(http.MethodGet, "/subjects/search-regex/?pattern=%28", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid pattern, got %d", rec.Code)
	}

	rec, env = api.do(http.MethodGet, "/subjects/search-trgm/?query=covers%20topics%20patterns", nil)
	subjects = nil
	decodeData(t, env, &subjects)
	if rec.Code != http.StatusOK || len(subjects) == 0 || subjects[0].ID != algo {
		t.Fatalf("unexpected trigram result %d %s", rec.Code, rec.Body.String())
	}
	if rec, _ := api.do(http.MethodGet, "/subjects/search-trgm/", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without query, got %d", rec.Code)
	}

	rec, _ = api.do(http.MethodPost, "/sessions/", map[string]interface{}{
		"group_id": grp, "subject_id": algo, "teacher_id": 999, "control_type": "exam", "session_date": "2025-01-20",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown teacher, got %d %s", rec.Code, rec.Body.String())
	}

	for i := 0; i < 12; i++ {
		api.create("/sessions/", map[string]interface{}{
			"group_id": grp, "subject_id": algo, "teacher_id": tch, "control_type": "exam", "session_date": "2025-01-20",
		})
	}

	rec, env = api.do(http.MethodGet, "/sessions/details/", nil)
	var details []models.SessionDetails
	decodeData(t, env, &details)
	if rec.Code != http.StatusOK || len(details) != 10 {
		t.Fatalf("expected default page of 10 details, got %d (%d)", len(details), rec.Code)
	}
	d := details[0]
	if d.Group.Code != "G1" || d.Subject.Name != "Algorithms" || d.Teacher.Name != "Dr. Alan Turing" || d.SessionDate.String() != "2025-01-20" {
		t.Fatalf("unexpected details row %+v", d)
	}

	if rec, _ := api.do(http.MethodGet, "/sessions/details/?skip=10", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
