package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseGroupSortField(t *testing.T) {
	tests := []struct {
		in     string
		want   GroupSortField
		wantOK bool
	}{
		{"code", GroupSortCode, true},
		{"course", GroupSortCourse, true},
		{"num_students", GroupSortNumStudents, true},
		{"", GroupSortNone, false},
		{"faculty_id", GroupSortNone, false},
		{"Code", GroupSortNone, false},
		{"code; DROP TABLE groups", GroupSortNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseGroupSortField(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseGroupSortField(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDateJSON(t *testing.T) {
	var s Session
	if err := json.Unmarshal([]byte(`{"session_date":"2025-01-20","control_type":"exam"}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !s.SessionDate.Equal(time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("parsed date = %v", s.SessionDate)
	}

	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if raw["session_date"] != "2025-01-20" {
		t.Fatalf("session_date = %v", raw["session_date"])
	}

	if err := json.Unmarshal([]byte(`{"session_date":"20/01/2025"}`), &s); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestSubjectNotes(t *testing.T) {
	tests := []struct {
		name   string
		extra  map[string]interface{}
		want   string
		wantOK bool
	}{
		{"nil extra", nil, "", false},
		{"missing key", map[string]interface{}{"tags": []interface{}{"a"}}, "", false},
		{"null notes", map[string]interface{}{"notes": nil}, "", false},
		{"text notes", map[string]interface{}{"notes": "Intro to graphs"}, "Intro to graphs", true},
		{"number notes", map[string]interface{}{"notes": 42.0}, "42", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Subject{Extra: tt.extra}
			got, ok := s.Notes()
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("Notes() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSessionDetailsJSONShape(t *testing.T) {
	d := SessionDetails{
		Session: Session{ID: 1, ControlType: "exam", SessionDate: NewDate(2025, time.June, 1), GroupID: 2, SubjectID: 3, TeacherID: 4},
		Group:   Group{ID: 2, Code: "G1000", Course: 1, NumStudents: 20, FacultyID: 9},
		Subject: Subject{ID: 3, Name: "Algorithms", NumHours: 64, DepartmentID: 5},
		Teacher: Teacher{ID: 4, Name: "Dr. Alan Turing"},
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"id", "control_type", "session_date", "group_id", "group", "subject", "teacher"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, out)
		}
	}
}
