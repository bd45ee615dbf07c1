package models

// NotesKey is the key inside Subject.Extra that text search runs against
const NotesKey = "notes"

// Subject represents a course subject taught by a department
type Subject struct {
	ID           int64                  `json:"id"`
	Name         string                 `json:"name"`
	NumHours     int                    `json:"num_hours"`
	DepartmentID int64                  `json:"department_id"`
	Extra        map[string]interface{} `json:"extra"`
}

// Notes returns the "notes" annotation as text, or false when it is absent.
// Non-string values are rendered the way PostgreSQL's ->> operator would.
func (s *Subject) Notes() (string, bool) {
	if s == nil || s.Extra == nil {
		return "", false
	}
	v, ok := s.Extra[NotesKey]
	if !ok || v == nil {
		return "", false
	}
	if str, ok := v.(string); ok {
		return str, true
	}
	return jsonText(v), true
}
