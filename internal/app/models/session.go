package models

// Session represents a scheduled class or exam of a group on a subject
type Session struct {
	ID          int64  `json:"id"`
	ControlType string `json:"control_type"`
	SessionDate Date   `json:"session_date"`
	GroupID     int64  `json:"group_id"`
	SubjectID   int64  `json:"subject_id"`
	TeacherID   int64  `json:"teacher_id"`
}

// SessionDetails is a session with its group, subject and teacher resolved
type SessionDetails struct {
	Session
	Group   Group   `json:"group"`
	Subject Subject `json:"subject"`
	Teacher Teacher `json:"teacher"`
}
