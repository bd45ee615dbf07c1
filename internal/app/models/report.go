package models

// FacultyStats is one row of the students-per-faculty report
type FacultyStats struct {
	FacultyName   string `json:"faculty_name"`
	TotalStudents int64  `json:"total_students"`
}
