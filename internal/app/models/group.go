package models

// Group represents a student cohort of a faculty in a given course year
type Group struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Course      int    `json:"course"`
	NumStudents int    `json:"num_students"`
	FacultyID   int64  `json:"faculty_id"`
}

// GroupSortField is one of the columns a group search may be ordered by
type GroupSortField string

const (
	GroupSortNone        GroupSortField = ""
	GroupSortCode        GroupSortField = "code"
	GroupSortCourse      GroupSortField = "course"
	GroupSortNumStudents GroupSortField = "num_students"
)

// GroupSortFields is the allow-list accepted by ParseGroupSortField
var GroupSortFields = []GroupSortField{GroupSortCode, GroupSortCourse, GroupSortNumStudents}

// ParseGroupSortField returns the sort field named by s. Unknown names yield
// GroupSortNone and false; callers treat that as "no ordering requested".
func ParseGroupSortField(s string) (GroupSortField, bool) {
	for _, f := range GroupSortFields {
		if string(f) == s {
			return f, true
		}
	}
	return GroupSortNone, false
}

// GroupSearchFilter holds the conjunctive predicates of a group search.
// Zero values disable the corresponding predicate.
type GroupSearchFilter struct {
	FacultyID   int64
	MinStudents int
	SortBy      GroupSortField
	Skip        uint64
	Limit       uint64
}
