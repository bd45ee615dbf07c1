package models

// Department represents an academic department. A department owns many subjects.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
