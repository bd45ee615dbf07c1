package models

// Faculty represents a faculty at the university. A faculty owns many groups.
type Faculty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
