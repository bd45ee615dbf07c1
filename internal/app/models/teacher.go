package models

// Teacher represents a lecturer. Names are not unique.
type Teacher struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
