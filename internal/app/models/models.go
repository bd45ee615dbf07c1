package models

import "encoding/json"

// jsonText renders a decoded JSON value as text
func jsonText(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
