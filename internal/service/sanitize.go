package service

import "github.com/microcosm-cc/bluemonday"

// sanitizer strips markup from user-supplied free-text fields before they
// are persisted. Descriptions and submission content are rendered in
// dashboards, so they never carry HTML through.
var sanitizer = bluemonday.StrictPolicy()

func sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
