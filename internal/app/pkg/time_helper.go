package pkg

import "time"

// ParseServiceDate parses a calendar date from request payloads.
func ParseServiceDate(dateStr string) (*time.Time, error) {
	const layout = "2006-01-02"
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
