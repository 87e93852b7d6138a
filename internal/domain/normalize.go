package domain

import "strings"

// TrimOrNil trims s and returns nil when nothing is left.
func TrimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
