package postgres

import (
	"encoding/json"
	"time"
)

const dayFormat = "2006-01-02"

func marshalMap(data map[string]string) []byte {
	if len(data) == 0 {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return b
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// nullDay converts a "YYYY-MM-DD" domain string into a DATE column value.
func nullDay(s string) interface{} {
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(dayFormat, s, time.UTC)
	if err != nil {
		return nil
	}
	return t
}

// dayString renders a scanned DATE back into the domain's string form.
func dayString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dayFormat)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}

// rowRefs returns pointers into rows for in-place attachment passes. It
// must only be called once the slice has stopped growing; an append can
// reallocate the backing array and strand earlier pointers.
func rowRefs[T any](rows []T) []*T {
	refs := make([]*T, len(rows))
	for i := range rows {
		refs[i] = &rows[i]
	}
	return refs
}
