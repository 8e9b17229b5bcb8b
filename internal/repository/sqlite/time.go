package sqlite

import "time"

func nowUTC() time.Time {
	return time.Now().UTC()
}

// parseSQLiteTime parses the TEXT-column timestamp SQLite stores,
// mirroring the teacher's multi-format fallback in
// storage.SpecCategoryRepository.GetByName.
func parseSQLiteTime(s string) (time.Time, error) {
	formats := []string{sqliteTimeFormat, time.RFC3339, time.RFC3339Nano}
	var lastErr error
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}
