// file: internals/helpers/dbtime/date_only.go
package dbtime

import (
	"strings"
	"time"
)

// FloorDate memotong waktu ke awal hari (00:00:00) mengikuti lokasi t.
func FloorDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayRange mengembalikan [awal, akhir) satu hari kalender untuk query
// date-only: session_date >= awal AND session_date < akhir.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := FloorDate(t)
	return start, start.AddDate(0, 0, 1)
}

// SameDay: apakah dua waktu jatuh pada tanggal kalender yang sama
// (jam/menit diabaikan).
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate menerima "YYYY-MM-DD" atau timestamp RFC3339 dan
// mengembalikan tanggalnya saja.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return FloorDate(t), nil
}
