package repositories

import (
	"database/sql"

	"github.com/menucat/menu-service/internal/menu"
)

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullFloatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

// TIME columns come back from lib/pq as time.Time with a zero date.
func nullClockPtr(nt sql.NullTime) *menu.ClockTime {
	if !nt.Valid {
		return nil
	}
	ct := menu.ClockTimeOf(nt.Time)
	return &ct
}

// clockParam renders an optional time of day as a TIME literal, or NULL.
func clockParam(t *menu.ClockTime) interface{} {
	if t == nil {
		return nil
	}
	return t.String() + ":00"
}
