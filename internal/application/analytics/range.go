package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/relojeria-admin/internal/domain"
)

// TimeRange ventana sobre created_at de las órdenes.
type TimeRange string

const (
	Range7Days   TimeRange = "7d"
	Range30Days  TimeRange = "30d"
	Range90Days  TimeRange = "90d"
	Range365Days TimeRange = "365d"
	RangeAll     TimeRange = "all"

	DefaultRange = Range30Days
)

var rangeDays = map[TimeRange]int{
	Range7Days:   7,
	Range30Days:  30,
	Range90Days:  90,
	Range365Days: 365,
}

// ParseTimeRange interpreta s; vacío equivale a DefaultRange.
func ParseTimeRange(s string) (TimeRange, error) {
	r := TimeRange(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return DefaultRange, nil
	}
	if _, ok := rangeDays[r]; ok || r == RangeAll {
		return r, nil
	}
	return "", fmt.Errorf("%w: rango %q (use 7d, 30d, 90d, 365d o all)", domain.ErrInvalidInput, s)
}

// Since inicio de la ventana respecto a now. ok=false para RangeAll (sin límite).
func (r TimeRange) Since(now time.Time) (from time.Time, ok bool) {
	days, ok := rangeDays[r]
	if !ok {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, -days), true
}

// Contains indica si t cae dentro de la ventana.
func (r TimeRange) Contains(now, t time.Time) bool {
	from, ok := r.Since(now)
	return !ok || !t.Before(from)
}
