package domain

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrReservationsNotFound = errors.New("no reservations found for the specified destination_id")
	ErrReservationConflict  = errors.New("destination is already reserved for the requested dates")
	ErrBookingInProgress    = errors.New("another booking for this destination is in progress")
)

// Reservation books one destination for one user over the closed date range
// [CheckIn, CheckOut]. Both bounds are calendar days at midnight UTC.
type Reservation struct {
	ID            int64     `json:"id"             bson:"_id"            db:"id"`
	UserID        int64     `json:"user_id"        bson:"user_id"        db:"user_id"`
	DestinationID int64     `json:"destination_id" bson:"destination_id" db:"destination_id"`
	CheckIn       time.Time `json:"check_in_date"  bson:"check_in_date"  db:"check_in_date"`
	CheckOut      time.Time `json:"check_out_date" bson:"check_out_date" db:"check_out_date"`
	TotalPrice    float64   `json:"total_price"    bson:"total_price"    db:"total_price"`
	CreatedAt     time.Time `json:"created_at"     bson:"created_at"     db:"created_at"`
}

// Overlaps reports whether the reservation shares at least one calendar day
// with [start, end]. Both ends are inclusive, so a stay ending on start
// still conflicts.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return !r.CheckIn.After(end) && !r.CheckOut.Before(start)
}

// Days lists every calendar day from check-in through check-out.
func (r Reservation) Days() []string {
	last := Day(r.CheckOut)
	var days []string
	for d := Day(r.CheckIn); !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, FormatDate(d))
	}
	return days
}

// DestinationIDs returns the distinct destination ids referenced by rs, in
// first-seen order.
func DestinationIDs(rs []Reservation) []int64 {
	seen := make(map[int64]struct{}, len(rs))
	ids := make([]int64, 0, len(rs))
	for _, r := range rs {
		if _, ok := seen[r.DestinationID]; ok {
			continue
		}
		seen[r.DestinationID] = struct{}{}
		ids = append(ids, r.DestinationID)
	}
	return ids
}

// UnavailableDates concatenates the days of every reservation in the given
// order. Days shared by touching or overlapping reservations repeat.
func UnavailableDates(rs []Reservation) []string {
	dates := make([]string, 0)
	for _, r := range rs {
		dates = append(dates, r.Days()...)
	}
	return dates
}

// DistinctDates returns the sorted set of dates.
func DistinctDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
