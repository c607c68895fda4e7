// Package types implements the calendar types shared by the ledger and the scorers.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Month is a month in a specific year, always the first day at midnight UTC.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("month must be in YYYY-MM format: %w", err)
	}

	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON encodes the month as its "YYYY-MM" key.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM", "YYYY-MM-DD" and RFC3339 strings.
// Everything but the year and month is discarded.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	var pattern string
	switch len(value) {
	case len("2006-01"):
		pattern = "2006-01"
	case len("2006-01-02"):
		pattern = "2006-01-02"
	default:
		pattern = time.RFC3339
	}

	t, err := time.Parse(pattern, value)
	if err != nil {
		return err
	}

	*m = NewMonth(t.Year(), t.Month())
	return nil
}

// Scan writes the value from the database.
func (m *Month) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*m = Month(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	year, month, _ := time.Time(m).Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm the type.
func (Month) GormDataType() string {
	return "date"
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return MonthFromIndex(m.Index() + years*12 + months)
}

// Before reports whether the month m is before n.
func (m Month) Before(n Month) bool {
	return m.Index() < n.Index()
}

// After reports whether the month m is after n.
func (m Month) After(n Month) bool {
	return m.Index() > n.Index()
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return m.Index() == n.Index()
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}

// End returns the first instant of the following month.
func (m Month) End() time.Time {
	return time.Time(m.AddDate(0, 1))
}

// Index returns the number of months since January of year 0.
//
// Month arithmetic is done on this integer so that year boundaries
// need no special handling.
func (m Month) Index() int {
	t := time.Time(m)
	return t.Year()*12 + int(t.Month()) - 1
}

// MonthFromIndex is the inverse of Month.Index.
func MonthFromIndex(i int) Month {
	year := i / 12
	month := i % 12
	if month < 0 {
		month += 12
		year--
	}

	return NewMonth(year, time.Month(month+1))
}

// Window returns the size consecutive months ending at and including end,
// oldest first.
func Window(end Month, size int) []Month {
	months := make([]Month, 0, size)
	for i := size - 1; i >= 0; i-- {
		months = append(months, MonthFromIndex(end.Index()-i))
	}

	return months
}
