package item

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the storage format for all calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with day precision. The zero value means "no date"
// and is stored as NULL; the terminal done status uses it as its sentinel.
type Date struct {
	time.Time
}

// NewDate creates a Date from a wall-clock time, truncating to the day.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a stored YYYY-MM-DD value.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("time.Parse(%s) > %w", value, err)
	}
	return Date{Time: t}, nil
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{Time: d.AddDate(0, 0, days)}
}

// DaysSince returns how many whole days have passed since other.
// Negative when other is in the future.
func (d Date) DaysSince(other Date) int {
	return int(d.Sub(other.Time).Hours() / 24)
}

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls on a later day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether both dates fall on the same day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Value implements driver.Valuer. The zero date is stored as NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

// Scan implements sql.Scanner. A malformed stored date is a data-integrity
// error and is reported instead of being replaced with a default.
func (d *Date) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(value)
		return nil
	case string:
		return d.scanString(value)
	case []byte:
		return d.scanString(string(value))
	default:
		return fmt.Errorf("unsupported date column type %T", src)
	}
}

func (d *Date) scanString(value string) error {
	if value == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler using the YYYY-MM-DD format.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler. It accepts the YYYY-MM-DD format
// plus the RFC3339 timestamps older data files used.
func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("json.Unmarshal(date) > %w", err)
	}
	if value == "" || value == "done" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(value)
	if err == nil {
		*d = parsed
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		*d = NewDate(t)
		return nil
	}
	return fmt.Errorf("unable to parse date '%s': expected YYYY-MM-DD or RFC3339 format", value)
}
