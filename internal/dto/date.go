package dto

import (
	"bytes"
	"fmt"
	"time"

	"productapi/internal/models"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date on the wire. It decodes either YYYY-MM-DD or RFC 3339 and always
// encodes as YYYY-MM-DD.
type Date time.Time

// NewDate wraps t, dropping its time of day.
func NewDate(t time.Time) Date {
	return Date(models.DateOnly(t))
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return models.DateOnly(time.Time(d))
}

// IsZero reports whether the date was never set.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date must be a string, got %s", b)
	}
	s := string(b[1 : len(b)-1])
	if s == "" {
		*d = Date{}
		return nil
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		*d = Date(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("date %q must be YYYY-MM-DD or RFC 3339", s)
	}
	*d = NewDate(t)
	return nil
}
