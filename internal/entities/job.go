package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MultiValue accepts either a single JSON string or an array of strings.
type MultiValue []string

func (m *MultiValue) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*m = MultiValue{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("expected string or array of strings: %w", err)
	}
	*m = many
	return nil
}

// Values returns trimmed, non-empty entries.
func (m MultiValue) Values() []string {
	values := make([]string, 0, len(m))
	for _, v := range m {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

type ScrapedJob struct {
	Title        MultiValue `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	URL          string     `json:"url"`
	Description  string     `json:"description"`
	ContractType MultiValue `json:"type,omitempty"`
	OfferKind    MultiValue `json:"offer,omitempty"`
	Status       string     `json:"status,omitempty"`
}

type JobRecord struct {
	ID           string   `json:"id"`
	Title        []string `json:"title"`
	Company      string   `json:"company"`
	ContractType []string `json:"contractType"`
	OfferKind    []string `json:"offerKind"`
	URL          string   `json:"url"`
	Status       string   `json:"status"`
	CreatedDate  Date     `json:"createdDate"`
}

const DateLayout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var str *string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	if str == nil || *str == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := ParseDate(*str)
	if err != nil {
		return err
	}
	d.Time = t.Time
	return nil
}

// ParseDate accepts a plain date or a full RFC 3339 timestamp and keeps only the calendar date.
func ParseDate(str string) (Date, error) {
	if t, err := time.Parse(DateLayout, str); err == nil {
		return Date{t}, nil
	}

	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %s: %v", str, err)
	}
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}, nil
}
