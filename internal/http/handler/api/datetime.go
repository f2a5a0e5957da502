package api

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// DateTime is a timestamp serialized as "yyyy-MM-dd HH:mm:ss".
type DateTime time.Time

// MarshalJSON implements json.Marshaler.
func (t DateTime) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(time.Time(t).Format(dateTimeLayout))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *DateTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WithStack(err)
	}

	parsed, err := time.Parse(dateTimeLayout, raw)
	if err != nil {
		return errors.WithStack(err)
	}

	*t = DateTime(parsed)

	return nil
}

func (t *DateTime) TimePtr() *time.Time {
	if t == nil {
		return nil
	}

	value := time.Time(*t)

	return &value
}
