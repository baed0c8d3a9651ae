package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay = 24 * 60
	timeLayout    = "15:04"
)

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time is out of day range")
)

// TimeString время суток в формате "HH:MM" без привязки к дате
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" или "HH:MM:SS" (формат TIME из Postgres)
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04:05") {
		s = s[:len(timeLayout)]
	}
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	_, err := t.parse()
	return err
}

// Minutes возвращает количество минут от начала суток.
// Для некорректного значения возвращает 0.
func (t TimeString) Minutes() int {
	m, err := t.parse()
	if err != nil {
		return 0
	}
	return m
}

// AddMinutes возвращает время, сдвинутое на указанное количество минут
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.parse()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(m + minutes)
}

// IsBefore строго раньше
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter строго позже
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// IsZero true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// OnDate возвращает момент времени: дата date и время t в локации loc
func (t TimeString) OnDate(date time.Time, loc *time.Location) time.Time {
	m := t.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, loc)
}

func (t TimeString) parse() (int, error) {
	s := string(t)
	if len(s) != len(timeLayout) || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	hours, err := strconv.Atoi(s[:2])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minutes, err := strconv.Atoi(s[3:])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return hours*60 + minutes, nil
}

// Scan реализует sql.Scanner (Postgres TIME приходит как "HH:MM:SS")
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// UnmarshalJSON принимает "HH:MM" и "HH:MM:SS"
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = ""
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
