package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeFormat формат времени "HH:MM" (24-часовой)
const TimeFormat = "15:04"

// TimeString represents a time of day in "HH:MM" format.
// Используется для времени слотов и рабочих часов: сравнения и арифметика
// выполняются в минутах от полуночи, без привязки к дате и таймзоне.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывая дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что значение имеет вид "HH:MM" и лежит в пределах суток
func (t TimeString) Validate() error {
	if _, err := time.Parse(TimeFormat, string(t)); err != nil {
		return fmt.Errorf("invalid time %q: expected HH:MM", string(t))
	}
	return nil
}

// String returns the raw "HH:MM" value
func (t TimeString) String() string {
	return string(t)
}

// IsZero returns true if the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// minutes возвращает количество минут от полуночи
func (t TimeString) minutes() (int, error) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед.
// Выход за границу суток считается ошибкой: слоты не пересекают полночь.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.minutes()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("time %s + %d minutes is out of day range", t, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether t is strictly before other
func (t TimeString) IsBefore(other TimeString) bool {
	a, err1 := t.minutes()
	b, err2 := other.minutes()
	if err1 != nil || err2 != nil {
		return string(t) < string(other)
	}
	return a < b
}

// IsAfter reports whether t is strictly after other
func (t TimeString) IsAfter(other TimeString) bool {
	a, err1 := t.minutes()
	b, err2 := other.minutes()
	if err1 != nil || err2 != nil {
		return string(t) > string(other)
	}
	return a > b
}

// MinutesBetween возвращает разницу в минутах между t и other (other - t)
func (t TimeString) MinutesBetween(other TimeString) (int, error) {
	a, err := t.minutes()
	if err != nil {
		return 0, err
	}
	b, err := other.minutes()
	if err != nil {
		return 0, err
	}
	return b - a, nil
}

// Scan implements sql.Scanner: поддерживает TEXT и TIME колонки
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = truncateSeconds(v)
		return nil
	case []byte:
		*t = truncateSeconds(string(v))
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", value)
	}
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// truncateSeconds срезает секунды у значений вида "10:00:00" (TIME колонки Postgres)
func truncateSeconds(s string) TimeString {
	if len(s) > 5 {
		return TimeString(s[:5])
	}
	return TimeString(s)
}
