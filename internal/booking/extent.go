package booking

import (
	"fmt"
	"time"
)

// TimeExtent представляет полуоткрытый интервал [Start, End) внутри суток.
// Границы — строки "HH:MM" с ведущими нулями: для них лексикографическое
// сравнение совпадает со сравнением по времени.
type TimeExtent struct {
	Start string
	End   string
}

// NewTimeExtent создаёт интервал и валидирует формат и порядок границ.
func NewTimeExtent(start, end string) (TimeExtent, error) {
	if err := validateClock(start); err != nil {
		return TimeExtent{}, err
	}
	if err := validateClock(end); err != nil {
		return TimeExtent{}, err
	}
	if start >= end {
		return TimeExtent{}, NewValidationError("start_time must be before end_time")
	}
	return TimeExtent{Start: start, End: end}, nil
}

func validateClock(v string) error {
	if _, err := time.Parse("15:04", v); err != nil || len(v) != 5 {
		return NewValidationError(fmt.Sprintf("invalid time %q, expected HH:MM", v))
	}
	return nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов:
// a.Start < b.End && b.Start < a.End. Слоты встык (общая граница)
// конфликтом не считаются.
func (e TimeExtent) Overlaps(other TimeExtent) bool {
	return e.Start < other.End && other.Start < e.End
}

func (e TimeExtent) String() string {
	return e.Start + "-" + e.End
}
