package availability

import (
	"iter"
	"sort"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

// Merge объединяет пересекающиеся и смежные интервалы. Результат отсортирован.
func Merge(busy []domain.Interval) []domain.Interval {
	if len(busy) == 0 {
		return nil
	}

	sorted := make([]domain.Interval, 0, len(busy))
	for _, b := range busy {
		if !b.IsEmpty() {
			sorted = append(sorted, b)
		}
	}
	domain.SortIntervals(sorted)

	merged := make([]domain.Interval, 0, len(sorted))
	for _, b := range sorted {
		last := len(merged) - 1
		if last >= 0 && b.Start <= merged[last].End {
			if b.End > merged[last].End {
				merged[last].End = b.End
			}
			continue
		}
		merged = append(merged, b)
	}
	return merged
}

// FreeIntervals дополнение объединения занятых интервалов в пределах окна работы
func FreeIntervals(window domain.Interval, busy []domain.Interval) []domain.Interval {
	if window.IsEmpty() {
		return nil
	}

	free := make([]domain.Interval, 0, len(busy)+1)
	cursor := window.Start

	for _, b := range Merge(busy) {
		if b.End <= window.Start || b.Start >= window.End {
			continue
		}
		if b.Start > cursor {
			free = append(free, domain.Interval{Start: cursor, End: b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < window.End {
		free = append(free, domain.Interval{Start: cursor, End: window.End})
	}
	return free
}

// Result результат проверки слота
type Result struct {
	Available bool
	Conflict  *domain.Reservation // первая по времени пересекающаяся бронь
}

// CheckSlot проверяет слот против подтвержденных броней одного ресурса на одну дату.
// Бронь с идентификатором excludeID не учитывается (перенос существующей брони).
func CheckSlot(window domain.Interval, reservations []*domain.Reservation, proposed domain.Interval, excludeID string) (Result, error) {
	if proposed.IsEmpty() {
		return Result{}, domain.ErrInvalidDuration
	}
	if !window.Contains(proposed) {
		return Result{}, domain.ErrOutsideBusinessHours
	}

	active := make([]*domain.Reservation, 0, len(reservations))
	busy := make([]domain.Interval, 0, len(reservations))
	for _, r := range reservations {
		if !r.IsActive() || (excludeID != "" && r.ID == excludeID) {
			continue
		}
		active = append(active, r)
		busy = append(busy, r.Interval())
	}

	for _, f := range FreeIntervals(window, busy) {
		if f.Contains(proposed) {
			return Result{Available: true}, nil
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].Interval().Start < active[j].Interval().Start
	})
	for _, r := range active {
		if r.Interval().Overlaps(proposed) {
			return Result{Conflict: r}, nil
		}
	}

	// Недостижимо при корректном окне: слот внутри окна и не попал в свободный интервал
	return Result{}, nil
}

// Slots ленивая последовательность свободных слотов длиной duration.
// Кандидаты начинаются с начала каждого свободного интервала и сдвигаются на step.
func Slots(free []domain.Interval, duration, step int) iter.Seq[domain.Interval] {
	return func(yield func(domain.Interval) bool) {
		if duration <= 0 || step <= 0 {
			return
		}
		for _, f := range free {
			for start := f.Start; start+duration <= f.End; start += step {
				if !yield(domain.Interval{Start: start, End: start + duration}) {
					return
				}
			}
		}
	}
}
