package engine

import (
	"sort"
	"time"
)

// Window is a half-open effective range [From, To). A nil To is open-ended.
type Window struct {
	From time.Time
	To   *time.Time
}

// Contains reports whether asOf falls inside the window.
func (w Window) Contains(asOf time.Time) bool {
	d := Date(asOf)
	if d.Before(Date(w.From)) {
		return false
	}
	return w.To == nil || d.Before(Date(*w.To))
}

// Overlaps reports whether the two windows share at least one day.
func (w Window) Overlaps(o Window) bool {
	return beforeEnd(w.From, o.To) && beforeEnd(o.From, w.To)
}

func (w Window) validate(subject string) error {
	if w.From.IsZero() {
		return conflict(subject, "effective_from is required")
	}
	if w.To != nil && !Date(*w.To).After(Date(w.From)) {
		return conflict(subject, "effective_to %s must be after effective_from %s", FormatDate(*w.To), FormatDate(w.From))
	}
	return nil
}

func beforeEnd(t time.Time, end *time.Time) bool {
	return end == nil || Date(t).Before(Date(*end))
}

// versioned is implemented by effective-dated configuration records.
type versioned[T any] interface {
	window() Window
	closedAt(to time.Time) T
}

// timeline holds the version chain of one configuration key, ordered by From.
// Versions are never edited in place: closing one replaces it with a closed copy.
type timeline[T versioned[T]] struct {
	versions []T
}

func (tl *timeline[T]) resolve(asOf time.Time) (T, bool) {
	for i := len(tl.versions) - 1; i >= 0; i-- {
		if tl.versions[i].window().Contains(asOf) {
			return tl.versions[i], true
		}
	}
	var zero T
	return zero, false
}

// checkAppend enforces the "no overlap, no gap" chain invariant for a candidate window.
func (tl *timeline[T]) checkAppend(subject string, w Window) error {
	if err := w.validate(subject); err != nil {
		return err
	}
	var prev, next *Window
	for i := range tl.versions {
		existing := tl.versions[i].window()
		if existing.Overlaps(w) {
			return conflict(subject, "effective range from %s overlaps version from %s",
				FormatDate(w.From), FormatDate(existing.From))
		}
		if existing.From.Before(w.From) {
			prev = &existing
		} else if next == nil {
			next = &existing
		}
	}
	if prev != nil && (prev.To == nil || !Date(*prev.To).Equal(Date(w.From))) {
		return conflict(subject, "gap between version ending %s and new version from %s",
			FormatDate(*prev.To), FormatDate(w.From))
	}
	if next != nil && (w.To == nil || !Date(*w.To).Equal(Date(next.From))) {
		return conflict(subject, "new version must end where the next version begins (%s)", FormatDate(next.From))
	}
	return nil
}

func (tl *timeline[T]) insert(v T) {
	tl.versions = append(tl.versions, v)
	sort.SliceStable(tl.versions, func(i, j int) bool {
		return tl.versions[i].window().From.Before(tl.versions[j].window().From)
	})
}

// openVersion returns the index of the open-ended version, or -1.
func (tl *timeline[T]) openVersion() int {
	for i := range tl.versions {
		if tl.versions[i].window().To == nil {
			return i
		}
	}
	return -1
}

// supersede closes the open version at the candidate's From and appends the candidate.
// It returns the closed copy of the previous version.
func (tl *timeline[T]) supersede(subject string, candidate T) (T, error) {
	var zero T
	idx := tl.openVersion()
	if idx < 0 {
		return zero, conflict(subject, "no open version to supersede")
	}
	open := tl.versions[idx]
	from := candidate.window().From
	if !Date(from).After(Date(open.window().From)) {
		return zero, conflict(subject, "new version must start after open version from %s", FormatDate(open.window().From))
	}

	closed := open.closedAt(Date(from))
	trial := timeline[T]{versions: make([]T, len(tl.versions))}
	copy(trial.versions, tl.versions)
	trial.versions[idx] = closed
	if err := trial.checkAppend(subject, candidate.window()); err != nil {
		return zero, err
	}

	tl.versions[idx] = closed
	tl.insert(candidate)
	return closed, nil
}

func (tl *timeline[T]) all() []T {
	out := make([]T, len(tl.versions))
	copy(out, tl.versions)
	return out
}
