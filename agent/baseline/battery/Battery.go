// Package battery describes the legacy rule-of-thumb battery baseline.
//
// The legacy rule chose a reward-like scalar from the hour of the day
// and the rate of change of utilisation between consecutive
// observations:
//
//	23 <= hour < 9  and rate <= 10  ->  3
//	9  <= hour < 23 and rate <= 10  ->  2
//	otherwise                       -> -7
//
// The rule cannot be turned into a policy as written. Its first hour
// window can never hold, the rate needs an observation which a policy
// never receives, and no action is ever produced. This package models
// the rule as data so that these defects can be reported, and refuses
// to construct an agent from it. What the rule was meant to do is not
// known, so no corrected version is provided.
package battery

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r1"
)

var (
	// ErrDefective is matched by every error returned from Audit
	ErrDefective = errors.New("defective battery rule")

	ErrEmptyWindow        = errors.New("hour window can never hold")
	ErrOverlappingWindows = errors.New("hour windows overlap")
	ErrUndefinedPrevious  = errors.New("rate of change needs an " +
		"observation the policy never receives")
	ErrUndefinedAction = errors.New("rule selects a reward, not an action")
)

// Window is a single condition of the rule. It holds when the hour is
// in [Hours.Min, Hours.Max) and the rate of utilisation change is at
// most MaxRate, and then selects Reward.
type Window struct {
	Hours   r1.Interval
	MaxRate float64
	Reward  float64
}

// empty returns whether no hour satisfies the window
func (w Window) empty() bool {
	return !(w.Hours.Min < w.Hours.Max)
}

// overlaps returns whether some hour satisfies both windows
func (w Window) overlaps(o Window) bool {
	return w.Hours.Min < o.Hours.Max && o.Hours.Min < w.Hours.Max
}

func (w Window) String() string {
	return fmt.Sprintf("%v <= hour < %v and rate <= %v -> %v", w.Hours.Min,
		w.Hours.Max, w.MaxRate, w.Reward)
}

// Defect is a single problem found in a rule
type Defect struct {
	Err    error
	Detail string
}

func (d Defect) Error() string {
	if d.Detail == "" {
		return d.Err.Error()
	}
	return fmt.Sprintf("%v: %v", d.Err, d.Detail)
}

// Unwrap returns the kind of defect
func (d Defect) Unwrap() error {
	return d.Err
}

// AuditError lists every defect found in a rule
type AuditError struct {
	Defects []Defect
}

func (a *AuditError) Error() string {
	msgs := make([]string, len(a.Defects))
	for i, d := range a.Defects {
		msgs[i] = d.Error()
	}
	return fmt.Sprintf("%v: %v", ErrDefective, strings.Join(msgs, "; "))
}

// Is reports whether target is ErrDefective
func (a *AuditError) Is(target error) bool {
	return target == ErrDefective
}

// Unwrap returns each defect so that errors.Is matches their kinds
func (a *AuditError) Unwrap() []error {
	errs := make([]error, len(a.Defects))
	for i, d := range a.Defects {
		errs[i] = d
	}
	return errs
}

// Audit returns every defect of the rule described by c.
//
// Two defects belong to the rule itself rather than to any particular
// windows, so they are always reported: the rate of change is computed
// against the next observation, and the selected value is a reward
// rather than an action.
func Audit(c Config) []Defect {
	var defects []Defect

	for i, w := range c.Windows {
		if w.empty() {
			defects = append(defects, Defect{
				Err:    ErrEmptyWindow,
				Detail: fmt.Sprintf("window %v (%v)", i, w),
			})
		}
	}

	for i := range c.Windows {
		for j := i + 1; j < len(c.Windows); j++ {
			a, b := c.Windows[i], c.Windows[j]
			if !a.empty() && !b.empty() && a.overlaps(b) {
				defects = append(defects, Defect{
					Err:    ErrOverlappingWindows,
					Detail: fmt.Sprintf("windows %v and %v", i, j),
				})
			}
		}
	}

	defects = append(defects,
		Defect{Err: ErrUndefinedPrevious, Detail: "rate = |next - current|"},
		Defect{Err: ErrUndefinedAction, Detail: fmt.Sprintf(
			"%v windows and fallback %v select rewards", len(c.Windows),
			c.Fallback)},
	)

	return defects
}
