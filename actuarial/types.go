/*
Package actuarial provides payment plans built on the generic date engine.

PURPOSE:
  A plan attaches a life (birth date) and an integer age basis to a payment
  schedule. For each payment it reports the exact age, the integer age used
  for rating, and the fraction of a year covered since the previous payment.

AGE BASIS:
  last_birthday:    age at last birthday (age truncated)
  nearest_birthday: age at nearest birthday (halves round up)

SEE ALSO:
  - plan.go: Plan and Payment
  - generic/calendar.go: Age arithmetic
*/
package actuarial

import (
	"fmt"

	"github.com/warp/date-engine/generic"
)

// AgeBasis names the integer age convention of a plan.
type AgeBasis string

const (
	AgeLastBirthday    AgeBasis = "last_birthday"
	AgeNearestBirthday AgeBasis = "nearest_birthday"
)

// ParseAgeBasis validates an age basis name. The empty string selects
// AgeLastBirthday.
func ParseAgeBasis(s string) (AgeBasis, error) {
	switch b := AgeBasis(s); b {
	case "":
		return AgeLastBirthday, nil
	case AgeLastBirthday, AgeNearestBirthday:
		return b, nil
	default:
		return "", fmt.Errorf("%w: unknown age basis %q", generic.ErrInvalidArgument, s)
	}
}

// Func returns the age function for b.
func (b AgeBasis) Func() generic.AgeFunc {
	if b == AgeNearestBirthday {
		return generic.AgeNearestBirthday
	}
	return generic.AgeLastBirthday
}
