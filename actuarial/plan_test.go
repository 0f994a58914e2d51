package actuarial_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/date-engine/actuarial"
	"github.com/warp/date-engine/generic"
)

func d(s string) generic.Date { return generic.MustParseDate(s) }

func annuityPlan(t *testing.T, basis actuarial.AgeBasis) *actuarial.Plan {
	t.Helper()
	plan, err := actuarial.NewPlan(d("1957-06-30"), basis, generic.ScheduleMonthlyFirstDay, d("2022-02-15"), d("2023-02-28"))
	require.NoError(t, err)
	return plan
}

func TestParseAgeBasis(t *testing.T) {
	basis, err := actuarial.ParseAgeBasis("")
	require.NoError(t, err)
	assert.Equal(t, actuarial.AgeLastBirthday, basis)

	basis, err = actuarial.ParseAgeBasis("nearest_birthday")
	require.NoError(t, err)
	assert.Equal(t, actuarial.AgeNearestBirthday, basis)

	_, err = actuarial.ParseAgeBasis("next_birthday")
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)
}

func TestNewPlan_Validates(t *testing.T) {
	_, err := actuarial.NewPlan(d("2023-01-01"), actuarial.AgeLastBirthday, generic.ScheduleMonthlyFirstDay, d("2022-02-15"), d("2023-02-28"))
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)

	_, err = actuarial.NewPlan(d("1957-06-30"), actuarial.AgeLastBirthday, generic.ScheduleMonthlyFirstDay, d("2022-02-15"), d("2022-02-28"))
	assert.ErrorIs(t, err, generic.ErrOutOfRange)
}

func TestPayments_AgesFollowTheBasis(t *testing.T) {
	// GIVEN: A life born 1957-06-30 paid monthly from 2022-03-01
	last := annuityPlan(t, actuarial.AgeLastBirthday).Payments()
	nearest := annuityPlan(t, actuarial.AgeNearestBirthday).Payments()
	require.Len(t, last, 12)
	require.Len(t, nearest, 12)

	// THEN: In March the life is 64 at last birthday but 65 at nearest
	assert.Equal(t, d("2022-03-01"), last[0].Date)
	assert.Equal(t, 64, last[0].Age)
	assert.Equal(t, 65, nearest[0].Age)
	f, _ := last[0].ExactAge.Float64()
	assert.InDelta(t, 65-121.0/365, f, 1e-12)

	// THEN: After the July birthday both bases agree
	assert.Equal(t, d("2022-07-01"), last[4].Date)
	assert.Equal(t, 65, last[4].Age)
	assert.Equal(t, 65, nearest[4].Age)
}

func TestPayments_YearFractionsSinceThePreviousPayment(t *testing.T) {
	payments := annuityPlan(t, actuarial.AgeLastBirthday).Payments()

	assert.True(t, payments[0].YearFraction.IsZero())

	// March has 31 days in a 365-day year
	f, _ := payments[1].YearFraction.Float64()
	assert.InDelta(t, 31.0/365, f, 1e-12)

	// The fractions add up to the span from the first to the last payment
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.YearFraction)
	}
	sum, _ := total.Float64()
	assert.InDelta(t, 337.0/365, sum, 1e-9)
}

func TestPaymentOn_FindsTheCoveringPayment(t *testing.T) {
	plan := annuityPlan(t, actuarial.AgeLastBirthday)

	p, ok := plan.PaymentOn(d("2022-08-15"))
	require.True(t, ok)
	assert.Equal(t, 5, p.Index)
	assert.Equal(t, d("2022-08-01"), p.Date)

	p, ok = plan.PaymentOn(d("2023-02-01"))
	require.True(t, ok)
	assert.Equal(t, 11, p.Index)

	_, ok = plan.PaymentOn(d("2022-02-20"))
	assert.False(t, ok)
}

func TestDateAtAge(t *testing.T) {
	plan := annuityPlan(t, actuarial.AgeLastBirthday)

	assert.Equal(t, d("2022-06-30"), plan.DateAtAge(decimal.NewFromInt(65)))
	assert.Equal(t, d("2021-12-30"), plan.DateAtAge(decimal.RequireFromString("64.5")))
	assert.Equal(t, 65, plan.AgeAt(plan.DateAtAge(decimal.NewFromInt(65))))
}
