package calendar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FormatDate renders t as an ISO date (YYYY-MM-DD) in UTC.
func FormatDate(t time.Time) string { return t.UTC().Format(dateLayout) }

// FormatValue renders v with one significant digit, the way JavaScript's
// toPrecision(1) does. Exponential notation is used when the exponent is
// below -6 or at least 1, so 42 reads "4e+1" and 0.04 reads "0.04". Ties
// round away from zero (2.5 reads "3", 25 reads "3e+1"). Negative values
// use an ASCII hyphen where d3-format would write U+2212.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	digit, exp := leadingDigit(math.Abs(v))
	sign := ""
	if v < 0 {
		sign = "-"
	}
	if exp < -6 || exp >= 1 {
		return fmt.Sprintf("%s%de%+d", sign, digit, exp)
	}
	if exp < 0 {
		return sign + "0." + strings.Repeat("0", -exp-1) + strconv.Itoa(digit)
	}
	return sign + strconv.Itoa(digit)
}

// leadingDigit rounds a > 0 to one significant digit, half away from zero,
// and returns that digit with its decimal exponent. The decision reads the
// exact decimal expansion of a, so 0.25 is a tie while 0.35 (stored just
// below) is not.
func leadingDigit(a float64) (digit, exp int) {
	mant, expStr, _ := strings.Cut(strconv.FormatFloat(a, 'e', 30, 64), "e")
	exp, _ = strconv.Atoi(expStr)
	digit = int(mant[0] - '0')
	if mant[2] >= '5' {
		digit++
	}
	if digit == 10 {
		digit, exp = 1, exp+1
	}
	return digit, exp
}

// Tooltip returns the hover text of a day cell: the date, and on a second
// line the formatted value when the day has data.
func Tooltip(r DailyRecord) string {
	if !r.Present {
		return FormatDate(r.Date)
	}
	return FormatDate(r.Date) + "\n" + FormatValue(r.Value)
}
