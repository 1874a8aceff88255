package datefmt

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	minutesInDay            = 1440
	minutesInAlmostTwoDays  = 2520
	minutesInMonth          = 43200
	minutesInTwoMonths      = 86400
	monthsInYear            = 12
	aboutYearsMonthsCeiling = 3
	overYearsMonthsCeiling  = 9
)

type unit struct {
	one   string
	other string
}

var (
	lessThanXMinutes = unit{"menos de um minuto", "menos de {n} minutos"}
	xMinutes         = unit{"1 minuto", "{n} minutos"}
	aboutXHours      = unit{"cerca de 1 hora", "cerca de {n} horas"}
	xDays            = unit{"1 dia", "{n} dias"}
	aboutXMonths     = unit{"cerca de 1 mês", "cerca de {n} meses"}
	xMonths          = unit{"1 mês", "{n} meses"}
	aboutXYears      = unit{"cerca de 1 ano", "cerca de {n} anos"}
	overXYears       = unit{"mais de 1 ano", "mais de {n} anos"}
	almostXYears     = unit{"quase 1 ano", "quase {n} anos"}
)

func (u unit) count(n int) string {
	if n == 1 {
		return u.one
	}
	return strings.Replace(u.other, "{n}", strconv.Itoa(n), 1)
}

// round rounds half up, the way distances are bucketed.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// distance returns the unsigned pt-BR distance in words between a and b.
func distance(a, b time.Time) string {
	earlier, later := a, b
	if earlier.After(later) {
		earlier, later = later, earlier
	}

	seconds := int64(later.Sub(earlier) / time.Second)
	minutes := round(float64(seconds) / 60)

	switch {
	case minutes < 2:
		if minutes == 0 {
			return lessThanXMinutes.count(1)
		}
		return xMinutes.count(minutes)
	case minutes < 45:
		return xMinutes.count(minutes)
	case minutes < 90:
		return aboutXHours.count(1)
	case minutes < minutesInDay:
		return aboutXHours.count(round(float64(minutes) / 60))
	case minutes < minutesInAlmostTwoDays:
		return xDays.count(1)
	case minutes < minutesInMonth:
		return xDays.count(round(float64(minutes) / minutesInDay))
	case minutes < minutesInTwoMonths:
		return aboutXMonths.count(round(float64(minutes) / minutesInMonth))
	}

	months := monthsBetween(earlier, later)
	if months < monthsInYear {
		return xMonths.count(round(float64(minutes) / minutesInMonth))
	}

	years := months / monthsInYear
	switch rest := months % monthsInYear; {
	case rest < aboutYearsMonthsCeiling:
		return aboutXYears.count(years)
	case rest < overYearsMonthsCeiling:
		return overXYears.count(years)
	default:
		return almostXYears.count(years + 1)
	}
}

// monthsBetween counts the full calendar months from earlier to later.
func monthsBetween(earlier, later time.Time) int {
	later = later.In(earlier.Location())
	months := (later.Year()-earlier.Year())*monthsInYear + int(later.Month()-earlier.Month())
	if months > 0 && earlier.AddDate(0, months, 0).After(later) {
		months--
	}
	return months
}
