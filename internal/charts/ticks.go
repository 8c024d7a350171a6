package charts

import (
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

const maxTicks = 1000

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// linearTicks picks 1, 2 or 5 times a power of ten as the step so that
// about count ticks fall inside [start, stop]. Reversed domains are allowed.
func linearTicks(start, stop float64, count int) []Tick {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) || math.IsInf(start, 0) || math.IsInf(stop, 0) {
		return nil
	}
	if start == stop {
		return []Tick{{Value: start, Label: FormatNumber(start)}}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}

	var values []float64
	if power < 0 {
		inc := math.Pow(10, -power) / factor
		i1, i2 := math.Round(start*inc), math.Round(stop*inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		for i := i1; i <= i2 && len(values) < maxTicks; i++ {
			values = append(values, i/inc)
		}
	} else {
		inc := math.Pow(10, power) * factor
		i1, i2 := math.Round(start/inc), math.Round(stop/inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
		for i := i1; i <= i2 && len(values) < maxTicks; i++ {
			values = append(values, i*inc)
		}
	}

	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Value: v, Label: FormatNumber(v)}
	}
	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

type timeUnit int

const (
	unitHour timeUnit = iota
	unitDay
	unitWeek
	unitMonth
	unitYear
)

type timeInterval struct {
	unit   timeUnit
	step   int
	approx time.Duration
}

const day = 24 * time.Hour

var timeIntervals = []timeInterval{
	{unitHour, 1, time.Hour},
	{unitHour, 3, 3 * time.Hour},
	{unitHour, 6, 6 * time.Hour},
	{unitHour, 12, 12 * time.Hour},
	{unitDay, 1, day},
	{unitDay, 2, 2 * day},
	{unitWeek, 1, 7 * day},
	{unitMonth, 1, 30 * day},
	{unitMonth, 3, 91 * day},
	{unitYear, 1, 365 * day},
}

// chooseInterval returns the interval whose length is closest, by ratio,
// to span/count. Spans beyond a year per tick use a 1/2/5 year multiple.
func chooseInterval(span time.Duration, count int) timeInterval {
	target := float64(span) / float64(count)
	years := timeIntervals[len(timeIntervals)-1]
	if target > float64(years.approx) {
		n := target / float64(years.approx)
		step := 1
		for _, s := range []int{2, 5, 10, 20, 50, 100} {
			if float64(s) <= n*1.5 {
				step = s
			}
		}
		return timeInterval{unitYear, step, time.Duration(step) * years.approx}
	}

	best := timeIntervals[0]
	bestDist := math.Inf(1)
	for _, iv := range timeIntervals {
		dist := math.Abs(math.Log(float64(iv.approx) / target))
		if dist < bestDist {
			best, bestDist = iv, dist
		}
	}
	return best
}

func (iv timeInterval) floor(t time.Time) time.Time {
	y, m, d := t.Date()
	switch iv.unit {
	case unitHour:
		h := t.Hour()
		return time.Date(y, m, d, h-h%iv.step, 0, 0, 0, time.UTC)
	case unitDay:
		return time.Date(y, m, d-(d-1)%iv.step, 0, 0, 0, 0, time.UTC)
	case unitWeek:
		return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, time.UTC)
	case unitMonth:
		return time.Date(y, m-time.Month((int(m)-1)%iv.step), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y-y%iv.step, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

func (iv timeInterval) next(t time.Time) time.Time {
	switch iv.unit {
	case unitHour:
		return t.Add(time.Duration(iv.step) * time.Hour)
	case unitDay:
		return t.AddDate(0, 0, iv.step)
	case unitWeek:
		return t.AddDate(0, 0, 7)
	case unitMonth:
		return t.AddDate(0, iv.step, 0)
	default:
		return t.AddDate(iv.step, 0, 0)
	}
}

func (iv timeInterval) label(t time.Time) string {
	switch iv.unit {
	case unitHour:
		if t.Hour() == 0 {
			return t.Format("Jan 02")
		}
		return t.Format("15:04")
	case unitDay, unitWeek:
		if t.Day() == 1 {
			return t.Format("January")
		}
		return t.Format("Jan 02")
	case unitMonth:
		if t.Month() == time.January {
			return t.Format("2006")
		}
		return t.Format("January")
	default:
		return t.Format("2006")
	}
}

// timeTicks places ticks on calendar boundaries in UTC. Domain values are
// chart.TimeToFloat64 nanoseconds.
func timeTicks(start, stop float64, count int) []Tick {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	t0 := chart.TimeFromFloat64(start).UTC()
	t1 := chart.TimeFromFloat64(stop).UTC()
	if !t1.After(t0) {
		return []Tick{{Value: start, Label: t0.Format("Jan 02")}}
	}

	iv := chooseInterval(t1.Sub(t0), count)
	t := iv.floor(t0)
	if t.Before(t0) {
		t = iv.next(t)
	}

	var ticks []Tick
	for ; !t.After(t1) && len(ticks) < maxTicks; t = iv.next(t) {
		ticks = append(ticks, Tick{Value: chart.TimeToFloat64(t), Label: iv.label(t)})
	}
	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}
