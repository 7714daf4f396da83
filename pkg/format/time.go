package format

import (
	"strconv"
	"strings"
	"time"
)

// TimeNames holds the day (Sunday first) and month names used by the `a A b B`
// flags and their composites.
type TimeNames struct {
	Days   [7]string  `json:"days" yaml:"days"`
	Months [12]string `json:"months" yaml:"months"`
}

// DefaultTimeNames returns the English names.
func DefaultTimeNames() TimeNames {
	return TimeNames{
		Days: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		Months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
	}
}

func (n TimeNames) day(t time.Time) string {
	return n.Days[int(t.Weekday())]
}

func (n TimeNames) month(t time.Time) string {
	return n.Months[int(t.Month())-1]
}

// Time renders t with a strftime-like specifier. Every character is a flag
// (a A b B c d H I j m M p S U W w x X y Y); anything else is copied through.
func Time(t time.Time, spec string, names TimeNames) string {
	var sb strings.Builder
	for _, flag := range spec {
		writeTimeFlag(&sb, t, flag, names)
	}
	return sb.String()
}

func writeTimeFlag(sb *strings.Builder, t time.Time, flag rune, names TimeNames) {
	switch flag {
	case 'a':
		sb.WriteString(truncateRunes(names.day(t), 3))
	case 'A':
		sb.WriteString(names.day(t))
	case 'b':
		sb.WriteString(truncateRunes(names.month(t), 3))
	case 'B':
		sb.WriteString(names.month(t))
	case 'c':
		sb.WriteString(Time(t, "a b", names))
		sb.WriteByte(' ')
		sb.WriteString(padInt(t.Day(), 2, ' '))
		sb.WriteByte(' ')
		sb.WriteString(Time(t, "H:M:S Y", names))
	case 'd':
		sb.WriteString(padInt(t.Day(), 2, '0'))
	case 'H':
		sb.WriteString(padInt(t.Hour(), 2, '0'))
	case 'I':
		sb.WriteString(padInt(hour12(t), 2, '0'))
	case 'j':
		sb.WriteString(padInt(t.YearDay(), 3, '0'))
	case 'm':
		sb.WriteString(padInt(int(t.Month()), 2, '0'))
	case 'M':
		sb.WriteString(padInt(t.Minute(), 2, '0'))
	case 'p':
		sb.WriteString(meridiem(t))
	case 'S':
		sb.WriteString(padInt(t.Second(), 2, '0'))
	case 'U':
		sb.WriteString(padInt(weekOfYear(t, time.Sunday), 2, '0'))
	case 'W':
		sb.WriteString(padInt(weekOfYear(t, time.Monday), 2, '0'))
	case 'w':
		sb.WriteString(strconv.Itoa(int(t.Weekday())))
	case 'x':
		sb.WriteString(Time(t, "m/d/y", names))
	case 'X':
		sb.WriteString(strconv.Itoa(hour12(t)))
		sb.WriteByte(':')
		sb.WriteString(Time(t, "M:S p", names))
	case 'y':
		sb.WriteString(padInt(t.Year()%100, 2, '0'))
	case 'Y':
		sb.WriteString(strconv.Itoa(t.Year()))
	default:
		sb.WriteRune(flag)
	}
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

func meridiem(t time.Time) string {
	if t.Hour() < 12 {
		return "AM"
	}
	return "PM"
}

// weekOfYear counts weeks starting on first; days before the first such
// weekday of the year fall in week 0.
func weekOfYear(t time.Time, first time.Weekday) int {
	yday := t.YearDay() - 1
	wday := (int(t.Weekday()) - int(first) + 7) % 7
	return (yday + 7 - wday) / 7
}

func padInt(n, width int, fill byte) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat(string(fill), width-len(s)) + s
}
