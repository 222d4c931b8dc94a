package types

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/go-cel/internal/cerr"
)

// Duration is CEL's signed, nanosecond-precision duration value.
type Duration int64

func (Duration) Kind() Kind       { return KindDuration }
func (v Duration) String() string { return FormatDuration(v) }
func (Duration) CELType() *TypeValue { return NewType(KindDuration) }

// Timestamp is CEL's nanosecond-precision UTC instant, stored as
// nanoseconds since the Unix epoch (spec.md §4.1: "internal representation
// is integer nanoseconds").
type Timestamp int64

func (Timestamp) Kind() Kind       { return KindTimestamp }
func (v Timestamp) String() string { return v.Time().UTC().Format(time.RFC3339Nano) }
func (Timestamp) CELType() *TypeValue { return NewType(KindTimestamp) }

// Time returns the UTC time.Time for this Timestamp.
func (v Timestamp) Time() time.Time {
	return time.Unix(0, int64(v)).UTC()
}

// TimestampFromTime builds a Timestamp from a time.Time.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixNano())
}

var durationPattern = regexp.MustCompile(
	`^(-)?(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?(?:(\d+)ms)?(?:(\d+)us)?(?:(\d+)ns)?$`)

var durationUnitNanos = [...]int64{
	int64(time.Hour), int64(time.Minute), int64(time.Second),
	int64(time.Millisecond), int64(time.Microsecond), int64(time.Nanosecond),
}

// ParseDuration parses a duration string using the grammar
// `^-?(\d+h)?(\d+m)?(\d+s)?(\d+ms)?(\d+us)?(\d+ns)?$` (spec.md §4.1).
func ParseDuration(s string) (Duration, *cerr.Error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil || s == "" || allEmpty(m[2:]) {
		return 0, cerr.Newf(cerr.KindInvalidArgument, "invalid duration: %q", s)
	}
	var total int64
	for i, group := range m[2:] {
		if group == "" {
			continue
		}
		n, err := strconv.ParseInt(group, 10, 64)
		if err != nil {
			return 0, cerr.Newf(cerr.KindInvalidArgument, "invalid duration: %q", s)
		}
		total += n * durationUnitNanos[i]
	}
	if m[1] == "-" {
		total = -total
	}
	return Duration(total), nil
}

func allEmpty(groups []string) bool {
	for _, g := range groups {
		if g != "" {
			return false
		}
	}
	return true
}

// ParseTimestamp parses an RFC3339 timestamp string (spec.md §4.1).
func ParseTimestamp(s string) (Timestamp, *cerr.Error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, cerr.Wrap(cerr.KindInvalidArgument, "invalid timestamp: "+s, err)
	}
	return TimestampFromTime(t), nil
}

// loadLocation resolves an optional IANA timezone string; "" defaults to
// UTC (spec.md §4.1: "default is UTC").
func loadLocation(tz string) (*time.Location, *cerr.Error) {
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, cerr.Wrap(cerr.KindInvalidArgument, "invalid timezone: "+tz, err)
	}
	return loc, nil
}

// GetHours returns the hour-of-day component in the given timezone
// (spec.md §4.1: "Accessors getHours, getMinutes, … take an optional IANA
// timezone string").
func (v Timestamp) GetHours(tz string) (Int, *cerr.Error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return 0, err
	}
	return Int(v.Time().In(loc).Hour()), nil
}

// GetMinutes returns the minute-of-hour component.
func (v Timestamp) GetMinutes(tz string) (Int, *cerr.Error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return 0, err
	}
	return Int(v.Time().In(loc).Minute()), nil
}

// GetSeconds returns the second-of-minute component.
func (v Timestamp) GetSeconds(tz string) (Int, *cerr.Error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return 0, err
	}
	return Int(v.Time().In(loc).Second()), nil
}

// GetMilliseconds returns the millisecond-of-second component.
func (v Timestamp) GetMilliseconds(tz string) (Int, *cerr.Error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return 0, err
	}
	return Int(v.Time().In(loc).Nanosecond() / int(time.Millisecond)), nil
}

// GetDayOfWeek returns the day of the week, 0 (Sunday) through 6
// (Saturday), matching CEL's getDayOfWeek convention.
func (v Timestamp) GetDayOfWeek(tz string) (Int, *cerr.Error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return 0, err
	}
	return Int(int(v.Time().In(loc).Weekday())), nil
}

// GetDayOfMonth returns the zero-based day of the month.
func (v Timestamp) GetDayOfMonth(tz string) (Int, *cerr.Error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return 0, err
	}
	return Int(v.Time().In(loc).Day() - 1), nil
}

// GetDate returns the one-based day of the month (CEL's getDate).
func (v Timestamp) GetDate(tz string) (Int, *cerr.Error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return 0, err
	}
	return Int(v.Time().In(loc).Day()), nil
}

// GetDayOfYear returns the zero-based day of the year.
func (v Timestamp) GetDayOfYear(tz string) (Int, *cerr.Error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return 0, err
	}
	return Int(v.Time().In(loc).YearDay() - 1), nil
}

// GetMonth returns the zero-based month (0 = January).
func (v Timestamp) GetMonth(tz string) (Int, *cerr.Error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return 0, err
	}
	return Int(int(v.Time().In(loc).Month()) - 1), nil
}

// GetFullYear returns the four-digit year.
func (v Timestamp) GetFullYear(tz string) (Int, *cerr.Error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return 0, err
	}
	return Int(v.Time().In(loc).Year()), nil
}

// Duration accessors mirror the Timestamp family, operating on the
// duration's total span rather than wall-clock components.

// GetHours returns the whole number of hours in the duration.
func (v Duration) GetHours() Int { return Int(time.Duration(v) / time.Hour) }

// GetMinutes returns the whole number of minutes in the duration.
func (v Duration) GetMinutes() Int { return Int(time.Duration(v) / time.Minute) }

// GetSeconds returns the whole number of seconds in the duration.
func (v Duration) GetSeconds() Int { return Int(time.Duration(v) / time.Second) }

// GetMilliseconds returns the whole number of milliseconds in the duration.
func (v Duration) GetMilliseconds() Int { return Int(time.Duration(v) / time.Millisecond) }

// FormatDuration renders d back to the `\d+h\d+m\d+s...` grammar string(),
// used by Duration.String() round-tripping (spec.md §8 property 7).
func FormatDuration(d Duration) string {
	if d == 0 {
		return "0s"
	}
	var sb strings.Builder
	n := int64(d)
	if n < 0 {
		sb.WriteByte('-')
		n = -n
	}
	units := []struct {
		suffix string
		nanos  int64
	}{
		{"h", int64(time.Hour)},
		{"m", int64(time.Minute)},
		{"s", int64(time.Second)},
		{"ms", int64(time.Millisecond)},
		{"us", int64(time.Microsecond)},
		{"ns", int64(time.Nanosecond)},
	}
	for _, u := range units {
		if n >= u.nanos {
			q := n / u.nanos
			n -= q * u.nanos
			sb.WriteString(strconv.FormatInt(q, 10))
			sb.WriteString(u.suffix)
		}
	}
	return sb.String()
}
