package analytics

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"
)

// Known legacy spreadsheet timestamp encodings. The D/M/YYYY family is
// what the browser's en-IN toLocaleString produced in the old export
// path, with and without seconds, in 12h and 24h variants.
var (
	reClock12 = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4}),?\s*(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AaPp][Mm])$`)
	reClock24 = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4}),?\s*(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	reISO     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[T ](\d{2}):(\d{2}):(\d{2})`)
	reDate    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ParseTimestamp normalizes a raw timestamp into a local wall-clock
// instant. Accepted inputs: the legacy D/M/YYYY string variants,
// ISO-8601, a bare D/M/YYYY date, a time.Time, a numeric epoch, or nil.
// A nil/empty input yields "now" as a safe default; callers that need
// to distinguish unknown dates must check the raw value themselves (see
// TimestampInWindow). An unparseable string yields the zero time.
func ParseTimestamp(v interface{}) time.Time {
	switch tv := v.(type) {
	case nil:
		return time.Now()
	case time.Time:
		return tv
	case *time.Time:
		if tv == nil {
			return time.Now()
		}
		return *tv
	case int, int32, int64, float32, float64:
		return epochTime(cast.ToInt64(tv))
	case string:
		return parseTimestampString(tv)
	default:
		return parseTimestampString(cast.ToString(v))
	}
}

// epochTime treats values above 1e12 as milliseconds, otherwise seconds.
func epochTime(n int64) time.Time {
	if n > 1_000_000_000_000 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}

func parseTimestampString(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now()
	}

	if m := reClock12.FindStringSubmatch(s); m != nil {
		hour := cast.ToInt(m[4])
		isPM := strings.EqualFold(m[7], "pm")
		switch {
		case isPM && hour != 12:
			hour += 12
		case !isPM && hour == 12:
			hour = 0
		}
		return time.Date(cast.ToInt(m[3]), time.Month(cast.ToInt(m[2])), cast.ToInt(m[1]),
			hour, cast.ToInt(m[5]), cast.ToInt(m[6]), 0, time.Local)
	}

	if m := reClock24.FindStringSubmatch(s); m != nil {
		return time.Date(cast.ToInt(m[3]), time.Month(cast.ToInt(m[2])), cast.ToInt(m[1]),
			cast.ToInt(m[4]), cast.ToInt(m[5]), cast.ToInt(m[6]), 0, time.Local)
	}

	if m := reISO.FindStringSubmatch(s); m != nil {
		return time.Date(cast.ToInt(m[1]), time.Month(cast.ToInt(m[2])), cast.ToInt(m[3]),
			cast.ToInt(m[4]), cast.ToInt(m[5]), cast.ToInt(m[6]), 0, time.Local)
	}

	if m := reDate.FindStringSubmatch(s); m != nil {
		return time.Date(cast.ToInt(m[3]), time.Month(cast.ToInt(m[2])), cast.ToInt(m[1]),
			0, 0, 0, 0, time.Local)
	}

	// Best effort fallback for formats the legacy exporters never
	// produced but operators occasionally paste into the sheet.
	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
