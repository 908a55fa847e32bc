package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
)

// PopularServicesLimit caps the ranked service chart. The legacy
// dashboard used 5 on one path and 10 on another; 10 is the agreed
// cutoff for both.
const PopularServicesLimit = 10

const fallbackCategory = "Other"

// TotalRevenue sums booking amounts over confirmed bookings only.
// Pending, completed and cancelled bookings do not count as revenue.
func TotalRevenue(recs []BookingRecord) int64 {
	var total int64
	for _, r := range recs {
		if r.Status != "confirmed" || r.TotalAmount < 0 {
			continue
		}
		total += r.TotalAmount
	}
	return total
}

// ConfirmedCount tallies bookings in the confirmed state.
func ConfirmedCount(recs []BookingRecord) int {
	n := 0
	for _, r := range recs {
		if r.Status == "confirmed" {
			n++
		}
	}
	return n
}

// AverageBookingValue is the mean amount of confirmed bookings, 0 when
// there are none.
func AverageBookingValue(recs []BookingRecord) float64 {
	amounts := make([]float64, 0, len(recs))
	for _, r := range recs {
		if r.Status != "confirmed" || r.TotalAmount < 0 {
			continue
		}
		amounts = append(amounts, float64(r.TotalAmount))
	}
	if len(amounts) == 0 {
		return 0
	}
	mean, err := stats.Mean(amounts)
	if err != nil {
		return 0
	}
	return mean
}

// splitServices tokenizes a booking's services text: split on comma,
// trim, drop empties.
func splitServices(text string) []string {
	parts := strings.Split(text, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PopularServices ranks service display names by how often they appear
// across the given bookings, descending, capped at limit. Ties break on
// name so the chart is stable between refreshes.
func PopularServices(recs []BookingRecord, limit int) []ServicePoint {
	counts := map[string]int{}
	for _, r := range recs {
		for _, name := range splitServices(r.Services) {
			counts[name]++
		}
	}
	points := make([]ServicePoint, 0, len(counts))
	for name, count := range counts {
		points = append(points, ServicePoint{Name: name, Count: count})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Count != points[j].Count {
			return points[i].Count > points[j].Count
		}
		return points[i].Name < points[j].Name
	})
	if limit > 0 && len(points) > limit {
		points = points[:limit]
	}
	return points
}

type seriesSample struct {
	at      time.Time
	revenue int64
}

// buildSeries groups samples by local calendar day. Samples with a zero
// instant are skipped: a record with an unusable date must not invent a
// data point. Revenue keys are emitted only when requested.
func buildSeries(samples []seriesSample, withRevenue bool) []SeriesPoint {
	type bucket struct {
		count   int
		revenue int64
	}
	grouped := map[string]*bucket{}
	for _, s := range samples {
		if s.at.IsZero() {
			continue
		}
		key := s.at.Format("2006-01-02")
		b := grouped[key]
		if b == nil {
			b = &bucket{}
			grouped[key] = b
		}
		b.count++
		if withRevenue && s.revenue > 0 {
			b.revenue += s.revenue
		}
	}
	points := make([]SeriesPoint, 0, len(grouped))
	for date, b := range grouped {
		p := SeriesPoint{Date: date, Count: b.count}
		if withRevenue {
			rev := b.revenue
			p.Revenue = &rev
		}
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// BookingSeries builds the per-day booking series, with revenue.
func BookingSeries(recs []BookingRecord) []SeriesPoint {
	samples := make([]seriesSample, 0, len(recs))
	for _, r := range recs {
		samples = append(samples, seriesSample{at: r.CreatedAt, revenue: r.TotalAmount})
	}
	return buildSeries(samples, true)
}

// MessageSeries builds the per-day contact message series.
func MessageSeries(recs []MessageRecord) []SeriesPoint {
	samples := make([]seriesSample, 0, len(recs))
	for _, r := range recs {
		if strings.TrimSpace(r.SubmittedAt) == "" {
			continue
		}
		samples = append(samples, seriesSample{at: ParseTimestamp(r.SubmittedAt)})
	}
	return buildSeries(samples, false)
}

// UserSeries builds the per-day registration series.
func UserSeries(recs []UserRecord) []SeriesPoint {
	samples := make([]seriesSample, 0, len(recs))
	for _, r := range recs {
		samples = append(samples, seriesSample{at: r.CreatedAt})
	}
	return buildSeries(samples, false)
}

// ServiceCategories counts individual services across bookings. The
// count map is pre-seeded with every active catalog entry at zero so
// new or unused services still chart. Bookings with no parsable
// services text fall into the Other bucket.
func ServiceCategories(recs []BookingRecord, catalog []CatalogEntry) []CategoryPoint {
	counts := map[string]int{}
	for _, entry := range catalog {
		if entry.Active {
			counts[entry.Name] = 0
		}
	}
	for _, r := range recs {
		items := splitServices(r.Services)
		if len(items) == 0 {
			counts[fallbackCategory]++
			continue
		}
		for _, name := range items {
			counts[name]++
		}
	}
	points := make([]CategoryPoint, 0, len(counts))
	for name, value := range counts {
		points = append(points, CategoryPoint{Name: name, Value: value})
	}
	sortCategoryPoints(points)
	return points
}

// BookingStatusBreakdown tallies bookings by status tag verbatim. No
// bucket is pre-seeded; only statuses actually present appear.
func BookingStatusBreakdown(recs []BookingRecord) []CategoryPoint {
	counts := map[string]int{}
	for _, r := range recs {
		status := r.Status
		if status == "" {
			status = "pending"
		}
		counts[status]++
	}
	points := make([]CategoryPoint, 0, len(counts))
	for name, value := range counts {
		points = append(points, CategoryPoint{Name: name, Value: value})
	}
	sortCategoryPoints(points)
	return points
}

// MessageSources tallies messages by their service interest tag,
// defaulting to the generic contact form source.
func MessageSources(recs []MessageRecord) []CategoryPoint {
	counts := map[string]int{}
	for _, r := range recs {
		source := strings.TrimSpace(r.ServiceInterest)
		if source == "" {
			source = "Contact Form"
		}
		counts[source]++
	}
	points := make([]CategoryPoint, 0, len(counts))
	for name, value := range counts {
		points = append(points, CategoryPoint{Name: name, Value: value})
	}
	sortCategoryPoints(points)
	return points
}

func sortCategoryPoints(points []CategoryPoint) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Name < points[j].Name
	})
}

// GrowthRate compares this calendar month's record count against the
// previous month's: ((this-last)/last)*100, with 100 when last month
// was empty and this month is not, and 0 when both are empty.
func GrowthRate(times []time.Time, now time.Time) float64 {
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var lastCount, thisCount int
	for _, t := range times {
		if t.IsZero() {
			continue
		}
		switch {
		case !t.Before(thisMonth):
			thisCount++
		case !t.Before(lastMonth):
			lastCount++
		}
	}
	if lastCount == 0 {
		if thisCount > 0 {
			return 100
		}
		return 0
	}
	return float64(thisCount-lastCount) / float64(lastCount) * 100
}

// ConversionRate is the ratio of bookings to contact messages inside
// the same window, as a percentage. 0 when there are no messages.
func ConversionRate(bookingCount, messageCount int) float64 {
	if messageCount == 0 {
		return 0
	}
	return float64(bookingCount) / float64(messageCount) * 100
}
