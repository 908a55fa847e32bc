package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalRevenueConfirmedOnly(t *testing.T) {
	recs := []BookingRecord{
		{Status: "confirmed", TotalAmount: 500},
		{Status: "pending", TotalAmount: 10000},
		{Status: "completed", TotalAmount: 2500},
		{Status: "cancelled", TotalAmount: 700},
	}
	assert.Equal(t, int64(500), TotalRevenue(recs))
}

func TestTotalRevenueSkipsNegativeAmounts(t *testing.T) {
	recs := []BookingRecord{
		{Status: "confirmed", TotalAmount: 500},
		{Status: "confirmed", TotalAmount: -50},
	}
	assert.Equal(t, int64(500), TotalRevenue(recs))
}

func TestAverageBookingValue(t *testing.T) {
	recs := []BookingRecord{
		{Status: "confirmed", TotalAmount: 1000},
		{Status: "confirmed", TotalAmount: 500},
		{Status: "pending", TotalAmount: 9999},
	}
	assert.InDelta(t, 750, AverageBookingValue(recs), 0.001)
}

func TestAverageBookingValueNoConfirmed(t *testing.T) {
	recs := []BookingRecord{{Status: "pending", TotalAmount: 400}}
	assert.Zero(t, AverageBookingValue(recs))
	assert.Zero(t, AverageBookingValue(nil))
}

func TestPopularServices(t *testing.T) {
	recs := []BookingRecord{
		{Services: "Haircut, Spa"},
		{Services: "Haircut"},
		{Services: " , "},
	}
	got := PopularServices(recs, PopularServicesLimit)
	require.Len(t, got, 2)
	assert.Equal(t, ServicePoint{Name: "Haircut", Count: 2}, got[0])
	assert.Equal(t, ServicePoint{Name: "Spa", Count: 1}, got[1])
}

func TestPopularServicesLimit(t *testing.T) {
	recs := []BookingRecord{
		{Services: "A, B, C, D"},
		{Services: "A, B"},
	}
	got := PopularServices(recs, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
}

func TestBookingSeriesGroupsByDay(t *testing.T) {
	day := time.Date(2025, 10, 14, 0, 0, 0, 0, time.Local)
	recs := []BookingRecord{
		{CreatedAt: day.Add(9 * time.Hour), TotalAmount: 500},
		{CreatedAt: day.Add(18 * time.Hour), TotalAmount: 700},
		{CreatedAt: day.AddDate(0, 0, 1), TotalAmount: 100},
		{}, // undated, skipped
	}
	got := BookingSeries(recs)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-10-14", got[0].Date)
	assert.Equal(t, 2, got[0].Count)
	require.NotNil(t, got[0].Revenue)
	assert.Equal(t, int64(1200), *got[0].Revenue)
	assert.Equal(t, "2025-10-15", got[1].Date)
}

func TestMessageSeriesOmitsRevenue(t *testing.T) {
	msgs := []MessageRecord{
		{SubmittedAt: "14/10/2025, 09:00 am"},
		{SubmittedAt: "14/10/2025, 10:30 pm"},
		{SubmittedAt: ""},
	}
	got := MessageSeries(msgs)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Count)
	assert.Nil(t, got[0].Revenue)
}

func TestServiceCategoriesSeedsActiveCatalog(t *testing.T) {
	catalog := []CatalogEntry{
		{ID: 1, Name: "Haircut", Active: true},
		{ID: 2, Name: "Facial", Active: true},
		{ID: 3, Name: "Retired", Active: false},
	}
	recs := []BookingRecord{
		{Services: "Haircut, Spa"},
		{Services: ""},
	}
	got := ServiceCategories(recs, catalog)

	values := map[string]int{}
	for _, p := range got {
		values[p.Name] = p.Value
	}
	assert.Equal(t, 1, values["Haircut"])
	assert.Equal(t, 1, values["Spa"])
	assert.Equal(t, 1, values["Other"])
	// unused but active services still chart at zero
	zero, ok := values["Facial"]
	assert.True(t, ok)
	assert.Zero(t, zero)
	_, retired := values["Retired"]
	assert.False(t, retired)
}

func TestBookingStatusBreakdown(t *testing.T) {
	recs := []BookingRecord{
		{Status: "confirmed"},
		{Status: "confirmed"},
		{Status: ""},
		{Status: "cancelled"},
	}
	got := BookingStatusBreakdown(recs)
	values := map[string]int{}
	for _, p := range got {
		values[p.Name] = p.Value
	}
	assert.Equal(t, map[string]int{"confirmed": 2, "pending": 1, "cancelled": 1}, values)
}

func TestMessageSources(t *testing.T) {
	msgs := []MessageRecord{
		{ServiceInterest: "Bridal"},
		{ServiceInterest: "Bridal"},
		{ServiceInterest: ""},
	}
	got := MessageSources(msgs)
	require.Len(t, got, 2)
	assert.Equal(t, CategoryPoint{Name: "Bridal", Value: 2}, got[0])
	assert.Equal(t, CategoryPoint{Name: "Contact Form", Value: 1}, got[1])
}

func TestGrowthRate(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.Local)
	thisMonth := time.Date(2025, 10, 5, 0, 0, 0, 0, time.Local)
	lastMonth := time.Date(2025, 9, 20, 0, 0, 0, 0, time.Local)

	// last month zero, this month nonzero
	assert.Equal(t, float64(100), GrowthRate([]time.Time{thisMonth, thisMonth}, now))
	// both zero
	assert.Zero(t, GrowthRate(nil, now))
	// regular case: 1 -> 2 is +100%
	assert.InDelta(t, 100, GrowthRate([]time.Time{lastMonth, thisMonth, thisMonth}, now), 0.001)
	// decline: 2 -> 1 is -50%
	assert.InDelta(t, -50, GrowthRate([]time.Time{lastMonth, lastMonth, thisMonth}, now), 0.001)
}

func TestConversionRate(t *testing.T) {
	assert.Zero(t, ConversionRate(10, 0))
	assert.InDelta(t, 60, ConversionRate(3, 5), 0.001)
	assert.InDelta(t, 150, ConversionRate(3, 2), 0.001)
}
