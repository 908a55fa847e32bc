package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSources struct {
	bookings []BookingRecord
	messages []MessageRecord
	users    []UserRecord
	catalog  []CatalogEntry

	messagesErr error
	bookingsErr error
}

func (f *fakeSources) AllBookings(context.Context) ([]BookingRecord, error) {
	return f.bookings, f.bookingsErr
}

func (f *fakeSources) AllMessages(context.Context) ([]MessageRecord, error) {
	return f.messages, f.messagesErr
}

func (f *fakeSources) AllUsers(context.Context) ([]UserRecord, error) {
	return f.users, nil
}

func (f *fakeSources) ActiveServices(context.Context) ([]CatalogEntry, error) {
	return f.catalog, nil
}

func newTestService(f *fakeSources) *Service {
	return NewService(f, f, f, f).WithNow(func() time.Time { return testNow })
}

func TestProcessDashboardDataEndToEnd(t *testing.T) {
	f := &fakeSources{
		bookings: []BookingRecord{
			{ID: 1, ServiceIds: []int64{11}, Status: "confirmed", TotalAmount: 1000, CreatedAt: testNow.AddDate(0, 0, -1)},
			{ID: 2, ServiceIds: []int64{11, 12}, Status: "confirmed", TotalAmount: 500, CreatedAt: testNow.AddDate(0, 0, -2)},
			{ID: 3, Services: "Pedicure", Status: "pending", TotalAmount: 500, CreatedAt: testNow.AddDate(0, 0, -2)},
		},
		messages: []MessageRecord{
			{SubmittedAt: "13/10/2025, 10:00 am", ServiceInterest: "Bridal"},
			{SubmittedAt: "13/10/2025, 11:00 am"},
			{SubmittedAt: "14/10/2025, 09:15 pm"},
			{SubmittedAt: "14/10/2025, 09:20 pm"},
			{SubmittedAt: "15/10/2025, 08:00 am"},
		},
		users: []UserRecord{
			{ID: 1, CreatedAt: testNow.AddDate(0, 0, -40)},
			{ID: 2, CreatedAt: testNow.AddDate(0, 0, -3)},
			{ID: 3, CreatedAt: testNow},
		},
		catalog: []CatalogEntry{
			{ID: 11, Name: "Haircut", Active: true},
			{ID: 12, Name: "Spa", Active: true},
		},
	}

	got := newTestService(f).ProcessDashboardData(context.Background(), WindowAll)
	require.NotNil(t, got)

	assert.Equal(t, 3, got.BookingStats.TotalBookings)
	assert.Equal(t, 2, got.BookingStats.ConfirmedBookings)
	assert.Equal(t, int64(1500), got.BookingStats.TotalRevenue)
	assert.InDelta(t, 750, got.BookingStats.AverageBookingValue, 0.001)

	require.NotEmpty(t, got.BookingStats.PopularServices)
	assert.Equal(t, ServicePoint{Name: "Haircut", Count: 2}, got.BookingStats.PopularServices[0])

	assert.Equal(t, 5, got.MessageStats.TotalMessages)
	assert.InDelta(t, 60, got.MessageStats.ConversionRate, 0.001)

	assert.Equal(t, 3, got.UserStats.TotalUsers)
	assert.Equal(t, 1, got.UserStats.UsersToday)
	assert.Equal(t, 2, got.UserStats.UsersThisWeek)

	// messages landed on three distinct days
	assert.Len(t, got.TimeSeriesData.Messages, 3)
	// bookings on two distinct days
	require.Len(t, got.TimeSeriesData.Bookings, 2)
	assert.Equal(t, 2, got.TimeSeriesData.Bookings[0].Count)

	values := map[string]int{}
	for _, p := range got.CategoryData.ServiceCategories {
		values[p.Name] = p.Value
	}
	assert.Equal(t, 2, values["Haircut"])
	assert.Equal(t, 1, values["Spa"])
	assert.Equal(t, 1, values["Pedicure"])
}

func TestProcessDashboardDataWindowScoped(t *testing.T) {
	f := &fakeSources{
		bookings: []BookingRecord{
			{ID: 1, Status: "confirmed", TotalAmount: 800, CreatedAt: testNow.Add(-time.Hour)},
			{ID: 2, Status: "confirmed", TotalAmount: 900, CreatedAt: testNow.AddDate(0, 0, -20)},
		},
		messages: []MessageRecord{
			{SubmittedAt: "15/10/2025, 09:00 am"},
			{SubmittedAt: "20/09/2025, 09:00 am"},
		},
	}

	got := newTestService(f).ProcessDashboardData(context.Background(), WindowToday)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.BookingStats.TotalBookings)
	assert.Equal(t, int64(800), got.BookingStats.TotalRevenue)
	assert.Equal(t, 1, got.MessageStats.TotalMessages)
	assert.InDelta(t, 100, got.MessageStats.ConversionRate, 0.001)
}

func TestProcessDashboardDataMessageSourceDown(t *testing.T) {
	f := &fakeSources{
		bookings: []BookingRecord{
			{ID: 1, Status: "confirmed", TotalAmount: 1200, CreatedAt: testNow},
		},
		users: []UserRecord{
			{ID: 1, CreatedAt: testNow},
		},
		messagesErr: errors.New("spreadsheet missing"),
	}

	got := newTestService(f).ProcessDashboardData(context.Background(), WindowAll)
	require.NotNil(t, got)

	// booking and user sections survive a message store outage
	assert.Equal(t, 1, got.BookingStats.TotalBookings)
	assert.Equal(t, int64(1200), got.BookingStats.TotalRevenue)
	assert.Equal(t, 1, got.UserStats.TotalUsers)

	assert.Zero(t, got.MessageStats.TotalMessages)
	assert.Zero(t, got.MessageStats.ConversionRate)
}

func TestProcessDashboardDataEmptySources(t *testing.T) {
	got := newTestService(&fakeSources{}).ProcessDashboardData(context.Background(), WindowAll)
	require.NotNil(t, got)
	assert.Zero(t, got.BookingStats.TotalBookings)
	assert.Zero(t, got.BookingStats.AverageBookingValue)
	assert.NotNil(t, got.TimeSeriesData.Bookings)
	assert.NotNil(t, got.CategoryData.BookingStatus)
}
