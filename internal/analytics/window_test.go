package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.Local)

func TestParseWindow(t *testing.T) {
	assert.Equal(t, WindowToday, ParseWindow("today"))
	assert.Equal(t, WindowWeek, ParseWindow(" Week "))
	assert.Equal(t, WindowMonth, ParseWindow("month"))
	assert.Equal(t, WindowAll, ParseWindow("all"))
	assert.Equal(t, WindowAll, ParseWindow(""))
	assert.Equal(t, WindowAll, ParseWindow("fortnight"))
}

func TestWindowContains(t *testing.T) {
	sameDay := time.Date(2025, 10, 15, 0, 30, 0, 0, time.Local)
	yesterday := testNow.AddDate(0, 0, -1)
	fiveDaysAgo := testNow.AddDate(0, 0, -5)
	tenDaysAgo := testNow.AddDate(0, 0, -10)
	lastMonth := time.Date(2025, 9, 28, 12, 0, 0, 0, time.Local)

	assert.True(t, WindowToday.Contains(sameDay, testNow))
	assert.False(t, WindowToday.Contains(yesterday, testNow))

	assert.True(t, WindowWeek.Contains(fiveDaysAgo, testNow))
	assert.False(t, WindowWeek.Contains(tenDaysAgo, testNow))

	assert.True(t, WindowMonth.Contains(fiveDaysAgo, testNow))
	assert.False(t, WindowMonth.Contains(lastMonth, testNow))

	assert.True(t, WindowAll.Contains(tenDaysAgo, testNow))
	assert.True(t, WindowAll.Contains(time.Time{}, testNow))
}

func TestWindowExcludesFutureDates(t *testing.T) {
	laterToday := testNow.Add(3 * time.Hour)
	nextWeek := testNow.AddDate(0, 0, 6)

	assert.False(t, WindowToday.Contains(laterToday, testNow))
	assert.False(t, WindowWeek.Contains(laterToday, testNow))
	assert.False(t, WindowMonth.Contains(nextWeek, testNow))
	assert.True(t, WindowAll.Contains(nextWeek, testNow))

	// now itself is still inside every window
	assert.True(t, WindowToday.Contains(testNow, testNow))
	assert.True(t, WindowWeek.Contains(testNow, testNow))
	assert.True(t, WindowMonth.Contains(testNow, testNow))
}

func TestUndatedRecordsOnlyInAll(t *testing.T) {
	msgs := []MessageRecord{
		{Name: "dated", SubmittedAt: "15/10/2025, 10:00 am"},
		{Name: "missing"},
		{Name: "garbage", SubmittedAt: "???"},
	}

	today := FilterMessages(msgs, WindowToday, testNow)
	assert.Len(t, today, 1)
	assert.Equal(t, "dated", today[0].Name)

	week := FilterMessages(msgs, WindowWeek, testNow)
	assert.Len(t, week, 1)

	all := FilterMessages(msgs, WindowAll, testNow)
	assert.Len(t, all, 3)
}

func TestFilterBookingsAllReturnsEverything(t *testing.T) {
	recs := []BookingRecord{
		{ID: 1, CreatedAt: testNow},
		{ID: 2}, // undated
		{ID: 3, CreatedAt: testNow.AddDate(-1, 0, 0)},
	}
	assert.Len(t, FilterBookings(recs, WindowAll, testNow), 3)

	scoped := FilterBookings(recs, WindowToday, testNow)
	assert.Len(t, scoped, 1)
	assert.Equal(t, int64(1), scoped[0].ID)
}

func TestFilterUsers(t *testing.T) {
	users := []UserRecord{
		{ID: 1, CreatedAt: testNow.Add(-2 * time.Hour)},
		{ID: 2, CreatedAt: testNow.AddDate(0, 0, -3)},
		{ID: 3, CreatedAt: testNow.AddDate(0, -2, 0)},
	}
	assert.Len(t, FilterUsers(users, WindowToday, testNow), 1)
	assert.Len(t, FilterUsers(users, WindowWeek, testNow), 2)
	assert.Len(t, FilterUsers(users, WindowAll, testNow), 3)
}
