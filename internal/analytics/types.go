// Package analytics builds the admin dashboard report: it normalizes
// heterogeneous timestamps, scopes records to a named time window and
// reduces bookings, contact messages and user registrations into the
// chart-ready aggregates consumed by the dashboard UI.
package analytics

import (
	"context"
	"time"
)

// BookingRecord is the pipeline view of one booking. Services carries a
// comma separated display text resolved from the catalog (or the raw
// legacy spreadsheet cell when identifiers are unavailable).
type BookingRecord struct {
	ID          int64
	ServiceIds  []int64
	Services    string
	TotalAmount int64
	Status      string
	CreatedAt   time.Time
	Appointment time.Time
	Notes       string
}

// MessageRecord is one contact form submission. SubmittedAt keeps the
// legacy locale formatted string exactly as stored in the spreadsheet;
// the pipeline normalizes it on demand.
type MessageRecord struct {
	Name            string
	Phone           string
	ServiceInterest string
	Address         string
	Message         string
	SubmittedAt     string
}

// UserRecord is one registered account, used for growth aggregates only.
type UserRecord struct {
	ID        int64
	Email     string
	Name      string
	Role      string
	CreatedAt time.Time
}

// CatalogEntry translates service identifiers into display names and
// seeds the category chart with every active service.
type CatalogEntry struct {
	ID       int64
	Name     string
	Category string
	Active   bool
}

// Record source providers. All are read-only collaborators owned by the
// storage layer; the pipeline never mutates what they return.
type (
	BookingProvider interface {
		AllBookings(ctx context.Context) ([]BookingRecord, error)
	}
	MessageProvider interface {
		AllMessages(ctx context.Context) ([]MessageRecord, error)
	}
	UserProvider interface {
		AllUsers(ctx context.Context) ([]UserRecord, error)
	}
	CatalogProvider interface {
		ActiveServices(ctx context.Context) ([]CatalogEntry, error)
	}
)

// ServicePoint is one ranked entry of the popular services chart.
type ServicePoint struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryPoint is one slice of a pie/bar chart.
type CategoryPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// SeriesPoint is one calendar day of a time series chart. Revenue is
// present only for series that request it.
type SeriesPoint struct {
	Date    string `json:"date"`
	Count   int    `json:"count"`
	Revenue *int64 `json:"revenue,omitempty"`
}

type UserStats struct {
	TotalUsers     int     `json:"totalUsers"`
	UsersToday     int     `json:"usersToday"`
	UsersThisWeek  int     `json:"usersThisWeek"`
	UsersThisMonth int     `json:"usersThisMonth"`
	UserGrowthRate float64 `json:"userGrowthRate"`
}

type BookingStats struct {
	TotalBookings       int            `json:"totalBookings"`
	ConfirmedBookings   int            `json:"confirmedBookings"`
	BookingsToday       int            `json:"bookingsToday"`
	BookingsThisWeek    int            `json:"bookingsThisWeek"`
	BookingsThisMonth   int            `json:"bookingsThisMonth"`
	TotalRevenue        int64          `json:"totalRevenue"`
	AverageBookingValue float64        `json:"averageBookingValue"`
	PopularServices     []ServicePoint `json:"popularServices"`
}

type MessageStats struct {
	TotalMessages     int     `json:"totalMessages"`
	MessagesToday     int     `json:"messagesToday"`
	MessagesThisWeek  int     `json:"messagesThisWeek"`
	MessagesThisMonth int     `json:"messagesThisMonth"`
	ConversionRate    float64 `json:"conversionRate"`
}

type TimeSeriesData struct {
	UserRegistrations []SeriesPoint `json:"userRegistrations"`
	Bookings          []SeriesPoint `json:"bookings"`
	Messages          []SeriesPoint `json:"messages"`
}

type CategoryData struct {
	ServiceCategories []CategoryPoint `json:"serviceCategories"`
	BookingStatus     []CategoryPoint `json:"bookingStatus"`
	MessageSources    []CategoryPoint `json:"messageSources"`
}

// DashboardData is the composite report returned to the dashboard. It
// is recomputed on every request and never persisted.
type DashboardData struct {
	UserStats      UserStats      `json:"userStats"`
	BookingStats   BookingStats   `json:"bookingStats"`
	MessageStats   MessageStats   `json:"messageStats"`
	TimeSeriesData TimeSeriesData `json:"timeSeriesData"`
	CategoryData   CategoryData   `json:"categoryData"`
}

// EmptyDashboardData returns the zeroed fallback report. Slices are
// allocated so the JSON encoding always carries well-formed arrays.
func EmptyDashboardData() *DashboardData {
	return &DashboardData{
		BookingStats: BookingStats{PopularServices: []ServicePoint{}},
		TimeSeriesData: TimeSeriesData{
			UserRegistrations: []SeriesPoint{},
			Bookings:          []SeriesPoint{},
			Messages:          []SeriesPoint{},
		},
		CategoryData: CategoryData{
			ServiceCategories: []CategoryPoint{},
			BookingStatus:     []CategoryPoint{},
			MessageSources:    []CategoryPoint{},
		},
	}
}
