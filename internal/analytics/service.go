package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service assembles the dashboard report from the injected record
// sources. Each call is a stateless read/compute/return pass over fresh
// collections; nothing is cached or persisted between requests.
type Service struct {
	bookings BookingProvider
	messages MessageProvider
	users    UserProvider
	catalog  CatalogProvider
	nowFn    func() time.Time
}

func NewService(b BookingProvider, m MessageProvider, u UserProvider, c CatalogProvider) *Service {
	return &Service{bookings: b, messages: m, users: u, catalog: c, nowFn: time.Now}
}

// WithNow overrides the clock; used by tests.
func (s *Service) WithNow(nowFn func() time.Time) *Service {
	s.nowFn = nowFn
	return s
}

// ProcessDashboardData computes the composite report for the window.
// It always returns a well-formed report: a failing source degrades to
// an empty record set, and any unexpected panic degrades to the zeroed
// fallback so the dashboard never sees a hard error.
func (s *Service) ProcessDashboardData(ctx context.Context, window Window) (report *DashboardData) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("dashboard report computation panicked, returning fallback",
				zap.Any("cause", r), zap.String("window", string(window)))
			report = EmptyDashboardData()
		}
	}()

	now := s.nowFn()

	var (
		allBookings []BookingRecord
		allMessages []MessageRecord
		allUsers    []UserRecord
		catalog     []CatalogEntry
	)

	// The sources are independent I/O calls; fetch them concurrently.
	// A source failure is logged and replaced with an empty set so a
	// message store outage still yields correct booking and user stats.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := s.bookings.AllBookings(gctx)
		if err != nil {
			zap.L().Warn("dashboard: booking source unavailable", zap.Error(err))
			return nil
		}
		allBookings = recs
		return nil
	})
	g.Go(func() error {
		recs, err := s.messages.AllMessages(gctx)
		if err != nil {
			zap.L().Warn("dashboard: message source unavailable", zap.Error(err))
			return nil
		}
		allMessages = recs
		return nil
	})
	g.Go(func() error {
		recs, err := s.users.AllUsers(gctx)
		if err != nil {
			zap.L().Warn("dashboard: user source unavailable", zap.Error(err))
			return nil
		}
		allUsers = recs
		return nil
	})
	g.Go(func() error {
		entries, err := s.catalog.ActiveServices(gctx)
		if err != nil {
			zap.L().Warn("dashboard: service catalog unavailable", zap.Error(err))
			return nil
		}
		catalog = entries
		return nil
	})
	_ = g.Wait()

	s.resolveServiceNames(allBookings, catalog)

	filteredBookings := FilterBookings(allBookings, window, now)
	filteredMessages := FilterMessages(allMessages, window, now)

	confirmed := make([]BookingRecord, 0, len(filteredBookings))
	for _, b := range filteredBookings {
		if b.Status == "confirmed" {
			confirmed = append(confirmed, b)
		}
	}

	userTimes := make([]time.Time, 0, len(allUsers))
	for _, u := range allUsers {
		userTimes = append(userTimes, u.CreatedAt)
	}

	report = &DashboardData{
		UserStats: UserStats{
			TotalUsers:     len(allUsers),
			UsersToday:     len(FilterUsers(allUsers, WindowToday, now)),
			UsersThisWeek:  len(FilterUsers(allUsers, WindowWeek, now)),
			UsersThisMonth: len(FilterUsers(allUsers, WindowMonth, now)),
			UserGrowthRate: GrowthRate(userTimes, now),
		},
		BookingStats: BookingStats{
			TotalBookings:       len(filteredBookings),
			ConfirmedBookings:   len(confirmed),
			BookingsToday:       len(FilterBookings(allBookings, WindowToday, now)),
			BookingsThisWeek:    len(FilterBookings(allBookings, WindowWeek, now)),
			BookingsThisMonth:   len(FilterBookings(allBookings, WindowMonth, now)),
			TotalRevenue:        TotalRevenue(filteredBookings),
			AverageBookingValue: AverageBookingValue(filteredBookings),
			PopularServices:     PopularServices(confirmed, PopularServicesLimit),
		},
		MessageStats: MessageStats{
			TotalMessages:     len(filteredMessages),
			MessagesToday:     len(FilterMessages(allMessages, WindowToday, now)),
			MessagesThisWeek:  len(FilterMessages(allMessages, WindowWeek, now)),
			MessagesThisMonth: len(FilterMessages(allMessages, WindowMonth, now)),
			ConversionRate:    ConversionRate(len(filteredBookings), len(filteredMessages)),
		},
		TimeSeriesData: TimeSeriesData{
			UserRegistrations: UserSeries(allUsers),
			Bookings:          BookingSeries(filteredBookings),
			Messages:          MessageSeries(filteredMessages),
		},
		CategoryData: CategoryData{
			ServiceCategories: ServiceCategories(filteredBookings, catalog),
			BookingStatus:     BookingStatusBreakdown(filteredBookings),
			MessageSources:    MessageSources(filteredMessages),
		},
	}
	return report
}

// resolveServiceNames fills each booking's Services display text from
// its catalog identifiers. Unresolved identifiers keep whatever raw
// text the record carried.
func (s *Service) resolveServiceNames(recs []BookingRecord, catalog []CatalogEntry) {
	if len(recs) == 0 || len(catalog) == 0 {
		return
	}
	names := make(map[int64]string, len(catalog))
	for _, entry := range catalog {
		names[entry.ID] = entry.Name
	}
	for i := range recs {
		if len(recs[i].ServiceIds) == 0 {
			continue
		}
		resolved := make([]string, 0, len(recs[i].ServiceIds))
		for _, id := range recs[i].ServiceIds {
			if name, ok := names[id]; ok {
				resolved = append(resolved, name)
			}
		}
		if len(resolved) > 0 {
			recs[i].Services = joinServices(resolved)
		}
	}
}

func joinServices(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
