// Package store adapts the persistence layer (gorm tables plus the
// legacy spreadsheet mirror) to the read-only record providers the
// analytics pipeline consumes.
package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glamease/glamease/internal/analytics"
	"github.com/glamease/glamease/internal/domain"
	"github.com/glamease/glamease/internal/sheets"
)

// Store implements every analytics provider on top of the database and
// the spreadsheet data directory.
type Store struct {
	db      *gorm.DB
	dataDir string
}

var (
	_ analytics.BookingProvider = (*Store)(nil)
	_ analytics.MessageProvider = (*Store)(nil)
	_ analytics.UserProvider    = (*Store)(nil)
	_ analytics.CatalogProvider = (*Store)(nil)
)

func NewStore(db *gorm.DB, dataDir string) *Store {
	return &Store{db: db, dataDir: dataDir}
}

// NewAnalyticsService builds the dashboard pipeline over this store.
func (s *Store) NewAnalyticsService() *analytics.Service {
	return analytics.NewService(s, s, s, s)
}

// AllBookings loads every booking row as a pipeline record. Service
// names stay unresolved here; the pipeline resolves ids against the
// catalog provider.
func (s *Store) AllBookings(ctx context.Context) ([]analytics.BookingRecord, error) {
	var bookings []domain.Booking
	if err := s.db.WithContext(ctx).Find(&bookings).Error; err != nil {
		return nil, err
	}
	records := make([]analytics.BookingRecord, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		records = append(records, analytics.BookingRecord{
			ID:          b.ID,
			ServiceIds:  b.ServiceIdList(),
			Services:    serviceFreeText(b.ServiceIds),
			TotalAmount: b.TotalAmount,
			Status:      b.Status,
			CreatedAt:   b.CreatedAt,
			Appointment: b.AppointmentAt,
			Notes:       b.Notes,
		})
	}
	return records, nil
}

// AllMessages merges database contact messages with rows that exist
// only in the legacy spreadsheet (submissions that predate the
// database). Spreadsheet timestamps are kept verbatim so the pipeline
// applies its own normalization.
func (s *Store) AllMessages(ctx context.Context) ([]analytics.MessageRecord, error) {
	var stored []domain.ContactMessage
	if err := s.db.WithContext(ctx).Find(&stored).Error; err != nil {
		return nil, err
	}
	records := make([]analytics.MessageRecord, 0, len(stored))
	seen := make(map[string]bool, len(stored))
	for i := range stored {
		m := &stored[i]
		records = append(records, analytics.MessageRecord{
			Name:            m.Name,
			Phone:           m.Phone,
			ServiceInterest: m.ServiceInterest,
			Address:         m.Address,
			Message:         m.Message,
			SubmittedAt:     sheets.FormatLegacyTimestamp(m.CreatedAt),
		})
		seen[messageKey(m.Phone, m.Message)] = true
	}

	path := filepath.Join(s.dataDir, sheets.ContactSheetFile)
	if _, err := os.Stat(path); err != nil {
		return records, nil
	}
	rows, err := sheets.ReadContactRows(path)
	if err != nil {
		zap.L().Warn("contact sheet read failed, using database rows only",
			zap.String("path", path), zap.Error(err))
		return records, nil
	}
	for _, r := range rows {
		if seen[messageKey(r.Phone, r.Message)] {
			continue
		}
		records = append(records, analytics.MessageRecord{
			Name:            r.Name,
			Phone:           r.Phone,
			ServiceInterest: r.ServiceInterest,
			Address:         r.Address,
			Message:         r.Message,
			SubmittedAt:     r.SubmittedAt,
		})
	}
	return records, nil
}

// AllUsers loads every registered account.
func (s *Store) AllUsers(ctx context.Context) ([]analytics.UserRecord, error) {
	var users []domain.SysUser
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	records := make([]analytics.UserRecord, 0, len(users))
	for i := range users {
		u := &users[i]
		records = append(records, analytics.UserRecord{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	return records, nil
}

// ActiveServices loads the active catalog.
func (s *Store) ActiveServices(ctx context.Context) ([]analytics.CatalogEntry, error) {
	var services []domain.SalonService
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&services).Error; err != nil {
		return nil, err
	}
	entries := make([]analytics.CatalogEntry, 0, len(services))
	for i := range services {
		sv := &services[i]
		entries = append(entries, analytics.CatalogEntry{
			ID:       sv.ID,
			Name:     sv.Name,
			Category: sv.Category,
			Active:   sv.IsActive,
		})
	}
	return entries, nil
}

// ResolveServiceNames maps service ids to a comma separated display
// string for exports and notifications.
func (s *Store) ResolveServiceNames(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	var services []domain.SalonService
	if err := s.db.Where("id in ?", ids).Find(&services).Error; err != nil {
		return ""
	}
	byID := make(map[int64]string, len(services))
	for i := range services {
		byID[services[i].ID] = services[i].Name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// serviceFreeText keeps a legacy free-text services cell only when the
// column does not hold a JSON id array.
func serviceFreeText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "[") {
		return ""
	}
	return raw
}

func messageKey(phone, msg string) string {
	return strings.TrimSpace(phone) + "|" + strings.TrimSpace(msg)
}
