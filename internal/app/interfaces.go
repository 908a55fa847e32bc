package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/glamease/glamease/config"
	"github.com/glamease/glamease/internal/analytics"
	"github.com/glamease/glamease/internal/assistant"
	"github.com/glamease/glamease/internal/notify"
	"github.com/glamease/glamease/internal/store"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// ConfigManagerProvider provides configuration manager access
type ConfigManagerProvider interface {
	ConfigMgr() *ConfigManager
}

// BusProvider provides the in-process event bus used to decouple the
// booking/contact request paths from notification delivery.
type BusProvider interface {
	Bus() EventBus.Bus
}

// SalonProvider exposes the salon collaborators built during Init.
type SalonProvider interface {
	Store() *store.Store
	Analytics() *analytics.Service
	Mailer() *notify.Mailer
	Assistant() *assistant.Client
}

// AppContext combines all provider interfaces for full application context.
// Services should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	ConfigManagerProvider
	BusProvider
	SalonProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
