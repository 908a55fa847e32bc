package app

import (
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/glamease/glamease/internal/domain"
)

const configCacheTTL = 30 * time.Second

// ConfigManager reads runtime settings from the sys_config table with a
// short lived in-memory cache in front of it.
type ConfigManager struct {
	app   *Application
	mu    sync.RWMutex
	cache map[string]string
	stamp time.Time
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{app: app, cache: make(map[string]string)}
}

func (m *ConfigManager) value(category, key string) string {
	m.mu.RLock()
	if time.Since(m.stamp) < configCacheTTL {
		v := m.cache[category+"."+key]
		m.mu.RUnlock()
		return v
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if time.Since(m.stamp) >= configCacheTTL {
		var rows []domain.SysConfig
		if err := m.app.gormDB.Find(&rows).Error; err != nil {
			zap.L().Warn("settings reload failed", zap.Error(err))
		} else {
			cache := make(map[string]string, len(rows))
			for i := range rows {
				cache[rows[i].Type+"."+rows[i].Name] = rows[i].Value
			}
			m.cache = cache
			m.stamp = time.Now()
		}
	}
	return m.cache[category+"."+key]
}

func (m *ConfigManager) GetString(category, key string) string {
	return m.value(category, key)
}

func (m *ConfigManager) GetInt64(category, key string) int64 {
	return cast.ToInt64(m.value(category, key))
}

func (m *ConfigManager) GetInt(category, key string) int {
	return cast.ToInt(m.value(category, key))
}

func (m *ConfigManager) GetBool(category, key string) bool {
	return cast.ToBool(m.value(category, key))
}

// SetValue writes one setting back to the table and invalidates the cache.
func (m *ConfigManager) SetValue(category, key, value string) error {
	err := m.app.gormDB.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, key).
		Update("value", value).Error
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.stamp = time.Time{}
	m.mu.Unlock()
	return nil
}
