package app

import (
	_ "embed"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glamease/glamease/internal/domain"
	"github.com/glamease/glamease/pkg/common"
)

//go:embed config_schemas.json
var configSchemasData []byte

type ConfigSchema struct {
	Key         string `json:"key"`
	Default     string `json:"default"`
	Description string `json:"description"`
}

type ConfigSchemasJSON struct {
	Schemas []ConfigSchema `json:"schemas"`
}

func (a *Application) checkSuper() {
	const superEmail = "admin@glamease.in"
	defaultPassword := common.IfEmptyStr(os.Getenv("GLAMEASE_ADMIN_PASSWORD"), "glamease")

	hashedPassword, err := common.HashPassword(defaultPassword)
	if err != nil {
		zap.L().Error("failed to hash default admin password", zap.Error(err))
		return
	}

	var admin domain.SysUser
	err = a.gormDB.Where("email = ?", superEmail).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysUser{
			ID:         common.UUIDint64(),
			Email:      superEmail,
			Password:   hashedPassword,
			Name:       "Administrator",
			Role:       domain.RoleAdmin,
			IsVerified: true,
			LastLogin:  time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("email", superEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(admin.Password) == ""
	resetRole := !strings.EqualFold(admin.Role, domain.RoleAdmin)
	resetVerified := !admin.IsVerified

	if !resetPassword && !resetRole && !resetVerified {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetRole {
		updates["role"] = domain.RoleAdmin
	}
	if resetVerified {
		updates["is_verified"] = true
	}

	if err := a.gormDB.Model(&domain.SysUser{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default admin account",
		zap.String("email", superEmail),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("roleReset", resetRole),
		zap.Bool("verifiedReset", resetVerified))
}

func (a *Application) checkSettings() {
	// Load configuration definitions from the embedded JSON file
	var schemasData ConfigSchemasJSON
	if err := json.Unmarshal(configSchemasData, &schemasData); err != nil {
		zap.L().Error("failed to load config schemas from JSON", zap.Error(err))
		return
	}

	// Iterate over all configuration definitions, checking and initializing missing entries
	for sortid, schema := range schemasData.Schemas {
		// Parse key: "category.name" -> category, name
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}

		category := parts[0]
		name := parts[1]

		// Check whether the configuration already exists
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     0,
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

// checkDefaultServices seeds the storefront catalog on first start.
func (a *Application) checkDefaultServices() {
	defaultServices := []domain.SalonService{
		{Name: "Haircut & Styling", Category: domain.CategoryWomen, PriceMin: 499, PriceMax: 1499, Duration: 60, Description: "Cut, wash and blow-dry at your doorstep"},
		{Name: "Facial & Cleanup", Category: domain.CategoryWomen, PriceMin: 799, PriceMax: 2499, Duration: 75, Description: "Fruit, gold and hydra facial options"},
		{Name: "Waxing", Category: domain.CategoryWomen, PriceMin: 399, PriceMax: 1299, Duration: 45, Description: "Full arms, legs and body waxing"},
		{Name: "Threading", Category: domain.CategoryWomen, PriceMin: 49, PriceMax: 199, Duration: 15, Description: "Eyebrows, upper lip and full face"},
		{Name: "Manicure & Pedicure", Category: domain.CategoryWomen, PriceMin: 599, PriceMax: 1899, Duration: 90, Description: "Classic and spa mani-pedi"},
		{Name: "Bridal Makeup", Category: domain.CategoryWomen, PriceMin: 4999, PriceMax: 24999, Duration: 180, Description: "Bridal and party makeup packages"},
		{Name: "Hair Spa", Category: domain.CategoryWomen, PriceMin: 899, PriceMax: 2999, Duration: 60, Description: "Deep conditioning hair spa treatment"},
		{Name: "Kids Haircut", Category: domain.CategoryKids, PriceMin: 299, PriceMax: 699, Duration: 30, Description: "Gentle haircuts for children"},
		{Name: "Home Spa", Category: domain.CategoryHome, PriceMin: 1499, PriceMax: 4999, Duration: 120, Description: "Full body massage and spa at home"},
		{Name: "Beauty Products", Category: domain.CategoryProducts, PriceMin: 199, PriceMax: 4999, Duration: 0, Description: "Salon grade products delivered with your service"},
	}

	for _, svc := range defaultServices {
		var count int64
		a.gormDB.Model(&domain.SalonService{}).Where("name = ?", svc.Name).Count(&count)
		if count == 0 {
			svc.IsActive = true
			svc.CreatedAt = time.Now()
			svc.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&svc).Error; err != nil {
				zap.L().Error("failed to create default service",
					zap.String("name", svc.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default service",
					zap.String("name", svc.Name), zap.String("category", svc.Category))
			}
		}
	}
}
