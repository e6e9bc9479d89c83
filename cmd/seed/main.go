// Command seed bootstraps a development database with commission
// settings and a demo doctor, then prints access tokens for the demo
// doctor and an admin so the API can be exercised immediately.
package main

import (
	"context"
	"log"

	"medipay/internal/config"
	"medipay/internal/models"
	"medipay/internal/repositories"
	"medipay/internal/utils"

	"github.com/shopspring/decimal"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	ctx := context.Background()

	settingsRepo := repositories.NewSettingsRepository(repositories.DB)
	settings, err := settingsRepo.Get(ctx)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if settings.StandardCommission.IsZero() && settings.EmergencyCommission.IsZero() {
		settings.StandardCommission = decimal.RequireFromString("10")
		settings.EmergencyCommission = decimal.RequireFromString("20")
		if err := settingsRepo.Update(ctx, settings); err != nil {
			log.Fatalf("Failed to seed settings: %v", err)
		}
		log.Println("Seeded commission settings")
	}

	doctor := models.Doctor{
		Name:        "Dr. Demo",
		Email:       "demo.doctor@medipay.local",
		Phone:       "+911234567890",
		Specialty:   "General Medicine",
		IsAvailable: true,
		BankDetails: models.BankDetails{
			AccountHolderName: "Dr. Demo",
			AccountNumber:     "000123456789",
			IFSCCode:          "HDFC0001234",
		},
	}

	var existing models.Doctor
	result := repositories.DB.Where("email = ?", doctor.Email).First(&existing)
	if result.Error == nil {
		doctor = existing
		log.Println("Demo doctor already exists")
	} else {
		if err := repositories.DB.Create(&doctor).Error; err != nil {
			log.Fatalf("Failed to create demo doctor: %v", err)
		}
		wallet := models.Wallet{DoctorID: doctor.ID}
		if err := repositories.DB.Create(&wallet).Error; err != nil {
			log.Fatalf("Failed to create demo wallet: %v", err)
		}
		log.Printf("Created demo doctor %d with empty wallet", doctor.ID)
	}

	doctorToken, _, err := utils.GenerateTokens(&models.UserClaims{
		UserID:      doctor.ID,
		Email:       doctor.Email,
		Role:        models.RoleDoctor,
		Permissions: models.GetDefaultPermissions(models.RoleDoctor),
	})
	if err != nil {
		log.Fatalf("Failed to generate doctor token: %v", err)
	}

	adminToken, _, err := utils.GenerateTokens(&models.UserClaims{
		UserID:      1,
		Email:       "admin@medipay.local",
		Role:        models.RoleAdmin,
		Permissions: models.GetDefaultPermissions(models.RoleAdmin),
	})
	if err != nil {
		log.Fatalf("Failed to generate admin token: %v", err)
	}

	log.Printf("Doctor access token:\n%s", doctorToken)
	log.Printf("Admin access token:\n%s", adminToken)
}
