package config

import (
	"github.com/servihub/reports-api/models"
	"gorm.io/gorm"
)

// SeedDatabase provisions the initial identity set and a few sample reports.
// It is a no-op when users already exist.
func SeedDatabase(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	name := func(s string) *string { return &s }
	users := []models.User{
		{Email: "admin@servihub.com", Role: models.RoleAdmin, Name: name("Admin User")},
		{Email: "user1@servihub.com", Role: models.RoleUser, Name: name("User One")},
		{Email: "user2@servihub.com", Role: models.RoleUser, Name: name("User Two")},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	reports := []models.Report{
		{Type: models.ReportTypeReview, TargetID: 101, Reason: "Spam content", SubmittedBy: &users[1].ID},
		{Type: models.ReportTypeOther, TargetID: 105, Reason: "Harassment", SubmittedBy: &users[2].ID},
		{Type: models.ReportTypeBusiness, TargetID: 105, Reason: "Business Trip", SubmittedBy: &users[1].ID},
	}
	return db.Create(&reports).Error
}
