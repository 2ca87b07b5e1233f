package database

import (
	"fmt"
	"log"

	"gathered_backend/internal/config"
	"gathered_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.GroupMembership{},
		&model.Event{},
		&model.EventRSVP{},
		&model.Devotional{},
		&model.StreakRecord{},
		&model.ActivityLog{},
		&model.Badge{},
		&model.UserBadge{},
		&model.NotificationPreference{},
		&model.ChatChannel{},
		&model.ChatMessage{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaults(db)

	return db, nil
}

// seedDefaults inserts the devotional and badge catalogs on an empty
// database so a fresh install has something to show.
func seedDefaults(db *gorm.DB) {
	var count int64
	db.Model(&model.Devotional{}).Count(&count)
	if count == 0 {
		defaults := []model.Devotional{
			{
				Title:   "Strength for Today",
				Passage: "Isaiah 40:31",
				Body:    "But they who wait for the Lord shall renew their strength; they shall mount up with wings like eagles.",
				Author:  "Gathered Team",
			},
			{
				Title:   "Gathered in His Name",
				Passage: "Matthew 18:20",
				Body:    "For where two or three are gathered in my name, there am I among them.",
				Author:  "Gathered Team",
			},
			{
				Title:   "A New Day",
				Passage: "Lamentations 3:22-23",
				Body:    "His mercies never come to an end; they are new every morning; great is your faithfulness.",
				Author:  "Gathered Team",
			},
		}
		for i := range defaults {
			defaults[i].IsEnabled = true
			defaults[i].IsCurrentlyUsed = i == 0
			db.Create(&defaults[i])
		}
	}

	var badgeCount int64
	db.Model(&model.Badge{}).Count(&badgeCount)
	if badgeCount == 0 {
		defaultBadges := []model.Badge{
			{Code: "first_steps", Name: "First Steps", Description: "Recorded your first activity", Enabled: true},
			{Code: "week_of_fire", Name: "Week of Fire", Description: "Kept a 7 day streak alive", Enabled: true},
			{Code: "month_of_fire", Name: "Month of Fire", Description: "Kept a 30 day streak alive", Enabled: true},
			{Code: "unity_100", Name: "Centurion", Description: "Earned 100 unity points", Enabled: true},
		}
		for _, b := range defaultBadges {
			db.Create(&b)
		}
	}
}
