package testutils

import (
	"notable-notes/notable/database"
	"notable-notes/notable/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory sqlite database with the full schema
// migrated, so service tests run real SQL.
func SetupTestDB() (*database.Database, func()) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	// A single connection keeps every session on the same in-memory
	// database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.RunMigrations(db); err != nil {
		panic(err)
	}

	testDB := &database.Database{DB: db}
	close := func() {
		sqlDB.Close()
	}

	return testDB, close
}

// CreateTestUser inserts a user row for tests.
func CreateTestUser(db *database.Database, email string, staff bool) models.User {
	user := models.User{
		Email:        email,
		DisplayName:  email,
		PasswordHash: "not-a-real-hash",
		IsStaff:      staff,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		panic(err)
	}
	return user
}
