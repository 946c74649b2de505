package service

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/studentbite/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// An in-memory sqlite database exists per connection; pin the pool to one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, role string, points int, badges string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Points:       points,
		Badges:       badges,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createDish(t *testing.T, db *gorm.DB, name, category string, price float64) *models.Dish {
	t.Helper()
	dish := &models.Dish{Name: name, Category: category, Price: price}
	if err := db.Create(dish).Error; err != nil {
		t.Fatalf("failed to create dish: %v", err)
	}
	return dish
}

func createReview(t *testing.T, db *gorm.DB, userID, dishID uint, rating int) *models.Review {
	t.Helper()
	review := &models.Review{UserID: userID, DishID: dishID, Rating: rating, Comment: "test"}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	return review
}

func createTransaction(t *testing.T, db *gorm.DB, userID, dishID uint, when time.Time) {
	t.Helper()
	txn := &models.Transaction{UserID: userID, DishID: dishID, TransactionDate: when}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
}
