package models

import (
	"strings"
	"time"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is an account holder. Points and Badges are mutated only by the
// gamification flow; Badges is persisted as a comma-joined list.
type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Name         string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:student" json:"role"`
	Points       int    `gorm:"not null;default:0" json:"points"`
	Badges       string `gorm:"size:255" json:"-"`
}

// BadgeList splits the stored badge column into an ordered slice.
func (u *User) BadgeList() []string {
	if u.Badges == "" {
		return []string{}
	}
	return strings.Split(u.Badges, ",")
}

// HasBadge reports whether the user already holds the named badge.
func (u *User) HasBadge(name string) bool {
	for _, b := range u.BadgeList() {
		if b == name {
			return true
		}
	}
	return false
}

// AddBadge appends a badge, preserving order and uniqueness. It returns false
// when the badge was already held.
func (u *User) AddBadge(name string) bool {
	if u.HasBadge(name) {
		return false
	}
	badges := append(u.BadgeList(), name)
	u.Badges = strings.Join(badges, ",")
	return true
}

// Dish is a menu item. Immutable from the API's point of view; rows come from
// seeding or admin tooling.
type Dish struct {
	ID       uint    `gorm:"primarykey" json:"id"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	Category string  `gorm:"size:100;not null" json:"category"`
	Price    float64 `gorm:"not null" json:"price"`
}

// Review records one rating of a dish by a user. A user may review the same
// dish any number of times.
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	DishID    uint      `gorm:"not null;index" json:"dish_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

// Transaction records a purchase, independent of review activity.
type Transaction struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	DishID          uint      `gorm:"not null;index" json:"dish_id"`
	TransactionDate time.Time `gorm:"index" json:"transaction_date"`
}

// All returns every entity for schema migration.
func All() []interface{} {
	return []interface{}{&User{}, &Dish{}, &Review{}, &Transaction{}}
}
