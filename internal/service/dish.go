package service

import (
	"time"

	"gorm.io/gorm"
)

// DishWithStats is a dish row joined with its review aggregates over all
// users. AvgRating is 0 for a dish nobody has reviewed.
type DishWithStats struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
}

// DishReview is a review of one dish with the author's name attached.
type DishReview struct {
	ID       uint      `json:"id"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	UserName string    `json:"user_name"`
	Time     time.Time `json:"timestamp" gorm:"column:timestamp"`
}

type DishService struct {
	db *gorm.DB
}

func NewDishService(db *gorm.DB) *DishService {
	return &DishService{db: db}
}

// List returns every dish with its average rating and review count.
func (s *DishService) List() ([]DishWithStats, error) {
	var dishes []DishWithStats
	err := s.db.Table("dishes").
		Select("dishes.id, dishes.name, dishes.category, dishes.price, COALESCE(AVG(reviews.rating), 0) AS avg_rating, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.dish_id = dishes.id").
		Group("dishes.id").
		Order("dishes.id ASC").
		Scan(&dishes).Error
	if err != nil {
		return nil, err
	}
	return dishes, nil
}

// ReviewsForDish returns a dish's reviews, newest first.
func (s *DishService) ReviewsForDish(dishID uint) ([]DishReview, error) {
	var reviews []DishReview
	err := s.db.Table("reviews").
		Select("reviews.id, reviews.rating, reviews.comment, reviews.timestamp, users.name AS user_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.dish_id = ?", dishID).
		Order("reviews.timestamp DESC, reviews.id DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
