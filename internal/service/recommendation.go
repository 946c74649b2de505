package service

import (
	"gorm.io/gorm"
)

// RecommendationService suggests dishes from the category a user has rated
// highest. Users without review history fall back to the global top-rated
// ranking.
type RecommendationService struct {
	db        *gorm.DB
	analytics *AnalyticsService
}

func NewRecommendationService(db *gorm.DB, analytics *AnalyticsService) *RecommendationService {
	return &RecommendationService{db: db, analytics: analytics}
}

// Recommend returns up to three unreviewed dishes from the user's favorite
// category, best community rating first. An empty slice means the favorite
// category has nothing left to try; no further fallback applies.
func (s *RecommendationService) Recommend(userID uint) ([]DishWithStats, error) {
	category, err := s.favoriteCategory(userID)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return s.analytics.TopRated()
	}

	dishes := []DishWithStats{}
	err = s.db.Table("dishes").
		Select("dishes.id, dishes.name, dishes.category, dishes.price, COALESCE(AVG(reviews.rating), 0) AS avg_rating, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.dish_id = dishes.id").
		Where("dishes.category = ?", category).
		Where("dishes.id NOT IN (?)", s.db.Table("reviews").Select("dish_id").Where("user_id = ?", userID)).
		Group("dishes.id").
		Order("avg_rating DESC, dishes.id ASC").
		Limit(3).
		Scan(&dishes).Error
	if err != nil {
		return nil, err
	}
	return dishes, nil
}

// favoriteCategory finds the category with the highest mean rating among the
// user's own reviews, or "" when the user has none. Ties break on category
// name so the result is stable across storage engines.
func (s *RecommendationService) favoriteCategory(userID uint) (string, error) {
	var categories []string
	err := s.db.Table("reviews").
		Select("dishes.category").
		Joins("JOIN dishes ON dishes.id = reviews.dish_id").
		Where("reviews.user_id = ?", userID).
		Group("dishes.category").
		Order("AVG(reviews.rating) DESC, dishes.category ASC").
		Limit(1).
		Pluck("dishes.category", &categories).Error
	if err != nil {
		return "", err
	}
	if len(categories) == 0 {
		return "", nil
	}
	return categories[0], nil
}
