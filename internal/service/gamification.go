package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/studentbite/backend/internal/models"
)

const PointsPerReview = 10

// Badge names and their review-count thresholds.
const (
	BadgeFirstReview = "First Review"
	BadgeFoodCritic  = "Food Critic"
	BadgeGourmet     = "Gourmet"

	firstReviewThreshold = 1
	foodCriticThreshold  = 10
	gourmetThreshold     = 25
)

// ReviewResult is what a successful review submission reports back.
type ReviewResult struct {
	ReviewID     uint   `json:"review_id"`
	PointsAdded  int    `json:"points_added"`
	BadgeAwarded string `json:"badge_awarded,omitempty"`
}

// GamificationService creates reviews and applies the points/badge
// progression that follows from them.
type GamificationService struct {
	db *gorm.DB
}

func NewGamificationService(db *gorm.DB) *GamificationService {
	return &GamificationService{db: db}
}

// CreateReview stores a review, credits the fixed points and evaluates the
// badge ladder, all inside one transaction so a failure cannot leave points
// credited without the matching badge write.
func (s *GamificationService) CreateReview(userID, dishID uint, rating int, comment string) (*ReviewResult, error) {
	if userID == 0 || dishID == 0 || comment == "" || rating < 1 || rating > 5 {
		return nil, ErrMissingFields
	}

	result := &ReviewResult{PointsAdded: PointsPerReview}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		var dish models.Dish
		if err := tx.First(&dish, dishID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDishNotFound
			}
			return err
		}

		review := models.Review{
			UserID:  userID,
			DishID:  dishID,
			Rating:  rating,
			Comment: comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		result.ReviewID = review.ID

		// In-database increment, so concurrent reviews cannot lose points.
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", PointsPerReview)).Error; err != nil {
			return err
		}

		var reviewCount int64
		if err := tx.Model(&models.Review{}).Where("user_id = ?", userID).Count(&reviewCount).Error; err != nil {
			return err
		}

		badge := nextBadge(int(reviewCount), &user)
		if badge != "" {
			user.AddBadge(badge)
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("badges", user.Badges).Error; err != nil {
				return err
			}
			result.BadgeAwarded = badge
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// nextBadge walks the ladder lowest tier first and stops at the first badge
// that is both reached and not yet held. At most one badge is awarded per
// review; a user who jumps straight past several thresholds collects the
// higher tiers on later reviews. That throttling is deliberate product
// behavior, not an accident of the implementation.
func nextBadge(reviewCount int, user *models.User) string {
	if reviewCount >= firstReviewThreshold && !user.HasBadge(BadgeFirstReview) {
		return BadgeFirstReview
	} else if reviewCount >= foodCriticThreshold && !user.HasBadge(BadgeFoodCritic) {
		return BadgeFoodCritic
	} else if reviewCount >= gourmetThreshold && !user.HasBadge(BadgeGourmet) {
		return BadgeGourmet
	}
	return ""
}
