package service

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/studentbite/backend/internal/models"
)

const (
	trailingWindowDays   = 30
	forecastDays         = 7
	defaultDailySaleRate = 5.0
	leaderboardSize      = 10
	heatmapPoints        = 100
)

type LeaderboardEntry struct {
	ID     uint     `json:"id"`
	Name   string   `json:"name"`
	Points int      `json:"points"`
	Badges []string `json:"badges"`
}

type PopularityEntry struct {
	Name        string `json:"name"`
	ReviewCount int    `json:"review_count"`
}

type QualityEntry struct {
	Name      string  `json:"name"`
	AvgRating float64 `json:"avg_rating"`
}

type ForecastResult struct {
	Labels      []string `json:"labels"`
	Predictions []int    `json:"predictions"`
}

type MonthlyTrend struct {
	Name        string `json:"name"`
	ReviewCount int    `json:"review_count"`
}

type SeasonalFavorite struct {
	Name   string `json:"name"`
	Season string `json:"season"`
}

type TrendsResult struct {
	MonthlyTrend     MonthlyTrend     `json:"monthly_trend"`
	SeasonalFavorite SeasonalFavorite `json:"seasonal_favorite"`
}

type TopEarner struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type RevenueResult struct {
	TotalRevenue float64   `json:"total_revenue"`
	TopEarner    TopEarner `json:"top_earner"`
}

type HeatmapPoint struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Value int `json:"value"`
}

// AnalyticsService computes read-only derivations over the four entities.
// Randomness (forecast jitter, seasonal pick, the heatmap stub) comes from an
// injected source so tests can make it deterministic, and the clock is
// injected for the same reason.
type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewAnalyticsService(db *gorm.DB, rng *rand.Rand, now func() time.Time) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{db: db, rng: rng, now: now}
}

// Leaderboard returns the top students by points, badges split into a slice.
func (s *AnalyticsService) Leaderboard() ([]LeaderboardEntry, error) {
	var users []models.User
	err := s.db.Where("role = ?", models.RoleStudent).
		Order("points DESC, id ASC").
		Limit(leaderboardSize).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = LeaderboardEntry{
			ID:     u.ID,
			Name:   u.Name,
			Points: u.Points,
			Badges: u.BadgeList(),
		}
	}
	return entries, nil
}

// TopRated returns the three best dishes by average rating. Dishes without
// reviews never appear here.
func (s *AnalyticsService) TopRated() ([]DishWithStats, error) {
	var dishes []DishWithStats
	err := s.db.Table("dishes").
		Select("dishes.id, dishes.name, dishes.category, dishes.price, AVG(reviews.rating) AS avg_rating, COUNT(reviews.id) AS review_count").
		Joins("JOIN reviews ON reviews.dish_id = dishes.id").
		Group("dishes.id").
		Order("avg_rating DESC, dishes.id ASC").
		Limit(3).
		Scan(&dishes).Error
	if err != nil {
		return nil, err
	}
	return dishes, nil
}

// Popularity ranks dishes by review count; unreviewed dishes count as 0.
func (s *AnalyticsService) Popularity() ([]PopularityEntry, error) {
	var entries []PopularityEntry
	err := s.db.Table("dishes").
		Select("dishes.name, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.dish_id = dishes.id").
		Group("dishes.id").
		Order("review_count DESC, dishes.id ASC").
		Limit(10).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Quality lists every dish with a positive average rating, best first.
func (s *AnalyticsService) Quality() ([]QualityEntry, error) {
	var entries []QualityEntry
	err := s.db.Table("dishes").
		Select("dishes.name, COALESCE(AVG(reviews.rating), 0) AS avg_rating").
		Joins("LEFT JOIN reviews ON reviews.dish_id = dishes.id").
		Group("dishes.id").
		Having("avg_rating > 0").
		Order("avg_rating DESC, dishes.id ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Forecast projects 7 days of demand from the busiest dish of the trailing
// window. Deliberately naive: mean daily rate plus uniform jitter, no model.
func (s *AnalyticsService) Forecast() (*ForecastResult, error) {
	since := s.now().AddDate(0, 0, -trailingWindowDays)

	var sales struct {
		DishID     uint
		DailySales int
	}
	rate := defaultDailySaleRate
	err := s.db.Table("transactions").
		Select("dish_id, COUNT(*) AS daily_sales").
		Where("transaction_date >= ?", since).
		Group("dish_id").
		Order("daily_sales DESC, dish_id ASC").
		Limit(1).
		Scan(&sales).Error
	if err != nil {
		return nil, err
	}
	if sales.DailySales > 0 {
		rate = float64(sales.DailySales) / trailingWindowDays
	}

	result := &ForecastResult{
		Labels:      make([]string, forecastDays),
		Predictions: make([]int, forecastDays),
	}
	today := s.now()
	for i := 0; i < forecastDays; i++ {
		result.Labels[i] = today.AddDate(0, 0, i).Format("2006-01-02")
		jitter := s.uniform(-0.1, 0.1)
		result.Predictions[i] = int(math.Round(rate * (1 + jitter)))
	}
	return result, nil
}

// Trends returns the most reviewed dish of the trailing window and a randomly
// chosen dish from the current season's category.
func (s *AnalyticsService) Trends() (*TrendsResult, error) {
	since := s.now().AddDate(0, 0, -trailingWindowDays)

	trend := MonthlyTrend{Name: "N/A", ReviewCount: 0}
	var top MonthlyTrend
	err := s.db.Table("reviews").
		Select("dishes.name, COUNT(reviews.id) AS review_count").
		Joins("JOIN dishes ON dishes.id = reviews.dish_id").
		Where("reviews.timestamp >= ?", since).
		Group("dishes.id").
		Order("review_count DESC, dishes.id ASC").
		Limit(1).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	if top.ReviewCount > 0 {
		trend = top
	}

	season, category := seasonForMonth(s.now().Month())
	favorite := SeasonalFavorite{Name: "N/A", Season: season}
	name, err := s.randomDishName(category)
	if err != nil {
		return nil, err
	}
	if name != "" {
		favorite.Name = name
	}

	return &TrendsResult{MonthlyTrend: trend, SeasonalFavorite: favorite}, nil
}

// Revenue sums dish prices over the trailing window's transactions and finds
// the all-time top earning dish.
func (s *AnalyticsService) Revenue() (*RevenueResult, error) {
	since := s.now().AddDate(0, 0, -trailingWindowDays)

	var total struct {
		TotalRevenue float64
	}
	err := s.db.Table("transactions").
		Select("COALESCE(SUM(dishes.price), 0) AS total_revenue").
		Joins("JOIN dishes ON dishes.id = transactions.dish_id").
		Where("transactions.transaction_date >= ?", since).
		Scan(&total).Error
	if err != nil {
		return nil, err
	}

	earner := TopEarner{Name: "N/A", Revenue: 0}
	var top struct {
		Name    string
		Revenue float64
	}
	err = s.db.Table("transactions").
		Select("dishes.name, SUM(dishes.price) AS revenue").
		Joins("JOIN dishes ON dishes.id = transactions.dish_id").
		Group("dishes.id").
		Order("revenue DESC, dishes.id ASC").
		Limit(1).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	if top.Name != "" {
		earner = TopEarner{Name: top.Name, Revenue: top.Revenue}
	}

	return &RevenueResult{TotalRevenue: total.TotalRevenue, TopEarner: earner}, nil
}

// Heatmap produces the synthetic feedback heatmap. Placeholder data, not a
// spatial aggregation.
func (s *AnalyticsService) Heatmap() []HeatmapPoint {
	points := make([]HeatmapPoint, heatmapPoints)
	for i := range points {
		points[i] = HeatmapPoint{
			X:     s.intn(10, 790),
			Y:     s.intn(10, 390),
			Value: s.intn(1, 5),
		}
	}
	return points
}

// randomDishName picks one dish of the category uniformly with the injected
// RNG. ORDER BY RAND() is MySQL-only, so the choice happens in process.
func (s *AnalyticsService) randomDishName(category string) (string, error) {
	var names []string
	if err := s.db.Model(&models.Dish{}).Where("category = ?", category).
		Order("id ASC").Pluck("name", &names).Error; err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", nil
	}
	s.mu.Lock()
	idx := s.rng.Intn(len(names))
	s.mu.Unlock()
	return names[idx], nil
}

func (s *AnalyticsService) uniform(min, max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Float64()*(max-min)
}

// intn returns a uniform integer in [min, max].
func (s *AnalyticsService) intn(min, max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min+1)
}

func seasonForMonth(m time.Month) (season, category string) {
	switch m {
	case time.December, time.January, time.February:
		return "Winter", "hot beverage"
	case time.March, time.April, time.May:
		return "Spring", "salad"
	case time.June, time.July, time.August:
		return "Summer", "cold beverage"
	default:
		return "Autumn", "soup"
	}
}
