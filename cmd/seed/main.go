package main

import (
	"encoding/csv"
	"flag"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/studentbite/backend/config"
	"github.com/studentbite/backend/internal/database"
	"github.com/studentbite/backend/internal/models"
)

const (
	mockReviews      = 50
	mockTransactions = 200
)

var reviewComments = []string{
	"Absolutely delicious, will order again!", "It was okay, not great.",
	"Loved it! Best on campus.", "A bit cold, but tasted good.", "My favorite!",
	"Not worth the price.", "Highly recommend this one.", "Could use more seasoning.",
}

func main() {
	csvPath := flag.String("dishes", "canteen_data.csv", "CSV file with dish name, category and price")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if err := seedUsers(db); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	if err := seedDishes(db, *csvPath); err != nil {
		log.Fatalf("Failed to seed dishes: %v", err)
	}
	if err := seedReviews(db, rng); err != nil {
		log.Fatalf("Failed to seed reviews: %v", err)
	}
	if err := seedTransactions(db, rng); err != nil {
		log.Fatalf("Failed to seed transactions: %v", err)
	}

	log.Println("Database seeding complete")
}

// seedUsers inserts the admin plus a handful of demo students. The admin
// password hash is stored but the login path special-cases that credential.
func seedUsers(db *gorm.DB) error {
	if err := db.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		return err
	}

	users := []struct {
		name, email, password, role, badges string
		points                              int
	}{
		{"admin", "admin@studentbite.com", "admin@1234", models.RoleAdmin, "", 0},
		{"Alex Doe", "alex.doe@example.com", "password123", models.RoleStudent, "First Review,Food Critic", 150},
		{"Jane Smith", "jane.smith@example.com", "password123", models.RoleStudent, "First Review,Food Critic,Gourmet", 280},
		{"Sam Wilson", "sam.wilson@example.com", "password123", models.RoleStudent, "First Review", 80},
		{"Maria Garcia", "maria.garcia@example.com", "password123", models.RoleStudent, "First Review,Food Critic", 210},
	}

	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hashed),
			Role:         u.role,
			Points:       u.points,
			Badges:       u.badges,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}
	log.Printf("Inserted %d users", len(users))
	return nil
}

func seedDishes(db *gorm.DB, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return err
	}
	if len(records) < 2 {
		log.Printf("No dish rows in %s", path)
		return nil
	}

	// Map header columns so column order in the CSV does not matter.
	cols := map[string]int{}
	for i, name := range records[0] {
		cols[name] = i
	}

	if err := db.Where("1 = 1").Delete(&models.Dish{}).Error; err != nil {
		return err
	}

	inserted := 0
	for _, row := range records[1:] {
		price, err := strconv.ParseFloat(row[cols["price"]], 64)
		if err != nil || price <= 0 {
			continue
		}
		dish := models.Dish{
			Name:     row[cols["name"]],
			Category: row[cols["category"]],
			Price:    price,
		}
		if err := db.Create(&dish).Error; err != nil {
			return err
		}
		inserted++
	}
	log.Printf("Inserted %d dishes", inserted)
	return nil
}

func seedReviews(db *gorm.DB, rng *rand.Rand) error {
	if err := db.Where("1 = 1").Delete(&models.Review{}).Error; err != nil {
		return err
	}

	userIDs, dishIDs, err := studentAndDishIDs(db)
	if err != nil {
		return err
	}
	if len(userIDs) == 0 || len(dishIDs) == 0 {
		log.Println("Cannot seed reviews: no users or dishes found")
		return nil
	}

	for i := 0; i < mockReviews; i++ {
		review := models.Review{
			UserID:  userIDs[rng.Intn(len(userIDs))],
			DishID:  dishIDs[rng.Intn(len(dishIDs))],
			Rating:  2 + rng.Intn(4),
			Comment: reviewComments[rng.Intn(len(reviewComments))],
		}
		if err := db.Create(&review).Error; err != nil {
			return err
		}
	}
	log.Printf("Inserted %d mock reviews", mockReviews)
	return nil
}

func seedTransactions(db *gorm.DB, rng *rand.Rand) error {
	if err := db.Where("1 = 1").Delete(&models.Transaction{}).Error; err != nil {
		return err
	}

	userIDs, dishIDs, err := studentAndDishIDs(db)
	if err != nil {
		return err
	}
	if len(userIDs) == 0 || len(dishIDs) == 0 {
		log.Println("Cannot seed transactions: no users or dishes found")
		return nil
	}

	today := time.Now()
	for i := 0; i < mockTransactions; i++ {
		txn := models.Transaction{
			UserID:          userIDs[rng.Intn(len(userIDs))],
			DishID:          dishIDs[rng.Intn(len(dishIDs))],
			TransactionDate: today.AddDate(0, 0, -rng.Intn(91)),
		}
		if err := db.Create(&txn).Error; err != nil {
			return err
		}
	}
	log.Printf("Inserted %d mock transactions", mockTransactions)
	return nil
}

func studentAndDishIDs(db *gorm.DB) (userIDs, dishIDs []uint, err error) {
	if err = db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Pluck("id", &userIDs).Error; err != nil {
		return nil, nil, err
	}
	if err = db.Model(&models.Dish{}).Pluck("id", &dishIDs).Error; err != nil {
		return nil, nil, err
	}
	return userIDs, dishIDs, nil
}
