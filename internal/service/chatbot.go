package service

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/studentbite/backend/internal/models"
)

const chatbotFallback = "I'm not sure how to answer that. You can ask about canteen timings, today's specials, or payment methods."

// ChatbotService answers canteen questions by keyword containment. Nothing
// smarter than substring checks is intended here.
type ChatbotService struct {
	db *gorm.DB

	mu  sync.Mutex
	rng *rand.Rand
}

func NewChatbotService(db *gorm.DB, rng *rand.Rand) *ChatbotService {
	return &ChatbotService{db: db, rng: rng}
}

// Reply produces a canned answer for the message.
func (s *ChatbotService) Reply(message string) string {
	msg := strings.ToLower(message)

	switch {
	case containsAny(msg, "timing", "open", "close"):
		return "The canteen is open from 8:00 AM to 6:00 PM, Monday to Saturday."
	case containsAny(msg, "special", "today"):
		name, err := s.randomDishName()
		if err != nil || name == "" {
			return "I couldn't find today's special, but everything is great!"
		}
		return fmt.Sprintf("Today's special is %s! It's delicious.", name)
	case containsAny(msg, "payment", "pay", "card"):
		return "We accept cash, credit/debit cards, and mobile payment apps."
	case containsAny(msg, "hello", "hi"):
		return "Hello! How can I help you with the canteen today?"
	}
	return chatbotFallback
}

func (s *ChatbotService) randomDishName() (string, error) {
	var names []string
	if err := s.db.Model(&models.Dish{}).Order("id ASC").Pluck("name", &names).Error; err != nil {
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

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
