package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/studentbite/backend/internal/models"
	"github.com/studentbite/backend/internal/types"
)

// Admin logins are special-cased against this fixed credential; the stored
// hash is not consulted for it.
const (
	adminUsername = "admin"
	adminPassword = "admin@1234"
)

type AuthService struct {
	db          *gorm.DB
	jwtSecret   string
	expireAfter time.Duration
}

func NewAuthService(db *gorm.DB, jwtSecret string, expireAfter time.Duration) *AuthService {
	return &AuthService{
		db:          db,
		jwtSecret:   jwtSecret,
		expireAfter: expireAfter,
	}
}

// Register creates a student account. Username and email must both be unused.
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("name = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleStudent,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates a user and issues a JWT. The admin credential bypasses
// the hash comparison but still requires the seeded admin row.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	if username == adminUsername && password == adminPassword {
		var admin models.User
		if err := s.db.Where("name = ?", adminUsername).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrAdminNotSeeded
			}
			return nil, "", err
		}
		token, err := s.generateToken(&admin)
		if err != nil {
			return nil, "", err
		}
		return &admin, token, nil
	}

	var user models.User
	if err := s.db.Where("name = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": float64(user.ID),
		"role":    user.Role,
		"exp":     time.Now().Add(s.expireAfter).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a JWT, satisfying middleware.TokenValidator.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	role, _ := claims["role"].(string)

	return &types.TokenClaims{
		UserID: uint(userID),
		Role:   role,
	}, nil
}
