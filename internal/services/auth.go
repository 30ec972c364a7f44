package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"fitness-tracker/internal/utils"
)

var ErrInvalidToken = errors.New("невалидный токен")

type AuthService struct {
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(secret string, expiration time.Duration) *AuthService {
	utils.LogSuccess("AuthService", fmt.Sprintf("Инициализирован сервис аутентификации (TTL токена: %v)", expiration))
	return &AuthService{
		jwtSecret:     secret,
		jwtExpiration: expiration,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	utils.LogDebug("AuthService", "Хеширование пароля...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError("AuthService", "Ошибка хеширования пароля", err)
		return "", err
	}

	return string(hashedPassword), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		utils.LogWarning("AuthService", "Неверный пароль")
		return err
	}
	return nil
}

// Claims - полезная нагрузка токена: идентификатор и email пользователя
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (s *AuthService) GenerateToken(userID, email string) (string, error) {
	utils.LogDebug("AuthService", "Генерация JWT токена для пользователя: %s", userID)

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		utils.LogError("AuthService", "Ошибка подписи токена", err)
		return "", err
	}

	utils.LogSuccess("AuthService", "JWT токен создан для пользователя: %s", userID)
	return signedToken, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		utils.LogWarning("AuthService", "Невалидный токен: %v", err)
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		utils.LogWarning("AuthService", "Токен не прошёл валидацию")
		return nil, ErrInvalidToken
	}

	return claims, nil
}
