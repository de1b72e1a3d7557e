package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken создаёт access-токен. Права пользователя определяются ролью
// через файл моделей, в токен они не пишутся.
func GenerateToken(secret string, userID int64, login, role string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"login":      login,
		"role":       role,
		"exp":        now.Add(duration).Unix(),
		"iat":        now.Unix(),
		"token_type": "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
