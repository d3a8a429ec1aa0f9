package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims - полезная нагрузка JWT. Общая структура для сервиса
// аутентификации (подпись) и middleware (проверка).
type TokenClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}
