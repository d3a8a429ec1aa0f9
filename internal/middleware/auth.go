package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"github.com/vlados-13/api/internal/models"
)

// Тип для ключа контекста.
type contextKey string

// Ключ для хранения ID пользователя в контексте.
const UserIDKey contextKey = "userID"

// Authenticator возвращает middleware, проверяющий JWT токен в заголовке
// Authorization. Секрет передается при сборке роутера, чтобы не дублировать
// его константой в нескольких пакетах.
//
// Отсутствующий, неправильно оформленный, поддельный или просроченный токен
// отклоняется со статусом 403, как в публичном контракте API.
func Authenticator(secretKey string) func(http.Handler) http.Handler {
	secret := []byte(secretKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем заголовок Authorization и извлекаем токен
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Println("[AuthMiddleware] Заголовок Authorization отсутствует")
				respondForbidden(w, "Токен відсутній!")
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				log.Printf("[AuthMiddleware] Неверный формат заголовка Authorization: %s", authHeader)
				respondForbidden(w, "Токен відсутній!")
				return
			}

			tokenString := headerParts[1]

			// Парсим и валидируем токен (подпись, срок жизни)
			claims := &models.TokenClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				// Убеждаемся, что метод подписи - HS256
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
				}
				return secret, nil
			})

			if err != nil || !token.Valid {
				log.Printf("[AuthMiddleware] Невалидный токен: %v", err)
				respondForbidden(w, "Невірний токен!")
				return
			}

			// Добавляем UserID в контекст запроса
			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)

			log.Printf("[AuthMiddleware] Пользователь %d успешно аутентифицирован", claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext извлекает UserID из контекста запроса.
// Возвращает ID пользователя и true, если ID найден, иначе 0 и false.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// respondForbidden пишет JSON-ответ с сообщением и статусом 403.
func respondForbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	if err := json.NewEncoder(w).Encode(models.MessageResponse{Message: message}); err != nil {
		log.Printf("[AuthMiddleware] Ошибка кодирования ответа: %v", err)
	}
}
