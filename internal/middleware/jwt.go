package middleware

import (
	"net/http"
	"strings"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/logger"
	"cmsarticle/internal/utils/helpers"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// JWTAuth кладёт в контекст пользователя из Bearer-токена. Без заголовка
// запрос идёт дальше анонимно; битый или просроченный токен - 401.
// Права пользователя берутся из grants по его роли.
func JWTAuth(secret string, grants auth.Grants) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), auth.Anonymous())))
				return
			}
			if !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный формат заголовка Authorization")
				helpers.Error(w, http.StatusUnauthorized, "Отсутствует access token")
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный или просроченный токен", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "Неверный или просроченный токен")
				return
			}

			userID, ok1 := claims["user_id"].(float64)
			role, ok2 := claims["role"].(string)
			if !ok1 || !ok2 || userID <= 0 {
				logger.WithCtx(r.Context()).Warn("JWTAuth: недопустимый payload", zap.Any("claims", claims))
				helpers.Error(w, http.StatusUnauthorized, "Недопустимый payload")
				return
			}
			login, _ := claims["login"].(string)

			p := auth.NewPrincipal(int64(userID), login, role, grants.For(role))
			ctx := auth.WithPrincipal(r.Context(), p)

			logger.WithCtx(ctx).Debug("JWTAuth: токен валиден",
				zap.Int64("user_id", p.ID), zap.String("role", role))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth пропускает только аутентифицированных. Ставится после JWTAuth.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.FromContext(r.Context()).IsAnonymous() {
			helpers.Error(w, http.StatusUnauthorized, "Требуется авторизация")
			return
		}
		next.ServeHTTP(w, r)
	})
}
