package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"

	"fitness-tracker/internal/services"
	"fitness-tracker/internal/utils"
)

type AuthMiddleware struct {
	authService *services.AuthService
}

func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	utils.LogSuccess("Middleware", "Инициализирован middleware авторизации")
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAuth - middleware для проверки JWT токена.
// Отсутствующий токен даёт 401, невалидный или просроченный - 403.
func (m *AuthMiddleware) RequireAuth(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		authHeader := string(ctx.Request.Header.Peek("Authorization"))
		if authHeader == "" {
			utils.LogWarning("Middleware", "Отсутствует заголовок Authorization")
			writeAuthError(ctx, fasthttp.StatusUnauthorized, "Authorization token required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			utils.LogWarning("Middleware", "Неверный формат заголовка Authorization")
			writeAuthError(ctx, fasthttp.StatusUnauthorized, "Authorization token required")
			return
		}

		claims, err := m.authService.ValidateToken(parts[1])
		if err != nil {
			utils.LogWarning("Middleware", "Невалидный токен: %v", err)
			writeAuthError(ctx, fasthttp.StatusForbidden, "Invalid or expired token")
			return
		}

		ctx.SetUserValue("user_id", claims.UserID)
		ctx.SetUserValue("email", claims.Email)
		utils.LogDebug("Middleware", "Аутентифицирован пользователь: %s", claims.UserID)

		next(ctx)
	}
}

func writeAuthError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	ctx.SetStatusCode(statusCode)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(map[string]string{
		"error": message,
	})
}
