package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/valyala/fasthttp"

	"fitness-tracker/internal/models"
	"fitness-tracker/internal/repository"
	"fitness-tracker/internal/services"
	"fitness-tracker/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	userRepo    repository.UserRepository
}

func NewAuthHandler(authService *services.AuthService, userRepo repository.UserRepository) *AuthHandler {
	utils.LogSuccess("AuthHandler", "Инициализирован обработчик аутентификации")
	return &AuthHandler{
		authService: authService,
		userRepo:    userRepo,
	}
}

// RegisterHandler обрабатывает POST /api/auth/register
func (h *AuthHandler) RegisterHandler(ctx *fasthttp.RequestCtx) {
	var req models.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AuthHandler", "Ошибка парсинга JSON", err)
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Invalid request body",
		})
		return
	}

	if req.Email == "" || req.Password == "" || req.Username == "" {
		utils.LogWarning("AuthHandler", "Отсутствуют обязательные поля")
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Email, password and username are required",
		})
		return
	}

	if len(req.Password) < 6 {
		utils.LogWarning("AuthHandler", "Пароль слишком короткий")
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Password must be at least 6 characters",
		})
		return
	}

	utils.LogInfo("AuthHandler", "Регистрация пользователя: %s", req.Email)

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		utils.LogError("AuthHandler", "Ошибка хеширования пароля", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Internal server error",
		})
		return
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: passwordHash,
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		if err == repository.ErrEmailTaken {
			utils.LogWarning("AuthHandler", "Email уже зарегистрирован: %s", req.Email)
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			ctx.SetContentType("application/json")
			_ = json.NewEncoder(ctx).Encode(map[string]string{
				"error": "Email already registered.",
			})
			return
		}
		utils.LogError("AuthHandler", fmt.Sprintf("Ошибка создания пользователя %s", req.Email), err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Internal server error",
		})
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Email)
	if err != nil {
		utils.LogError("AuthHandler", "Ошибка генерации токена", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Internal server error",
		})
		return
	}

	utils.LogSuccess("AuthHandler", "Пользователь зарегистрирован: %s (ID: %s)", user.Email, user.ID)

	ctx.SetStatusCode(fasthttp.StatusCreated)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(models.AuthResponse{
		Token: token,
		User:  user.Public(),
	})
}

// LoginHandler обрабатывает POST /api/auth/login.
// Несуществующий email и неверный пароль дают одинаковый ответ,
// чтобы не раскрывать, какое из полей неверно.
func (h *AuthHandler) LoginHandler(ctx *fasthttp.RequestCtx) {
	var req models.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AuthHandler", "Ошибка парсинга JSON", err)
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Invalid request body",
		})
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.LogWarning("AuthHandler", "Отсутствуют обязательные поля")
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Email and password are required",
		})
		return
	}

	utils.LogInfo("AuthHandler", "Попытка входа пользователя: %s", req.Email)

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err != repository.ErrUserNotFound {
			utils.LogError("AuthHandler", fmt.Sprintf("Ошибка поиска пользователя %s", req.Email), err)
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetContentType("application/json")
			_ = json.NewEncoder(ctx).Encode(map[string]string{
				"error": "Internal server error",
			})
			return
		}
		utils.LogWarning("AuthHandler", "Пользователь не найден: %s", req.Email)
		writeInvalidCredentials(ctx)
		return
	}

	if err := h.authService.CheckPasswordHash(req.Password, user.PasswordHash); err != nil {
		utils.LogWarning("AuthHandler", "Неверный пароль для пользователя: %s", req.Email)
		writeInvalidCredentials(ctx)
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Email)
	if err != nil {
		utils.LogError("AuthHandler", "Ошибка генерации токена", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Internal server error",
		})
		return
	}

	utils.LogSuccess("AuthHandler", "Пользователь вошёл: %s (ID: %s)", user.Email, user.ID)

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(models.AuthResponse{
		Token: token,
		User:  user.Public(),
	})
}

// MeHandler обрабатывает GET /api/auth/me - данные текущего пользователя
func (h *AuthHandler) MeHandler(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue("user_id").(string)
	if !ok || userID == "" {
		utils.LogError("AuthHandler", "user_id не найден в контексте", nil)
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Unauthorized"})
		return
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			utils.LogWarning("AuthHandler", "Пользователь из токена не найден: %s", userID)
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			ctx.SetContentType("application/json")
			_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "User not found"})
			return
		}
		utils.LogError("AuthHandler", fmt.Sprintf("Ошибка поиска пользователя %s", userID), err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Internal server error"})
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(user.PublicWithCreatedAt())
}

func writeInvalidCredentials(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(map[string]string{
		"error": "Invalid email or password",
	})
}
