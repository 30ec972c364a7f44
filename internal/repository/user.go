package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitness-tracker/internal/models"
	"fitness-tracker/internal/utils"
)

var (
	ErrUserNotFound = errors.New("пользователь не найден")
	ErrEmailTaken   = errors.New("email уже зарегистрирован")
)

// UserRepository - контракт хранилища пользователей, в тестах подменяется фейком
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	utils.LogSuccess("UserRepository", "Инициализирован репозиторий пользователей")
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	user.ID = uuid.New().String()
	utils.LogDB("CREATE USER", fmt.Sprintf("Создание пользователя: %s", user.Email))

	err := r.db.QueryRow(ctx, query, user.ID, user.Email, user.Username, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			utils.LogWarning("UserRepository", "Email уже занят: %s", user.Email)
			return ErrEmailTaken
		}
		utils.LogError("UserRepository", fmt.Sprintf("Ошибка создания пользователя %s", user.Email), err)
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	utils.LogSuccess("UserRepository", "Пользователь создан: %s (ID: %s)", user.Email, user.ID)
	return nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, username, password_hash, created_at FROM users WHERE email = $1`

	utils.LogDB("GET USER", fmt.Sprintf("Поиск пользователя по email: %s", email))

	user := &models.User{}
	err := r.db.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	return user, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, email, username, password_hash, created_at FROM users WHERE id = $1`

	utils.LogDB("GET USER", fmt.Sprintf("Поиск пользователя по ID: %s", id))

	user := &models.User{}
	err := r.db.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	return user, nil
}
