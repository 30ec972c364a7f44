package models

import "time"

type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PublicUser - публичная проекция пользователя, хеш пароля сюда не попадает
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at,omitempty"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}

// PublicWithCreatedAt - проекция для GET /api/auth/me, дополнительно отдаёт дату регистрации
func (u *User) PublicWithCreatedAt() PublicUser {
	p := u.Public()
	p.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	return p
}
