package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Scoheart/lostfound-backend/internal/config"
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates a resident account. Admin accounts are created through
// the admin endpoints only.
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 || len(username) > 50 {
		return nil, BadRequest("用户名长度必须在3到50个字符之间")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, BadRequest("邮箱格式不正确")
	}
	if len(req.Password) < 6 {
		return nil, BadRequest("密码长度不能少于6个字符")
	}

	var count int64
	s.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, Conflict("用户名已被使用")
	}
	s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return nil, Conflict("邮箱已被使用")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:  username,
		Email:     req.Email,
		Password:  string(hash),
		Role:      models.RoleResident,
		IsEnabled: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID.String(), "username", user.Username)
	return &user, nil
}

// Login verifies credentials and issues a signed token. Locked, banned and
// disabled accounts are rejected before the password is even checked.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.JwtResponse, error) {
	var user models.User
	err := s.db.Where("username = ? OR email = ?", req.UsernameOrEmail, req.UsernameOrEmail).
		First(&user).Error
	if err != nil {
		return nil, Unauthorized("用户名或密码错误")
	}

	if user.Locked() {
		slog.Warn("login rejected for locked account", "username", user.Username)
		return nil, Unauthorized("账户已被锁定，请联系管理员解锁")
	}
	if user.Banned() {
		slog.Warn("login rejected for banned account", "username", user.Username)
		return nil, Unauthorized("账户已被封禁，请联系管理员")
	}
	if !user.IsEnabled {
		slog.Warn("login rejected for disabled account", "username", user.Username)
		return nil, Unauthorized("账户已被禁用，请联系管理员")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, Unauthorized("用户名或密码错误")
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.JwtResponse{
		Token:     token,
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Avatar:    user.Avatar,
		Phone:     user.Phone,
		RealName:  user.RealName,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
