package auth

import (
	"errors"
	"time"

	"github.com/inkstream/core/internal/models"
	"github.com/inkstream/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 7 * 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// Service handles account authentication.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Login verifies the password and issues a bearer token. Failures are slowed
// down to blunt credential stuffing.
func (s *Service) Login(email, password string) (string, *models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(3 * time.Second)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(3 * time.Second)
		return "", nil, ErrInvalidCredentials
	}

	token, err := jwt.Sign(u.ID, tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

// RegisterDTO is the request body for account registration.
type RegisterDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username"`
}

// Register creates a plain user account. Elevated roles are never granted
// through this path.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", dto.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.UserModel{
		Email:    dto.Email,
		Username: dto.Username,
		Role:     models.RoleUser,
		Password: string(hash),
	}
	return &u, s.db.Create(&u).Error
}

// GetProfile loads the current account.
func (s *Service) GetProfile(userID string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// EnsureBootstrapAdmin seeds a superadmin account when no admin exists yet.
// A second startup with the same config is a no-op.
func EnsureBootstrapAdmin(db *gorm.DB, email, password, username string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.UserModel{}).
		Where("role IN ?", []models.Role{models.RoleAdmin, models.RoleSuperAdmin}).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := models.UserModel{
		Email:    email,
		Username: username,
		Role:     models.RoleSuperAdmin,
		Password: string(hash),
	}
	return db.Create(&u).Error
}
