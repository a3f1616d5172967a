package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"franchise-membership-system/models"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenValidity = 72 * time.Hour

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
)

var validate = validator.New()

type AuthService struct {
	DB        *gorm.DB
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret []byte) *AuthService {
	return &AuthService{DB: db, jwtSecret: jwtSecret}
}

type RegisterRequest struct {
	Firstname string `json:"firstname" validate:"required,max=100"`
	Lastname  string `json:"lastname" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

// Register creates a FREE member with a hashed password plus their empty
// GAINS profile and stats rows.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, validationErrorf("invalid registration payload: %v", err)
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check existing email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Firstname:      req.Firstname,
		Lastname:       req.Lastname,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       string(hash),
		MembershipType: models.MembershipFree,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.DB.WithContext(ctx).Create(&models.GainsProfile{UserID: user.ID}).Error; err != nil {
		return nil, fmt.Errorf("create gains profile: %w", err)
	}
	if err := s.DB.WithContext(ctx).Create(&models.MemberStats{UserID: user.ID}).Error; err != nil {
		return nil, fmt.Errorf("create member stats: %w", err)
	}

	return user, nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login verifies credentials and issues a 72h HS256 bearer token carrying
// the user id, tier and home club.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	homeClub := ""
	if user.HomeClub != nil {
		homeClub = *user.HomeClub
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":         user.ID,
		"membership_type": string(user.MembershipType),
		"home_club":       homeClub,
		"exp":             time.Now().Add(tokenValidity).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &LoginResult{Token: signed, User: &user}, nil
}

// Me returns the session user with business and contact details preloaded.
func (s *AuthService) Me(ctx context.Context, sess Session) (*models.User, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}

	var user models.User
	err := s.DB.WithContext(ctx).
		Preload("BusinessDetails").
		Preload("ContactDetails").
		Where("id = ?", sess.UserID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", sess.UserID, err)
	}
	return &user, nil
}
