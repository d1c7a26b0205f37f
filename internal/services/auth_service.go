package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/asha0ahmed/rentnest/internal/models"
	"github.com/asha0ahmed/rentnest/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterUser registers a new user, hashes their password, saves them to
// the store, and issues a session token. At least one of email/mobile is
// required; each must not already be registered.
func (s *AuthService) RegisterUser(user *models.User) (string, error) {
	if user.FullName == "" {
		return "", fmt.Errorf("full name is required: %w", models.ErrValidation)
	}
	if len(user.Password) < 6 {
		return "", fmt.Errorf("password must be at least 6 characters: %w", models.ErrValidation)
	}
	if user.AccountType != models.AccountTypeTenant && user.AccountType != models.AccountTypeOwner {
		return "", fmt.Errorf("account type must be '%s' or '%s': %w",
			models.AccountTypeTenant, models.AccountTypeOwner, models.ErrValidation)
	}
	if user.Email == "" && user.Mobile == "" {
		return "", fmt.Errorf("either email or mobile is required: %w", models.ErrValidation)
	}

	// Check if the email or mobile is already registered
	if user.Email != "" {
		if existingUser, err := s.userRepo.GetByEmail(user.Email); err == nil && existingUser != nil {
			return "", fmt.Errorf("email '%s' already registered: %w", user.Email, models.ErrDuplicateIdentity)
		}
	}
	if user.Mobile != "" {
		if existingUser, err := s.userRepo.GetByMobile(user.Mobile); err == nil && existingUser != nil {
			return "", fmt.Errorf("mobile '%s' already registered: %w", user.Mobile, models.ErrDuplicateIdentity)
		}
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword) // Store the hashed password

	user.IsActive = true
	if user.SubscriptionTier == "" {
		user.SubscriptionTier = "free"
	}

	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	return s.issueToken(user)
}

// LoginUser authenticates a user by email or mobile and returns the user
// and a JWT token if successful. An identifier containing '@' is treated
// as an email, anything else as a mobile number, with no fallback.
// Unknown identifier and wrong password produce the same error so
// account existence cannot be probed.
func (s *AuthService) LoginUser(identifier, password string) (*models.User, string, error) {
	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.GetByEmail(identifier)
	} else {
		user, err = s.userRepo.GetByMobile(identifier)
	}
	if err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	// Compare the provided password with the hashed password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	// Checked only after the credentials verified, so a disabled account
	// still cannot be confirmed with a wrong password.
	if !user.IsActive {
		return nil, "", models.ErrAccountDisabled
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// issueToken generates a signed JWT for the user.
func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":      user.ID,
		"account_type": user.AccountType,
		"exp":          time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":          time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", models.ErrUnauthenticated)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token: %w", models.ErrUnauthenticated)
}
