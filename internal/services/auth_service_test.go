package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/asha0ahmed/rentnest/internal/models"
	"github.com/asha0ahmed/rentnest/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByMobile(mobile string) (*models.User, error) {
	args := m.Called(mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, models.ErrNotFound)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Successful registration hashes the password and issues a token
	user := &models.User{
		FullName:    "Test Owner",
		Email:       "owner@example.com",
		Password:    "password123",
		AccountType: models.AccountTypeOwner,
	}
	mockRepo.On("GetByEmail", user.Email).Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	token, err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "password123", user.Password, "stored password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	assert.True(t, user.IsActive)
	assert.Equal(t, "free", user.SubscriptionTier)
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByEmail", "taken@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.RegisterUser(&models.User{
		FullName:    "Someone Else",
		Email:       "taken@example.com",
		Password:    "password123",
		AccountType: models.AccountTypeTenant,
	})
	assert.ErrorIs(t, err, models.ErrDuplicateIdentity)
	mockRepo.AssertExpectations(t)

	// Mobile already registered
	mockRepo.On("GetByMobile", "01700000000").Return(&models.User{ID: "2"}, nil).Once()
	_, err = authService.RegisterUser(&models.User{
		FullName:    "Someone Else",
		Mobile:      "01700000000",
		Password:    "password123",
		AccountType: models.AccountTypeTenant,
	})
	assert.ErrorIs(t, err, models.ErrDuplicateIdentity)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_Validation(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	tests := []struct {
		name string
		user models.User
	}{
		{"missing full name", models.User{Email: "a@b.com", Password: "password123", AccountType: "tenant"}},
		{"short password", models.User{FullName: "A B", Email: "a@b.com", Password: "abc", AccountType: "tenant"}},
		{"bad account type", models.User{FullName: "A B", Email: "a@b.com", Password: "password123", AccountType: "admin"}},
		{"neither email nor mobile", models.User{FullName: "A B", Password: "password123", AccountType: "owner"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			_, err := authService.RegisterUser(&user)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
	// No repository calls should have happened for invalid input
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:          "user-123",
		FullName:    "Test Owner",
		Email:       "owner@example.com",
		Mobile:      "01700000000",
		Password:    string(hashedPassword),
		AccountType: models.AccountTypeOwner,
		IsActive:    true,
	}

	// Identifier with '@' routes to email lookup
	mockRepo.On("GetByEmail", "owner@example.com").Return(user, nil).Once()
	loggedIn, token, err := authService.LoginUser("owner@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
	mockRepo.AssertExpectations(t)

	// Token carries user id and account type
	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, models.AccountTypeOwner, claims["account_type"])

	// Identifier without '@' routes to mobile lookup, no email fallback
	mockRepo.On("GetByMobile", "01700000000").Return(user, nil).Once()
	_, _, err = authService.LoginUser("01700000000", "password123")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "GetByEmail", "01700000000")
}

func TestAuthService_LoginUser_InvalidCredentialsNonEnumerable(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "owner@example.com",
		Password: string(hashedPassword),
		IsActive: true,
	}

	// Wrong password for an existing user
	mockRepo.On("GetByEmail", "owner@example.com").Return(user, nil).Once()
	_, _, wrongPassErr := authService.LoginUser("owner@example.com", "wrongpassword")

	// Unknown user entirely
	mockRepo.On("GetByEmail", "nosuchuser@example.com").Return(nil, notFoundErr("user")).Once()
	_, _, noUserErr := authService.LoginUser("nosuchuser@example.com", "password123")

	// Both failures are indistinguishable to the caller
	assert.ErrorIs(t, wrongPassErr, models.ErrInvalidCredentials)
	assert.ErrorIs(t, noUserErr, models.ErrInvalidCredentials)
	assert.Equal(t, wrongPassErr.Error(), noUserErr.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser_DisabledAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	disabled := &models.User{
		ID:       "user-456",
		Email:    "gone@example.com",
		Password: string(hashedPassword),
		IsActive: false,
	}

	// Disabled only surfaces after the password verifies
	mockRepo.On("GetByEmail", "gone@example.com").Return(disabled, nil).Twice()

	_, _, err := authService.LoginUser("gone@example.com", "password123")
	assert.ErrorIs(t, err, models.ErrAccountDisabled)

	_, _, err = authService.LoginUser("gone@example.com", "wrongpassword")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Generate a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":      "user-123",
		"account_type": "owner",
		"exp":          jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "owner", claims["account_type"])

	// Garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	// Expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}
