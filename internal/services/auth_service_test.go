package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vlados-13/api/internal/models"
	"github.com/vlados-13/api/internal/repository"
	"github.com/vlados-13/api/internal/services"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// --- Mock UserRepository --- //

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// --- Tests --- //

func TestNewAuthService(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testSecret)
	require.NotNil(t, authService)
}

func TestAuthService_Register(t *testing.T) {
	email := "a@x.com"
	password := "password123"

	tests := []struct {
		name          string
		mockSetup     func(mockUserRepo *MockUserRepository)
		expectedError error
	}{
		{
			name: "Успешная регистрация",
			mockSetup: func(mockUserRepo *MockUserRepository) {
				mockUserRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).
					Return(int64(1), nil).Once()
			},
			expectedError: nil,
		},
		{
			name: "Email занят",
			mockSetup: func(mockUserRepo *MockUserRepository) {
				mockUserRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).
					Return(int64(0), repository.ErrEmailTaken).Once()
			},
			expectedError: services.ErrEmailTaken,
		},
		{
			name: "Ошибка репозитория при создании",
			mockSetup: func(mockUserRepo *MockUserRepository) {
				mockUserRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).
					Return(int64(0), errors.New("some storage error")).Once()
			},
			expectedError: errors.New("внутренняя ошибка сервера при создании пользователя"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			tt.mockSetup(mockUserRepo)

			authService := services.NewAuthService(mockUserRepo, testSecret)
			err := authService.Register(email, password)

			if tt.expectedError != nil {
				require.Error(t, err)
				require.EqualError(t, err, tt.expectedError.Error())
			} else {
				require.NoError(t, err)
			}

			mockUserRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)

	var stored *models.User
	mockUserRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.User)
		}).
		Return(int64(1), nil).Once()

	authService := services.NewAuthService(mockUserRepo, testSecret)
	require.NoError(t, authService.Register("a@x.com", "password123"))

	require.NotNil(t, stored)
	assert.Equal(t, "a@x.com", stored.Email)
	// В хранилище попадает bcrypt-хеш, а не исходный пароль
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestAuthService_Login(t *testing.T) {
	email := "a@x.com"
	password := "password123"
	wrongPassword := "wrongpassword"
	userID := int64(7)
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err, "Не удалось сгенерировать хеш пароля для тестов")

	correctUser := &models.User{
		ID:           userID,
		Email:        email,
		PasswordHash: string(hashedPasswordBytes),
	}

	tests := []struct {
		name          string
		passwordToUse string
		mockSetup     func(mockUserRepo *MockUserRepository)
		expectedToken bool
		expectedError error
	}{
		{
			name:          "Успешный вход",
			passwordToUse: password,
			mockSetup: func(mockUserRepo *MockUserRepository) {
				mockUserRepo.On("GetUserByEmail", mock.Anything, email).
					Return(correctUser, nil).Once()
			},
			expectedToken: true,
			expectedError: nil,
		},
		{
			name:          "Пользователь не найден",
			passwordToUse: password,
			mockSetup: func(mockUserRepo *MockUserRepository) {
				mockUserRepo.On("GetUserByEmail", mock.Anything, email).
					Return(nil, repository.ErrUserNotFound).Once()
			},
			expectedToken: false,
			expectedError: services.ErrInvalidCredentials,
		},
		{
			name:          "Неверный пароль",
			passwordToUse: wrongPassword,
			mockSetup: func(mockUserRepo *MockUserRepository) {
				mockUserRepo.On("GetUserByEmail", mock.Anything, email).
					Return(correctUser, nil).Once()
			},
			expectedToken: false,
			expectedError: services.ErrInvalidCredentials,
		},
		{
			name:          "Ошибка репозитория при поиске",
			passwordToUse: password,
			mockSetup: func(mockUserRepo *MockUserRepository) {
				mockUserRepo.On("GetUserByEmail", mock.Anything, email).
					Return(nil, errors.New("some storage error")).Once()
			},
			expectedToken: false,
			expectedError: errors.New("внутренняя ошибка сервера при поиске пользователя"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			tt.mockSetup(mockUserRepo)

			authService := services.NewAuthService(mockUserRepo, testSecret)
			token, loginErr := authService.Login(email, tt.passwordToUse)

			if tt.expectedError != nil {
				require.Error(t, loginErr)
				require.EqualError(t, loginErr, tt.expectedError.Error())
				assert.Empty(t, token)
			} else {
				require.NoError(t, loginErr)
				assert.NotEmpty(t, token)
			}

			mockUserRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	email := "a@x.com"
	password := "password123"
	userID := int64(7)
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetUserByEmail", mock.Anything, email).
		Return(&models.User{ID: userID, Email: email, PasswordHash: string(hashedPasswordBytes)}, nil).Once()

	authService := services.NewAuthService(mockUserRepo, testSecret)

	before := time.Now()
	tokenString, err := authService.Login(email, password)
	require.NoError(t, err)

	claims := &models.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	// В токене ID вошедшего пользователя и срок жизни один час
	assert.Equal(t, userID, claims.UserID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, before.Add(services.TokenTTL), claims.ExpiresAt.Time, 5*time.Second)

	t.Run("Подпись другим секретом не проходит", func(t *testing.T) {
		_, parseErr := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(*jwt.Token) (interface{}, error) {
			return []byte("other-secret"), nil
		})
		require.Error(t, parseErr)
	})
}
