// internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sportsbook/internal/domain"
	"sportsbook/internal/util"
)

const testSecret = "unit-test-secret"

func newTestAuthService(userRepo *MockUserRepository) AuthService {
	return NewAuthService(new(MockDBExecutor), userRepo, testSecret)
}

// TestRegister tests the Register method of AuthService.
func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessfulRegistration", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		userRepo.On("GetUserByEmail", ctx, mock.Anything, "asha@example.com").Return(nil, util.ErrUserNotFound).Once()
		userRepo.On("CreateUser", ctx, mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		user, token, err := svc.Register(ctx, "Asha", "Asha@Example.com", "Str0ng!pass")

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "Asha", user.Name)
		assert.Equal(t, "asha@example.com", user.Email, "email should be stored lowercased")
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.True(t, decimal.NewFromInt(2000).Equal(user.Balance), "new account opens with the starting balance")
		assert.NotEqual(t, "Str0ng!pass", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Str0ng!pass")))

		identity, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, identity.UserID)
		assert.Equal(t, domain.RoleUser, identity.Role)

		userRepo.AssertExpectations(t)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		existing := domain.NewUser("Asha", "asha@example.com", "hash", domain.RoleUser)
		userRepo.On("GetUserByEmail", ctx, mock.Anything, "asha@example.com").Return(existing, nil).Once()

		user, token, err := svc.Register(ctx, "Someone Else", "asha@example.com", "Str0ng!pass")

		assert.ErrorIs(t, err, util.ErrEmailTaken)
		assert.Nil(t, user)
		assert.Empty(t, token)
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RejectsBadInput", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		cases := []struct {
			name     string
			userName string
			email    string
			password string
		}{
			{"empty name", "", "a@example.com", "Str0ng!pass"},
			{"malformed email", "Asha", "not-an-email", "Str0ng!pass"},
			{"email without tld", "Asha", "a@example", "Str0ng!pass"},
			{"password too short", "Asha", "a@example.com", "S0r!t"},
			{"password without upper", "Asha", "a@example.com", "weak0!pass"},
			{"password without digit", "Asha", "a@example.com", "Weakk!pass"},
			{"password without special", "Asha", "a@example.com", "Weak0pass"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				user, token, err := svc.Register(ctx, tc.userName, tc.email, tc.password)
				assert.ErrorIs(t, err, util.ErrInvalidInput)
				assert.Nil(t, user)
				assert.Empty(t, token)
			})
		}

		userRepo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything, mock.Anything)
	})
}

// TestLogin tests the Login method of AuthService.
func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ng!pass"), bcrypt.MinCost)
	require.NoError(t, err)
	account := domain.NewUser("Asha", "asha@example.com", string(hash), domain.RoleUser)

	t.Run("SuccessfulLogin", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		userRepo.On("GetUserByEmail", ctx, mock.Anything, "asha@example.com").Return(account, nil).Once()

		user, token, err := svc.Login(ctx, "  ASHA@example.com ", "Str0ng!pass")

		require.NoError(t, err)
		assert.Equal(t, account.ID, user.ID)

		identity, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, account.ID, identity.UserID)
		userRepo.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		userRepo.On("GetUserByEmail", ctx, mock.Anything, "asha@example.com").Return(account, nil).Once()

		user, token, err := svc.Login(ctx, "asha@example.com", "wrong-password")

		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
		assert.Nil(t, user)
		assert.Empty(t, token)
	})

	t.Run("UnknownEmailLooksLikeWrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		userRepo.On("GetUserByEmail", ctx, mock.Anything, "ghost@example.com").Return(nil, util.ErrUserNotFound).Once()

		_, _, err := svc.Login(ctx, "ghost@example.com", "Str0ng!pass")

		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	})
}

// TestVerifyToken tests token verification edge cases.
func TestVerifyToken(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsGarbage", func(t *testing.T) {
		svc := newTestAuthService(new(MockUserRepository))

		for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
			identity, err := svc.VerifyToken(token)
			assert.ErrorIs(t, err, util.ErrInvalidToken)
			assert.Nil(t, identity)
		}
	})

	t.Run("RejectsTokenSignedWithDifferentSecret", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		other := NewAuthService(new(MockDBExecutor), userRepo, "some-other-secret")
		svc := newTestAuthService(userRepo)

		userRepo.On("GetUserByEmail", ctx, mock.Anything, "asha@example.com").Return(nil, util.ErrUserNotFound).Once()
		userRepo.On("CreateUser", ctx, mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		_, token, err := other.Register(ctx, "Asha", "asha@example.com", "Str0ng!pass")
		require.NoError(t, err)

		identity, err := svc.VerifyToken(token)
		assert.ErrorIs(t, err, util.ErrInvalidToken)
		assert.Nil(t, identity)
	})
}

// TestEnsureAdmin tests the startup admin seeding.
func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("SeedsWhenMissing", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		userRepo.On("GetUserByEmail", ctx, mock.Anything, "admin@betapp.local").Return(nil, util.ErrUserNotFound).Once()
		userRepo.On("CreateUser", ctx, mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleAdmin && u.Email == "admin@betapp.local"
		})).Return(nil).Once()

		err := svc.EnsureAdmin(ctx, "Admin", "admin@betapp.local", "Admin@12345")

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("NoOpWhenAlreadyPresent", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		admin := domain.NewUser("Admin", "admin@betapp.local", "hash", domain.RoleAdmin)
		userRepo.On("GetUserByEmail", ctx, mock.Anything, "admin@betapp.local").Return(admin, nil).Once()

		err := svc.EnsureAdmin(ctx, "Admin", "admin@betapp.local", "Admin@12345")

		assert.NoError(t, err)
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})
}
