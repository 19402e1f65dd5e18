package auth

import (
	"context"
	"testing"

	"foodshare/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type MockJWT struct {
	mock.Mock
}

func (m *MockJWT) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepository)
	jwt := new(MockJWT)
	svc := NewService(users, jwt)

	users.On("ExistsByEmail", mock.Anything, "donor@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	jwt.On("GenerateToken", int64(42), "donor").Return("signed-token", nil)

	result, err := svc.Register(context.Background(), RegisterRequest{
		Role:     "donor",
		Name:     "Green Grocer",
		Email:    "donor@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, int64(42), result.User.ID)
	assert.Empty(t, result.User.PasswordHash)
	users.AssertExpectations(t)
	jwt.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	jwt := new(MockJWT)
	svc := NewService(users, jwt)

	users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Role:     "donor",
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_InvalidRole(t *testing.T) {
	svc := NewService(new(MockUserRepository), new(MockJWT))

	for _, role := range []string{"admin", "moderator", ""} {
		_, err := svc.Register(context.Background(), RegisterRequest{
			Role:     role,
			Name:     "Someone",
			Email:    "someone@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrInvalidRole, "role %q", role)
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	users := new(MockUserRepository)
	jwt := new(MockJWT)
	svc := NewService(users, jwt)

	var created *domain.User
	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			created = &domain.User{PasswordHash: u.PasswordHash}
		}).Return(nil)
	jwt.On("GenerateToken", mock.Anything, mock.Anything).Return("t", nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Role:     "recipient",
		Name:     "Kitchen",
		Email:    "kitchen@example.com",
		Password: "secretpass",
	})

	assert.NoError(t, err)
	assert.NotEqual(t, "secretpass", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secretpass")))
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepository)
	jwt := new(MockJWT)
	svc := NewService(users, jwt)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "donor@example.com").Return(&domain.User{
		ID:           7,
		Role:         domain.RoleDonor,
		Email:        "donor@example.com",
		PasswordHash: string(hash),
	}, nil)
	jwt.On("GenerateToken", int64(7), "donor").Return("signed-token", nil)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "donor@example.com",
		Password: "correct-horse",
	})

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Empty(t, result.User.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	jwt := new(MockJWT)
	svc := NewService(users, jwt)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "donor@example.com").Return(&domain.User{
		ID:           7,
		PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "donor@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	jwt.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockJWT))

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockJWT))

	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{
		ID:      7,
		Name:    "Old Name",
		Phone:   "+1-555-0100",
		Address: "Old Address",
	}, nil)
	users.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	lat := 41.0
	user, err := svc.UpdateProfile(context.Background(), 7, UpdateProfileRequest{
		Name:     "New Name",
		Latitude: &lat,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "+1-555-0100", user.Phone)
	assert.Equal(t, 41.0, user.Latitude)
}
