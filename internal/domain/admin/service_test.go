package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, a *Admin) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Admin), args.Error(1)
}

func (m *mockRepo) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Admin), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, a *Admin) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockJWT struct {
	mock.Mock
}

func (m *mockJWT) GenerateToken(adminID int64, username string) (string, error) {
	args := m.Called(adminID, username)
	return args.String(0), args.Error(1)
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func TestLoginSuccess(t *testing.T) {
	repo := new(mockRepo)
	jwtSvc := new(mockJWT)
	svc := NewService(repo, jwtSvc)

	stored := &Admin{ID: 1, Username: "admin", PasswordHash: hashFor(t, "admin123")}
	repo.On("GetByUsername", mock.Anything, "admin").Return(stored, nil)
	jwtSvc.On("GenerateToken", int64(1), "admin").Return("signed-token", nil)

	admin, token, err := svc.Login(context.Background(), "admin", "admin123")
	assert.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, int64(1), admin.ID)
	jwtSvc.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(mockRepo)
	jwtSvc := new(mockJWT)
	svc := NewService(repo, jwtSvc)

	stored := &Admin{ID: 1, Username: "admin", PasswordHash: hashFor(t, "admin123")}
	repo.On("GetByUsername", mock.Anything, "admin").Return(stored, nil)

	_, _, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	jwtSvc.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestLoginUnknownUsername(t *testing.T) {
	repo := new(mockRepo)
	jwtSvc := new(mockJWT)
	svc := NewService(repo, jwtSvc)

	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login(context.Background(), "ghost", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePasswordValidation(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockJWT))
	ctx := context.Background()

	assert.ErrorIs(t, svc.ChangePassword(ctx, 1, "", "newpassword"), ErrMissingPassword)
	assert.ErrorIs(t, svc.ChangePassword(ctx, 1, "admin123", ""), ErrMissingPassword)
	assert.ErrorIs(t, svc.ChangePassword(ctx, 1, "admin123", "short"), ErrPasswordTooShort)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockJWT))

	stored := &Admin{ID: 1, Username: "admin", PasswordHash: hashFor(t, "admin123")}
	repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)

	err := svc.ChangePassword(context.Background(), 1, "not-the-password", "newpassword")
	assert.ErrorIs(t, err, ErrWrongPassword)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestChangePasswordSuccess(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockJWT))

	stored := &Admin{ID: 1, Username: "admin", PasswordHash: hashFor(t, "admin123")}
	repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	err := svc.ChangePassword(context.Background(), 1, "admin123", "newpassword")
	assert.NoError(t, err)

	// The stored hash must verify against the new password
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpassword")))
	repo.AssertExpectations(t)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockJWT))

	repo.On("Count", mock.Anything).Return(int64(0), nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *Admin) bool {
		return a.Username == "admin" &&
			bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("admin123")) == nil
	})).Return(nil)

	assert.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	repo.AssertExpectations(t)
}

func TestEnsureDefaultAdminSkipsWhenPresent(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockJWT))

	repo.On("Count", mock.Anything).Return(int64(3), nil)

	assert.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
