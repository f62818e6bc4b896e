package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studiodesk/internal/domain"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *domain.User) error {
	u.ID = int64(len(f.users) + 1)
	f.users[u.Email] = u
	return nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) GenerateToken(userID int64, email, role string) (string, error) {
	return "signed-token", nil
}

func newFakeRepo(t *testing.T) *fakeUserRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	assert.NoError(t, err)
	return &fakeUserRepo{users: map[string]*domain.User{
		"admin@studiodesk.local": {
			ID:           1,
			Email:        "admin@studiodesk.local",
			PasswordHash: string(hash),
			Name:         "Administrator",
			Role:         domain.RoleAdmin,
		},
	}}
}

func TestService_Login(t *testing.T) {
	svc := NewService(newFakeRepo(t), fakeTokenIssuer{})

	result, err := svc.Login(context.Background(), "admin@studiodesk.local", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, int64(1), result.User.ID)
	assert.Empty(t, result.User.PasswordHash)
}

func TestService_Login_NormalizesEmail(t *testing.T) {
	svc := NewService(newFakeRepo(t), fakeTokenIssuer{})

	_, err := svc.Login(context.Background(), "  Admin@StudioDesk.local ", "secret123")
	assert.NoError(t, err)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc := NewService(newFakeRepo(t), fakeTokenIssuer{})

	_, err := svc.Login(context.Background(), "admin@studiodesk.local", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc := NewService(newFakeRepo(t), fakeTokenIssuer{})

	_, err := svc.Login(context.Background(), "ghost@studiodesk.local", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_CreateUser_DefaultsToStaff(t *testing.T) {
	repo := newFakeRepo(t)
	svc := NewService(repo, fakeTokenIssuer{})

	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "Desk@StudioDesk.local",
		Password: "welcome1",
		Name:     "Desk Operator",
	})
	assert.NoError(t, err)
	assert.Equal(t, "desk@studiodesk.local", user.Email)
	assert.Equal(t, domain.RoleStaff, user.Role)
	assert.Empty(t, user.PasswordHash)

	stored := repo.users["desk@studiodesk.local"]
	assert.NotNil(t, stored)
}
