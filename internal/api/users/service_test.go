package users

import (
	"context"
	"net/http"
	"testing"
	"time"

	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	"rental-app/internal/domain/access"
	"rental-app/internal/domain/users"
	"rental-app/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := NewService(db)
	svc.cost = bcrypt.MinCost
	return svc, db
}

func mustCreateUser(t *testing.T, svc *Service, email string, role access.Role) *users.User {
	t.Helper()
	u, err := svc.Create(context.Background(), CreateUserRequest{Email: email, Password: "secret1", Role: string(role)})
	require.NoError(t, err)
	return u
}

func TestCreate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserRequest{Email: " Editor@Example.com ", Password: "secret1", FullName: "Ed", Role: "editor"})
	require.NoError(t, err)
	assert.Equal(t, "editor@example.com", u.Email)
	assert.Equal(t, access.RoleEditor, u.Role)
	assert.True(t, u.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))

	_, err = svc.Create(ctx, CreateUserRequest{Email: "EDITOR@example.com", Password: "secret1"})
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))

	_, err = svc.Create(ctx, CreateUserRequest{Email: "short@example.com", Password: "12345"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Create(ctx, CreateUserRequest{Email: "role@example.com", Password: "secret1", Role: "OWNER"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUpdate_EmailUniqueExcludingSelf(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	a := mustCreateUser(t, svc, "a@example.com", access.RoleAdmin)
	mustCreateUser(t, svc, "b@example.com", access.RoleAdmin)

	taken := "b@example.com"
	_, err := svc.Update(ctx, a.ID, UpdateUserRequest{Email: &taken})
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))

	same := "A@example.com"
	role := "EDITOR"
	out, err := svc.Update(ctx, a.ID, UpdateUserRequest{Email: &same, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", out.Email)
	assert.Equal(t, access.RoleEditor, out.Role)
}

func TestActivateDeactivate(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	u := mustCreateUser(t, svc, "c@example.com", access.RoleEditor)
	require.NoError(t, db.Create(&users.RefreshToken{Token: "t1", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}).Error)

	assert.True(t, apperr.Is(svc.Activate(ctx, u.ID), apperr.KindInvalidOperation))
	require.NoError(t, svc.Deactivate(ctx, u.ID))
	assert.True(t, apperr.Is(svc.Deactivate(ctx, u.ID), apperr.KindInvalidOperation))

	var tok users.RefreshToken
	require.NoError(t, db.First(&tok, "token = ?", "t1").Error)
	assert.True(t, tok.IsRevoked, "deactivation revokes refresh tokens")

	_, err := svc.Get(ctx, u.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "inactive users are hidden")

	require.NoError(t, svc.Activate(ctx, u.ID))
	_, err = svc.Get(ctx, u.ID)
	assert.NoError(t, err)

	assert.True(t, apperr.Is(svc.Activate(ctx, 999), apperr.KindNotFound))
}

func TestChangePassword(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	u := mustCreateUser(t, svc, "d@example.com", access.RoleAdmin)

	err := svc.ChangeOwnPassword(ctx, u.ID, PasswordChangeRequest{CurrentPassword: "wrong", NewPassword: "newpass", ConfirmPassword: "newpass"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	err = svc.ChangeOwnPassword(ctx, u.ID, PasswordChangeRequest{CurrentPassword: "secret1", NewPassword: "newpass", ConfirmPassword: "other"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	require.NoError(t, svc.ChangeOwnPassword(ctx, u.ID, PasswordChangeRequest{CurrentPassword: "secret1", NewPassword: "newpass", ConfirmPassword: "newpass"}))
	var got users.User
	require.NoError(t, db.First(&got, u.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("newpass")))

	require.NoError(t, svc.ChangePassword(ctx, u.ID, PasswordChangeRequest{NewPassword: "reset99", ConfirmPassword: "reset99"}))
}

func TestListAndStats(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	mustCreateUser(t, svc, "root@example.com", access.RoleSuperAdmin)
	mustCreateUser(t, svc, "ann@example.com", access.RoleAdmin)
	off := mustCreateUser(t, svc, "bob@example.com", access.RoleEditor)
	require.NoError(t, svc.Deactivate(ctx, off.ID))

	page := response.NewPageRequest(0, 20)
	_, total, err := svc.List(ctx, Filter{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	admin := access.RoleAdmin
	list, total, err := svc.List(ctx, Filter{Role: &admin}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "ann@example.com", list[0].Email)

	list, _, err = svc.List(ctx, Filter{Query: "BOB"}, page)
	require.NoError(t, err)
	require.Len(t, list, 1, "search includes inactive users")

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalActive)
	assert.Equal(t, int64(0), stats.ByRole[access.RoleEditor])
	assert.Equal(t, int64(1), stats.ByRole[access.RoleSuperAdmin])
}

func TestEnsureSuperAdmin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.EnsureSuperAdmin(ctx, "owner@example.com", "changeme")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureSuperAdmin(ctx, "OWNER@example.com", "changeme")
	require.NoError(t, err)
	assert.False(t, created)

	ok, err := svc.EmailAvailable(ctx, "owner@example.com", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, db := newService(t)
	testutil.UseGlobalDB(t, db)
	u := mustCreateUser(t, svc, "me@example.com", access.RoleEditor)

	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		c.Set("user_id", u.ID)
		c.Next()
	}, GetCurrentUser)

	rec := testutil.Do(t, r, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var me MeResponse
	testutil.Decode(t, rec, &me)
	assert.Equal(t, "me@example.com", me.User.Email)
	assert.Contains(t, me.Access.Capabilities, access.PermListingsEdit)
	assert.NotContains(t, me.Access.Capabilities, access.PermUsers)
}
