package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

func TestCreateUserNormalizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.Create(ctx, CreateUserInput{
		Name:     "  Jane Doe ",
		Username: " jane_d ",
		Email:    "  Jane.Doe@Example.COM ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", u.Name)
	assert.Equal(t, "jane_d", u.Username)
	assert.Equal(t, "jane.doe@example.com", u.Email)

	found, err := f.users.FindByEmail(ctx, "JANE.DOE@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)
}

func TestCreateUserConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "jane")

	_, err := f.users.Create(ctx, CreateUserInput{Name: "Other", Username: "other", Email: "JANE@example.com"})
	require.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, "An account with this email already exists", apperror.Translate(err).Message)

	_, err = f.users.Create(ctx, CreateUserInput{Name: "Other", Username: "jane", Email: "other@example.com"})
	require.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, "This username is already taken", apperror.Translate(err).Message)
}

func TestCreateUserValidationBeforeStore(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Create(context.Background(), CreateUserInput{Name: "J", Username: "j!", Email: "nope"})
	require.True(t, apperror.Is(err, apperror.KindValidation))
	r := apperror.Translate(err)
	assert.Equal(t, "Name must be at least 2 characters", r.Message)
	assert.Len(t, r.Details, 3)

	authors, err := f.users.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestFindMissingUserIsNil(t *testing.T) {
	f := newFixture(t)

	u, err := f.users.FindByID(context.Background(), 404)
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestProfileCountsLivePosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "jane")
	f.post(t, u.ID, "First post")
	second := f.post(t, u.ID, "Second post")
	require.NoError(t, f.posts.Delete(ctx, second.ID, u.ID))

	p, err := f.users.Profile(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "jane", p.Username)
	assert.Equal(t, int64(1), p.PostCount)

	p, err = f.users.Profile(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, p)
}
