package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

func TestUserUniqueness(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	require.NoError(t, users.Create(ctx, &entity.User{Name: "Jane", Username: "jane", Email: "jane@example.com"}))

	err := users.Create(ctx, &entity.User{Name: "Jane 2", Username: "jane2", Email: "jane@example.com"})
	var uv *repository.UniqueViolationError
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, "email", uv.Field)

	err = users.Create(ctx, &entity.User{Name: "Jane 3", Username: "jane", Email: "other@example.com"})
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, "username", uv.Field)

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListAuthorsOrderedByName(t *testing.T) {
	ctx := context.Background()
	users := New().Users()
	for _, n := range []string{"Zoe", "Adam", "Mia"} {
		require.NoError(t, users.Create(ctx, &entity.User{Name: n, Username: n, Email: n + "@example.com"}))
	}

	authors, err := users.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Adam", authors[0].Name)
	assert.Equal(t, "Mia", authors[1].Name)
	assert.Equal(t, "Zoe", authors[2].Name)
}

func TestPostCreateRequiresAuthor(t *testing.T) {
	err := New().Posts().Create(context.Background(), &entity.Post{Title: "t", Body: "b", UserID: 99})
	assert.ErrorIs(t, err, repository.ErrReferenceMissing)
}

func TestMarkDeletedIsConditional(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := &entity.User{Name: "Jane", Username: "jane", Email: "jane@example.com"}
	require.NoError(t, s.Users().Create(ctx, u))
	p := &entity.Post{Title: "Hello", Body: "Hello world body", UserID: u.ID}
	require.NoError(t, s.Posts().Create(ctx, p))
	assert.Equal(t, "jane", p.Author.Username)

	at := time.Now()
	ok, err := s.Posts().MarkDeleted(ctx, p.ID, u.ID+1, at)
	require.NoError(t, err)
	assert.False(t, ok, "non-owner")

	// concurrent owners: exactly one wins
	var wg sync.WaitGroup
	wins := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := s.Posts().MarkDeleted(ctx, p.ID, u.ID, at)
			wins <- ok
		}()
	}
	wg.Wait()
	close(wins)
	n := 0
	for ok := range wins {
		if ok {
			n++
		}
	}
	assert.Equal(t, 1, n)

	got, err := s.Posts().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
	require.NotNil(t, got.DeletedAt)
}
