package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

type published struct {
	Event string
	Body  any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, event string, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, published{Event: event, Body: body})
	return f.err
}

func (f *fakePublisher) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Event)
	}
	return out
}

type fakeIndex struct {
	indexed []int64
	removed []int64
	hits    []int64
	err     error
}

func (f *fakeIndex) IndexPost(_ context.Context, p entity.Post) error {
	f.indexed = append(f.indexed, p.ID)
	return f.err
}

func (f *fakeIndex) RemovePost(_ context.Context, id int64) error {
	f.removed = append(f.removed, id)
	return f.err
}

func (f *fakeIndex) SearchPostIDs(_ context.Context, _ string, _ int) ([]int64, error) {
	return f.hits, f.err
}

var errBroker = errors.New("broker down")

type fixture struct {
	store  *memory.Store
	users  *UserService
	posts  *PostService
	auth   *AuthService
	events *fakePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := helpers.NewDiscardLogger()
	store := memory.New()
	events := &fakePublisher{}
	users := NewUserService(store.Users(), store.Posts(), logger)
	return &fixture{
		store:  store,
		users:  users,
		posts:  NewPostService(store.Posts(), nil, events, logger),
		auth:   NewAuthService(users, helpers.NewSessionManager("test-secret", 0), events, logger),
		events: events,
	}
}

func (f *fixture) user(t *testing.T, username string) *entity.PublicUser {
	t.Helper()
	u, err := f.users.Create(context.Background(), CreateUserInput{
		Name:     "User " + username,
		Username: username,
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) post(t *testing.T, authorID int64, title string) *entity.Post {
	t.Helper()
	p, err := f.posts.Create(context.Background(), authorID, CreatePostInput{
		Title: title,
		Body:  "A body that is long enough",
	})
	require.NoError(t, err)
	return p
}
