package application

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

func TestListPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "jane")
	for i := 1; i <= 15; i++ {
		f.post(t, u.ID, fmt.Sprintf("Post number %d", i))
	}

	first, err := f.posts.List(ctx, ListPostsInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, first.Posts, 10)
	assert.Equal(t, int64(15), first.Total)
	assert.True(t, first.HasMore)
	assert.Equal(t, "Post number 15", first.Posts[0].Title, "newest first")
	assert.Equal(t, "jane", first.Posts[0].Author.Username)

	second, err := f.posts.List(ctx, ListPostsInput{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, second.Posts, 5)
	assert.False(t, second.HasMore)
	assert.Equal(t, 2, second.Page)
}

// offsetRecorder keeps the filter the service asked the store for.
type offsetRecorder struct {
	repo.PostRepository
	last entity.PostFilter
}

func (r *offsetRecorder) List(ctx context.Context, f entity.PostFilter) ([]entity.Post, int64, error) {
	r.last = f
	return r.PostRepository.List(ctx, f)
}

func TestListPageBeyondRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "jane")
	f.post(t, u.ID, "Only post")

	rec := &offsetRecorder{PostRepository: f.store.Posts()}
	svc := NewPostService(rec, nil, nil, helpers.NewDiscardLogger())

	for _, page := range []int{math.MaxInt, math.MaxInt / 10, math.MaxInt/10 + 2} {
		res, err := svc.List(ctx, ListPostsInput{Page: page, Limit: 10})
		require.NoError(t, err, page)
		assert.Empty(t, res.Posts, page)
		assert.False(t, res.HasMore, page)
		assert.Equal(t, int64(1), res.Total, page)
		assert.Equal(t, page, res.Page)
		assert.GreaterOrEqual(t, rec.last.Offset, 0, page)
	}
}

func TestListDefaultsAndBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	page, err := f.posts.List(ctx, ListPostsInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.NotNil(t, page.Posts)
	assert.Empty(t, page.Posts)
	assert.False(t, page.HasMore)

	for _, in := range []ListPostsInput{{Page: -1}, {Limit: 101}, {Limit: -5}} {
		_, err := f.posts.List(ctx, in)
		assert.True(t, apperror.Is(err, apperror.KindValidation), "%+v", in)
	}
}

func TestListFiltersByUserAndDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.user(t, "jane")
	bob := f.user(t, "bob")
	f.post(t, jane.ID, "Jane one")
	gone := f.post(t, jane.ID, "Jane two")
	f.post(t, bob.ID, "Bob one")
	require.NoError(t, f.posts.Delete(ctx, gone.ID, jane.ID))

	live, err := f.posts.List(ctx, ListPostsInput{UserID: &jane.ID})
	require.NoError(t, err)
	require.Len(t, live.Posts, 1)
	assert.Equal(t, "Jane one", live.Posts[0].Title)
	for _, p := range live.Posts {
		assert.False(t, p.Deleted)
	}

	all, err := f.posts.List(ctx, ListPostsInput{UserID: &jane.ID, IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, all.Posts, 2)
	assert.True(t, all.Posts[0].Deleted)
}

func TestCreatePost(t *testing.T) {
	f := newFixture(t)
	idx := &fakeIndex{}
	f.posts.Index = idx
	u := f.user(t, "jane")

	p, err := f.posts.Create(context.Background(), u.ID, CreatePostInput{Title: "  Hello there ", Body: "  A long enough body  "})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", p.Title)
	assert.Equal(t, "A long enough body", p.Body)
	assert.Equal(t, u.ID, p.UserID)
	assert.False(t, p.Deleted)
	assert.Nil(t, p.DeletedAt)
	assert.Equal(t, "jane", p.Author.Username)

	assert.Equal(t, []int64{p.ID}, idx.indexed)
	assert.Equal(t, []string{helpers.EventPostCreated}, f.events.names())
}

func TestCreatePostValidation(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "jane")

	_, err := f.posts.Create(context.Background(), u.ID, CreatePostInput{Title: "ab", Body: "short"})
	require.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, []string{
		"Title must be at least 3 characters",
		"Body must be at least 10 characters",
	}, apperror.Translate(err).Details)
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	f := newFixture(t)

	_, err := f.posts.Create(context.Background(), 77, CreatePostInput{Title: "Hello", Body: "A long enough body"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestDeletePostFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "jane")
	other := f.user(t, "bob")
	p := f.post(t, owner.ID, "Hello there")

	err := f.posts.Delete(ctx, 9999, owner.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	err = f.posts.Delete(ctx, p.ID, other.ID)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
	stored, err := f.store.Posts().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, stored.Deleted)

	require.NoError(t, f.posts.Delete(ctx, p.ID, owner.ID))
	stored, err = f.store.Posts().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, stored.Deleted)
	assert.NotNil(t, stored.DeletedAt)

	err = f.posts.Delete(ctx, p.ID, owner.ID)
	assert.True(t, apperror.Is(err, apperror.KindGone))

	// already deleted wins over ownership
	err = f.posts.Delete(ctx, p.ID, other.ID)
	assert.True(t, apperror.Is(err, apperror.KindGone))

	assert.Contains(t, f.events.names(), helpers.EventPostDeleted)
}

// lostRace reports the conditional update as matching no row, as when
// another request deleted the post between the read and the write.
type lostRace struct {
	repo.PostRepository
}

func (lostRace) MarkDeleted(context.Context, int64, int64, time.Time) (bool, error) {
	return false, nil
}

func TestDeleteLosesConcurrentDelete(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "jane")
	p := f.post(t, u.ID, "Contested")

	events := &fakePublisher{}
	idx := &fakeIndex{}
	svc := NewPostService(lostRace{f.store.Posts()}, idx, events, helpers.NewDiscardLogger())

	err := svc.Delete(context.Background(), p.ID, u.ID)
	assert.True(t, apperror.Is(err, apperror.KindGone), "%v", err)
	assert.Empty(t, events.names())
	assert.Empty(t, idx.removed)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.events.err = errBroker
	u := f.user(t, "jane")

	_, err := f.posts.Create(context.Background(), u.ID, CreatePostInput{Title: "Hello", Body: "A long enough body"})
	assert.NoError(t, err)
}

func TestRecent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "jane")
	for i := 1; i <= 8; i++ {
		f.post(t, u.ID, fmt.Sprintf("Post number %d", i))
	}
	require.NoError(t, f.posts.Delete(ctx, 8, u.ID))

	posts, err := f.posts.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, posts, DefaultRecentLimit)
	assert.Equal(t, "Post number 7", posts[0].Title)

	_, err = f.posts.Recent(ctx, 500)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestSearchFallsBackToStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "jane")
	f.post(t, u.ID, "Gardening tips")
	f.post(t, u.ID, "Cooking pasta")

	posts, err := f.posts.Search(ctx, "GARDEN", 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Gardening tips", posts[0].Title)

	f.posts.Index = &fakeIndex{err: errBroker}
	posts, err = f.posts.Search(ctx, "pasta", 5)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	_, err = f.posts.Search(ctx, "   ", 5)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestSearchUsesIndexOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "jane")
	a := f.post(t, u.ID, "First post")
	b := f.post(t, u.ID, "Second post")
	gone := f.post(t, u.ID, "Third post")
	require.NoError(t, f.posts.Delete(ctx, gone.ID, u.ID))

	f.posts.Index = &fakeIndex{hits: []int64{a.ID, gone.ID, b.ID}}
	posts, err := f.posts.Search(ctx, "post", 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, a.ID, posts[0].ID)
	assert.Equal(t, b.ID, posts[1].ID)
}
