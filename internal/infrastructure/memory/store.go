package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

// Store is an in-memory implementation of the repository interfaces. It is
// safe for concurrent use and is intended for tests and local development.
type Store struct {
	mu         sync.RWMutex
	nextUserID int64
	nextPostID int64
	users      map[int64]entity.User
	posts      map[int64]entity.Post
	now        func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		nextUserID: 1,
		nextPostID: 1,
		users:      make(map[int64]entity.User),
		posts:      make(map[int64]entity.Post),
		now:        time.Now,
	}
}

// Users returns the store as a UserRepository.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Posts returns the store as a PostRepository.
func (s *Store) Posts() repository.PostRepository { return postRepo{s} }

func (s *Store) authorLocked(id int64) entity.Author {
	u := s.users[id]
	return entity.Author{ID: u.ID, Name: u.Name, Username: u.Username}
}

func (s *Store) withAuthorLocked(p entity.Post) entity.Post {
	p.Author = s.authorLocked(p.UserID)
	return p
}

// users ---------------------------------------------------------------------

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return &repository.UniqueViolationError{Field: "email", Constraint: "users_email_key"}
		}
		if existing.Username == u.Username {
			return &repository.UniqueViolationError{Field: "username", Constraint: "users_username_key"}
		}
	}
	now := s.now()
	u.ID = s.nextUserID
	s.nextUserID++
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) ListAuthors(_ context.Context) ([]entity.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Author, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, entity.Author{ID: u.ID, Name: u.Name, Username: u.Username})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// posts ---------------------------------------------------------------------

type postRepo struct{ s *Store }

func (r postRepo) Create(_ context.Context, p *entity.Post) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[p.UserID]; !ok {
		return repository.ErrReferenceMissing
	}
	now := s.now()
	p.ID = s.nextPostID
	s.nextPostID++
	p.Deleted = false
	p.DeletedAt = nil
	p.CreatedAt, p.UpdatedAt = now, now
	s.posts[p.ID] = *p
	*p = s.withAuthorLocked(*p)
	return nil
}

func (r postRepo) GetByID(_ context.Context, id int64) (*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = r.s.withAuthorLocked(p)
	return &p, nil
}

// sortedLocked returns posts matching keep, newest first.
func (s *Store) sortedLocked(keep func(entity.Post) bool) []entity.Post {
	out := make([]entity.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, s.withAuthorLocked(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r postRepo) List(_ context.Context, f entity.PostFilter) ([]entity.Post, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.s.sortedLocked(func(p entity.Post) bool {
		if f.UserID != nil && p.UserID != *f.UserID {
			return false
		}
		return f.IncludeDeleted || !p.Deleted
	})
	total := int64(len(all))
	if f.Offset < 0 || f.Offset >= len(all) {
		return []entity.Post{}, total, nil
	}
	page := all[f.Offset:]
	if f.Limit > 0 && len(page) > f.Limit {
		page = page[:f.Limit]
	}
	return page, total, nil
}

func (r postRepo) GetLiveByIDs(_ context.Context, ids []int64) ([]entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.posts[id]; ok && !p.Deleted {
			out = append(out, r.s.withAuthorLocked(p))
		}
	}
	return out, nil
}

func (r postRepo) Search(_ context.Context, q string, limit int) ([]entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	needle := strings.ToLower(q)
	out := r.s.sortedLocked(func(p entity.Post) bool {
		return !p.Deleted && (strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Body), needle))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r postRepo) CountLiveByUser(_ context.Context, userID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, p := range r.s.posts {
		if p.UserID == userID && !p.Deleted {
			n++
		}
	}
	return n, nil
}

func (r postRepo) MarkDeleted(_ context.Context, id, ownerID int64, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok || p.UserID != ownerID || p.Deleted {
		return false, nil
	}
	p.Deleted = true
	p.DeletedAt = &at
	p.UpdatedAt = at
	r.s.posts[id] = p
	return true, nil
}
