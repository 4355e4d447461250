// Package memory keeps user and file records in process memory. It backs the
// server when no database DSN is configured and serves as the record store in
// service and transport tests.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/files"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/users"
)

// Store holds both record sets behind one lock. Ids are assigned from a
// shared sequence, so insertion order equals id order as in Postgres.
type Store struct {
	mu    sync.RWMutex
	seq   int64
	users []models.User
	files []models.FileRecord
	nowFn func() time.Time
}

func NewStore() *Store {
	return &Store{nowFn: time.Now}
}

func (s *Store) Users() users.Repository { return &userRepo{s: s} }
func (s *Store) Files() files.Repository { return &fileRepo{s: s} }

// Counts mirrors repomanager.RepositoryManager.Counts for the memory store.
func (s *Store) Counts(_ context.Context) (repomanager.Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return repomanager.Counts{Users: int64(len(s.users)), Files: int64(len(s.files))}, nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) nextID() string {
	s.seq++
	return strconv.FormatInt(s.seq, 10)
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}

	user.ID = r.s.nextID()
	user.CreatedAt = r.s.nowFn()
	r.s.users = append(r.s.users, *user)
	return user, nil
}

func (r *userRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

type fileRepo struct{ s *Store }

func (r *fileRepo) Insert(_ context.Context, f *models.FileRecord) (*models.FileRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f.ID = r.s.nextID()
	f.CreatedAt = r.s.nowFn()
	r.s.files = append(r.s.files, *f)
	return f, nil
}

func (r *fileRepo) FindByID(_ context.Context, id string) (*models.FileRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		cp := r.s.files[i]
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (r *fileRepo) FindByIDAndOwner(_ context.Context, id, userID string) (*models.FileRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 && r.s.files[i].UserID == userID {
		cp := r.s.files[i]
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (r *fileRepo) ListByOwner(_ context.Context, userID, parentID string, limit, offset int) ([]*models.FileRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.FileRecord, 0)
	skipped := 0
	for _, f := range r.s.files {
		if len(result) >= limit {
			break
		}
		if f.UserID != userID || f.ParentID != parentID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		cp := f
		result = append(result, &cp)
	}
	return result, nil
}

func (r *fileRepo) SetPublished(_ context.Context, id string, isPublic bool) (*models.FileRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	r.s.files[i].IsPublic = isPublic
	cp := r.s.files[i]
	return &cp, nil
}

func (r *fileRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.files)), nil
}

// indexOf expects the caller to hold the lock.
func (r *fileRepo) indexOf(id string) int {
	for i := range r.s.files {
		if r.s.files[i].ID == id {
			return i
		}
	}
	return -1
}
