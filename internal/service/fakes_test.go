package service

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/shopstack/auth-platform/internal/auth"
	"github.com/shopstack/auth-platform/internal/domain"
	apperrors "github.com/shopstack/auth-platform/pkg/util"
)

type fakeUserRepo struct {
	mu            sync.Mutex
	byEmail       map[string]*domain.User
	byID          map[int64]*domain.User
	nextID        int64
	lookupCalls   int
	failGetByMail error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[int64]*domain.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.byEmail[user.Email] = &copied
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byID[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	*existing = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookupCalls++
	if f.failGetByMail != nil {
		return nil, f.failGetByMail
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]*domain.User, 0, len(f.byID))
	for _, user := range f.byID {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), nil
}

type fakeRefreshRepo struct {
	mu        sync.Mutex
	rows      map[string]*domain.RefreshToken
	nextID    int64
	createErr error
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{rows: make(map[string]*domain.RefreshToken), nextID: 1}
}

func (f *fakeRefreshRepo) Create(_ context.Context, token *domain.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	token.ID = f.nextID
	f.nextID++
	copied := *token
	f.rows[token.Token] = &copied
	return nil
}

func (f *fakeRefreshRepo) GetByToken(_ context.Context, tokenStr string) (*domain.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (f *fakeRefreshRepo) Revoke(_ context.Context, tokenStr string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[tokenStr]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, tokenStr)
	return nil
}

func (f *fakeRefreshRepo) Rotate(_ context.Context, oldToken string, next *domain.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[oldToken]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, oldToken)
	next.ID = f.nextID
	f.nextID++
	copied := *next
	f.rows[next.Token] = &copied
	return nil
}

func (f *fakeRefreshRepo) RevokeAllForUser(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token, row := range f.rows {
		if row.UserID == userID {
			delete(f.rows, token)
		}
	}
	return nil
}

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeRefreshRepo) stored(tokenStr string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[tokenStr]
	return ok
}

// seedUser registers an account directly in the fake store.
func seedUser(t *testing.T, repo *fakeUserRepo, name, email, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	user := &domain.User{Name: name, Email: email, PasswordHash: hash}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}
