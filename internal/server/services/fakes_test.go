package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/dbx"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	byEmail   map[string]*models.User
	createErr error
	getErr    error
	listOut   []*models.User

	gotOffset, gotLimit int
}

func (f *fakeUsersRepo) Create(_ context.Context, email, hash string) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[email]; ok {
		return nil, fmt.Errorf("insert user: %w", common.ErrDuplicateEmail)
	}
	u := &models.User{ID: fmt.Sprintf("u%d", len(f.byEmail)+1), Email: email, PasswordHash: hash}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) List(_ context.Context, offset, limit int) ([]*models.User, error) {
	f.gotOffset, f.gotLimit = offset, limit
	return f.listOut, nil
}

type fakeTasksRepo struct {
	items     map[string]*models.Task
	listOut   []*models.Task
	getErr    error
	updateErr error

	deleted   []string
	created   *models.Task
	gotLimit  int
	forUpdate bool
}

func (f *fakeTasksRepo) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	c := *t
	c.ID = "t-new"
	f.created = &c
	return &c, nil
}

func (f *fakeTasksRepo) lookup(id string) (*models.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	t, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTasksRepo) Get(_ context.Context, id string) (*models.Task, error) {
	return f.lookup(id)
}

func (f *fakeTasksRepo) GetForUpdate(_ context.Context, id string) (*models.Task, error) {
	f.forUpdate = true
	return f.lookup(id)
}

func (f *fakeTasksRepo) ListByUser(_ context.Context, _ string, _, limit int) ([]*models.Task, error) {
	f.gotLimit = limit
	return f.listOut, nil
}

func (f *fakeTasksRepo) Update(_ context.Context, t *models.Task) (*models.Task, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeTasksRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTasksRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return m.u }
func (m *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository             { return m.t }

type fakeHasher struct {
	verifyCalls []string
	hashCalls   int
	hashErr     error
}

func (h *fakeHasher) Hash(p string) (string, error) {
	h.hashCalls++
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + p, nil
}

func (h *fakeHasher) Verify(p, hash string) bool {
	h.verifyCalls = append(h.verifyCalls, hash)
	return hash == "hashed:"+p
}

type fakeIssuer struct {
	err error
}

func (i *fakeIssuer) IssueAccessToken(subject string) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	return "token-for-" + subject, nil
}

func isDummy(hash string) bool {
	return strings.HasPrefix(hash, "hashed:") && len(hash) == len("hashed:")+32
}
