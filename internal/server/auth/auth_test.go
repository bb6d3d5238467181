package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recLogger struct {
	mu      sync.Mutex
	entries *[]logEntry
}

func newRecLogger() *recLogger {
	return &recLogger{entries: &[]logEntry{}}
}

func (l *recLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *recLogger) Debug(_ context.Context, msg string, args ...any) { l.add("debug", msg, args) }
func (l *recLogger) Info(_ context.Context, msg string, args ...any)  { l.add("info", msg, args) }
func (l *recLogger) Warn(_ context.Context, msg string, args ...any)  { l.add("warn", msg, args) }
func (l *recLogger) Error(_ context.Context, msg string, args ...any) { l.add("error", msg, args) }
func (l *recLogger) With(...any) logging.Logger                       { return l }

func (l *recLogger) levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(*l.entries))
	for _, e := range *l.entries {
		out = append(out, e.level)
	}
	return out
}

type fakeUsers struct {
	users   map[string]*models.User
	err     error
	lastCtx context.Context
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.lastCtx = ctx
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user %s: %w", id, common.ErrorNotFound)
	}
	return u, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var (
	testSecret = []byte("test-secret-key")
	testNow    = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

func claimsFor(subject string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{Subject: subject}
}
