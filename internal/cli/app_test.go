package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccounts struct {
	email, password string
	err             error
}

func (s *stubAccounts) Register(_ context.Context, email, password string) (*models.User, error) {
	s.email, s.password = email, password
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{ID: "u1", Email: email}, nil
}

func (s *stubAccounts) Login(_ context.Context, email, password string) (string, error) {
	s.email, s.password = email, password
	if s.err != nil {
		return "", s.err
	}
	return "tok", nil
}

func pipedInput(t *testing.T) {
	t.Helper()
	old := isTerminal
	t.Cleanup(func() { isTerminal = old })
	isTerminal = func(int) bool { return false }
}

func TestRun_Register(t *testing.T) {
	pipedInput(t)
	acc := &stubAccounts{}
	var out bytes.Buffer

	app := NewApp(acc, strings.NewReader("password123\n"), 0, &out)
	err := app.Run(context.Background(), []string{"-d", "postgres://x", "register", "-email", "a@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "a@example.com", acc.email)
	assert.Equal(t, "password123", acc.password)
	assert.Contains(t, out.String(), "registered a@example.com (id u1)")
}

func TestRun_Login(t *testing.T) {
	pipedInput(t)
	acc := &stubAccounts{}
	var out bytes.Buffer

	app := NewApp(acc, strings.NewReader("password123"), 0, &out)
	require.NoError(t, app.Run(context.Background(), []string{"login", "-email=a@example.com"}))
	assert.True(t, strings.HasSuffix(out.String(), "tok\n"))

	acc.err = common.ErrInvalidCredentials
	app = NewApp(acc, strings.NewReader("wrong\n"), 0, &out)
	err := app.Run(context.Background(), []string{"login", "-email", "a@example.com"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRun_Usage(t *testing.T) {
	app := NewApp(&stubAccounts{}, strings.NewReader(""), 0, &bytes.Buffer{})

	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"delete"}), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"login"}), ErrUsage)
}

func TestGetPassword_Terminal(t *testing.T) {
	oldTerm, oldRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = oldTerm, oldRead })
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("secret-pw"), nil }

	var out bytes.Buffer
	pw, err := GetPassword(nil, 0, &out)
	require.NoError(t, err)
	assert.Equal(t, "secret-pw", string(pw))
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(nil, 0, &out)
	assert.Error(t, err)
}

func TestGetPassword_EmptyPipe(t *testing.T) {
	pipedInput(t)
	_, err := GetPassword(NewApp(nil, strings.NewReader(""), 0, nil).in, 0, &bytes.Buffer{})
	assert.Error(t, err)
}
