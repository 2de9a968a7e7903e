package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"ticket_system/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory SQLite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// One shared in-memory database per test, dropped when the test ends
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// SQLite serializes writers; a single connection keeps concurrent tests stable
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Ticket{}, &domain.Reply{}))
	return db
}

// fakeMailer records the last message instead of sending it
type fakeMailer struct {
	to      string
	subject string
	body    string
	fail    bool
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.fail {
		return errors.New("mail transport unavailable")
	}
	m.to, m.subject, m.body = to, subject, body
	return nil
}

// kindOf asserts the error is a typed service failure and returns its kind
func kindOf(t *testing.T, err error) Kind {
	t.Helper()
	require.Error(t, err)
	var se *Error
	require.True(t, errors.As(err, &se), "expected a typed service error, got %v", err)
	return se.Kind
}
