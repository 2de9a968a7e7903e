package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"ticket_system/internal/config"
	"ticket_system/internal/domain"
	"ticket_system/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// fakeMailer records the last message instead of sending it
type fakeMailer struct {
	to   string
	body string
	fail bool
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.fail {
		return errors.New("mail transport unavailable")
	}
	m.to, m.body = to, body
	return nil
}

// newTestRouter wires the full router against a per-test in-memory SQLite
// database. Redis is absent; cache lookups fall through to the database.
func newTestRouter(t *testing.T, mailer *fakeMailer) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Ticket{}, &domain.Reply{}))
	cfg := &config.Config{
		JWTSecret: testSecret,
		UploadDir: t.TempDir(),
	}
	return NewRouter(db, nil, mailer, cfg), db
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into a generic map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// registerJane creates the scenario user through the HTTP surface
func registerJane(t *testing.T, r *gin.Engine) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/users/register", "", gin.H{
		"fullname":     "Jane Doe",
		"email":        "jane@x.com",
		"phone_number": "08123456789",
		"username":     "janed",
		"password":     "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
}

// itoa renders a record ID for request paths
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// tokenFor mints a valid access token for tests that exercise protected routes
func tokenFor(t *testing.T, userID uint) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(userID, "User", testSecret)
	require.NoError(t, err)
	return token
}
