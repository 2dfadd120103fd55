package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
		Port:      "0",
		Env:       "test",
	}
}

// newTestServer builds a Server backed by sqlmock and returns the Fiber app.
func newTestServer(t *testing.T) (*Server, *fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	srv, err := NewServerWithDeps(testConfig(), gormDB, nil)
	require.NoError(t, err)

	return srv, srv.NewApp(), mock
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}
