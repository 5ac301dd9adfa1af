package test_utils

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/kharcha/kharcha/pkg/user"
)

// TestUser is the fixture account used across repository tests.
var TestUser = user.User{
	Id:          123,
	Uid:         "00000000-0000-0000-0000-000000000123",
	Username:    "test_user",
	Email:       "test@example.com",
	DisplayName: "Test User",
	CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
}

// TestContext returns a context carrying the fixture user, matching what the
// auth middleware sets up for real requests.
func TestContext() context.Context {
	return user.WithUser(context.Background(), TestUser)
}

// InsertTestUser stores the fixture user so foreign keys on user_id resolve.
func InsertTestUser(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO users (id, uid, username, email, display_name, password_hash, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		TestUser.Id,
		TestUser.Uid,
		TestUser.Username,
		TestUser.Email,
		TestUser.DisplayName,
		"not-a-real-hash",
		TestUser.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}
}
