// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// uniqueName returns a name that will not collide across test runs.
func uniqueName(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// mustCreatePost inserts a post directly and registers its cleanup,
// including any association rows created later in the test.
func mustCreatePost(t *testing.T, db *sql.DB, title, content string, published bool) *models.Post {
	t.Helper()

	posts := NewPostStore(db)
	post, err := posts.Create(&models.Post{
		Title:     title,
		Slug:      uniqueName("slug"),
		Content:   content,
		Published: published,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM post_tags WHERE post_id = $1", post.ID)
		db.Exec("DELETE FROM post_users WHERE post_id = $1", post.ID)
		db.Exec("DELETE FROM posts WHERE id = $1", post.ID)
	})
	return post
}

// mustCreateUser inserts a user and registers its cleanup.
func mustCreateUser(t *testing.T, db *sql.DB, name string, admin bool) *models.User {
	t.Helper()

	users := NewUserStore(db)
	user, err := users.Create(name, "testpass123", admin)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM post_users WHERE user_id = $1", user.ID)
		db.Exec("DELETE FROM users WHERE id = $1", user.ID)
	})
	return user
}

// cleanTag removes a tag by name. Call in t.Cleanup().
func cleanTag(t *testing.T, db *sql.DB, name string) {
	t.Helper()
	db.Exec("DELETE FROM post_tags WHERE tag_id IN (SELECT id FROM tags WHERE name = $1)", name)
	db.Exec("DELETE FROM tags WHERE name = $1", name)
}
