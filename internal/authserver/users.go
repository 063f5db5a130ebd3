package authserver

import (
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is an account row.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Users is the account table.
type Users struct {
	db   *sql.DB
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// OpenUsers opens (or creates) the account database at path. Use ":memory:"
// for a throwaway database. cost is the bcrypt work factor; 0 means default.
func OpenUsers(path string, cost int) (*Users, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	u := &Users{db: db, cost: cost}
	if err := u.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return u, nil
}

func (u *Users) createTables() error {
	_, err := u.db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// Close closes the database connection.
func (u *Users) Close() error { return u.db.Close() }

// preparePassword pre-hashes with SHA-256 so bcrypt never truncates at 72 bytes.
func preparePassword(password []byte) []byte {
	h := sha256.Sum256(password)
	return h[:]
}

// Create adds an account.
func (u *Users) Create(username string, password []byte) (User, error) {
	var exists int
	err := u.db.QueryRow("SELECT COUNT(1) FROM users WHERE username = ?", username).Scan(&exists)
	if err != nil {
		return User{}, fmt.Errorf("querying user: %w", err)
	}
	if exists > 0 {
		return User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword(preparePassword(password), u.cost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}
	user := User{ID: uuid.NewString(), Username: username}
	_, err = u.db.Exec(
		"INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)",
		user.ID, user.Username, string(hash),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return User{}, ErrUsernameTaken
		}
		return User{}, fmt.Errorf("inserting user: %w", err)
	}
	return user, nil
}

// Authenticate checks a username and password pair.
func (u *Users) Authenticate(username string, password []byte) (User, error) {
	var user User
	var hash string
	err := u.db.QueryRow(
		"SELECT id, username, password_hash FROM users WHERE username = ?",
		username,
	).Scan(&user.ID, &user.Username, &hash)

	prepared := preparePassword(password)
	if errors.Is(err, sql.ErrNoRows) {
		// Spend the same bcrypt time for unknown users.
		_ = bcrypt.CompareHashAndPassword(u.dummyHash(), prepared)
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, fmt.Errorf("querying user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), prepared); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (u *Users) dummyHash() []byte {
	u.dummyOnce.Do(func() {
		u.dummy, _ = bcrypt.GenerateFromPassword(preparePassword(nil), u.cost)
	})
	return u.dummy
}
