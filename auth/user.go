// Package auth - User accounts, password verification, and JWT issuance
// for the HTTP API.
package auth

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// User is the persisted account record. Password holds the bcrypt hash,
// never the plaintext.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"uniqueIndex;size:64" json:"username"`
	Email     string `gorm:"uniqueIndex;size:255" json:"email"`
	Password  string `json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(u *User) error
	FindByUsername(username string) (*User, error)
	FindByID(id uint) (*User, error)
}

type userSQLite struct {
	db *gorm.DB
}

var _ UserStore = (*userSQLite)(nil)

// OpenStore opens (or creates) the SQLite database at path and runs the
// user table migration.
func OpenStore(path string) (UserStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, err
	}
	return &userSQLite{db: db}, nil
}

// NewUserStore wraps an existing gorm connection.
func NewUserStore(db *gorm.DB) UserStore {
	return &userSQLite{db: db}
}

func (s *userSQLite) Create(u *User) error {
	return s.db.Create(u).Error
}

func (s *userSQLite) FindByUsername(username string) (*User, error) {
	var u User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userSQLite) FindByID(id uint) (*User, error) {
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
