package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	UpdateProfile(ctx context.Context, userId int, displayName, email string) (User, error)
	UpdatePassword(ctx context.Context, userId int, passwordHash string) error
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type UserRepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

const userColumns = "id, uid, username, email, display_name, password_hash, created_at"

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, username, email, display_name, password_hash, created_at)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int
	err := u.db.QueryRowContext(ctx, query,
		user.Uid,
		user.Username,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.CreatedAt.UTC().Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return u.scanUser(u.db.QueryRowContext(ctx, query, id))
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE uid = $1", userColumns)
	return u.scanUser(u.db.QueryRowContext(ctx, query, uid))
}

func (u *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE username = $1", userColumns)
	return u.scanUser(u.db.QueryRowContext(ctx, query, username))
}

func (u *UserRepoImpl) scanUser(row *sql.Row) (User, error) {
	var user User
	var createdAt string
	err := row.Scan(
		&user.Id,
		&user.Uid,
		&user.Username,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan user: %w", err)
		log.Error(err)
		return User{}, err
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		user.CreatedAt = parsed
	}
	return user, nil
}

func (u *UserRepoImpl) UpdateProfile(ctx context.Context, userId int, displayName, email string) (User, error) {
	query := "UPDATE users SET display_name = $1, email = $2 WHERE id = $3"
	result, err := u.db.ExecContext(ctx, query, displayName, email, userId)
	if err != nil {
		err := fmt.Errorf("could not update user profile: %w", err)
		log.Error(err)
		return User{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return User{}, err
	}
	if rowsAffected != 1 {
		return User{}, ErrUserNotFound
	}
	return u.GetUser(ctx, userId)
}

func (u *UserRepoImpl) UpdatePassword(ctx context.Context, userId int, passwordHash string) error {
	query := "UPDATE users SET password_hash = $1 WHERE id = $2"
	result, err := u.db.ExecContext(ctx, query, passwordHash, userId)
	if err != nil {
		err := fmt.Errorf("could not update password: %w", err)
		log.Error(err)
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return err
	}
	if rowsAffected != 1 {
		return ErrUserNotFound
	}
	return nil
}

func (u *UserRepoImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	query := "SELECT COUNT(1) FROM users WHERE username = $1"
	var count int
	if err := u.db.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		err := fmt.Errorf("could not check username availability: %w", err)
		log.Error(err)
		return false, err
	}
	return count == 0, nil
}
