package user

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/olekhymko/contacts-api/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	UpdateRefreshToken(ctx context.Context, userID uint64, token *string) error
	ConfirmEmail(ctx context.Context, email string) error
	UpdateAvatar(ctx context.Context, userID uint64, url string) (*model.UserEntity, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery         = `INSERT INTO user (username, email, password_hash, avatar, confirmed, created_at) VALUES (?, ?, ?, ?, ?, NOW())`
	getUserBase             = `SELECT id, username, email, password_hash, avatar, refresh_token, confirmed, created_at, updated_at FROM user WHERE true`
	updateRefreshTokenQuery = `UPDATE user SET refresh_token = ?, updated_at = NOW() WHERE id = ?`
	confirmEmailQuery       = `UPDATE user SET confirmed = true, updated_at = NOW() WHERE email = ?`
	updateAvatarQuery       = `UPDATE user SET avatar = ?, updated_at = NOW() WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertUserQuery, data.Username, data.Email, data.PasswordHash, data.Avatar, data.Confirmed)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 3)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}
	if filter.Username != "" {
		query += " AND username = ?"
		args = append(args, filter.Username)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) UpdateRefreshToken(ctx context.Context, userID uint64, token *string) error {
	_, err := s.conn.ExecContext(ctx, updateRefreshTokenQuery, token, userID)
	return err
}

func (s *SQL) ConfirmEmail(ctx context.Context, email string) error {
	_, err := s.conn.ExecContext(ctx, confirmEmailQuery, email)
	return err
}

func (s *SQL) UpdateAvatar(ctx context.Context, userID uint64, url string) (*model.UserEntity, error) {
	if _, err := s.conn.ExecContext(ctx, updateAvatarQuery, url, userID); err != nil {
		return nil, err
	}
	return s.Get(ctx, &model.UserFilter{ID: userID})
}
