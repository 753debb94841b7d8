package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
)

const getActorBySessionToken = `
SELECT u.id, u.email, u.role
FROM sessions s
JOIN users u ON u.id = s.user_id
WHERE s.token = $1 AND s.expires_at > now()
`

func (q *Queries) GetActorBySessionToken(ctx context.Context, token string) (domain.Actor, error) {
	var actor domain.Actor
	var id pgtype.UUID
	err := q.db.QueryRow(ctx, getActorBySessionToken, token).Scan(&id, &actor.Email, &actor.Role)
	if err != nil {
		return domain.Actor{}, err
	}
	actor.ID = uuid.UUID(id.Bytes)
	return actor, nil
}

const getUserPasswordHash = `
SELECT password_hash FROM users WHERE id = $1
`

func (q *Queries) GetUserPasswordHash(ctx context.Context, userID pgtype.UUID) (string, error) {
	var hash string
	err := q.db.QueryRow(ctx, getUserPasswordHash, userID).Scan(&hash)
	return hash, err
}

const updateUserPassword = `
UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1
`

func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.Exec(ctx, updateUserPassword, arg.UserID, arg.PasswordHash)
	return err
}

const createPasswordChangeToken = `
INSERT INTO password_change_tokens (user_id, new_password_hash, otp_hash, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING id
`

func (q *Queries) CreatePasswordChangeToken(ctx context.Context, arg CreatePasswordChangeTokenParams) (pgtype.UUID, error) {
	var id pgtype.UUID
	err := q.db.QueryRow(ctx, createPasswordChangeToken,
		arg.UserID, arg.NewPasswordHash, arg.OTPHash, arg.ExpiresAt).Scan(&id)
	return id, err
}

const getPasswordChangeToken = `
SELECT id, user_id, new_password_hash, otp_hash, attempts, expires_at
FROM password_change_tokens
WHERE id = $1 AND consumed_at IS NULL
`

func (q *Queries) GetPasswordChangeToken(ctx context.Context, id pgtype.UUID) (PasswordChangeToken, error) {
	var t PasswordChangeToken
	err := q.db.QueryRow(ctx, getPasswordChangeToken, id).Scan(
		&t.ID, &t.UserID, &t.NewPasswordHash, &t.OTPHash, &t.Attempts, &t.ExpiresAt)
	return t, err
}

const incrementTokenAttempts = `
UPDATE password_change_tokens SET attempts = attempts + 1 WHERE id = $1
`

func (q *Queries) IncrementTokenAttempts(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, incrementTokenAttempts, id)
	return err
}

// The consumed_at guard makes consumption single-shot.
const consumePasswordChangeToken = `
UPDATE password_change_tokens SET consumed_at = now() WHERE id = $1 AND consumed_at IS NULL
`

func (q *Queries) ConsumePasswordChangeToken(ctx context.Context, id pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, consumePasswordChangeToken, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
