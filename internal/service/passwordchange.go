package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mvillanueva/tindahan/internal/auth"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/repository"
	"github.com/mvillanueva/tindahan/internal/token"
)

// Password-change limits.
const (
	otpTTL         = 10 * time.Minute
	maxOTPAttempts = 5
)

// Password-change errors.
var (
	errOTPExpired  = &domain.Error{Code: domain.EUNAUTHORIZED, Message: "Verification code expired, request a new one"}
	errOTPInvalid  = &domain.Error{Code: domain.EUNAUTHORIZED, Message: "Incorrect verification code"}
	errOTPConsumed = &domain.Error{Code: domain.ECONFLICT, Message: "Verification code already used"}
	errOTPLocked   = &domain.Error{Code: domain.EUNAUTHORIZED, Message: "Too many incorrect attempts, request a new code"}
)

// OTPSender delivers a one-time code to a user out of band (email or SMS).
type OTPSender interface {
	SendOTP(ctx context.Context, email, code string) error
}

// LogOTPSender writes codes to the log. Development only.
type LogOTPSender struct {
	Logger *slog.Logger
}

func (s LogOTPSender) SendOTP(_ context.Context, email, code string) error {
	s.Logger.Info("otp issued", slog.String("email", email), slog.String("code", code))
	return nil
}

// PasswordChangeService implements the two-step password change: request
// issues an OTP and an opaque token, confirm verifies the OTP and applies the
// new password. All pending state lives server side; the token is only a
// signed row reference.
type PasswordChangeService interface {
	// Request verifies the current password, stages the new password hash
	// with a hashed OTP, sends the OTP to the actor, and returns the opaque
	// token for the confirm step.
	Request(ctx context.Context, currentPassword, newPassword string) (string, error)

	// Confirm checks the OTP against the staged row and applies the new
	// password. The row is consumed on success and after too many failures.
	Confirm(ctx context.Context, opaqueToken, otp string) error
}

type passwordChangeService struct {
	repo   repository.Querier
	signer *token.Signer
	sender OTPSender
	logger *slog.Logger
}

// NewPasswordChangeService creates a new PasswordChangeService instance.
func NewPasswordChangeService(repo repository.Querier, signer *token.Signer, sender OTPSender, logger *slog.Logger) PasswordChangeService {
	return &passwordChangeService{repo: repo, signer: signer, sender: sender, logger: logger}
}

func (s *passwordChangeService) Request(ctx context.Context, currentPassword, newPassword string) (string, error) {
	const op = "account.password_change.request"

	actor, err := domain.RequireActor(ctx, op)
	if err != nil {
		return "", err
	}

	currentHash, err := s.repo.GetUserPasswordHash(ctx, pgUUID(actor.ID))
	if err != nil {
		return "", domain.Internal(err, op, "failed to load account")
	}
	if err := auth.VerifyPassword(currentPassword, currentHash); err != nil {
		return "", domain.Unauthorized(op, "Current password is incorrect")
	}

	newHash, err := auth.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return "", domain.Invalid(op, "New password is too short")
		}
		return "", domain.Internal(err, op, "failed to hash password")
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		return "", domain.Internal(err, op, "failed to generate code")
	}
	otpHash, err := auth.HashOTP(otp)
	if err != nil {
		return "", domain.Internal(err, op, "failed to hash code")
	}

	id, err := s.repo.CreatePasswordChangeToken(ctx, repository.CreatePasswordChangeTokenParams{
		UserID:          pgUUID(actor.ID),
		NewPasswordHash: newHash,
		OTPHash:         otpHash,
		ExpiresAt:       time.Now().Add(otpTTL),
	})
	if err != nil {
		return "", domain.Internal(err, op, "failed to stage password change")
	}

	if err := s.sender.SendOTP(ctx, actor.Email, otp); err != nil {
		return "", domain.Internal(err, op, "failed to send verification code")
	}

	s.logger.Info("password change requested", slog.String("user_id", actor.ID.String()))

	return s.signer.Sign(uuid.UUID(id.Bytes)), nil
}

func (s *passwordChangeService) Confirm(ctx context.Context, opaqueToken, otp string) error {
	const op = "account.password_change.confirm"

	actor, err := domain.RequireActor(ctx, op)
	if err != nil {
		return err
	}

	rowID, err := s.signer.Verify(opaqueToken)
	if err != nil {
		return domain.Unauthorized(op, "Invalid password change token")
	}

	row, err := s.repo.GetPasswordChangeToken(ctx, pgUUID(rowID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errOTPConsumed
		}
		return domain.Internal(err, op, "failed to load pending change")
	}

	// The token must belong to the logged-in user; a leaked token is useless
	// from another session.
	if row.UserID != pgUUID(actor.ID) {
		return domain.Unauthorized(op, "Invalid password change token")
	}
	if time.Now().After(row.ExpiresAt.Time) {
		return errOTPExpired
	}
	if row.Attempts >= maxOTPAttempts {
		return errOTPLocked
	}

	if !auth.VerifyOTP(otp, row.OTPHash) {
		if err := s.repo.IncrementTokenAttempts(ctx, row.ID); err != nil {
			s.logger.Warn("failed to record otp attempt", slog.String("error", err.Error()))
		}
		return errOTPInvalid
	}

	// Consume first. If two confirms race, one wins and the loser sees the
	// row as spent.
	affected, err := s.repo.ConsumePasswordChangeToken(ctx, row.ID)
	if err != nil {
		return domain.Internal(err, op, "failed to consume token")
	}
	if affected == 0 {
		return errOTPConsumed
	}

	if err := s.repo.UpdateUserPassword(ctx, repository.UpdateUserPasswordParams{
		UserID:       row.UserID,
		PasswordHash: row.NewPasswordHash,
	}); err != nil {
		return domain.Internal(err, op, "failed to update password")
	}

	s.logger.Info("password changed", slog.String("user_id", actor.ID.String()))
	return nil
}
