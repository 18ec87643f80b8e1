package postgres

import (
	"context"
	"fmt"
	"time"

	"pixshare/internal/domain/user"
	"pixshare/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
)

// VerificationCodeRepository implements user.VerificationCodeRepository.
type VerificationCodeRepository struct {
	db *DB
}

func NewVerificationCodeRepository(db *DB) user.VerificationCodeRepository {
	return &VerificationCodeRepository{db: db}
}

func (r *VerificationCodeRepository) Create(ctx context.Context, code *user.VerificationCode) error {
	code.ID = uuid.New()
	code.CreatedAt = time.Now()

	dbModel := &models.VerificationCodeModel{
		ID:               code.ID,
		UserID:           code.UserID,
		Code:             code.Code,
		VerificationType: string(code.VerificationType),
		ExpiresAt:        code.ExpiresAt,
		Confirmed:        code.Confirmed,
		CreatedAt:        code.CreatedAt,
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create verification code: %w", err)
	}

	return nil
}

func (r *VerificationCodeRepository) ConfirmMatching(ctx context.Context, userID uuid.UUID, code string) (int64, error) {
	result := r.db.DB.WithContext(ctx).Model(&models.VerificationCodeModel{}).
		Where("user_id = ? AND code = ? AND confirmed = false AND expires_at >= ?", userID, code, time.Now()).
		Update("confirmed", true)

	if result.Error != nil {
		return 0, fmt.Errorf("failed to confirm verification codes: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *VerificationCodeRepository) HasActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).Model(&models.VerificationCodeModel{}).
		Where("user_id = ? AND confirmed = false AND expires_at >= ?", userID, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check verification codes: %w", err)
	}

	return count > 0, nil
}

func (r *VerificationCodeRepository) DeleteExpired(ctx context.Context) error {
	result := r.db.DB.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.VerificationCodeModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete expired verification codes: %w", result.Error)
	}

	return nil
}
