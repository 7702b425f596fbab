package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/genomelens-backend/internal/apperr"
	"github.com/yungbote/genomelens-backend/internal/logger"
	"github.com/yungbote/genomelens-backend/internal/types"
)

// TraitRepo is the per-profile trait map store. MergeValues touches only the
// keys in the patch and leaves every other stored key alone; ReplaceValues is
// the destructive full overwrite used by the direct-edit path, never by the
// assessment flow.
type TraitRepo interface {
	Create(ctx context.Context, tx *gorm.DB, doc *types.TraitDoc) error
	GetByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.TraitDoc, error)
	MergeValues(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, patch map[string]interface{}) error
	ReplaceValues(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, values map[string]interface{}) error
}

type traitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTraitRepo(db *gorm.DB, baseLog *logger.Logger) TraitRepo {
	repoLog := baseLog.With("repo", "TraitRepo")
	return &traitRepo{db: db, log: repoLog}
}

func (tr *traitRepo) Create(ctx context.Context, tx *gorm.DB, doc *types.TraitDoc) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).Create(doc).Error
}

func (tr *traitRepo) GetByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.TraitDoc, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var doc types.TraitDoc
	if err := transaction.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("trait doc for profile %s: %w", profileID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &doc, nil
}

func (tr *traitRepo) MergeValues(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, patch map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal trait patch: %w", err)
	}

	// jsonb concatenation merges at the top level, so only patched keys move.
	// "values" must stay quoted inside the raw expression: VALUES is a
	// reserved word and Postgres rejects the bare column reference.
	res := transaction.WithContext(ctx).
		Model(&types.TraitDoc{}).
		Where("profile_id = ?", profileID).
		Updates(map[string]interface{}{
			"values":     gorm.Expr(`COALESCE("values", '{}'::jsonb) || ?::jsonb`, string(raw)),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("trait doc for profile %s: %w", profileID, apperr.ErrNotFound)
	}
	return nil
}

func (tr *traitRepo) ReplaceValues(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, values map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal trait values: %w", err)
	}

	res := transaction.WithContext(ctx).
		Model(&types.TraitDoc{}).
		Where("profile_id = ?", profileID).
		Updates(map[string]interface{}{
			"values":     gorm.Expr("?::jsonb", string(raw)),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("trait doc for profile %s: %w", profileID, apperr.ErrNotFound)
	}
	return nil
}
