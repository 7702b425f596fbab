package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/genomelens-backend/internal/logger"
	"github.com/yungbote/genomelens-backend/internal/types"
)

// AssessmentRepo is the append-only assessment log. There is deliberately no
// update or delete here.
type AssessmentRepo interface {
	Append(ctx context.Context, tx *gorm.DB, assessment *types.Assessment) (uuid.UUID, error)
	GetByID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (*types.Assessment, error)
	ListByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Assessment, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	repoLog := baseLog.With("repo", "AssessmentRepo")
	return &assessmentRepo{db: db, log: repoLog}
}

func (ar *assessmentRepo) Append(ctx context.Context, tx *gorm.DB, assessment *types.Assessment) (uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if assessment.ID == uuid.Nil {
		assessment.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(assessment).Error; err != nil {
		return uuid.Nil, err
	}
	return assessment.ID, nil
}

func (ar *assessmentRepo) GetByID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var assessment types.Assessment
	if err := transaction.WithContext(ctx).
		Where("id = ?", assessmentID).
		First(&assessment).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (ar *assessmentRepo) ListByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Assessment
	if err := transaction.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
