package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/genomelens-backend/internal/apperr"
	"github.com/yungbote/genomelens-backend/internal/logger"
	"github.com/yungbote/genomelens-backend/internal/repos"
	"github.com/yungbote/genomelens-backend/internal/sse"
	"github.com/yungbote/genomelens-backend/internal/types"
)

type TraitService interface {
	GetForProfile(ctx context.Context, profileID uuid.UUID) (*types.TraitDoc, error)
	// Merge patches only the named keys into the trait map (direct-edit path).
	// The user id scopes the SSE notification; callers already hold it from
	// the ownership check.
	Merge(ctx context.Context, userID, profileID uuid.UUID, patch map[string]interface{}) error
	// Replace overwrites the whole trait map. Destructive; not used by the
	// assessment flow.
	Replace(ctx context.Context, profileID uuid.UUID, values map[string]interface{}) error
}

type traitService struct {
	db        *gorm.DB
	log       *logger.Logger
	traitRepo repos.TraitRepo
	notifier  *EventNotifier
}

func NewTraitService(db *gorm.DB, log *logger.Logger, traitRepo repos.TraitRepo, notifier *EventNotifier) TraitService {
	serviceLog := log.With("service", "TraitService")
	return &traitService{db: db, log: serviceLog, traitRepo: traitRepo, notifier: notifier}
}

func (ts *traitService) GetForProfile(ctx context.Context, profileID uuid.UUID) (*types.TraitDoc, error) {
	return ts.traitRepo.GetByProfileID(ctx, nil, profileID)
}

func (ts *traitService) Merge(ctx context.Context, userID, profileID uuid.UUID, patch map[string]interface{}) error {
	if len(patch) == 0 {
		return fmt.Errorf("%w: empty trait patch", apperr.ErrInvalidArgument)
	}
	if err := ts.traitRepo.MergeValues(ctx, nil, profileID, patch); err != nil {
		return err
	}

	ts.notifier.Publish(ctx, sse.SSEMessage{
		Channel: sse.UserChannel(userID),
		Event:   sse.SSEEventTraitsMerged,
		Data:    map[string]interface{}{"profile_id": profileID},
	})
	return nil
}

func (ts *traitService) Replace(ctx context.Context, profileID uuid.UUID, values map[string]interface{}) error {
	if values == nil {
		values = map[string]interface{}{}
	}
	return ts.traitRepo.ReplaceValues(ctx, nil, profileID, values)
}
