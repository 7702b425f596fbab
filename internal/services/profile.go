package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/genomelens-backend/internal/apperr"
	"github.com/yungbote/genomelens-backend/internal/genetics"
	"github.com/yungbote/genomelens-backend/internal/logger"
	"github.com/yungbote/genomelens-backend/internal/repos"
	"github.com/yungbote/genomelens-backend/internal/sse"
	"github.com/yungbote/genomelens-backend/internal/types"
)

// DefaultProfileName is the profile created for every new user.
const DefaultProfileName = "Primary Profile"

type ProfileService interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (*types.Profile, error)
	CreateDefaultForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Profile, error)
	GetByID(ctx context.Context, profileID uuid.UUID) (*types.Profile, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Profile, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.ProfileRepo
	traitRepo   repos.TraitRepo
	userRepo    repos.UserRepo
	notifier    *EventNotifier
}

func NewProfileService(
	db *gorm.DB,
	log *logger.Logger,
	profileRepo repos.ProfileRepo,
	traitRepo repos.TraitRepo,
	userRepo repos.UserRepo,
	notifier *EventNotifier,
) ProfileService {
	serviceLog := log.With("service", "ProfileService")
	return &profileService{
		db:          db,
		log:         serviceLog,
		profileRepo: profileRepo,
		traitRepo:   traitRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

func newZeroGenomeProfile(userID uuid.UUID, name string) *types.Profile {
	blocks := genetics.NormalizeBlocks(nil)
	rawBlocks, _ := json.Marshal(blocks)
	return &types.Profile{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		GenomeVersion: genetics.GenomeVersionDefault,
		GenomeBlocks:  datatypes.JSON(rawBlocks),
		GenomeString:  genetics.DefaultGenomeString,
	}
}

// Create makes a profile with an all-zero genome and an empty trait doc tied
// to it, in one transaction.
func (ps *profileService) Create(ctx context.Context, userID uuid.UUID, name string) (*types.Profile, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: profile name is required", apperr.ErrInvalidArgument)
	}

	profile := newZeroGenomeProfile(userID, name)
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.profileRepo.Create(ctx, tx, profile); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		traitDoc := &types.TraitDoc{
			ID:        uuid.New(),
			ProfileID: profile.ID,
			UserID:    userID,
			Values:    datatypes.JSON([]byte(`{}`)),
		}
		if err := ps.traitRepo.Create(ctx, tx, traitDoc); err != nil {
			return fmt.Errorf("create trait doc: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ps.notifier.Publish(ctx, sse.SSEMessage{
		Channel: sse.UserChannel(userID),
		Event:   sse.SSEEventProfileCreated,
		Data:    map[string]interface{}{"profile_id": profile.ID, "name": profile.Name},
	})
	return profile, nil
}

// CreateDefaultForUser creates the "Primary Profile" for a freshly registered
// user inside the registration transaction and records a profile count of 1.
func (ps *profileService) CreateDefaultForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Profile, error) {
	profile := newZeroGenomeProfile(userID, DefaultProfileName)
	if err := ps.profileRepo.Create(ctx, tx, profile); err != nil {
		return nil, fmt.Errorf("create default profile: %w", err)
	}
	traitDoc := &types.TraitDoc{
		ID:        uuid.New(),
		ProfileID: profile.ID,
		UserID:    userID,
		Values:    datatypes.JSON([]byte(`{}`)),
	}
	if err := ps.traitRepo.Create(ctx, tx, traitDoc); err != nil {
		return nil, fmt.Errorf("create default trait doc: %w", err)
	}
	if err := ps.userRepo.SetProfileCount(ctx, tx, userID, 1); err != nil {
		return nil, fmt.Errorf("set profile count: %w", err)
	}
	return profile, nil
}

func (ps *profileService) GetByID(ctx context.Context, profileID uuid.UUID) (*types.Profile, error) {
	return ps.profileRepo.GetByID(ctx, nil, profileID)
}

func (ps *profileService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Profile, error) {
	return ps.profileRepo.ListByUserID(ctx, nil, userID)
}

// decodeGenomeBlocks reads the stored jsonb block array. Absent or malformed
// arrays come back nil so callers can normalize to the zero genome.
func decodeGenomeBlocks(raw datatypes.JSON) []int {
	if len(raw) == 0 {
		return nil
	}
	var blocks []int
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil
	}
	return blocks
}
