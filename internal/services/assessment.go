package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

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

const AssessmentTypeGeneA = "gene-a"

type GeneAResult struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
	GeneA        int       `json:"gene_a"`
}

// AssessmentService runs the gene-a submission flow: append an immutable
// assessment record, merge the derived traits, update genome block 0. The
// three writes are sequential and not wrapped in a transaction; the profile
// and trait stores can diverge if a later step fails. ApplyGenomeBlock is
// exposed and idempotent so the genome step can be re-driven after a partial
// failure without appending a second assessment record.
type AssessmentService interface {
	SubmitGeneA(ctx context.Context, userID, profileID uuid.UUID, responses types.GeneARawResponses) (*GeneAResult, error)
	ApplyGenomeBlock(ctx context.Context, profileID uuid.UUID, blockIndex, code int) error
	ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*types.Assessment, error)
}

type assessmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	profileRepo    repos.ProfileRepo
	traitRepo      repos.TraitRepo
	assessmentRepo repos.AssessmentRepo
	notifier       *EventNotifier
	now            func() time.Time
}

func NewAssessmentService(
	db *gorm.DB,
	log *logger.Logger,
	profileRepo repos.ProfileRepo,
	traitRepo repos.TraitRepo,
	assessmentRepo repos.AssessmentRepo,
	notifier *EventNotifier,
) AssessmentService {
	serviceLog := log.With("service", "AssessmentService")
	return &assessmentService{
		db:             db,
		log:            serviceLog,
		profileRepo:    profileRepo,
		traitRepo:      traitRepo,
		assessmentRepo: assessmentRepo,
		notifier:       notifier,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (as *assessmentService) SubmitGeneA(ctx context.Context, userID, profileID uuid.UUID, responses types.GeneARawResponses) (*GeneAResult, error) {
	birthDate, err := validateGeneAResponses(responses)
	if err != nil {
		return nil, err
	}

	now := as.now()
	heightCm := responses.Height.Centimeters
	if responses.Height.Unit == types.HeightUnitImperial {
		heightCm = genetics.ImperialToCm(*responses.Height.Feet, *responses.Height.Inches)
	}
	ageYears := genetics.AgeYears(birthDate, now)
	ageBand := genetics.AgeBand(ageYears)
	heightBand := genetics.HeightBand(heightCm)
	geneA := genetics.ComputeGeneA(responses.RaceCategory, responses.GenderIdentity, ageYears, heightCm)

	rawResponses, err := json.Marshal(responses)
	if err != nil {
		return nil, fmt.Errorf("marshal responses: %w", err)
	}

	assessment := &types.Assessment{
		UserID:    userID,
		ProfileID: profileID,
		Type:      AssessmentTypeGeneA,
		Version:   genetics.GeneAVersion,
		Responses: datatypes.JSON(rawResponses),
		CreatedAt: now,
	}
	assessmentID, err := as.assessmentRepo.Append(ctx, nil, assessment)
	if err != nil {
		return nil, fmt.Errorf("append assessment: %w", err)
	}

	traitPatch := map[string]interface{}{
		"physical_gender_identity": string(responses.GenderIdentity),
		"physical_race_category":   string(responses.RaceCategory),
		"physical_birth_date":      responses.BirthDate,
		"physical_age_years":       ageYears,
		"physical_age_band":        ageBand,
		"physical_height_cm":       heightCm,
		"physical_height_band":     heightBand,
		"gene_a":                   geneA,
		"gene_a_version":           genetics.GeneAVersion,
	}
	if err := as.traitRepo.MergeValues(ctx, nil, profileID, traitPatch); err != nil {
		as.log.Warn("Assessment recorded but trait merge failed",
			"assessmentID", assessmentID, "profileID", profileID, "error", err)
		return nil, fmt.Errorf("merge traits for assessment %s: %w", assessmentID, err)
	}

	if err := as.ApplyGenomeBlock(ctx, profileID, genetics.GeneABlockIndex, geneA); err != nil {
		as.log.Warn("Traits updated but genome update failed; genome string is stale",
			"assessmentID", assessmentID, "profileID", profileID, "error", err)
		return nil, fmt.Errorf("apply genome block for assessment %s: %w", assessmentID, err)
	}

	as.notifier.Publish(ctx, sse.SSEMessage{
		Channel: sse.UserChannel(userID),
		Event:   sse.SSEEventProfileGenomeUpdated,
		Data: map[string]interface{}{
			"profile_id":    profileID,
			"assessment_id": assessmentID,
			"gene_a":        geneA,
		},
	})

	as.log.Info("Gene-A assessment applied", "assessmentID", assessmentID, "profileID", profileID, "geneA", geneA)
	return &GeneAResult{AssessmentID: assessmentID, GeneA: geneA}, nil
}

// ApplyGenomeBlock overwrites one genome block and rewrites the genome string
// so the two never diverge at rest. Short or malformed stored block arrays
// are padded with zeros first. Safe to call repeatedly with the same value.
func (as *assessmentService) ApplyGenomeBlock(ctx context.Context, profileID uuid.UUID, blockIndex, code int) error {
	if blockIndex < 0 || blockIndex >= genetics.GenomeBlockCount {
		return fmt.Errorf("%w: block index %d out of range", apperr.ErrInvalidArgument, blockIndex)
	}
	if code < 0 {
		return fmt.Errorf("%w: negative gene code %d", apperr.ErrInvalidArgument, code)
	}

	profile, err := as.profileRepo.GetByID(ctx, nil, profileID)
	if err != nil {
		return err
	}

	blocks := genetics.NormalizeBlocks(decodeGenomeBlocks(profile.GenomeBlocks))
	blocks[blockIndex] = code

	rawBlocks, err := json.Marshal(blocks)
	if err != nil {
		return fmt.Errorf("marshal genome blocks: %w", err)
	}
	genomeVersion := profile.GenomeVersion
	if genomeVersion == "" {
		genomeVersion = genetics.GenomeVersionDefault
	}

	return as.profileRepo.UpdateFields(ctx, nil, profileID, map[string]interface{}{
		"genome_blocks":  datatypes.JSON(rawBlocks),
		"genome_string":  genetics.FormatGenome(blocks),
		"genome_version": genomeVersion,
		"updated_at":     as.now(),
	})
}

func (as *assessmentService) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*types.Assessment, error) {
	return as.assessmentRepo.ListByProfileID(ctx, nil, profileID)
}

// validateGeneAResponses rejects a submission before any write happens. The
// form layer does its own field validation; this is the backend backstop.
func validateGeneAResponses(responses types.GeneARawResponses) (time.Time, error) {
	if responses.BirthDate == "" {
		return time.Time{}, fmt.Errorf("%w: birth date is required", apperr.ErrInvalidArgument)
	}
	birthDate, err := time.Parse("2006-01-02", responses.BirthDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: birth date must be YYYY-MM-DD", apperr.ErrInvalidArgument)
	}

	switch responses.Height.Unit {
	case types.HeightUnitMetric:
		if responses.Height.Centimeters <= 0 {
			return time.Time{}, fmt.Errorf("%w: height must be positive", apperr.ErrInvalidArgument)
		}
	case types.HeightUnitImperial:
		if responses.Height.Feet == nil || responses.Height.Inches == nil {
			return time.Time{}, fmt.Errorf("%w: imperial height requires feet and inches", apperr.ErrInvalidArgument)
		}
		feet := *responses.Height.Feet
		inches := *responses.Height.Inches
		if feet < 0 || inches < 0 || inches >= 12 {
			return time.Time{}, fmt.Errorf("%w: imperial height must have feet >= 0 and inches in [0,12)", apperr.ErrInvalidArgument)
		}
	default:
		return time.Time{}, fmt.Errorf("%w: height unit must be metric or imperial", apperr.ErrInvalidArgument)
	}
	return birthDate, nil
}
