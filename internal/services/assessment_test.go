package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/genomelens-backend/internal/apperr"
	"github.com/yungbote/genomelens-backend/internal/genetics"
	"github.com/yungbote/genomelens-backend/internal/logger"
	"github.com/yungbote/genomelens-backend/internal/types"
)

type fakeProfileRepo struct {
	profiles  map[uuid.UUID]*types.Profile
	updateErr error
}

func (f *fakeProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.Profile) error {
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.Profile, error) {
	p, ok := f.profiles[profileID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", profileID, apperr.ErrNotFound)
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProfileRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) UpdateFields(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, fields map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.profiles[profileID]
	if !ok {
		return fmt.Errorf("profile %s: %w", profileID, apperr.ErrNotFound)
	}
	if v, ok := fields["genome_blocks"]; ok {
		p.GenomeBlocks = v.(datatypes.JSON)
	}
	if v, ok := fields["genome_string"]; ok {
		p.GenomeString = v.(string)
	}
	if v, ok := fields["genome_version"]; ok {
		p.GenomeVersion = v.(string)
	}
	if v, ok := fields["updated_at"]; ok {
		p.UpdatedAt = v.(time.Time)
	}
	return nil
}

type fakeTraitRepo struct {
	values   map[uuid.UUID]map[string]interface{}
	mergeErr error
	getCalls int
}

func (f *fakeTraitRepo) Create(ctx context.Context, tx *gorm.DB, doc *types.TraitDoc) error {
	f.values[doc.ProfileID] = map[string]interface{}{}
	return nil
}

func (f *fakeTraitRepo) GetByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.TraitDoc, error) {
	f.getCalls++
	vals, ok := f.values[profileID]
	if !ok {
		return nil, fmt.Errorf("trait doc for profile %s: %w", profileID, apperr.ErrNotFound)
	}
	raw, _ := json.Marshal(vals)
	return &types.TraitDoc{ProfileID: profileID, Values: datatypes.JSON(raw)}, nil
}

func (f *fakeTraitRepo) MergeValues(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, patch map[string]interface{}) error {
	if f.mergeErr != nil {
		return f.mergeErr
	}
	vals, ok := f.values[profileID]
	if !ok {
		return fmt.Errorf("trait doc for profile %s: %w", profileID, apperr.ErrNotFound)
	}
	for k, v := range patch {
		vals[k] = v
	}
	return nil
}

func (f *fakeTraitRepo) ReplaceValues(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, values map[string]interface{}) error {
	if _, ok := f.values[profileID]; !ok {
		return fmt.Errorf("trait doc for profile %s: %w", profileID, apperr.ErrNotFound)
	}
	replacement := make(map[string]interface{}, len(values))
	for k, v := range values {
		replacement[k] = v
	}
	f.values[profileID] = replacement
	return nil
}

type fakeAssessmentRepo struct {
	appended  []*types.Assessment
	appendErr error
}

func (f *fakeAssessmentRepo) Append(ctx context.Context, tx *gorm.DB, assessment *types.Assessment) (uuid.UUID, error) {
	if f.appendErr != nil {
		return uuid.Nil, f.appendErr
	}
	if assessment.ID == uuid.Nil {
		assessment.ID = uuid.New()
	}
	f.appended = append(f.appended, assessment)
	return assessment.ID, nil
}

func (f *fakeAssessmentRepo) GetByID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (*types.Assessment, error) {
	for _, a := range f.appended {
		if a.ID == assessmentID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAssessmentRepo) ListByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Assessment, error) {
	var out []*types.Assessment
	for _, a := range f.appended {
		if a.ProfileID == profileID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fixture struct {
	svc       *assessmentService
	profiles  *fakeProfileRepo
	traits    *fakeTraitRepo
	logRepo   *fakeAssessmentRepo
	userID    uuid.UUID
	profileID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*types.Profile{}}
	traits := &fakeTraitRepo{values: map[uuid.UUID]map[string]interface{}{}}
	logRepo := &fakeAssessmentRepo{}

	userID := uuid.New()
	profileID := uuid.New()
	blocks, _ := json.Marshal([]int{0, 0, 0, 0, 0, 0, 0, 0})
	profiles.profiles[profileID] = &types.Profile{
		ID:           profileID,
		UserID:       userID,
		Name:         "Primary Profile",
		GenomeBlocks: datatypes.JSON(blocks),
		GenomeString: genetics.DefaultGenomeString,
	}
	traits.values[profileID] = map[string]interface{}{"mood": "sunny"}

	svc := NewAssessmentService(nil, logger.NewNop(), profiles, traits, logRepo, nil).(*assessmentService)
	svc.now = func() time.Time {
		return time.Date(2024, time.September, 1, 12, 0, 0, 0, time.UTC)
	}
	return &fixture{
		svc:       svc,
		profiles:  profiles,
		traits:    traits,
		logRepo:   logRepo,
		userID:    userID,
		profileID: profileID,
	}
}

func metricResponses() types.GeneARawResponses {
	return types.GeneARawResponses{
		GenderIdentity: genetics.GenderFemale,
		RaceCategory:   genetics.RaceWhite,
		BirthDate:      "1994-06-20", // age 30 at the fixture clock
		Height:         types.GeneAHeightInput{Unit: types.HeightUnitMetric, Centimeters: 175},
	}
}

func profileBlocks(t *testing.T, f *fixture) []int {
	t.Helper()
	var blocks []int
	if err := json.Unmarshal(f.profiles.profiles[f.profileID].GenomeBlocks, &blocks); err != nil {
		t.Fatalf("unmarshal genome blocks: %v", err)
	}
	return blocks
}

func TestSubmitGeneAEndToEnd(t *testing.T) {
	f := newFixture(t)

	// white + female + age 30 + 175cm: 600 + 1*40 + 2*8 + 3 = 659.
	result, err := f.svc.SubmitGeneA(context.Background(), f.userID, f.profileID, metricResponses())
	if err != nil {
		t.Fatalf("SubmitGeneA: %v", err)
	}
	if result.GeneA != 659 {
		t.Fatalf("geneA=%d, want 659", result.GeneA)
	}
	if result.AssessmentID == uuid.Nil {
		t.Fatal("assessment id not assigned")
	}

	if len(f.logRepo.appended) != 1 {
		t.Fatalf("appended %d assessments, want 1", len(f.logRepo.appended))
	}
	rec := f.logRepo.appended[0]
	if rec.Type != AssessmentTypeGeneA || rec.Version != genetics.GeneAVersion {
		t.Fatalf("assessment type/version = %q/%q", rec.Type, rec.Version)
	}
	var stored types.GeneARawResponses
	if err := json.Unmarshal(rec.Responses, &stored); err != nil {
		t.Fatalf("unmarshal stored responses: %v", err)
	}
	if stored.BirthDate != "1994-06-20" || stored.Height.Centimeters != 175 {
		t.Fatalf("responses not stored verbatim: %+v", stored)
	}

	vals := f.traits.values[f.profileID]
	if vals["gene_a"] != 659 {
		t.Fatalf("trait gene_a=%v, want 659", vals["gene_a"])
	}
	if vals["physical_age_years"] != 30 || vals["physical_age_band"] != 2 || vals["physical_height_band"] != 3 {
		t.Fatalf("derived traits wrong: %v", vals)
	}
	if vals["gene_a_version"] != genetics.GeneAVersion {
		t.Fatalf("trait gene_a_version=%v", vals["gene_a_version"])
	}
	if vals["mood"] != "sunny" {
		t.Fatalf("unrelated trait clobbered: %v", vals["mood"])
	}

	blocks := profileBlocks(t, f)
	if blocks[0] != 659 {
		t.Fatalf("genome block 0 = %d, want 659", blocks[0])
	}
	profile := f.profiles.profiles[f.profileID]
	if profile.GenomeString != "659-000-000-000-000-000-000-000" {
		t.Fatalf("genome string = %q", profile.GenomeString)
	}
	if profile.GenomeVersion != genetics.GenomeVersionDefault {
		t.Fatalf("genome version = %q, want default", profile.GenomeVersion)
	}
}

func TestSubmitGeneAImperialHeight(t *testing.T) {
	f := newFixture(t)
	feet, inches := 5.0, 11.0

	responses := metricResponses()
	responses.Height = types.GeneAHeightInput{Unit: types.HeightUnitImperial, Feet: &feet, Inches: &inches}

	// 5'11" converts to 180.3cm, height band 4: 600 + 1*40 + 2*8 + 4 = 660.
	result, err := f.svc.SubmitGeneA(context.Background(), f.userID, f.profileID, responses)
	if err != nil {
		t.Fatalf("SubmitGeneA: %v", err)
	}
	if result.GeneA != 660 {
		t.Fatalf("geneA=%d, want 660", result.GeneA)
	}

	vals := f.traits.values[f.profileID]
	if vals["physical_height_cm"] != 180.3 {
		t.Fatalf("trait physical_height_cm=%v, want 180.3", vals["physical_height_cm"])
	}
	if vals["physical_height_band"] != 4 {
		t.Fatalf("trait physical_height_band=%v, want 4", vals["physical_height_band"])
	}
}

func TestSubmitGeneATwiceIsStable(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 2; i++ {
		if _, err := f.svc.SubmitGeneA(context.Background(), f.userID, f.profileID, metricResponses()); err != nil {
			t.Fatalf("SubmitGeneA #%d: %v", i+1, err)
		}
	}

	// The log is append-only; traits and genome converge to the same state.
	if len(f.logRepo.appended) != 2 {
		t.Fatalf("appended %d assessments, want 2", len(f.logRepo.appended))
	}
	if f.traits.values[f.profileID]["gene_a"] != 659 {
		t.Fatalf("gene_a=%v after resubmit", f.traits.values[f.profileID]["gene_a"])
	}
	if f.traits.values[f.profileID]["mood"] != "sunny" {
		t.Fatal("unrelated trait lost on resubmit")
	}
	if blocks := profileBlocks(t, f); blocks[0] != 659 {
		t.Fatalf("genome block 0 = %d after resubmit", blocks[0])
	}
}

func TestSubmitGeneAPreservesGenomeVersion(t *testing.T) {
	f := newFixture(t)
	f.profiles.profiles[f.profileID].GenomeVersion = "2.0"

	if _, err := f.svc.SubmitGeneA(context.Background(), f.userID, f.profileID, metricResponses()); err != nil {
		t.Fatalf("SubmitGeneA: %v", err)
	}
	if got := f.profiles.profiles[f.profileID].GenomeVersion; got != "2.0" {
		t.Fatalf("genome version = %q, want preserved 2.0", got)
	}
}

func TestSubmitGeneAValidation(t *testing.T) {
	feet := func(v float64) *float64 { return &v }

	cases := []struct {
		name     string
		mutate   func(r *types.GeneARawResponses)
	}{
		{
			name:   "missing_birth_date",
			mutate: func(r *types.GeneARawResponses) { r.BirthDate = "" },
		},
		{
			name:   "malformed_birth_date",
			mutate: func(r *types.GeneARawResponses) { r.BirthDate = "20/06/1994" },
		},
		{
			name:   "zero_height",
			mutate: func(r *types.GeneARawResponses) { r.Height.Centimeters = 0 },
		},
		{
			name:   "negative_height",
			mutate: func(r *types.GeneARawResponses) { r.Height.Centimeters = -170 },
		},
		{
			name:   "unknown_unit",
			mutate: func(r *types.GeneARawResponses) { r.Height.Unit = "furlongs" },
		},
		{
			name: "imperial_missing_fields",
			mutate: func(r *types.GeneARawResponses) {
				r.Height.Unit = types.HeightUnitImperial
			},
		},
		{
			name: "imperial_inches_out_of_range",
			mutate: func(r *types.GeneARawResponses) {
				r.Height.Unit = types.HeightUnitImperial
				r.Height.Feet = feet(5)
				r.Height.Inches = feet(12)
			},
		},
		{
			name: "imperial_negative_feet",
			mutate: func(r *types.GeneARawResponses) {
				r.Height.Unit = types.HeightUnitImperial
				r.Height.Feet = feet(-1)
				r.Height.Inches = feet(3)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			responses := metricResponses()
			tc.mutate(&responses)

			_, err := f.svc.SubmitGeneA(context.Background(), f.userID, f.profileID, responses)
			if !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Fatalf("err=%v, want ErrInvalidArgument", err)
			}
			if len(f.logRepo.appended) != 0 {
				t.Fatal("assessment appended despite validation failure")
			}
			if _, ok := f.traits.values[f.profileID]["gene_a"]; ok {
				t.Fatal("traits mutated despite validation failure")
			}
		})
	}
}

func TestSubmitGeneAAppendFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.logRepo.appendErr = errors.New("log store down")

	_, err := f.svc.SubmitGeneA(context.Background(), f.userID, f.profileID, metricResponses())
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := f.traits.values[f.profileID]["gene_a"]; ok {
		t.Fatal("traits mutated after append failure")
	}
	if blocks := profileBlocks(t, f); blocks[0] != 0 {
		t.Fatal("genome mutated after append failure")
	}
}

func TestSubmitGeneATraitFailureKeepsAssessment(t *testing.T) {
	f := newFixture(t)
	f.traits.mergeErr = errors.New("trait store down")

	_, err := f.svc.SubmitGeneA(context.Background(), f.userID, f.profileID, metricResponses())
	if err == nil {
		t.Fatal("expected error")
	}
	// The append committed before the merge failed; it stays committed.
	if len(f.logRepo.appended) != 1 {
		t.Fatalf("appended %d assessments, want 1", len(f.logRepo.appended))
	}
	if blocks := profileBlocks(t, f); blocks[0] != 0 {
		t.Fatal("genome mutated after trait failure")
	}
}

func TestSubmitGeneAGenomeFailureIsRedrivable(t *testing.T) {
	f := newFixture(t)
	f.profiles.updateErr = errors.New("profile store down")

	_, err := f.svc.SubmitGeneA(context.Background(), f.userID, f.profileID, metricResponses())
	if err == nil {
		t.Fatal("expected error")
	}
	// Assessment and traits committed; genome is stale.
	if len(f.logRepo.appended) != 1 {
		t.Fatalf("appended %d assessments, want 1", len(f.logRepo.appended))
	}
	if f.traits.values[f.profileID]["gene_a"] != 659 {
		t.Fatal("traits not committed before genome failure")
	}
	if f.profiles.profiles[f.profileID].GenomeString != genetics.DefaultGenomeString {
		t.Fatal("genome unexpectedly updated")
	}

	// Re-drive just the genome step once the store recovers; no new
	// assessment rows appear.
	f.profiles.updateErr = nil
	if err := f.svc.ApplyGenomeBlock(context.Background(), f.profileID, genetics.GeneABlockIndex, 659); err != nil {
		t.Fatalf("ApplyGenomeBlock redrive: %v", err)
	}
	if len(f.logRepo.appended) != 1 {
		t.Fatal("redrive appended another assessment")
	}
	if blocks := profileBlocks(t, f); blocks[0] != 659 {
		t.Fatal("redrive did not repair genome")
	}
}

func TestSubmitGeneAMissingProfile(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New()
	f.traits.values[missing] = map[string]interface{}{}

	_, err := f.svc.SubmitGeneA(context.Background(), f.userID, missing, metricResponses())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
	// The append-only record and trait merge landed before the lookup
	// failed; that window is documented behavior.
	if len(f.logRepo.appended) != 1 {
		t.Fatalf("appended %d assessments, want 1", len(f.logRepo.appended))
	}
}

func TestApplyGenomeBlockPadsShortArrays(t *testing.T) {
	f := newFixture(t)
	f.profiles.profiles[f.profileID].GenomeBlocks = datatypes.JSON([]byte(`[7,3]`))

	if err := f.svc.ApplyGenomeBlock(context.Background(), f.profileID, 0, 659); err != nil {
		t.Fatalf("ApplyGenomeBlock: %v", err)
	}
	blocks := profileBlocks(t, f)
	want := []int{659, 3, 0, 0, 0, 0, 0, 0}
	if len(blocks) != len(want) {
		t.Fatalf("blocks=%v, want %v", blocks, want)
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Fatalf("blocks=%v, want %v", blocks, want)
		}
	}
	if got := f.profiles.profiles[f.profileID].GenomeString; got != "659-003-000-000-000-000-000-000" {
		t.Fatalf("genome string = %q", got)
	}
}

func TestApplyGenomeBlockMalformedBlocksResetToZero(t *testing.T) {
	f := newFixture(t)
	f.profiles.profiles[f.profileID].GenomeBlocks = datatypes.JSON([]byte(`"not-an-array"`))

	if err := f.svc.ApplyGenomeBlock(context.Background(), f.profileID, 0, 42); err != nil {
		t.Fatalf("ApplyGenomeBlock: %v", err)
	}
	blocks := profileBlocks(t, f)
	if blocks[0] != 42 || len(blocks) != genetics.GenomeBlockCount {
		t.Fatalf("blocks=%v", blocks)
	}
}

func TestApplyGenomeBlockRejectsBadIndex(t *testing.T) {
	f := newFixture(t)
	if err := f.svc.ApplyGenomeBlock(context.Background(), f.profileID, 8, 1); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("err=%v, want ErrInvalidArgument", err)
	}
	if err := f.svc.ApplyGenomeBlock(context.Background(), f.profileID, -1, 1); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("err=%v, want ErrInvalidArgument", err)
	}
}
