package types

import "github.com/yungbote/genomelens-backend/internal/genetics"

const (
	HeightUnitMetric   = "metric"
	HeightUnitImperial = "imperial"
)

type GeneAHeightInput struct {
	Unit        string   `json:"unit"`
	Centimeters float64  `json:"centimeters"`
	Feet        *float64 `json:"feet,omitempty"`
	Inches      *float64 `json:"inches,omitempty"`
}

// GeneARawResponses is the questionnaire payload stored verbatim on the
// assessment row. BirthDate is a YYYY-MM-DD calendar date.
type GeneARawResponses struct {
	GenderIdentity genetics.GenderIdentity `json:"gender_identity"`
	RaceCategory   genetics.RaceCategory   `json:"race_category"`
	BirthDate      string                  `json:"birth_date"`
	Height         GeneAHeightInput        `json:"height"`
}
