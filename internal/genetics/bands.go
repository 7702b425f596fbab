package genetics

type RaceCategory string

const (
	RaceAsian  RaceCategory = "asian"
	RaceBlack  RaceCategory = "black"
	RaceNative RaceCategory = "native"
	RaceWhite  RaceCategory = "white"
	RaceOther  RaceCategory = "other"
)

type GenderIdentity string

const (
	GenderMale           GenderIdentity = "male"
	GenderFemale         GenderIdentity = "female"
	GenderNonBinary      GenderIdentity = "non-binary"
	GenderOther          GenderIdentity = "other"
	GenderPreferNotToSay GenderIdentity = "prefer-not-to-say"
)

// RaceBandStart returns the base offset of the 200-wide code band claimed by
// the race category. Unrecognized values fall back to the "other" band.
func RaceBandStart(race RaceCategory) int {
	switch race {
	case RaceAsian:
		return 0
	case RaceBlack:
		return 200
	case RaceNative:
		return 400
	case RaceWhite:
		return 600
	case RaceOther:
		return 800
	default:
		return 800
	}
}

// GenderCode maps a gender identity to a code in [0,4]. Unrecognized values
// fall back to 4.
func GenderCode(gender GenderIdentity) int {
	switch gender {
	case GenderMale:
		return 0
	case GenderFemale:
		return 1
	case GenderNonBinary:
		return 2
	case GenderOther:
		return 3
	case GenderPreferNotToSay:
		return 4
	default:
		return 4
	}
}

// AgeBand buckets whole-years age into [0,4].
func AgeBand(ageYears int) int {
	if ageYears <= 17 {
		return 0
	}
	if ageYears <= 29 {
		return 1
	}
	if ageYears <= 44 {
		return 2
	}
	if ageYears <= 64 {
		return 3
	}
	return 4
}

// HeightBand buckets height in centimeters into [0,7] at 10cm steps starting
// at 150. Boundaries are closed-open: 159.9 is band 1, 160.0 is band 2.
func HeightBand(heightCm float64) int {
	if heightCm < 150 {
		return 0
	}
	if heightCm < 160 {
		return 1
	}
	if heightCm < 170 {
		return 2
	}
	if heightCm < 180 {
		return 3
	}
	if heightCm < 190 {
		return 4
	}
	if heightCm < 200 {
		return 5
	}
	if heightCm < 210 {
		return 6
	}
	return 7
}
