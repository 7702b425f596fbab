package genetics

// Gene-A code layout: 5 race bands, each holding 5 genders x 5 age bands x 8
// height bands = 200 subcodes, for 1000 distinct codes in [0,999]. Every valid
// input combination maps to a unique code and each code decodes back to its
// bands.

// ComputeGeneA derives the Gene-A code from the four classified inputs.
func ComputeGeneA(race RaceCategory, gender GenderIdentity, ageYears int, heightCm float64) int {
	subCode := GenderCode(gender)*40 + AgeBand(ageYears)*8 + HeightBand(heightCm)
	return RaceBandStart(race) + subCode
}

// GeneAComponents is the band decomposition of a Gene-A code.
type GeneAComponents struct {
	RaceBandStart int
	GenderCode    int
	AgeBand       int
	HeightBand    int
}

// DecodeGeneA reverses the Gene-A arithmetic. Codes outside [0,999] are not
// valid Gene-A codes and decode to whatever the arithmetic yields.
func DecodeGeneA(code int) GeneAComponents {
	raceBandStart := (code / 200) * 200
	subCode := code - raceBandStart
	return GeneAComponents{
		RaceBandStart: raceBandStart,
		GenderCode:    subCode / 40,
		AgeBand:       (subCode % 40) / 8,
		HeightBand:    subCode % 8,
	}
}
