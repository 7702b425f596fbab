package genetics

import "testing"

func TestComputeGeneAWorkedExample(t *testing.T) {
	// white + female + age 30 + 175cm: subCode = 1*40 + 2*8 + 3 = 59, code = 659.
	got := ComputeGeneA(RaceWhite, GenderFemale, 30, 175)
	if got != 659 {
		t.Fatalf("ComputeGeneA(white, female, 30, 175)=%d, want 659", got)
	}
}

func TestComputeGeneARangeAndDecode(t *testing.T) {
	races := []RaceCategory{RaceAsian, RaceBlack, RaceNative, RaceWhite, RaceOther}
	genders := []GenderIdentity{GenderMale, GenderFemale, GenderNonBinary, GenderOther, GenderPreferNotToSay}

	seen := make(map[int]bool)
	for _, race := range races {
		for _, gender := range genders {
			for ageYears := 0; ageYears <= 150; ageYears += 5 {
				for heightCm := 0.0; heightCm <= 300; heightCm += 5 {
					code := ComputeGeneA(race, gender, ageYears, heightCm)
					if code < 0 || code > 999 {
						t.Fatalf("ComputeGeneA(%q, %q, %d, %v)=%d out of [0,999]",
							race, gender, ageYears, heightCm, code)
					}
					dec := DecodeGeneA(code)
					if dec.RaceBandStart != RaceBandStart(race) {
						t.Fatalf("code %d decoded race band %d, want %d", code, dec.RaceBandStart, RaceBandStart(race))
					}
					if dec.GenderCode != GenderCode(gender) {
						t.Fatalf("code %d decoded gender %d, want %d", code, dec.GenderCode, GenderCode(gender))
					}
					if dec.AgeBand != AgeBand(ageYears) {
						t.Fatalf("code %d decoded age band %d, want %d", code, dec.AgeBand, AgeBand(ageYears))
					}
					if dec.HeightBand != HeightBand(heightCm) {
						t.Fatalf("code %d decoded height band %d, want %d", code, dec.HeightBand, HeightBand(heightCm))
					}
					seen[code] = true
				}
			}
		}
	}

	// 5 races x 5 genders x 5 age bands x 8 height bands distinct codes.
	if len(seen) != 1000 {
		t.Fatalf("grid produced %d distinct codes, want 1000", len(seen))
	}
}
