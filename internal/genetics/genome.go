package genetics

import (
	"fmt"
	"strings"
)

const (
	// GeneAVersion is the schema version stamped on every gene-a assessment.
	GeneAVersion = "1.0"
	// GenomeVersionDefault is used when a profile has no genome version yet.
	GenomeVersionDefault = "1.2"

	// GenomeBlockCount is the fixed number of genome blocks per profile.
	// Block 0 holds the Gene-A code; blocks 1-7 are reserved for future
	// gene types and stay zero.
	GenomeBlockCount = 8
	// GeneABlockIndex is the genome block slot occupied by the Gene-A code.
	GeneABlockIndex = 0
)

// DefaultGenomeString is the rendering of an all-zero genome.
const DefaultGenomeString = "000-000-000-000-000-000-000-000"

// FormatGenome renders genome blocks as zero-padded 3-digit decimals joined
// with dashes. Blocks above 999 widen, they are never truncated.
func FormatGenome(blocks []int) string {
	parts := make([]string, len(blocks))
	for i, block := range blocks {
		parts[i] = fmt.Sprintf("%03d", block)
	}
	return strings.Join(parts, "-")
}

// NormalizeBlocks copies blocks and pads with zeros up to GenomeBlockCount.
// Absent or short arrays are a recoverable state, not an error.
func NormalizeBlocks(blocks []int) []int {
	size := len(blocks)
	if size < GenomeBlockCount {
		size = GenomeBlockCount
	}
	normalized := make([]int, size)
	copy(normalized, blocks)
	return normalized
}
