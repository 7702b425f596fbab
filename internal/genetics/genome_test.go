package genetics

import (
	"reflect"
	"testing"
)

func TestFormatGenome(t *testing.T) {
	cases := []struct {
		name   string
		blocks []int
		want   string
	}{
		{
			name:   "single_nonzero_leading_block",
			blocks: []int{5, 0, 0, 0, 0, 0, 0, 0},
			want:   "005-000-000-000-000-000-000-000",
		},
		{
			name:   "all_zero",
			blocks: []int{0, 0, 0, 0, 0, 0, 0, 0},
			want:   DefaultGenomeString,
		},
		{
			name:   "max_three_digit",
			blocks: []int{999, 0, 0, 0, 0, 0, 0, 0},
			want:   "999-000-000-000-000-000-000-000",
		},
		{
			name:   "wide_block_grows",
			blocks: []int{1234, 0, 0, 0, 0, 0, 0, 0},
			want:   "1234-000-000-000-000-000-000-000",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatGenome(tc.blocks); got != tc.want {
				t.Fatalf("FormatGenome(%v)=%q, want %q", tc.blocks, got, tc.want)
			}
		})
	}
}

func TestNormalizeBlocks(t *testing.T) {
	cases := []struct {
		name   string
		blocks []int
		want   []int
	}{
		{
			name:   "nil_becomes_zero_genome",
			blocks: nil,
			want:   []int{0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:   "short_padded",
			blocks: []int{659, 1},
			want:   []int{659, 1, 0, 0, 0, 0, 0, 0},
		},
		{
			name:   "full_unchanged",
			blocks: []int{1, 2, 3, 4, 5, 6, 7, 8},
			want:   []int{1, 2, 3, 4, 5, 6, 7, 8},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeBlocks(tc.blocks)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeBlocks(%v)=%v, want %v", tc.blocks, got, tc.want)
			}
		})
	}
}

func TestNormalizeBlocksCopies(t *testing.T) {
	original := []int{1, 2, 3, 4, 5, 6, 7, 8}
	normalized := NormalizeBlocks(original)
	normalized[0] = 999
	if original[0] != 1 {
		t.Fatalf("NormalizeBlocks mutated its input: %v", original)
	}
}
