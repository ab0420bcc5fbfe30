package textutil

import "math/bits"

// Pattern holds the precomputed match masks for one normalized target so it
// can be scored against many candidates.
type Pattern struct {
	runes []rune
	masks map[rune][]uint64
	words int
	last  uint64
}

// NewPattern prepares target for repeated Ratio calls.
func NewPattern(target string) *Pattern {
	rs := []rune(target)
	words := (len(rs) + 63) / 64
	p := &Pattern{runes: rs, masks: make(map[rune][]uint64), words: words}
	for i, r := range rs {
		mask, ok := p.masks[r]
		if !ok {
			mask = make([]uint64, words)
			p.masks[r] = mask
		}
		mask[i/64] |= 1 << (uint(i) % 64)
	}
	p.last = ^uint64(0)
	if rem := len(rs) % 64; rem != 0 {
		p.last = (uint64(1) << uint(rem)) - 1
	}
	return p
}

// Len returns the target length in runes.
func (p *Pattern) Len() int {
	return len(p.runes)
}

// Ratio scores candidate against the pattern target as
// 2*LCS/(len(target)+len(candidate)), the normalized Indel similarity.
// Two empty strings score 1.
func (p *Pattern) Ratio(candidate string) float64 {
	cs := []rune(candidate)
	total := len(p.runes) + len(cs)
	if total == 0 {
		return 1
	}
	if len(p.runes) == 0 || len(cs) == 0 {
		return 0
	}
	return float64(2*p.lcs(cs)) / float64(total)
}

// lcs computes the longest common subsequence length with the bit-vector
// recurrence of Hyyrö: V' = (V + (V & M)) | (V & ^M), LCS = zero bits of V.
func (p *Pattern) lcs(candidate []rune) int {
	v := make([]uint64, p.words)
	for k := range v {
		v[k] = ^uint64(0)
	}
	for _, r := range candidate {
		mask, ok := p.masks[r]
		if !ok {
			continue
		}
		var carry uint64
		for k := range v {
			u := v[k] & mask[k]
			sum, c := bits.Add64(v[k], u, carry)
			v[k] = sum | (v[k] &^ u)
			carry = c
		}
	}
	ones := 0
	for k, word := range v {
		if k == len(v)-1 {
			word &= p.last
			ones += bits.OnesCount64(word)
			continue
		}
		ones += bits.OnesCount64(word)
	}
	return len(p.runes) - ones
}

// Ratio returns the normalized Indel similarity of a and b in [0,1].
func Ratio(a, b string) float64 {
	return NewPattern(a).Ratio(b)
}
