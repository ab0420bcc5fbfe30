package textutil

import (
	"math"
	"strings"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "both empty", a: "", b: "", want: 1},
		{name: "one empty", a: "abc", b: "", want: 0},
		{name: "equal", a: "make it so.", b: "make it so.", want: 1},
		{name: "disjoint", a: "abc", b: "xyz", want: 0},
		{name: "near match", a: "there is no other way", b: "there is no other option", want: 0.8},
		{name: "dash prefix", a: "captain?", b: "- captain?", want: 16.0 / 18.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"shields are holding", "hull breach on deck five"},
		{"kitten", "sitting"},
		{"données", "donnees"},
	}
	for _, p := range pairs {
		if Ratio(p[0], p[1]) != Ratio(p[1], p[0]) {
			t.Errorf("Ratio not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestPatternMatchesQuadraticLCS(t *testing.T) {
	words := []string{"the", "captain", "engage", "warp", "five", "make", "it", "so", "red", "alert", "shields", "up"}
	var long strings.Builder
	for i := 0; i < 40; i++ {
		long.WriteString(words[(i*7)%len(words)])
		long.WriteByte(' ')
	}
	target := long.String()
	candidates := []string{
		"",
		"make it so",
		target,
		strings.ToUpper(target),
		"shields up red alert engage warp five the captain " + target[:90],
		strings.Repeat("captain ", 30),
	}
	p := NewPattern(target)
	for _, c := range candidates {
		want := quadraticLCS([]rune(target), []rune(c))
		if got := p.lcs([]rune(c)); got != want {
			t.Errorf("lcs(%q) = %d, want %d", c, got, want)
		}
	}
}

func TestPatternReusable(t *testing.T) {
	p := NewPattern("hull breach on deck five")
	first := p.Ratio("hull breach on deck")
	_ = p.Ratio("something else entirely")
	if again := p.Ratio("hull breach on deck"); again != first {
		t.Fatalf("pattern not reusable: %v then %v", first, again)
	}
	if p.Len() != len("hull breach on deck five") {
		t.Fatalf("Len = %d", p.Len())
	}
}

func quadraticLCS(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
