package textutil

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "Make it so.", want: []string{"Make it so."}},
		{name: "no terminal punctuation", in: "Engage", want: []string{"Engage"}},
		{
			name: "three sentences",
			in:   "Shields are holding at forty percent. Hull breach on deck five. We cannot take another hit.",
			want: []string{"Shields are holding at forty percent.", "Hull breach on deck five.", "We cannot take another hit."},
		},
		{name: "mixed terminators", in: "Captain? Yes! Go.", want: []string{"Captain?", "Yes!", "Go."}},
		{name: "ellipsis continues", in: "I thought... No, never mind.", want: []string{"I thought... No, never mind."}},
		{name: "lowercase continuation", in: "Wait. what was that?", want: []string{"Wait. what was that?"}},
		{name: "abbreviation", in: "Tell Dr. Crusher. Now.", want: []string{"Tell Dr. Crusher.", "Now."}},
		{name: "closing quote", in: `He said "go." Then he left.`, want: []string{`He said "go."`, "Then he left."}},
		{name: "speaker prefix and annotation", in: "RIKER: [quietly] Red alert. Battle stations!", want: []string{"Red alert.", "Battle stations!"}},
		{name: "dual speaker card", in: "- Captain?\n- Yes?", want: []string{"- Captain?", "- Yes?"}},
		{name: "multiline card single sentence", in: "I am fully\nfunctional.", want: []string{"I am fully functional."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitSentences(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitSentences(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
