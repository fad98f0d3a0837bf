package search

import (
	"testing"

	"github.com/matst80/energy-explorer/pkg/types"
)

func TestTokenizer(t *testing.T) {
	token := Tokenizer{
		MaxTokens: 100,
	}
	res := token.Tokenize("  Wind  canton:VD\tyear:2019 ")
	if len(res) != 3 {
		t.Fatalf("Expected 3 tokens but got %d", len(res))
	}
	if res[0] != "wind" {
		t.Errorf("Expected 'wind' but got %s", res[0])
	}
	if res[1] != "canton:vd" {
		t.Errorf("Expected 'canton:vd' but got %s", res[1])
	}
	if res[2] != "year:2019" {
		t.Errorf("Expected 'year:2019' but got %s", res[2])
	}
	t.Logf("Result: %v", res)
}

func TestTokenizerDeDuplication(t *testing.T) {
	token := Tokenizer{
		MaxTokens: 100,
	}
	res := token.Tokenize("Zürich zürich ZÜRICH bern")
	if len(res) != 2 {
		t.Errorf("Expected 2 tokens but got %d", len(res))
	}
	if res[0] != "zürich" {
		t.Errorf("Expected 'zürich' but got %s", res[0])
	}
}

func TestTokenizerEmpty(t *testing.T) {
	token := Tokenizer{}
	if res := token.Tokenize("   \n "); len(res) != 0 {
		t.Errorf("Expected no tokens but got %v", res)
	}
}

func TestTokenizerMaxTokens(t *testing.T) {
	token := Tokenizer{MaxTokens: 2}
	res := token.Tokenize("a b c d")
	if len(res) != 2 {
		t.Errorf("Expected 2 tokens but got %v", res)
	}
}

func TestHaystack(t *testing.T) {
	f := &types.Facility{
		Category:       "Photovoltaic",
		TotalPowerKW:   12.5,
		Municipality:   "Lausanne",
		Canton:         "VD",
		OperationStart: "2019-05-01",
	}
	expected := "photovoltaic 12.5 2019-05-01 city:lausanne canton:vd year:2019"
	if got := Haystack(f); got != expected {
		t.Errorf("Expected %q but got %q", expected, got)
	}
}

func TestMatches(t *testing.T) {
	hay := Haystack(&types.Facility{Category: "Wind", Canton: "VD", TotalPowerKW: 2000})
	cases := []struct {
		tokens []string
		want   bool
	}{
		{nil, true},
		{[]string{"canton:vd"}, true},
		{[]string{"wind", "canton:vd"}, true},
		{[]string{"wind", "canton:be"}, false},
		{[]string{"2000"}, true},
		{[]string{"year:"}, true},
	}
	for _, c := range cases {
		if got := Matches(hay, c.tokens); got != c.want {
			t.Errorf("Matches(%v) = %v, want %v", c.tokens, got, c.want)
		}
	}
}
