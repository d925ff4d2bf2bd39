package catalog

import "testing"

func TestMatchFirstKeywordInDeclarationOrderWins(t *testing.T) {
	c := Default()
	cases := []struct{ in, want string }{
		{"I want a haircut", "haircut"},
		{"some highlights please", "coloring"},
		{"a hair spa", "treatment"},
		{"styling for my wedding", "bridal"},
		{"blow dry", "blowdry"},
		{"just a shampoo", "hairwash"},
		{"I need advice", "consultation"},
		{"color and cut", "haircut"},
		{"party styling for my daughter", "bridal"},
	}
	for _, tc := range cases {
		got, ok := c.Match(tc.in)
		if !ok || got != tc.want {
			t.Fatalf("Match(%q) = %q, %v; want %q", tc.in, got, ok, tc.want)
		}
	}
}

func TestMatchUnknown(t *testing.T) {
	if key, ok := Default().Match("pedicure"); ok {
		t.Fatalf("expected no match, got %q", key)
	}
}

func TestMatchedKeysAreInCatalog(t *testing.T) {
	c := Default()
	for _, s := range c.synonyms {
		if !c.Has(s.key) {
			t.Fatalf("synonym key %q missing from catalog", s.key)
		}
	}
}

func TestInfoFallback(t *testing.T) {
	info := Default().Info("massage")
	if info.Name != "Service" || info.Price != "Contact us" {
		t.Fatalf("unexpected fallback: %+v", info)
	}
	if Default().Info("haircut").Name != "Women's Haircut & Styling" {
		t.Fatalf("expected women's haircut entry")
	}
}
