package answer

import "testing"

func TestNormalizeFolds(t *testing.T) {
	cases := []struct {
		name string
		in   string
		opts Options
		want string
	}{
		{"lowercase", "PERRO", Options{}, "perro"},
		{"accents", "árbol café", Options{}, "arbol cafe"},
		{"apostrophe", "l'eau", Options{}, "leau"},
		{"punctuation", "¡hola, mundo!", Options{}, "hola mundo"},
		{"whitespace", "  el \t perro \n ", Options{}, "el perro"},
		{"empty", "", Options{}, ""},
		{"case sensitive", "Perro", Options{CaseSensitive: true}, "Perro"},
		{"accent sensitive", "café", Options{AccentSensitive: true}, "café"},
		{"punct sensitive", "l'eau", Options{PunctuationSensitive: true}, "l'eau"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in, tc.opts)
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "PERRO", "árbol café", "  l'eau,  très   bien!  ", "123 ¿qué?"}
	for _, s := range inputs {
		once := Normalize(s, Options{})
		twice := Normalize(once, Options{})
		if once != twice {
			t.Fatalf("not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestDistance(t *testing.T) {
	if d := Distance("perro", "perro"); d != 0 {
		t.Fatalf("identical strings: got %d", d)
	}
	if d := Distance("", "gato"); d != 4 {
		t.Fatalf("empty vs gato: got %d", d)
	}
	if d := Distance("parro", "perro"); d != 1 {
		t.Fatalf("parro vs perro: got %d", d)
	}
	// Symmetric, and rune-counted rather than byte-counted.
	if Distance("café", "cafe") != Distance("cafe", "café") {
		t.Fatalf("distance not symmetric")
	}
	if d := Distance("café", "cafe"); d != 1 {
		t.Fatalf("café vs cafe: got %d", d)
	}
}
