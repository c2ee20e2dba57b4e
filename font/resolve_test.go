package font

import "testing"

func TestResolveStandard14(t *testing.T) {
	tests := []struct {
		name string
		want Resolved
	}{
		{"Helvetica", Resolved{"Arial", false, false}},
		{"Helvetica-BoldOblique", Resolved{"Arial", true, true}},
		{"Times-Roman", Resolved{"Times New Roman", false, false}},
		{"Times-Italic", Resolved{"Times New Roman", false, true}},
		{"Courier-Bold", Resolved{"Courier New", true, false}},
		{"Symbol", Resolved{"Symbol", false, false}},
		{"ZapfDingbats", Resolved{"Wingdings", false, false}},
	}
	for _, tt := range tests {
		if got := Resolve(tt.name); got != tt.want {
			t.Errorf("Resolve(%q): expected %+v, got %+v", tt.name, tt.want, got)
		}
	}
}

func TestResolveEmbeddedNames(t *testing.T) {
	tests := []struct {
		name string
		want Resolved
	}{
		{"ABCDEF+TimesNewRomanPS-ItalicMT", Resolved{"Times New Roman", false, true}},
		{"Arial,Bold", Resolved{"Arial", true, false}},
		{"Arial-BoldMT", Resolved{"Arial", true, false}},
		{"Calibri-BI", Resolved{"Calibri", true, true}},
		{"QWERTY+Georgia-It", Resolved{"Georgia", false, true}},
		{"Verdana Black", Resolved{"Verdana", true, false}},
		{"LiberationSerif", Resolved{"Times New Roman", false, false}},
	}
	for _, tt := range tests {
		if got := Resolve(tt.name); got != tt.want {
			t.Errorf("Resolve(%q): expected %+v, got %+v", tt.name, tt.want, got)
		}
	}
}

func TestResolveFallback(t *testing.T) {
	if got := Resolve("XYZ-Unknown"); got.Family != DefaultFallbackFamily {
		t.Errorf("expected fallback %s, got %s", DefaultFallbackFamily, got.Family)
	}
	if got := Resolve(""); got.Family != DefaultFallbackFamily || got.Bold || got.Italic {
		t.Errorf("expected plain fallback for empty name, got %+v", got)
	}

	r := NewResolver("Cambria")
	if got := r.Resolve("Mystery-Bold"); got.Family != "Cambria" || !got.Bold {
		t.Errorf("expected bold Cambria, got %+v", got)
	}
}

func TestStripSubset(t *testing.T) {
	tests := map[string]string{
		"ABCDEF+Helvetica": "Helvetica",
		"abcdef+Helvetica": "abcdef+Helvetica",
		"AB+Helvetica":     "AB+Helvetica",
		"Helvetica":        "Helvetica",
	}
	for in, want := range tests {
		if got := StripSubset(in); got != want {
			t.Errorf("StripSubset(%q): expected %q, got %q", in, want, got)
		}
	}
}
