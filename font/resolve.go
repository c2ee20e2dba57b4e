package font

import (
	"strings"
)

// DefaultFallbackFamily is used for fonts that match nothing known.
const DefaultFallbackFamily = "Calibri"

// Resolved is the output family and style of a PDF font.
type Resolved struct {
	Family string
	Bold   bool
	Italic bool
}

var standard14 = map[string]Resolved{
	"Times-Roman":           {"Times New Roman", false, false},
	"Times-Bold":            {"Times New Roman", true, false},
	"Times-Italic":          {"Times New Roman", false, true},
	"Times-BoldItalic":      {"Times New Roman", true, true},
	"Helvetica":             {"Arial", false, false},
	"Helvetica-Bold":        {"Arial", true, false},
	"Helvetica-Oblique":     {"Arial", false, true},
	"Helvetica-BoldOblique": {"Arial", true, true},
	"Courier":               {"Courier New", false, false},
	"Courier-Bold":          {"Courier New", true, false},
	"Courier-Oblique":       {"Courier New", false, true},
	"Courier-BoldOblique":   {"Courier New", true, true},
	"Symbol":                {"Symbol", false, false},
	"ZapfDingbats":          {"Wingdings", false, false},
}

// families is checked in order against the lowercased name with spaces,
// hyphens and underscores removed.
var families = []struct {
	substr string
	family string
}{
	{"timesnewroman", "Times New Roman"},
	{"liberationserif", "Times New Roman"},
	{"times", "Times New Roman"},
	{"liberationsans", "Arial"},
	{"helvetica", "Arial"},
	{"arial", "Arial"},
	{"liberationmono", "Courier New"},
	{"couriernew", "Courier New"},
	{"courier", "Courier New"},
	{"calibri", "Calibri"},
	{"cambria", "Cambria"},
	{"georgia", "Georgia"},
	{"verdana", "Verdana"},
	{"tahoma", "Tahoma"},
	{"trebuchet", "Trebuchet MS"},
	{"garamond", "Garamond"},
	{"palatino", "Palatino Linotype"},
	{"bookantiqua", "Book Antiqua"},
	{"centurygothic", "Century Gothic"},
	{"consolas", "Consolas"},
	{"segoeui", "Segoe UI"},
	{"symbol", "Symbol"},
	{"dingbats", "Wingdings"},
	{"wingdings", "Wingdings"},
}

var (
	boldMarkers   = []string{"bold", "black", "heavy", "semibold", "demibold", "demi"}
	italicMarkers = []string{"italic", "oblique", "slanted"}
)

// Resolver maps base font names to families. The zero value uses
// DefaultFallbackFamily.
type Resolver struct {
	Fallback string
}

// NewResolver returns a resolver with the given fallback family.
func NewResolver(fallback string) Resolver {
	return Resolver{Fallback: fallback}
}

// Resolve maps a base font name using DefaultFallbackFamily.
func Resolve(baseFont string) Resolved {
	return Resolver{}.Resolve(baseFont)
}

// Resolve maps a base font name to a family and style flags. It is a pure
// function of its input.
func (r Resolver) Resolve(baseFont string) Resolved {
	name := StripSubset(baseFont)
	if res, ok := standard14[name]; ok {
		return res
	}

	res := Resolved{Family: r.fallback()}
	res.Bold, res.Italic = styleFlags(name)

	key := strings.ToLower(name)
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	for _, f := range families {
		if strings.Contains(key, f.substr) {
			res.Family = f.family
			break
		}
	}
	return res
}

func (r Resolver) fallback() string {
	if r.Fallback == "" {
		return DefaultFallbackFamily
	}
	return r.Fallback
}

// StripSubset removes a subset tag such as "ABCDEF+" from a font name.
func StripSubset(name string) string {
	if len(name) > 7 && name[6] == '+' {
		for i := 0; i < 6; i++ {
			if name[i] < 'A' || name[i] > 'Z' {
				return name
			}
		}
		return name[7:]
	}
	return name
}

// styleFlags finds bold and italic markers, either as words anywhere in the
// name or as the short suffixes used after '-' or ',' (B, I, BI, It, BdIt).
func styleFlags(name string) (bold, italic bool) {
	lower := strings.ToLower(name)
	for _, m := range boldMarkers {
		if strings.Contains(lower, m) {
			bold = true
			break
		}
	}
	for _, m := range italicMarkers {
		if strings.Contains(lower, m) {
			italic = true
			break
		}
	}

	if i := strings.LastIndexAny(name, "-,"); i >= 0 && i < len(name)-1 {
		switch strings.ToUpper(strings.TrimSuffix(name[i+1:], "MT")) {
		case "B", "BD":
			bold = true
		case "I", "IT":
			italic = true
		case "BI", "IB", "BIT", "BDIT":
			bold, italic = true, true
		}
	}
	return bold, italic
}
