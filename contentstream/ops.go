package contentstream

// Op identifies a content stream operator.
type Op int

const (
	OpUnknown Op = iota

	OpBeginText // BT
	OpEndText   // ET

	OpSetFont         // Tf
	OpSetLeading      // TL
	OpSetCharSpacing  // Tc
	OpSetWordSpacing  // Tw
	OpSetHorizScaling // Tz
	OpSetRise         // Ts
	OpSetRenderMode   // Tr

	OpTextMatrix      // Tm
	OpTextMove        // Td
	OpTextMoveLeading // TD
	OpNextLine        // T*

	OpShowText        // Tj
	OpShowTextArray   // TJ
	OpMoveShow        // '
	OpMoveShowSpacing // "

	OpSetFillGray    // g
	OpSetFillRGB     // rg
	OpSetFillCMYK    // k
	OpSetFillColor   // sc, scn
	OpSetFillSpace   // cs
	OpSetStrokeGray  // G
	OpSetStrokeRGB   // RG
	OpSetStrokeCMYK  // K
	OpSetStrokeColor // SC, SCN
	OpSetStrokeSpace // CS

	OpSave    // q
	OpRestore // Q
	OpConcat  // cm

	OpPaintXObject // Do
	OpInlineImage  // BI ... ID ... EI
)

var operators = map[string]Op{
	"BT":  OpBeginText,
	"ET":  OpEndText,
	"Tf":  OpSetFont,
	"TL":  OpSetLeading,
	"Tc":  OpSetCharSpacing,
	"Tw":  OpSetWordSpacing,
	"Tz":  OpSetHorizScaling,
	"Ts":  OpSetRise,
	"Tr":  OpSetRenderMode,
	"Tm":  OpTextMatrix,
	"Td":  OpTextMove,
	"TD":  OpTextMoveLeading,
	"T*":  OpNextLine,
	"Tj":  OpShowText,
	"TJ":  OpShowTextArray,
	"'":   OpMoveShow,
	"\"":  OpMoveShowSpacing,
	"g":   OpSetFillGray,
	"rg":  OpSetFillRGB,
	"k":   OpSetFillCMYK,
	"sc":  OpSetFillColor,
	"scn": OpSetFillColor,
	"cs":  OpSetFillSpace,
	"G":   OpSetStrokeGray,
	"RG":  OpSetStrokeRGB,
	"K":   OpSetStrokeCMYK,
	"SC":  OpSetStrokeColor,
	"SCN": OpSetStrokeColor,
	"CS":  OpSetStrokeSpace,
	"q":   OpSave,
	"Q":   OpRestore,
	"cm":  OpConcat,
	"Do":  OpPaintXObject,
	"BI":  OpInlineImage,
}

var opNames = func() map[Op]string {
	m := make(map[Op]string, len(operators))
	for name, op := range operators {
		if _, ok := m[op]; !ok || len(name) < len(m[op]) {
			m[op] = name
		}
	}
	return m
}()

// LookupOp classifies an operator keyword.
func LookupOp(keyword string) Op {
	return operators[keyword]
}

// String returns the canonical keyword of the operator.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "Unknown"
}

// ShowsText reports whether the operator paints text.
func (o Op) ShowsText() bool {
	switch o {
	case OpShowText, OpShowTextArray, OpMoveShow, OpMoveShowSpacing:
		return true
	}
	return false
}
