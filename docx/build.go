package docx

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tsawler/pdfdocx/model"
)

// DefaultFamily is used in the font table and styles when a document names
// no fonts.
const DefaultFamily = "Calibri"

// Part names of a generated document.
const (
	PartDocument  = "word/document.xml"
	PartStyles    = "word/styles.xml"
	PartFontTable = "word/fontTable.xml"
	PartSettings  = "word/settings.xml"
	PartCore      = "docProps/core.xml"
	PartApp       = "docProps/app.xml"
)

const (
	twipsPerPoint = 20
	marginTwips   = 1440 // one inch
	application   = "pdfdocx"
)

// Options controls package generation.
type Options struct {
	// PageBreaks inserts a page break between the paragraphs of consecutive
	// PDF pages.
	PageBreaks bool
	// Creator is written to the core and app properties. Empty means
	// "pdfdocx".
	Creator string
}

// DefaultOptions returns options with page breaks on.
func DefaultOptions() Options {
	return Options{PageBreaks: true}
}

// Build generates the parts of a DOCX package for doc. Text that cannot be
// represented in XML 1.0 fails the whole build with ErrConversion.
func Build(doc *model.Document, opts Options) (*Package, error) {
	if opts.Creator == "" {
		opts.Creator = application
	}

	body, err := documentPart(doc, opts)
	if err != nil {
		return nil, err
	}
	styles, err := marshalPart(stylesPart())
	if err != nil {
		return nil, fmt.Errorf("%w: styles: %w", ErrConversion, err)
	}
	fonts, err := fontTablePart(doc)
	if err != nil {
		return nil, err
	}
	settings, err := marshalPart(settingsPart())
	if err != nil {
		return nil, fmt.Errorf("%w: settings: %w", ErrConversion, err)
	}
	core, err := corePart(doc.Metadata, opts)
	if err != nil {
		return nil, err
	}
	app, err := marshalPart(appPropertiesXML{
		Xmlns:       nsExtended,
		Application: opts.Creator,
		Pages:       len(doc.Pages),
		Paragraphs:  len(doc.Paragraphs()),
		AppVersion:  "1.0",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: app properties: %w", ErrConversion, err)
	}

	pkg := NewPackage()
	for _, part := range []Part{
		{PartDocument, ContentTypeDocument, body},
		{PartStyles, ContentTypeStyles, styles},
		{PartFontTable, ContentTypeFontTable, fonts},
		{PartSettings, ContentTypeSettings, settings},
		{PartCore, ContentTypeCoreProperties, core},
		{PartApp, ContentTypeExtendedProperties, app},
	} {
		if err := pkg.AddPart(part.Name, part.ContentType, part.Data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConversion, err)
		}
	}

	pkg.Relate("", RelOfficeDocument, PartDocument)
	pkg.Relate("", RelCoreProperties, PartCore)
	pkg.Relate("", RelExtendedProperties, PartApp)
	pkg.Relate(PartDocument, RelStyles, "styles.xml")
	pkg.Relate(PartDocument, RelFontTable, "fontTable.xml")
	pkg.Relate(PartDocument, RelSettings, "settings.xml")

	if err := pkg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return pkg, nil
}

// documentPart renders word/document.xml. Paragraphs without visible text
// are dropped; an empty body still gets one empty paragraph.
func documentPart(doc *model.Document, opts Options) ([]byte, error) {
	var paras []wParagraph
	for i, page := range doc.Pages {
		if i > 0 && opts.PageBreaks {
			paras = append(paras, wParagraph{Runs: []wRun{{Break: &wBreak{Type: "page"}}}})
		}
		for _, p := range page.Paragraphs {
			if strings.TrimSpace(p.Text()) == "" {
				continue
			}
			wp := wParagraph{PPr: &wParagraphProps{Jc: &wVal{Val: "left"}}}
			for _, r := range p.Runs {
				if r.Text == "" {
					continue
				}
				if err := checkText(r.Text); err != nil {
					return nil, fmt.Errorf("%w: page %d: %w", ErrConversion, page.Number, err)
				}
				wp.Runs = append(wp.Runs, run(r))
			}
			paras = append(paras, wp)
		}
	}
	if len(paras) == 0 {
		paras = []wParagraph{{}}
	}

	d := wDocument{
		XmlnsW: nsW,
		XmlnsR: nsR,
		Body:   wBody{Paragraphs: paras, SectPr: section(doc)},
	}
	data, err := marshalPart(d)
	if err != nil {
		return nil, fmt.Errorf("%w: document: %w", ErrConversion, err)
	}
	return data, nil
}

// run maps a model run to a w:r element.
func run(r model.Run) wRun {
	f := r.Format
	props := &wRunProps{}
	if f.Family != "" {
		props.Fonts = &wFonts{ASCII: f.Family, HAnsi: f.Family, CS: f.Family}
	}
	if f.Bold {
		props.Bold = &wEmpty{}
	}
	if f.Italic {
		props.Italic = &wEmpty{}
	}
	props.Color = &wVal{Val: f.Color.Hex()}
	if f.Size > 0 {
		sz := strconv.Itoa(HalfPoints(f.Size))
		props.Size = &wVal{Val: sz}
		props.SizeCS = &wVal{Val: sz}
	}
	return wRun{RPr: props, Text: &wText{Space: "preserve", Value: r.Text}}
}

// HalfPoints converts a size in points to the half-point unit of w:sz.
func HalfPoints(size float64) int {
	return int(math.Round(size * 2))
}

// section uses the first page's size, or US Letter.
func section(doc *model.Document) wSectPr {
	w, h := model.DefaultPageWidth, model.DefaultPageHeight
	if len(doc.Pages) > 0 && doc.Pages[0].Width > 0 && doc.Pages[0].Height > 0 {
		w, h = doc.Pages[0].Width, doc.Pages[0].Height
	}
	sz := wPageSize{W: int(math.Round(w * twipsPerPoint)), H: int(math.Round(h * twipsPerPoint))}
	if w > h {
		sz.Orient = "landscape"
	}
	return wSectPr{
		PgSz: sz,
		PgMar: wPageMargins{
			Top: marginTwips, Right: marginTwips, Bottom: marginTwips, Left: marginTwips,
			Header: 720, Footer: 720,
		},
	}
}

func stylesPart() wStyles {
	s := wStyles{
		XmlnsW: nsW,
		Styles: []wStyle{{
			Type:    "paragraph",
			Default: "1",
			StyleID: "Normal",
			Name:    wVal{Val: "Normal"},
			QFormat: &wEmpty{},
		}},
	}
	s.DocDefaults.RPrDefault.RPr = wRunProps{
		Fonts:  &wFonts{ASCII: DefaultFamily, HAnsi: DefaultFamily},
		Size:   &wVal{Val: "22"},
		SizeCS: &wVal{Val: "22"},
	}
	return s
}

// fontTablePart lists the distinct families sorted by name.
func fontTablePart(doc *model.Document) ([]byte, error) {
	families := doc.Families()
	if len(families) == 0 {
		families = []string{DefaultFamily}
	}
	sort.Strings(families)

	table := wFontTable{XmlnsW: nsW}
	for _, name := range families {
		if err := checkText(name); err != nil {
			return nil, fmt.Errorf("%w: font table: %w", ErrConversion, err)
		}
		table.Fonts = append(table.Fonts, wFont{
			Name:    name,
			Panose:  wVal{Val: "00000000000000000000"},
			Charset: wVal{Val: "00"},
			Family:  wVal{Val: "auto"},
			Pitch:   wVal{Val: "variable"},
		})
	}
	data, err := marshalPart(table)
	if err != nil {
		return nil, fmt.Errorf("%w: font table: %w", ErrConversion, err)
	}
	return data, nil
}

func settingsPart() wSettings {
	s := wSettings{
		XmlnsW:           nsW,
		DefaultTabStop:   wVal{Val: "720"},
		CharacterSpacing: wVal{Val: "doNotCompress"},
	}
	s.Compat.Setting = wCompatSetting{
		Name: "compatibilityMode",
		URI:  "http://schemas.microsoft.com/office/word",
		Val:  "15",
	}
	return s
}

// corePart copies the PDF information dictionary. Timestamps come from the
// source document so the output stays reproducible.
func corePart(meta model.Metadata, opts Options) ([]byte, error) {
	for _, s := range []string{meta.Title, meta.Subject, meta.Author, meta.Keywords} {
		if err := checkText(s); err != nil {
			return nil, fmt.Errorf("%w: core properties: %w", ErrConversion, err)
		}
	}
	creator := meta.Author
	if creator == "" {
		creator = opts.Creator
	}
	core := cpCoreProperties{
		XmlnsCP:        nsCP,
		XmlnsDC:        nsDC,
		XmlnsDCTerms:   nsDCTerms,
		XmlnsXSI:       nsXSI,
		Title:          meta.Title,
		Subject:        meta.Subject,
		Creator:        creator,
		Keywords:       meta.Keywords,
		LastModifiedBy: opts.Creator,
		Created:        w3cDate(meta.Created),
		Modified:       w3cDate(meta.Modified),
	}
	data, err := marshalPart(core)
	if err != nil {
		return nil, fmt.Errorf("%w: core properties: %w", ErrConversion, err)
	}
	return data, nil
}

func w3cDate(t time.Time) *w3cDateTime {
	if t.IsZero() {
		return nil
	}
	return &w3cDateTime{Type: "dcterms:W3CDTF", Value: t.UTC().Format(time.RFC3339)}
}

// checkText reports the first character that XML 1.0 cannot carry.
func checkText(s string) error {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return fmt.Errorf("invalid UTF-8 at byte %d", i)
			}
		}
		if !isXMLChar(r) {
			return fmt.Errorf("character %U at byte %d is not allowed in XML", r, i)
		}
	}
	return nil
}

// isXMLChar implements the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
