package docx

import "encoding/xml"

// XML namespaces used in DOCX files
const (
	nsW            = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR            = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPackageRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCP           = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC           = "http://purl.org/dc/elements/1.1/"
	nsDCTerms      = "http://purl.org/dc/terms/"
	nsXSI          = "http://www.w3.org/2001/XMLSchema-instance"
	nsExtended     = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
)

// Package-level parts. These tags carry no prefix, so the same types
// serve marshaling and unmarshaling.

// typesXML represents [Content_Types].xml
type typesXML struct {
	XMLName   xml.Name      `xml:"Types"`
	Xmlns     string        `xml:"xmlns,attr"`
	Defaults  []defaultXML  `xml:"Default"`
	Overrides []overrideXML `xml:"Override"`
}

type defaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// relationshipsXML represents _rels/*.rels files
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship.
type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// appPropertiesXML represents docProps/app.xml
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	Application string   `xml:"Application"`
	DocSecurity int      `xml:"DocSecurity"`
	Pages       int      `xml:"Pages"`
	Paragraphs  int      `xml:"Paragraphs"`
	AppVersion  string   `xml:"AppVersion"`
}

// WordprocessingML parts are written with explicit "w:" prefixes. The
// decoder strips prefixes, so the reader has its own types below.

// wDocument represents word/document.xml for writing.
type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wParagraph `xml:"w:p"`
	SectPr     wSectPr      `xml:"w:sectPr"`
}

type wParagraph struct {
	PPr  *wParagraphProps `xml:"w:pPr,omitempty"`
	Runs []wRun           `xml:"w:r"`
}

type wParagraphProps struct {
	Style *wVal `xml:"w:pStyle,omitempty"`
	Jc    *wVal `xml:"w:jc,omitempty"`
}

type wRun struct {
	RPr   *wRunProps `xml:"w:rPr,omitempty"`
	Break *wBreak    `xml:"w:br,omitempty"`
	Text  *wText     `xml:"w:t,omitempty"`
}

// wRunProps follows the element order required by the schema.
type wRunProps struct {
	Fonts  *wFonts `xml:"w:rFonts,omitempty"`
	Bold   *wEmpty `xml:"w:b,omitempty"`
	Italic *wEmpty `xml:"w:i,omitempty"`
	Color  *wVal   `xml:"w:color,omitempty"`
	Size   *wVal   `xml:"w:sz,omitempty"`
	SizeCS *wVal   `xml:"w:szCs,omitempty"`
}

type wFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr,omitempty"`
}

type wEmpty struct{}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wBreak struct {
	Type string `xml:"w:type,attr,omitempty"`
}

type wText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type wSectPr struct {
	PgSz  wPageSize    `xml:"w:pgSz"`
	PgMar wPageMargins `xml:"w:pgMar"`
}

// wPageSize is in twentieths of a point.
type wPageSize struct {
	W      int    `xml:"w:w,attr"`
	H      int    `xml:"w:h,attr"`
	Orient string `xml:"w:orient,attr,omitempty"`
}

type wPageMargins struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

// wStyles represents word/styles.xml for writing.
type wStyles struct {
	XMLName     xml.Name     `xml:"w:styles"`
	XmlnsW      string       `xml:"xmlns:w,attr"`
	DocDefaults wDocDefaults `xml:"w:docDefaults"`
	Styles      []wStyle     `xml:"w:style"`
}

type wDocDefaults struct {
	RPrDefault struct {
		RPr wRunProps `xml:"w:rPr"`
	} `xml:"w:rPrDefault"`
}

type wStyle struct {
	Type    string  `xml:"w:type,attr"`
	Default string  `xml:"w:default,attr,omitempty"`
	StyleID string  `xml:"w:styleId,attr"`
	Name    wVal    `xml:"w:name"`
	QFormat *wEmpty `xml:"w:qFormat,omitempty"`
}

// wFontTable represents word/fontTable.xml for writing.
type wFontTable struct {
	XMLName xml.Name `xml:"w:fonts"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	Fonts   []wFont  `xml:"w:font"`
}

type wFont struct {
	Name    string `xml:"w:name,attr"`
	Panose  wVal   `xml:"w:panose1"`
	Charset wVal   `xml:"w:charset"`
	Family  wVal   `xml:"w:family"`
	Pitch   wVal   `xml:"w:pitch"`
}

// wSettings represents word/settings.xml for writing.
type wSettings struct {
	XMLName          xml.Name `xml:"w:settings"`
	XmlnsW           string   `xml:"xmlns:w,attr"`
	DefaultTabStop   wVal     `xml:"w:defaultTabStop"`
	CharacterSpacing wVal     `xml:"w:characterSpacingControl"`
	Compat           struct {
		Setting wCompatSetting `xml:"w:compatSetting"`
	} `xml:"w:compat"`
}

type wCompatSetting struct {
	Name string `xml:"w:name,attr"`
	URI  string `xml:"w:uri,attr"`
	Val  string `xml:"w:val,attr"`
}

// cpCoreProperties represents docProps/core.xml for writing.
type cpCoreProperties struct {
	XMLName        xml.Name     `xml:"cp:coreProperties"`
	XmlnsCP        string       `xml:"xmlns:cp,attr"`
	XmlnsDC        string       `xml:"xmlns:dc,attr"`
	XmlnsDCTerms   string       `xml:"xmlns:dcterms,attr"`
	XmlnsXSI       string       `xml:"xmlns:xsi,attr"`
	Title          string       `xml:"dc:title,omitempty"`
	Subject        string       `xml:"dc:subject,omitempty"`
	Creator        string       `xml:"dc:creator,omitempty"`
	Keywords       string       `xml:"cp:keywords,omitempty"`
	LastModifiedBy string       `xml:"cp:lastModifiedBy,omitempty"`
	Created        *w3cDateTime `xml:"dcterms:created,omitempty"`
	Modified       *w3cDateTime `xml:"dcterms:modified,omitempty"`
}

type w3cDateTime struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// Read-side types. Tags match local names only.

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
	SectPr     sectPrXML      `xml:"sectPr"`
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
}

type paragraphPropsXML struct {
	Style valXML `xml:"pStyle"`
	Jc    valXML `xml:"jc"`
}

// runXML represents a text run (<w:r>).
type runXML struct {
	Properties runPropsXML `xml:"rPr"`
	Text       []textXML   `xml:"t"`
	Tabs       []struct{}  `xml:"tab"`
	Breaks     []breakXML  `xml:"br"`
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold     *boolXML `xml:"b"`
	Italic   *boolXML `xml:"i"`
	FontSize valXML   `xml:"sz"`
	Font     fontXML  `xml:"rFonts"`
	Color    valXML   `xml:"color"`
}

// boolXML is an on/off property; absent val means on.
type boolXML struct {
	Val string `xml:"val,attr"`
}

func (b *boolXML) on() bool {
	if b == nil {
		return false
	}
	switch b.Val {
	case "0", "false", "off":
		return false
	}
	return true
}

type valXML struct {
	Val string `xml:"val,attr"`
}

// fontXML represents font settings.
type fontXML struct {
	ASCII string `xml:"ascii,attr"`
	HAnsi string `xml:"hAnsi,attr"`
}

// textXML represents text content (<w:t>).
type textXML struct {
	Space string `xml:"space,attr"`
	Value string `xml:",chardata"`
}

type breakXML struct {
	Type string `xml:"type,attr"`
}

type sectPrXML struct {
	PgSz struct {
		W int `xml:"w,attr"`
		H int `xml:"h,attr"`
	} `xml:"pgSz"`
}

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName     xml.Name `xml:"styles"`
	DocDefaults struct {
		RPrDefault struct {
			RPr runPropsXML `xml:"rPr"`
		} `xml:"rPrDefault"`
	} `xml:"docDefaults"`
	Styles []struct {
		StyleID string `xml:"styleId,attr"`
		Name    valXML `xml:"name"`
	} `xml:"style"`
}

// fontTableXML represents word/fontTable.xml
type fontTableXML struct {
	XMLName xml.Name `xml:"fonts"`
	Fonts   []struct {
		Name string `xml:"name,attr"`
	} `xml:"font"`
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName        xml.Name `xml:"coreProperties"`
	Title          string   `xml:"title"`
	Subject        string   `xml:"subject"`
	Creator        string   `xml:"creator"`
	Keywords       string   `xml:"keywords"`
	LastModifiedBy string   `xml:"lastModifiedBy"`
	Created        string   `xml:"created"`
	Modified       string   `xml:"modified"`
}
