package pdfdocx

import (
	"bytes"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfdocx/docx"
)

// generatedPDF renders a two page report with gofpdf, which compresses
// its content streams and uses WinAnsi encoded core fonts.
func generatedPDF(t *testing.T) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle("Quarterly Report", true)
	pdf.SetAuthor("Finance", false)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(72, 100, "Quarterly Report")
	pdf.SetFont("Times", "I", 12)
	pdf.SetTextColor(255, 0, 0)
	pdf.Text(72, 150, "Revenue grew")
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(72, 164, "in every region")

	pdf.AddPage()
	pdf.SetFont("Courier", "", 10)
	pdf.Text(72, 100, "Page two")

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestEndToEndGeneratedPDF(t *testing.T) {
	doc, err := ParseDocument(generatedPDF(t))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.PageCount())
	assert.Equal(t, "Quarterly Report", doc.Metadata().Title)
	assert.Positive(t, doc.Stats().Filters["FlateDecode"])

	data, warnings, err := Convert(doc)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	r, err := docx.NewReader(data)
	require.NoError(t, err)
	assert.Equal(t, 1, r.PageBreaks())
	assert.Equal(t, "Quarterly Report", r.Metadata().Title)
	assert.Equal(t, "Finance", r.Metadata().Author)

	paras := r.Paragraphs()
	require.Len(t, paras, 3)

	title := paras[0].Runs[0]
	assert.Equal(t, "Quarterly Report", title.Text)
	assert.Equal(t, "Arial", title.Format.Family)
	assert.Equal(t, 16.0, title.Format.Size)
	assert.True(t, title.Format.Bold)

	// lines 14pt apart stay in one paragraph, split into runs by color
	body := paras[1]
	assert.Equal(t, "Revenue grew in every region", body.Text())
	require.Len(t, body.Runs, 2)
	assert.Equal(t, "FF0000", body.Runs[0].Format.Color.Hex())
	assert.Equal(t, "000000", body.Runs[1].Format.Color.Hex())
	assert.Equal(t, "Times New Roman", body.Runs[0].Format.Family)
	assert.True(t, body.Runs[0].Format.Italic)

	last := paras[2].Runs[0]
	assert.Equal(t, "Page two", last.Text)
	assert.Equal(t, "Courier New", last.Format.Family)
	assert.Equal(t, 10.0, last.Format.Size)

	assert.Equal(t, []string{"Arial", "Courier New", "Times New Roman"}, r.Fonts())
}

func TestEndToEndDeterministic(t *testing.T) {
	pdf := generatedPDF(t)
	a, _, err := ConvertBytes(pdf)
	require.NoError(t, err)
	b, _, err := ConvertBytes(pdf)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
