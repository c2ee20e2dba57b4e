package pdfdocx_test

import (
	"fmt"
	"log"

	"github.com/tsawler/pdfdocx"
	"github.com/tsawler/pdfdocx/docx"
	"github.com/tsawler/pdfdocx/internal/pdftest"
)

func ExampleConvertBytes() {
	pdf := pdftest.SinglePage("BT /F1 14 Tf 72 700 Td (Hello, world) Tj ET")

	out, warnings, err := pdfdocx.ConvertBytes(pdf)
	if err != nil {
		log.Fatal(err)
	}

	r, err := docx.NewReader(out)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(r.Text())
	fmt.Println(len(warnings), "warnings")
	// Output:
	// Hello, world
	// 0 warnings
}

func ExampleDocument_Reconstruct() {
	pdf := pdftest.Document([]pdftest.Page{
		{Content: "BT /F1 12 Tf 72 700 Td (First page) Tj ET"},
		{Content: "BT /F1 12 Tf 72 700 Td (Second page) Tj ET"},
	})

	doc, err := pdfdocx.ParseDocument(pdf)
	if err != nil {
		log.Fatal(err)
	}
	m, _, err := doc.Reconstruct(pdfdocx.WithPages(2))
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range m.Paragraphs() {
		fmt.Println(p.Text(), p.Runs[0].Format.Family)
	}
	// Output:
	// Second page Arial
}
