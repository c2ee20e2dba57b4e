package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"
)

// MediaType is the media type of a DOCX file.
const MediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Content types of the parts this package writes.
const (
	ContentTypeRelationships      = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML                = "application/xml"
	ContentTypeDocument           = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ContentTypeStyles             = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ContentTypeFontTable          = "application/vnd.openxmlformats-officedocument.wordprocessingml.fontTable+xml"
	ContentTypeSettings           = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
	ContentTypeCoreProperties     = "application/vnd.openxmlformats-package.core-properties+xml"
	ContentTypeExtendedProperties = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// Relationship types.
const (
	RelOfficeDocument     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelCoreProperties     = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelExtendedProperties = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	RelStyles             = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelFontTable          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/fontTable"
	RelSettings           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
)

const (
	contentTypesName = "[Content_Types].xml"
	xmlHeader        = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

var (
	// ErrConversion marks a failure to produce the output package. Nothing
	// is written when it occurs.
	ErrConversion = errors.New("conversion failed")

	// ErrInvalidPackage is returned by Validate.
	ErrInvalidPackage = errors.New("invalid package")
)

// zipTime is the modification time stamped on every archive entry.
var zipTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// Part is one file of the package.
type Part struct {
	Name        string // e.g. "word/document.xml", no leading slash
	ContentType string
	Data        []byte
}

// Relationship links a source part (or the package) to a target part.
// Target is relative to the source part's directory.
type Relationship struct {
	ID     string
	Type   string
	Target string
}

// Package is an Open Packaging Conventions container. Relationship parts
// and the content type manifest are derived from the parts and
// relationships when the package is written.
type Package struct {
	parts []*Part
	index map[string]*Part
	rels  map[string][]Relationship // source part name, "" for the package
}

// NewPackage returns an empty package.
func NewPackage() *Package {
	return &Package{
		index: map[string]*Part{},
		rels:  map[string][]Relationship{},
	}
}

// AddPart adds a part. Names must be unique.
func (p *Package) AddPart(name, contentType string, data []byte) error {
	name = strings.TrimPrefix(name, "/")
	if name == "" || name == contentTypesName {
		return fmt.Errorf("%w: reserved part name %q", ErrInvalidPackage, name)
	}
	if _, ok := p.index[name]; ok {
		return fmt.Errorf("%w: duplicate part %q", ErrInvalidPackage, name)
	}
	part := &Part{Name: name, ContentType: contentType, Data: data}
	p.parts = append(p.parts, part)
	p.index[name] = part
	return nil
}

// Part returns the named part.
func (p *Package) Part(name string) (*Part, bool) {
	part, ok := p.index[strings.TrimPrefix(name, "/")]
	return part, ok
}

// Parts returns the parts in the order they were added.
func (p *Package) Parts() []*Part {
	return p.parts
}

// Relate adds a relationship from source ("" for the package) and returns
// its ID. IDs are numbered rId1, rId2, ... per source.
func (p *Package) Relate(source, relType, target string) string {
	id := fmt.Sprintf("rId%d", len(p.rels[source])+1)
	p.rels[source] = append(p.rels[source], Relationship{ID: id, Type: relType, Target: target})
	return id
}

// Relationships returns the relationships of source in the order added.
func (p *Package) Relationships(source string) []Relationship {
	return p.rels[source]
}

// resolveTarget returns the part name a relationship of source points to.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}

// relsName returns the relationship part name of source.
func relsName(source string) string {
	if source == "" {
		return "_rels/.rels"
	}
	dir, file := path.Split(source)
	return dir + "_rels/" + file + ".rels"
}

// Validate checks the package structure: a main document relationship
// exists, every relationship has a unique ID within its source and targets
// a part that exists, and every part has a content type.
func (p *Package) Validate() error {
	main := false
	for _, rel := range p.rels[""] {
		if rel.Type == RelOfficeDocument {
			main = true
		}
	}
	if !main {
		return fmt.Errorf("%w: no main document relationship", ErrInvalidPackage)
	}

	for _, source := range p.sources() {
		if _, ok := p.index[source]; source != "" && !ok {
			return fmt.Errorf("%w: relationships from missing part %q", ErrInvalidPackage, source)
		}
		ids := map[string]bool{}
		for _, rel := range p.rels[source] {
			if ids[rel.ID] {
				return fmt.Errorf("%w: duplicate relationship ID %s in %q", ErrInvalidPackage, rel.ID, source)
			}
			ids[rel.ID] = true
			if _, ok := p.index[resolveTarget(source, rel.Target)]; !ok {
				return fmt.Errorf("%w: relationship %s targets missing part %q", ErrInvalidPackage, rel.ID, rel.Target)
			}
		}
	}

	for _, part := range p.parts {
		if part.ContentType == "" {
			return fmt.Errorf("%w: part %q has no content type", ErrInvalidPackage, part.Name)
		}
	}
	return nil
}

// sources returns the relationship sources in a fixed order: the package
// first, then parts in the order they were added.
func (p *Package) sources() []string {
	var out []string
	if len(p.rels[""]) > 0 {
		out = append(out, "")
	}
	for _, part := range p.parts {
		if len(p.rels[part.Name]) > 0 {
			out = append(out, part.Name)
		}
	}
	// relationships from parts that were never added, so Validate sees them
	var orphans []string
	for source := range p.rels {
		if _, ok := p.index[source]; source != "" && !ok {
			orphans = append(orphans, source)
		}
	}
	sort.Strings(orphans)
	return append(out, orphans...)
}

// Bytes validates the package and returns the archive.
func (p *Package) Bytes() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name string, data []byte) error {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: zipTime,
		})
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	types, err := p.contentTypes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}
	if err := write(contentTypesName, types); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %w", ErrConversion, contentTypesName, err)
	}

	for _, source := range p.sources() {
		data, err := marshalPart(relationshipsXML{Xmlns: nsPackageRels, Relationships: p.relsXML(source)})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConversion, err)
		}
		if err := write(relsName(source), data); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %w", ErrConversion, relsName(source), err)
		}
	}
	for _, part := range p.parts {
		if err := write(part.Name, part.Data); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %w", ErrConversion, part.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing archive: %w", ErrConversion, err)
	}
	return buf.Bytes(), nil
}

// WriteTo writes the archive to w. The archive is assembled in memory
// first, so w receives nothing if any part fails.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	data, err := p.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

func (p *Package) relsXML(source string) []relationshipXML {
	rels := p.rels[source]
	out := make([]relationshipXML, len(rels))
	for i, r := range rels {
		out[i] = relationshipXML{ID: r.ID, Type: r.Type, Target: r.Target}
	}
	return out
}

// contentTypes builds [Content_Types].xml. Extensions rels and xml get
// defaults; every part whose type differs from its extension default gets
// an override.
func (p *Package) contentTypes() ([]byte, error) {
	types := typesXML{
		Xmlns: nsContentTypes,
		Defaults: []defaultXML{
			{Extension: "rels", ContentType: ContentTypeRelationships},
			{Extension: "xml", ContentType: ContentTypeXML},
		},
	}
	defaults := map[string]string{"rels": ContentTypeRelationships, "xml": ContentTypeXML}
	for _, part := range p.parts {
		ext := strings.TrimPrefix(path.Ext(part.Name), ".")
		if def, ok := defaults[ext]; ok && def == part.ContentType {
			continue
		}
		types.Overrides = append(types.Overrides, overrideXML{
			PartName:    "/" + part.Name,
			ContentType: part.ContentType,
		})
	}
	return marshalPart(types)
}

// marshalPart serializes v with the standard XML declaration.
func marshalPart(v interface{}) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), data...), nil
}
