package pages

import (
	"errors"
	"fmt"

	"github.com/tsawler/pdfdocx/core"
	"github.com/tsawler/pdfdocx/model"
)

// maxTreeDepth bounds page tree recursion against cyclic /Kids.
const maxTreeDepth = 64

// ErrNoPages is returned when a page tree yields no pages.
var ErrNoPages = errors.New("document has no pages")

// ObjectResolver follows indirect references.
type ObjectResolver interface {
	Resolve(obj core.Object) core.Object
}

// Catalog is the document catalog, the root of the document structure.
type Catalog struct {
	dict     core.Dict
	resolver ObjectResolver
}

// NewCatalog wraps a catalog dictionary.
func NewCatalog(dict core.Dict, resolver ObjectResolver) *Catalog {
	return &Catalog{dict: dict, resolver: resolver}
}

// Type returns the /Type name, "Catalog" for a well-formed file.
func (c *Catalog) Type() string {
	name, _ := c.dict.GetName("Type")
	return string(name)
}

// Pages returns the root of the page tree.
func (c *Catalog) Pages() (core.Dict, error) {
	obj := c.dict.Get("Pages")
	if obj == nil {
		return nil, fmt.Errorf("catalog missing /Pages entry")
	}
	dict, ok := c.resolver.Resolve(obj).(core.Dict)
	if !ok {
		return nil, fmt.Errorf("invalid /Pages type: %T", c.resolver.Resolve(obj))
	}
	return dict, nil
}

// Version returns the /Version entry, which overrides the header version.
func (c *Catalog) Version() string {
	name, _ := c.dict.GetName("Version")
	return string(name)
}

// PageTree is a flattened page tree.
type PageTree struct {
	root     core.Dict
	resolver ObjectResolver
	pages    []*Page
}

// NewPageTree returns the tree rooted at root.
func NewPageTree(root core.Dict, resolver ObjectResolver) *PageTree {
	return &PageTree{root: root, resolver: resolver}
}

// Count returns the /Count of the root, which may disagree with the number
// of leaves actually reachable.
func (t *PageTree) Count() (int, error) {
	count, ok := t.root.GetInt("Count")
	if !ok {
		return 0, fmt.Errorf("page tree missing /Count entry")
	}
	return int(count), nil
}

// GetPage returns the page at index (0-based).
func (t *PageTree) GetPage(index int) (*Page, error) {
	pages, err := t.Pages()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(pages))
	}
	return pages[index], nil
}

// Pages returns every reachable page in document order.
func (t *PageTree) Pages() ([]*Page, error) {
	if t.pages == nil {
		t.pages = make([]*Page, 0)
		t.traverse(t.root, nil, map[int]bool{}, 0)
		if len(t.pages) == 0 {
			return nil, ErrNoPages
		}
	}
	return t.pages, nil
}

// traverse walks a node. Malformed kids are skipped so that one bad branch
// does not hide the rest of the document.
func (t *PageTree) traverse(node core.Dict, ancestors []core.Dict, visited map[int]bool, depth int) {
	if depth > maxTreeDepth {
		return
	}

	kids, isTree := t.resolver.Resolve(node.Get("Kids")).(core.Array)
	typ, _ := node.GetName("Type")
	if typ == "Page" || (typ != "Pages" && !isTree) {
		t.pages = append(t.pages, NewPage(node, ancestors, t.resolver))
		return
	}

	chain := append(append([]core.Dict{}, ancestors...), node)
	for _, kid := range kids {
		if ref, ok := kid.(core.IndirectRef); ok {
			if visited[ref.Number] {
				continue
			}
			visited[ref.Number] = true
		}
		if dict, ok := t.resolver.Resolve(kid).(core.Dict); ok {
			t.traverse(dict, chain, visited, depth+1)
		}
	}
}

// Scan returns the /Type /Page objects of a table in object number order,
// for files whose page tree cannot be walked.
func Scan(table *core.ObjectTable) []*Page {
	var pages []*Page
	for _, num := range table.Numbers() {
		obj, _ := table.Get(num)
		dict, ok := obj.Object.(core.Dict)
		if !ok {
			continue
		}
		if typ, _ := dict.GetName("Type"); typ != "Page" {
			continue
		}
		var ancestors []core.Dict
		if parent, ok := table.Resolve(dict.Get("Parent")).(core.Dict); ok {
			ancestors = []core.Dict{parent}
		}
		pages = append(pages, NewPage(dict, ancestors, table))
	}
	return pages
}

// Page is one leaf of the page tree.
type Page struct {
	dict      core.Dict
	ancestors []core.Dict // root first
	resolver  ObjectResolver
}

// NewPage wraps a page dictionary and the page tree nodes above it.
func NewPage(dict core.Dict, ancestors []core.Dict, resolver ObjectResolver) *Page {
	return &Page{dict: dict, ancestors: ancestors, resolver: resolver}
}

// Dict returns the page dictionary.
func (p *Page) Dict() core.Dict { return p.dict }

// inherited looks key up on the page, then on its ancestors from the
// nearest outward.
func (p *Page) inherited(key string) core.Object {
	if obj := p.dict.Get(key); obj != nil {
		return p.resolver.Resolve(obj)
	}
	for i := len(p.ancestors) - 1; i >= 0; i-- {
		if obj := p.ancestors[i].Get(key); obj != nil {
			return p.resolver.Resolve(obj)
		}
	}
	return nil
}

// MediaBox returns the page boundaries. It is inheritable.
func (p *Page) MediaBox() (model.BBox, error) {
	return p.box("MediaBox")
}

// CropBox returns the visible region, defaulting to the media box.
func (p *Page) CropBox() (model.BBox, error) {
	if box, err := p.box("CropBox"); err == nil {
		return box, nil
	}
	return p.MediaBox()
}

func (p *Page) box(name string) (model.BBox, error) {
	obj := p.inherited(name)
	if obj == nil {
		return model.BBox{}, fmt.Errorf("%s not found", name)
	}
	arr, ok := obj.(core.Array)
	if !ok || len(arr) != 4 {
		return model.BBox{}, fmt.Errorf("invalid %s: %v", name, obj)
	}
	v := make([]float64, 4)
	for i, elem := range arr {
		n, ok := core.Number(p.resolver.Resolve(elem))
		if !ok {
			return model.BBox{}, fmt.Errorf("invalid %s element type: %T", name, elem)
		}
		v[i] = n
	}
	box := model.NewBBoxFromPoints(model.Point{X: v[0], Y: v[1]}, model.Point{X: v[2], Y: v[3]})
	if !box.IsValid() {
		return model.BBox{}, fmt.Errorf("empty %s", name)
	}
	return box, nil
}

// Size returns the media box width and height, or US Letter when the box
// is absent or unusable. Quarter turns swap the dimensions.
func (p *Page) Size() (width, height float64) {
	width, height = model.DefaultPageWidth, model.DefaultPageHeight
	if box, err := p.MediaBox(); err == nil {
		width, height = box.Width, box.Height
	}
	if r := p.Rotate(); r == 90 || r == 270 {
		width, height = height, width
	}
	return width, height
}

// Resources returns the resources dictionary. It is inheritable; nil when
// absent.
func (p *Page) Resources() core.Dict {
	dict, _ := p.inherited("Resources").(core.Dict)
	return dict
}

// Contents returns the content streams of the page in order. Entries that
// do not resolve to streams are dropped.
func (p *Page) Contents() []*core.Stream {
	switch v := p.resolver.Resolve(p.dict.Get("Contents")).(type) {
	case *core.Stream:
		return []*core.Stream{v}
	case core.Array:
		streams := make([]*core.Stream, 0, len(v))
		for _, elem := range v {
			if s, ok := p.resolver.Resolve(elem).(*core.Stream); ok {
				streams = append(streams, s)
			}
		}
		return streams
	}
	return nil
}

// Rotate returns the page rotation normalized to 0, 90, 180 or 270.
func (p *Page) Rotate() int {
	n, ok := core.Number(p.inherited("Rotate"))
	if !ok {
		return 0
	}
	r := int(n) % 360
	if r < 0 {
		r += 360
	}
	return r - r%90
}
