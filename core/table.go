package core

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// ErrObjectNotFound is returned when a reference names an absent object.
var ErrObjectNotFound = errors.New("object not found")

// maxResolveDepth bounds reference chains so cycles terminate.
const maxResolveDepth = 32

// ObjectTable is the flat set of indirect objects of one document together
// with its trailer. It is immutable once built and safe for concurrent reads.
type ObjectTable struct {
	objects   map[int]*IndirectObject
	trailer   Dict
	recovered bool
}

// NewObjectTable builds a table from already parsed objects. A later object
// with the same number replaces an earlier one.
func NewObjectTable(objects []*IndirectObject, trailer Dict) *ObjectTable {
	t := &ObjectTable{objects: make(map[int]*IndirectObject, len(objects)), trailer: trailer}
	for _, obj := range objects {
		t.objects[obj.Ref.Number] = obj
	}
	if t.trailer == nil {
		t.trailer = Dict{}
	}
	return t
}

// Get returns the object with the given number.
func (t *ObjectTable) Get(num int) (*IndirectObject, bool) {
	obj, ok := t.objects[num]
	return obj, ok
}

// Len returns the number of objects.
func (t *ObjectTable) Len() int { return len(t.objects) }

// Numbers returns all object numbers in ascending order.
func (t *ObjectTable) Numbers() []int {
	nums := make([]int, 0, len(t.objects))
	for n := range t.objects {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Trailer returns the trailer dictionary.
func (t *ObjectTable) Trailer() Dict { return t.trailer }

// Recovered reports whether the table came from the linear scan rather than
// the cross-reference table.
func (t *ObjectTable) Recovered() bool { return t.recovered }

// ResolveReference returns the object a reference points to.
func (t *ObjectTable) ResolveReference(ref IndirectRef) (Object, error) {
	obj, ok := t.objects[ref.Number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, ref)
	}
	return obj.Object, nil
}

// Resolve follows references until a direct object is reached. Missing
// objects resolve to Null, as the PDF format prescribes.
func (t *ObjectTable) Resolve(obj Object) Object {
	for i := 0; i < maxResolveDepth; i++ {
		ref, ok := obj.(IndirectRef)
		if !ok {
			return obj
		}
		next, err := t.ResolveReference(ref)
		if err != nil {
			return Null{}
		}
		obj = next
	}
	return Null{}
}

// ResolveDict resolves obj and returns it as a dictionary. Streams yield
// their dictionary.
func (t *ObjectTable) ResolveDict(obj Object) (Dict, bool) {
	switch v := t.Resolve(obj).(type) {
	case Dict:
		return v, true
	case *Stream:
		return v.Dict, true
	}
	return nil, false
}

// Stats summarizes the object table.
type Stats struct {
	Objects           int
	Streams           int
	CompressedStreams int
	Filters           map[string]int
}

// Stats counts objects, streams and filter usage.
func (t *ObjectTable) Stats() Stats {
	s := Stats{Objects: len(t.objects), Filters: map[string]int{}}
	for _, obj := range t.objects {
		stream, ok := obj.Object.(*Stream)
		if !ok {
			continue
		}
		s.Streams++
		names := stream.Filters()
		if len(names) > 0 {
			s.CompressedStreams++
		}
		for _, n := range names {
			s.Filters[n]++
		}
	}
	return s
}

// BuildObjectTable parses every indirect object in a PDF file. The
// cross-reference table is used when it is intact; otherwise the buffer is
// scanned linearly. It fails with ErrMalformedDocument only when no object
// can be recovered.
func BuildObjectTable(data []byte) (*ObjectTable, error) {
	t, err := buildFromXRef(data)
	if err == nil {
		return t, nil
	}

	t = scanObjects(data)
	if t.Len() == 0 {
		return nil, fmt.Errorf("%w: no objects found (xref: %v)", ErrMalformedDocument, err)
	}
	return t, nil
}

// builder parses objects at known offsets and resolves indirect stream
// lengths on demand.
type builder struct {
	data     []byte
	offsets  map[int]int
	resolved map[int]*IndirectObject
	parsing  map[int]bool
}

func newBuilder(data []byte) *builder {
	return &builder{
		data:     data,
		offsets:  map[int]int{},
		resolved: map[int]*IndirectObject{},
		parsing:  map[int]bool{},
	}
}

func (b *builder) ResolveReference(ref IndirectRef) (Object, error) {
	obj, err := b.objectAt(ref.Number)
	if err != nil {
		return nil, err
	}
	return obj.Object, nil
}

func (b *builder) objectAt(num int) (*IndirectObject, error) {
	if obj, ok := b.resolved[num]; ok {
		return obj, nil
	}
	off, ok := b.offsets[num]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrObjectNotFound, num)
	}
	if b.parsing[num] {
		return nil, fmt.Errorf("object %d refers to itself while parsing", num)
	}
	b.parsing[num] = true
	defer delete(b.parsing, num)

	p := NewParser(b.data)
	p.SetReferenceResolver(b)
	p.Seek(off)
	obj, err := p.ParseIndirectObject()
	if err != nil {
		return nil, err
	}
	if obj.Ref.Number != num {
		return nil, fmt.Errorf("offset %d holds object %d, expected %d", off, obj.Ref.Number, num)
	}
	b.resolved[num] = obj
	return obj, nil
}

func buildFromXRef(data []byte) (*ObjectTable, error) {
	xref, err := NewXRefParser(data).ParseAll()
	if err != nil {
		return nil, err
	}
	if _, ok := xref.Trailer.GetIndirectRef("Root"); !ok {
		return nil, fmt.Errorf("trailer has no /Root")
	}

	b := newBuilder(data)
	for num, e := range xref.Entries {
		if e.InUse && e.Offset > 0 && e.Offset < int64(len(data)) {
			b.offsets[num] = int(e.Offset)
		}
	}
	if len(b.offsets) == 0 {
		return nil, fmt.Errorf("xref table lists no objects")
	}

	objects := make([]*IndirectObject, 0, len(b.offsets))
	for num := range b.offsets {
		obj, err := b.objectAt(num)
		if err != nil {
			return nil, fmt.Errorf("xref entry for object %d: %w", num, err)
		}
		objects = append(objects, obj)
	}

	t := NewObjectTable(objects, xref.Trailer)
	t.expandObjectStreams()
	return t, nil
}

var objHeader = regexp.MustCompile(`(\d+)\s+(\d+)\s+obj\b`)

// scanObjects recovers objects by scanning for "N G obj" headers. Parsing
// resumes after each recovered object so stream payloads are not rescanned;
// the last definition of a number wins.
func scanObjects(data []byte) *ObjectTable {
	matches := objHeader.FindAllSubmatchIndex(data, -1)

	b := newBuilder(data)
	for _, m := range matches {
		if m[0] > 0 && isDigit(data[m[0]-1]) {
			continue
		}
		num := atoi(data[m[2]:m[3]])
		b.offsets[num] = m[0]
	}

	t := &ObjectTable{objects: map[int]*IndirectObject{}, recovered: true}
	next := 0
	for _, m := range matches {
		if m[0] < next || (m[0] > 0 && isDigit(data[m[0]-1])) {
			continue
		}
		p := NewParser(data)
		p.SetReferenceResolver(b)
		p.Seek(m[0])
		obj, err := p.ParseIndirectObject()
		if err != nil {
			next = m[1]
			continue
		}
		t.objects[obj.Ref.Number] = obj
		next = p.Pos()
	}

	t.trailer = recoverTrailer(data, t)
	t.expandObjectStreams()
	return t
}

// recoverTrailer finds a usable trailer for a scanned file: the last
// "trailer" dictionary, then a cross-reference stream dictionary, then a
// synthesized one pointing at a /Catalog object.
func recoverTrailer(data []byte, t *ObjectTable) Dict {
	if idx := bytes.LastIndex(data, []byte("trailer")); idx >= 0 {
		p := NewParser(data)
		p.Seek(idx + len("trailer"))
		if obj, err := p.ParseObject(); err == nil {
			if d, ok := obj.(Dict); ok && d.Has("Root") {
				return d
			}
		}
	}

	var catalog *IndirectObject
	for _, num := range t.Numbers() {
		obj := t.objects[num]
		switch v := obj.Object.(type) {
		case *Stream:
			if typ, _ := v.Dict.GetName("Type"); typ == "XRef" && v.Dict.Has("Root") {
				trailer := Dict{}
				for _, k := range []string{"Root", "Info", "ID"} {
					if v.Dict.Has(k) {
						trailer[k] = v.Dict[k]
					}
				}
				return trailer
			}
		case Dict:
			if typ, _ := v.GetName("Type"); typ == "Catalog" {
				catalog = obj
			}
		}
	}
	if catalog != nil {
		return Dict{"Root": catalog.Ref}
	}
	return Dict{}
}

// expandObjectStreams adds objects stored in object streams. Objects defined
// directly in the file take precedence.
func (t *ObjectTable) expandObjectStreams() {
	for _, num := range t.Numbers() {
		stream, ok := t.objects[num].Object.(*Stream)
		if !ok {
			continue
		}
		if typ, _ := stream.Dict.GetName("Type"); typ != "ObjStm" {
			continue
		}
		os, err := NewObjectStream(stream)
		if err != nil {
			continue
		}
		for i, n := range os.ObjectNumbers() {
			if _, exists := t.objects[n]; exists {
				continue
			}
			if obj, err := os.ObjectAt(i); err == nil {
				t.objects[n] = obj
			}
		}
	}
}

func atoi(b []byte) int {
	n := 0
	for _, c := range b {
		n = n*10 + int(c-'0')
	}
	return n
}
