package core

import (
	"bytes"
	"fmt"
	"strconv"
)

// XRefEntry is one row of a cross-reference table.
type XRefEntry struct {
	Offset     int64 // byte offset of an in-use object
	Generation int
	InUse      bool
}

// XRefTable maps object numbers to their entries, plus the trailer.
type XRefTable struct {
	Entries map[int]*XRefEntry
	Trailer Dict
}

// NewXRefTable creates an empty table.
func NewXRefTable() *XRefTable {
	return &XRefTable{Entries: make(map[int]*XRefEntry), Trailer: make(Dict)}
}

// Get returns the entry for an object number.
func (x *XRefTable) Get(objNum int) (*XRefEntry, bool) {
	e, ok := x.Entries[objNum]
	return e, ok
}

// Size returns the number of entries.
func (x *XRefTable) Size() int { return len(x.Entries) }

// XRefParser reads classic cross-reference tables from a file buffer.
type XRefParser struct {
	data []byte
}

// NewXRefParser returns a parser over the whole file.
func NewXRefParser(data []byte) *XRefParser {
	return &XRefParser{data: data}
}

// FindXRef returns the offset recorded after the last "startxref" in the
// final 1024 bytes of the file.
func (x *XRefParser) FindXRef() (int64, error) {
	tail := x.data
	if len(tail) > 1024 {
		tail = tail[len(tail)-1024:]
	}
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, fmt.Errorf("startxref not found")
	}
	fields := bytes.Fields(tail[idx+len("startxref"):])
	if len(fields) == 0 {
		return 0, fmt.Errorf("startxref has no offset")
	}
	offset, err := strconv.ParseInt(string(fields[0]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid xref offset: %w", err)
	}
	if offset < 0 || offset >= int64(len(x.data)) {
		return 0, fmt.Errorf("xref offset %d outside file of %d bytes", offset, len(x.data))
	}
	return offset, nil
}

// ParseXRef parses the "xref" section and trailer at offset.
func (x *XRefParser) ParseXRef(offset int64) (*XRefTable, error) {
	p := NewParser(x.data)
	p.Seek(int(offset))

	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if !isKeyword(tok, "xref") {
		return nil, fmt.Errorf("expected 'xref' at offset %d, got %q", offset, tok.Value)
	}

	table := NewXRefTable()
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if isKeyword(tok, "trailer") {
			obj, err := p.ParseObject()
			if err != nil {
				return nil, fmt.Errorf("failed to parse trailer: %w", err)
			}
			trailer, ok := obj.(Dict)
			if !ok {
				return nil, fmt.Errorf("trailer is not a dictionary, got %T", obj)
			}
			table.Trailer = trailer
			return table, nil
		}

		countTok, err := p.next()
		if err != nil {
			return nil, err
		}
		first, err1 := strconv.Atoi(string(tok.Value))
		count, err2 := strconv.Atoi(string(countTok.Value))
		if tok.Type != TokenInteger || countTok.Type != TokenInteger || err1 != nil || err2 != nil || count < 0 {
			return nil, fmt.Errorf("invalid subsection header at offset %d", tok.Pos)
		}

		for i := 0; i < count; i++ {
			entry, err := x.parseEntry(p)
			if err != nil {
				return nil, fmt.Errorf("object %d: %w", first+i, err)
			}
			table.Entries[first+i] = entry
		}
	}
}

// parseEntry reads "oooooooooo ggggg n|f".
func (x *XRefParser) parseEntry(p *Parser) (*XRefEntry, error) {
	offTok, err := p.next()
	if err != nil {
		return nil, err
	}
	genTok, err := p.next()
	if err != nil {
		return nil, err
	}
	flagTok, err := p.next()
	if err != nil {
		return nil, err
	}
	if offTok.Type != TokenInteger || genTok.Type != TokenInteger || flagTok.Type != TokenKeyword {
		return nil, fmt.Errorf("malformed xref entry at offset %d", offTok.Pos)
	}
	offset, err := strconv.ParseInt(string(offTok.Value), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid offset %q: %w", offTok.Value, err)
	}
	gen, err := strconv.Atoi(string(genTok.Value))
	if err != nil {
		return nil, fmt.Errorf("invalid generation %q: %w", genTok.Value, err)
	}

	switch string(flagTok.Value) {
	case "n":
		return &XRefEntry{Offset: offset, Generation: gen, InUse: true}, nil
	case "f":
		return &XRefEntry{Offset: offset, Generation: gen}, nil
	}
	return nil, fmt.Errorf("invalid in-use flag %q", flagTok.Value)
}

// ParseAll parses the newest table and every /Prev section behind it and
// merges them into one flat table where newer entries win.
func (x *XRefParser) ParseAll() (*XRefTable, error) {
	offset, err := x.FindXRef()
	if err != nil {
		return nil, err
	}

	var tables []*XRefTable
	seen := map[int64]bool{}
	for !seen[offset] {
		seen[offset] = true
		table, err := x.ParseXRef(offset)
		if err != nil {
			if len(tables) == 0 {
				return nil, err
			}
			break
		}
		tables = append(tables, table)

		prev, ok := table.Trailer.GetInt("Prev")
		if !ok || prev < 0 || int64(prev) >= int64(len(x.data)) {
			break
		}
		offset = int64(prev)
	}

	// oldest first so later sections override
	for i, j := 0, len(tables)-1; i < j; i, j = i+1, j-1 {
		tables[i], tables[j] = tables[j], tables[i]
	}
	return MergeXRefTables(tables...), nil
}

// MergeXRefTables merges tables given oldest first. Later entries override
// earlier ones and the newest trailer is kept, with keys it lacks filled in
// from older trailers.
func MergeXRefTables(tables ...*XRefTable) *XRefTable {
	merged := NewXRefTable()
	for _, t := range tables {
		for num, e := range t.Entries {
			merged.Entries[num] = e
		}
		for k, v := range t.Trailer {
			merged.Trailer[k] = v
		}
	}
	delete(merged.Trailer, "Prev")
	return merged
}
