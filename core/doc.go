// Package core provides the PDF object model and the low-level parser that
// turns a file's bytes into a flat table of indirect objects.
//
// # Object Types
//
// Every PDF value satisfies the [Object] interface:
//
//   - [Null], [Bool], [Int], [Real], [String], [Name]
//   - [Array] and [Dict] containers
//   - [*Stream], a dictionary plus its still-encoded payload
//   - [IndirectRef], a weak reference resolved through an [ObjectTable]
//
// # Building the object table
//
// [BuildObjectTable] locates the trailing startxref pointer, walks the
// cross-reference table (and any /Prev sections) and parses every object at
// its recorded offset. When the table is missing, corrupt or points at the
// wrong bytes, the whole buffer is scanned for "N G obj ... endobj" instead;
// the last definition of an object number wins. Objects packed into object
// streams (/Type /ObjStm) are expanded in both cases.
//
// # Streams
//
// A stream's payload stays encoded until [Stream.Decode] is called. Decoding
// applies the /Filter chain once and caches the result. A filter the
// internal/filters package does not implement yields an error wrapping
// filters.ErrUnsupportedFilter.
package core
