package core

import (
	"fmt"
)

// ObjectStream gives access to the objects packed in a /Type /ObjStm stream.
type ObjectStream struct {
	stream  *Stream
	n       int
	first   int
	decoded []byte
	nums    []int
	offsets []int
}

// NewObjectStream validates the stream dictionary and decodes its header.
func NewObjectStream(stream *Stream) (*ObjectStream, error) {
	if stream == nil {
		return nil, fmt.Errorf("stream is nil")
	}
	if t, _ := stream.Dict.GetName("Type"); t != "ObjStm" {
		return nil, fmt.Errorf("stream is not an object stream, got type %q", t)
	}
	n, ok := stream.Dict.GetInt("N")
	if !ok || n < 0 {
		return nil, fmt.Errorf("object stream has invalid /N")
	}
	first, ok := stream.Dict.GetInt("First")
	if !ok || first < 0 {
		return nil, fmt.Errorf("object stream has invalid /First")
	}

	decoded, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode object stream: %w", err)
	}
	if int(first) > len(decoded) {
		return nil, fmt.Errorf("/First %d exceeds decoded length %d", first, len(decoded))
	}

	os := &ObjectStream{stream: stream, n: int(n), first: int(first), decoded: decoded}
	p := NewParser(decoded[:first])
	for i := 0; i < os.n; i++ {
		num, err1 := p.ParseObject()
		off, err2 := p.ParseObject()
		numInt, ok1 := num.(Int)
		offInt, ok2 := off.(Int)
		if err1 != nil || err2 != nil || !ok1 || !ok2 {
			return nil, fmt.Errorf("object stream header entry %d is malformed", i)
		}
		os.nums = append(os.nums, int(numInt))
		os.offsets = append(os.offsets, int(offInt))
	}
	return os, nil
}

// N returns the number of objects in the stream.
func (os *ObjectStream) N() int { return os.n }

// ObjectNumbers returns the object numbers in header order.
func (os *ObjectStream) ObjectNumbers() []int {
	return append([]int(nil), os.nums...)
}

// ObjectAt parses the object at header index i.
func (os *ObjectStream) ObjectAt(i int) (*IndirectObject, error) {
	if i < 0 || i >= len(os.nums) {
		return nil, fmt.Errorf("index %d out of range [0, %d)", i, len(os.nums))
	}
	start := os.first + os.offsets[i]
	end := len(os.decoded)
	if i+1 < len(os.offsets) {
		end = os.first + os.offsets[i+1]
	}
	if start >= len(os.decoded) || end > len(os.decoded) || start > end {
		return nil, fmt.Errorf("object %d has offset outside the stream", os.nums[i])
	}

	obj, err := NewParser(os.decoded[start:end]).ParseObject()
	if err != nil {
		return nil, fmt.Errorf("object %d: %w", os.nums[i], err)
	}
	return &IndirectObject{Ref: IndirectRef{Number: os.nums[i]}, Object: obj}, nil
}
