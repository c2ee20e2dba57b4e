package core

import (
	"fmt"

	"github.com/tsawler/pdfdocx/internal/filters"
)

// Decode applies the stream's /Filter chain and returns the decoded bytes.
// The work is done once; later calls return the cached result, so decoding
// an unfiltered or already decoded stream is a no-op. Safe for concurrent use.
func (s *Stream) Decode() ([]byte, error) {
	s.once.Do(func() {
		s.decoded, s.err = s.decode()
	})
	return s.decoded, s.err
}

// Filters returns the filter names of the stream in application order.
func (s *Stream) Filters() []string {
	switch f := s.Dict.Get("Filter").(type) {
	case Name:
		return []string{string(f)}
	case Array:
		names := make([]string, 0, len(f))
		for _, obj := range f {
			if n, ok := obj.(Name); ok {
				names = append(names, string(n))
			}
		}
		return names
	}
	return nil
}

func (s *Stream) decode() ([]byte, error) {
	filterObj := s.Dict.Get("Filter")
	if filterObj == nil {
		return s.Data, nil
	}

	var names Array
	switch f := filterObj.(type) {
	case Name:
		names = Array{f}
	case Array:
		names = f
	case Null:
		return s.Data, nil
	default:
		return nil, fmt.Errorf("invalid /Filter type: %T", filterObj)
	}

	paramsObj := s.Dict.Get("DecodeParms")
	if paramsObj == nil {
		paramsObj = s.Dict.Get("DP")
	}

	data := s.Data
	for i, obj := range names {
		name, ok := obj.(Name)
		if !ok {
			return nil, fmt.Errorf("filter %d is not a name: %T", i, obj)
		}
		decode, err := filters.Lookup(string(name))
		if err != nil {
			return nil, err
		}

		var params Dict
		switch p := paramsObj.(type) {
		case Dict:
			params = p
		case Array:
			params, _ = p.Get(i).(Dict)
		}

		data, err = decode(data, toParams(params))
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s) failed: %w", i, name, err)
		}
	}
	return data, nil
}

// toParams converts decode parameters to plain Go values.
func toParams(dict Dict) filters.Params {
	if dict == nil {
		return nil
	}
	params := make(filters.Params, len(dict))
	for k, v := range dict {
		switch obj := v.(type) {
		case Int:
			params[k] = int(obj)
		case Real:
			params[k] = float64(obj)
		case Bool:
			params[k] = bool(obj)
		case Name:
			params[k] = string(obj)
		case String:
			params[k] = string(obj)
		default:
			params[k] = v
		}
	}
	return params
}
