package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parsePages parses a comma separated list of page numbers and inclusive
// ranges such as "1,3-5". Pages above count are rejected before any range
// is expanded.
func parsePages(s string, count int) ([]int, error) {
	var pages []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		first, err := parsePage(lo)
		if err != nil {
			return nil, err
		}
		last := first
		if isRange {
			if last, err = parsePage(hi); err != nil {
				return nil, err
			}
			if last < first {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		if last > count {
			return nil, fmt.Errorf("page %d out of range (document has %d)", last, count)
		}
		for p := first; p <= last; p++ {
			pages = append(pages, p)
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages in %q", s)
	}
	return pages, nil
}

func parsePage(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid page number %q", s)
	}
	return n, nil
}
