package timeline

import (
	"sort"
	"strconv"
	"strings"

	"github.com/user/storyshow/pkg/storyerr"
)

// PageRange is an inclusive range of 1-based page numbers.
type PageRange struct {
	First, Last int
}

// Filter selects pages by 1-based number. The zero Filter selects every page.
type Filter struct {
	ranges []PageRange
}

// ParseFilter parses a comma-separated list of page numbers or ranges such
// as "1,3,5-7". An empty string selects every page. Ranges are kept as
// bounds, sorted and merged, so their width costs nothing.
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Filter{}, nil
	}
	var ranges []PageRange
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		lo, hi, isRange := strings.Cut(tok, "-")
		first, err := parsePageNumber(lo)
		if err != nil {
			return Filter{}, err
		}
		last := first
		if isRange {
			if last, err = parsePageNumber(hi); err != nil {
				return Filter{}, err
			}
			if last < first {
				return Filter{}, storyerr.Configf("filter", "descending range %q", tok)
			}
		}
		ranges = append(ranges, PageRange{first, last})
	}
	return Filter{ranges: merge(ranges)}, nil
}

func parsePageNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, storyerr.Configf("filter", "invalid page number %q", s)
	}
	return n, nil
}

// merge sorts ranges and joins overlapping or adjacent ones.
func merge(ranges []PageRange) []PageRange {
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].First < ranges[j].First })
	out := ranges[:1]
	for _, r := range ranges[1:] {
		last := &out[len(out)-1]
		if r.First <= last.Last+1 {
			if r.Last > last.Last {
				last.Last = r.Last
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// All reports whether the filter selects every page.
func (f Filter) All() bool { return f.ranges == nil }

// Selects reports whether page n passes the filter.
func (f Filter) Selects(n int) bool {
	if f.ranges == nil {
		return true
	}
	i := sort.Search(len(f.ranges), func(i int) bool { return f.ranges[i].Last >= n })
	return i < len(f.ranges) && f.ranges[i].First <= n
}

// Ranges returns the selected ranges in ascending, non-overlapping order.
func (f Filter) Ranges() []PageRange {
	return append([]PageRange(nil), f.ranges...)
}

func (f Filter) String() string {
	if f.All() {
		return "all"
	}
	parts := make([]string, 0, len(f.ranges))
	for _, r := range f.ranges {
		if r.First == r.Last {
			parts = append(parts, strconv.Itoa(r.First))
			continue
		}
		parts = append(parts, strconv.Itoa(r.First)+"-"+strconv.Itoa(r.Last))
	}
	return strings.Join(parts, ",")
}
