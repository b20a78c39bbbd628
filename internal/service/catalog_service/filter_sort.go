package catalog_service

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	SortByRating    = "rating"
	SortByStatus    = "status"
	SortByName      = "name"
	SortByStage     = "stage"
	SortByLevel     = "level"
	SortByID        = "id"
	SortByContestID = "contest_id"
	SortByIndex     = "index"

	defaultSortBy = SortByRating
)

type ListQuery struct {
	Search    string
	Level     string
	Stage     string
	SortBy    string
	Direction SortDirection
}

// sortAccessor extracts a comparable value from an entry. Exactly one of
// numeric or text is set. ok=false marks a missing value.
type sortAccessor struct {
	numeric func(e *CatalogEntry) (int, bool)
	text    func(e *CatalogEntry) (string, bool)
}

func present(s string) (string, bool) {
	return s, s != ""
}

var sortAccessors = map[string]sortAccessor{
	SortByRating: {numeric: func(e *CatalogEntry) (int, bool) {
		if e.Rating == nil {
			return 0, false
		}
		return *e.Rating, true
	}},
	SortByStatus: {numeric: func(e *CatalogEntry) (int, bool) {
		w, ok := statusWeight[e.Status]
		return w, ok
	}},
	SortByContestID: {numeric: func(e *CatalogEntry) (int, bool) {
		return e.ContestID, e.ContestID > 0
	}},
	SortByName:  {text: func(e *CatalogEntry) (string, bool) { return present(e.Name) }},
	SortByStage: {text: func(e *CatalogEntry) (string, bool) { return present(e.Stage) }},
	SortByLevel: {text: func(e *CatalogEntry) (string, bool) { return present(e.Level) }},
	SortByID:    {text: func(e *CatalogEntry) (string, bool) { return present(string(e.ID)) }},
	SortByIndex: {text: func(e *CatalogEntry) (string, bool) { return present(e.Index) }},
}

func SortKeys() []string {
	keys := make([]string, 0, len(sortAccessors))
	for k := range sortAccessors {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ParseSortDirection accepts "asc", "desc" or empty (asc)
func ParseSortDirection(order string) (SortDirection, error) {
	switch strings.ToLower(order) {
	case "", "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	}
	return 0, fmt.Errorf("%w, invalid sort order %q, expected asc or desc", cfspeed_errors.ErrInvalidRequest, order)
}

// compareMissingLast orders missing values after every present value
func compareMissingLast[T any](a T, aok bool, b T, bok bool, compare func(a, b T) int) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	return compare(a, b)
}

func (q ListQuery) matches(e *CatalogEntry, needle string) bool {
	if q.Level != "" && e.Level != q.Level {
		return false
	}
	if q.Stage != "" && e.Stage != q.Stage {
		return false
	}
	if needle == "" {
		return true
	}
	if strings.Contains(e.nameLower, needle) {
		return true
	}
	for _, tag := range e.tagsLower {
		if strings.Contains(tag, needle) {
			return true
		}
	}
	return false
}

// FilterAndSort returns a new slice holding the entries that pass every filter
// of q, stably ordered by q.SortBy. The input slice is left untouched.
func FilterAndSort(entries []CatalogEntry, q ListQuery) ([]CatalogEntry, error) {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	accessor, ok := sortAccessors[sortBy]
	if !ok {
		return nil, fmt.Errorf(
			"%w, cannot sort by %q, expected one of %s",
			cfspeed_errors.ErrInvalidRequest,
			sortBy,
			strings.Join(SortKeys(), ", "),
		)
	}
	dir := q.Direction
	if dir != SortDesc {
		dir = SortAsc
	}

	needle := strings.ToLower(q.Search)
	result := make([]CatalogEntry, 0, len(entries))
	for i := range entries {
		if q.matches(&entries[i], needle) {
			result = append(result, entries[i])
		}
	}

	var compare func(a, b *CatalogEntry) int
	if accessor.numeric != nil {
		compare = func(a, b *CatalogEntry) int {
			av, aok := accessor.numeric(a)
			bv, bok := accessor.numeric(b)
			return compareMissingLast(av, aok, bv, bok, cmp.Compare[int])
		}
	} else {
		// collators keep internal buffers and are not safe for concurrent use
		collator := collate.New(language.English)
		compare = func(a, b *CatalogEntry) int {
			av, aok := accessor.text(a)
			bv, bok := accessor.text(b)
			return compareMissingLast(av, aok, bv, bok, collator.CompareString)
		}
	}

	slices.SortStableFunc(result, func(a, b CatalogEntry) int {
		return int(dir) * compare(&a, &b)
	})
	return result, nil
}
