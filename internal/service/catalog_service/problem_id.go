package catalog_service

import (
	"fmt"
	"regexp"
	"strconv"
)

// ProblemID is the join key between the dataset, solved sets and exclusions.
// Format: contest id followed by the problem index, e.g. "1234A" or "1850B1".
type ProblemID string

var problemIDPattern = regexp.MustCompile(`^(\d+)([A-Z]\d?)$`)

func MakeProblemID(contestID int, index string) ProblemID {
	return ProblemID(strconv.Itoa(contestID) + index)
}

// ParseProblemID is the inverse of MakeProblemID for indexes of the form
// one uppercase letter optionally followed by one digit
func ParseProblemID(id ProblemID) (contestID int, index string, ok bool) {
	match := problemIDPattern.FindStringSubmatch(string(id))
	if match == nil {
		return 0, "", false
	}
	contestID, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, "", false
	}
	return contestID, match[2], true
}

func ProblemURL(id ProblemID) string {
	if contestID, index, ok := ParseProblemID(id); ok {
		return fmt.Sprintf("https://codeforces.com/contest/%d/problem/%s", contestID, index)
	}
	s := string(id)
	if len(s) < 2 {
		return "https://codeforces.com/problemset"
	}
	return fmt.Sprintf("https://codeforces.com/problemset/problem/%s/%s", s[:len(s)-1], s[len(s)-1:])
}

// SolvedSet is a membership set of problem ids
type SolvedSet map[ProblemID]struct{}

func NewSolvedSet(ids ...ProblemID) SolvedSet {
	s := make(SolvedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s SolvedSet) Add(id ProblemID) {
	s[id] = struct{}{}
}

func (s SolvedSet) Has(id ProblemID) bool {
	_, ok := s[id]
	return ok
}

func (s SolvedSet) Len() int {
	return len(s)
}
