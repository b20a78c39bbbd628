package catalog_service

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

const (
	defaultCacheTTL       = 5 * time.Minute
	defaultStageCacheSize = 64
	catalogFileName       = "categories.json"
	stageDirName          = "categories"
)

type ProblemStatus string

const (
	StatusUnsolved ProblemStatus = "unsolved"
	StatusWrong    ProblemStatus = "wrong"
	StatusSolved   ProblemStatus = "solved"
)

// unsolved first under ascending order
var statusWeight = map[ProblemStatus]int{
	StatusUnsolved: 0,
	StatusWrong:    1,
	StatusSolved:   2,
}

type SortDirection int

const (
	SortAsc  SortDirection = 1
	SortDesc SortDirection = -1
)

type CatalogService struct {
	// directories holding categories.json and categories/<stage>.json,
	// the first one is the primary location, the rest are fallbacks
	DatasetRoots   []string
	CacheTTL       time.Duration
	StageCacheSize int

	cache  *catalogCache
	stages *lru.Cache[string, *StageTierIndex]
	intN   func(n int) int
	logger *logrus.Entry
}

// RawProblem is a problem as stored in the dataset files
type RawProblem struct {
	ContestID int            `json:"contest_id" validate:"gt=0"`
	Index     string         `json:"index" validate:"required,max=2"`
	Name      string         `json:"name" validate:"required"`
	Rating    *int           `json:"rating,omitempty" validate:"omitempty,gt=0"`
	Tags      []string       `json:"tags"`
	Times     map[string]int `json:"times" validate:"dive,gte=0"`
}

type Tier struct {
	Problems []RawProblem `json:"problems"`
}

// StageTierIndex is one stage of the dataset, tiers kept in file order
type StageTierIndex struct {
	PercentileTarget string  `json:"percentile_target"`
	Tiers            TierSet `json:"tiers"`
}

// CatalogEntry is the flattened, de-duplicated view of a problem. Status is
// always StatusUnsolved inside the shared cache and is overlaid per request.
type CatalogEntry struct {
	ID        ProblemID     `json:"id"`
	ContestID int           `json:"contest_id"`
	Index     string        `json:"index"`
	Name      string        `json:"name"`
	Rating    *int          `json:"rating"`
	Tags      []string      `json:"tags"`
	Stage     string        `json:"stage"`
	Level     string        `json:"level"`
	Status    ProblemStatus `json:"status"`

	nameLower string
	tagsLower []string
}

// DrawnProblem is a random pick with the time budget of its stage attached
type DrawnProblem struct {
	RawProblem
	ID         ProblemID `json:"id"`
	Stage      string    `json:"stage"`
	Level      string    `json:"level"`
	Tier       string    `json:"tier"`
	URL        string    `json:"url"`
	TargetTime *int      `json:"target_time"`
}

type ListProblemsRequest struct {
	Page      int    `json:"page" validate:"gte=1"`
	Limit     int    `json:"limit" validate:"gte=1,lte=1000"`
	Search    string `json:"search" validate:"max=100"`
	Level     string `json:"level" validate:"max=20"`
	Stage     string `json:"stage" validate:"max=50"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}
