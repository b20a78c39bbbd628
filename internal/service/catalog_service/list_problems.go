package catalog_service

import (
	"fmt"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// withStatus copies entries with the caller's status overlaid. Solved wins
// over attempted.
func withStatus(entries []CatalogEntry, solved, attempted SolvedSet) []CatalogEntry {
	result := make([]CatalogEntry, len(entries))
	for i, e := range entries {
		switch {
		case solved.Has(e.ID):
			e.Status = StatusSolved
		case attempted.Has(e.ID):
			e.Status = StatusWrong
		default:
			e.Status = StatusUnsolved
		}
		result[i] = e
	}
	return result
}

// ListProblems returns one page of the catalog with status computed for the
// caller. Zero page and limit fall back to the defaults.
func (c *CatalogService) ListProblems(
	req ListProblemsRequest,
	solved, attempted SolvedSet,
) (Page[CatalogEntry], error) {
	if req.Page == 0 {
		req.Page = DefaultPage
	}
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}
	if err := service.ValidateInput(req); err != nil {
		return Page[CatalogEntry]{}, err
	}

	dir, err := ParseSortDirection(req.SortOrder)
	if err != nil {
		return Page[CatalogEntry]{}, err
	}

	entries, err := c.GetFlattenedCatalog()
	if err != nil {
		return Page[CatalogEntry]{}, err
	}

	filtered, err := FilterAndSort(withStatus(entries, solved, attempted), ListQuery{
		Search:    req.Search,
		Level:     req.Level,
		Stage:     req.Stage,
		SortBy:    req.SortBy,
		Direction: dir,
	})
	if err != nil {
		c.logger.Warn(err)
		return Page[CatalogEntry]{}, err
	}

	page := Paginate(filtered, req.Page, req.Limit)
	c.logger.Debugf(
		"listed page %d of %d, %d matching problems",
		page.Page,
		page.TotalPages,
		page.Total,
	)
	return page, nil
}

// DrawForLevel resolves a user facing level (A-H) to its tier and draws from it
func (c *CatalogService) DrawForLevel(stage, level string, exclude SolvedSet) (*DrawnProblem, error) {
	tier, ok := TierForLevel(level)
	if !ok {
		return nil, fmt.Errorf("%w, unknown level %q", cfspeed_errors.ErrInvalidRequest, level)
	}
	return c.Draw(stage, tier, exclude)
}
