package catalog_service

import (
	"errors"
	"fmt"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/metrics"
)

// Draw picks one problem uniformly at random from a stage tier, skipping the
// ids in exclude. It returns ErrStageNotFound when the stage cannot be
// loaded or has no such tier, and ErrNoCandidates when the tier is empty or
// exhausted.
func (c *CatalogService) Draw(stage, tier string, exclude SolvedSet) (*DrawnProblem, error) {
	index, err := c.GetStageIndex(stage)
	if err != nil {
		metrics.RandomDraws.WithLabelValues("invalid").Inc()
		return nil, err
	}
	if index == nil {
		metrics.RandomDraws.WithLabelValues("stage_not_found").Inc()
		return nil, fmt.Errorf("%w, %s", cfspeed_errors.ErrStageNotFound, stage)
	}

	t, ok := index.Tiers.Get(tier)
	if !ok {
		metrics.RandomDraws.WithLabelValues("tier_not_found").Inc()
		return nil, fmt.Errorf("%w, stage %s has no tier %s", cfspeed_errors.ErrStageNotFound, stage, tier)
	}
	if len(t.Problems) == 0 {
		metrics.RandomDraws.WithLabelValues("no_candidates").Inc()
		c.logger.Debugf("tier %s of stage %s is empty", tier, stage)
		return nil, fmt.Errorf("%w, tier %s of stage %s is empty", cfspeed_errors.ErrNoCandidates, tier, stage)
	}

	candidates := t.Problems
	if exclude.Len() > 0 {
		candidates = make([]RawProblem, 0, len(t.Problems))
		for _, p := range t.Problems {
			if !exclude.Has(MakeProblemID(p.ContestID, p.Index)) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		metrics.RandomDraws.WithLabelValues("no_candidates").Inc()
		return nil, fmt.Errorf(
			"%w, all %d problems of %s/%s are excluded",
			cfspeed_errors.ErrNoCandidates,
			len(t.Problems),
			stage,
			tier,
		)
	}

	picked := candidates[c.intN(len(candidates))]
	id := MakeProblemID(picked.ContestID, picked.Index)

	drawn := &DrawnProblem{
		RawProblem: picked,
		ID:         id,
		Stage:      stage,
		Level:      LevelForTier(tier),
		Tier:       tier,
		URL:        ProblemURL(id),
	}
	if seconds, ok := picked.Times[index.PercentileTarget]; ok {
		drawn.TargetTime = &seconds
	}

	metrics.RandomDraws.WithLabelValues("ok").Inc()
	return drawn, nil
}

// GetRandomProblem is Draw with the not-found end states reported as a nil
// problem. level is informational, tier selects the problems.
func (c *CatalogService) GetRandomProblem(stage, level, tier string, exclude SolvedSet) (*DrawnProblem, error) {
	c.logger.Debugf("draw request %s / %s / %s", stage, level, tier)
	drawn, err := c.Draw(stage, tier, exclude)
	if err != nil {
		if errors.Is(err, cfspeed_errors.ErrStageNotFound) || errors.Is(err, cfspeed_errors.ErrNoCandidates) {
			return nil, nil
		}
		return nil, err
	}
	return drawn, nil
}
