package catalog_service

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/metrics"
)

var stageKeyPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// GetStageIndex returns the tiers of one stage, loading categories/<stage>.json
// on first use. A stage that cannot be loaded is reported as (nil, nil) and is
// not cached, so a file that appears later is picked up.
func (c *CatalogService) GetStageIndex(stage string) (*StageTierIndex, error) {
	if !stageKeyPattern.MatchString(stage) {
		err := fmt.Errorf("%w, invalid stage %q", cfspeed_errors.ErrInvalidRequest, stage)
		c.logger.Warn(err)
		return nil, err
	}

	if index, ok := c.stages.Get(stage); ok {
		return index, nil
	}

	rel := filepath.Join(stageDirName, stage+".json")
	data, path, err := c.readFirst(rel)
	if err != nil {
		metrics.StageLoads.WithLabelValues("missing").Inc()
		c.logger.Warnf("stage %s not found, %v", stage, err)
		return nil, nil
	}

	var index StageTierIndex
	if err := json.Unmarshal(data, &index); err != nil {
		metrics.StageLoads.WithLabelValues("malformed").Inc()
		c.logger.Errorf("cannot parse %s, %v", path, err)
		return nil, nil
	}
	if err := validateStage(stage, &index); err != nil {
		metrics.StageLoads.WithLabelValues("malformed").Inc()
		c.logger.Errorf("%s failed schema validation, %v", path, err)
		return nil, nil
	}

	metrics.StageLoads.WithLabelValues("ok").Inc()
	c.stages.Add(stage, &index)
	c.logger.Debugf("cached stage %s from %s", stage, path)
	return &index, nil
}
