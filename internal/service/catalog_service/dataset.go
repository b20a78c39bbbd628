package catalog_service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service"
)

// TierSet keeps tiers in the order they appear in the dataset file.
// First-occurrence de-duplication depends on that order being stable.
type TierSet struct {
	keys  []string
	tiers map[string]Tier
}

func (t *TierSet) UnmarshalJSON(data []byte) error {
	t.keys = nil
	t.tiers = make(map[string]Tier)
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	return decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var tier Tier
		if err := json.Unmarshal(raw, &tier); err != nil {
			return fmt.Errorf("tier %q: %w", key, err)
		}
		if _, seen := t.tiers[key]; !seen {
			t.keys = append(t.keys, key)
		}
		t.tiers[key] = tier
		return nil
	})
}

func (t TierSet) Keys() []string {
	return append([]string(nil), t.keys...)
}

func (t TierSet) Get(key string) (Tier, bool) {
	tier, ok := t.tiers[key]
	return tier, ok
}

type stageRecord struct {
	key   string
	stage StageTierIndex
}

// Dataset is the root categories file: stage -> tiers -> problems, in file order
type Dataset struct {
	stages []stageRecord
}

func (d *Dataset) UnmarshalJSON(data []byte) error {
	d.stages = nil
	positions := make(map[string]int)
	return decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var stage StageTierIndex
		if err := json.Unmarshal(raw, &stage); err != nil {
			return fmt.Errorf("stage %q: %w", key, err)
		}
		if pos, seen := positions[key]; seen {
			d.stages[pos].stage = stage
			return nil
		}
		positions[key] = len(d.stages)
		d.stages = append(d.stages, stageRecord{key: key, stage: stage})
		return nil
	})
}

// decodeOrderedObject walks a json object calling fn for every member in
// document order
func decodeOrderedObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a json object, found %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, found %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func validateProblems(location string, problems []RawProblem) error {
	for i, p := range problems {
		if err := service.ValidateInput(p); err != nil {
			return fmt.Errorf("%s problem #%d: %w", location, i, err)
		}
		// the id must parse back to the same pair, contest 1 index "1A"
		// would otherwise collide with contest 11 index "A"
		contestID, index, ok := ParseProblemID(MakeProblemID(p.ContestID, p.Index))
		if !ok || contestID != p.ContestID || index != p.Index {
			return fmt.Errorf(
				"%w, %s problem #%d: index %q of contest %d is not a letter with an optional digit",
				cfspeed_errors.ErrInvalidInput,
				location,
				i,
				p.Index,
				p.ContestID,
			)
		}
	}
	return nil
}

func validateDataset(d *Dataset) error {
	for i := range d.stages {
		if err := validateStage(d.stages[i].key, &d.stages[i].stage); err != nil {
			return err
		}
	}
	return nil
}

func validateStage(stageKey string, stage *StageTierIndex) error {
	if stage.PercentileTarget == "" {
		return fmt.Errorf("%w, stage %s has no percentile_target", cfspeed_errors.ErrInvalidInput, stageKey)
	}
	for _, tierKey := range stage.Tiers.keys {
		if err := validateProblems(stageKey+"/"+tierKey, stage.Tiers.tiers[tierKey].Problems); err != nil {
			return err
		}
	}
	return nil
}

// readFirst reads rel from the first dataset root that has it. The roots are
// alternative locations of the same files, not retries.
func (c *CatalogService) readFirst(rel string) ([]byte, string, error) {
	var errs []error
	for _, root := range c.DatasetRoots {
		path := filepath.Join(root, rel)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, path, nil
		}
		c.logger.Debugf("cannot read %s, %v", path, err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		errs = append(errs, fs.ErrNotExist)
	}
	return nil, "", errors.Join(errs...)
}

func (c *CatalogService) loadDataset() (*Dataset, error) {
	data, path, err := c.readFirst(catalogFileName)
	if err != nil {
		err = fmt.Errorf(
			"%w, cannot read %s from any of %v, %w",
			cfspeed_errors.ErrDatasetUnavailable,
			catalogFileName,
			c.DatasetRoots,
			err,
		)
		c.logger.Error(err)
		return nil, err
	}

	var dataset Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		err = fmt.Errorf("%w, cannot parse %s, %w", cfspeed_errors.ErrDatasetUnavailable, path, err)
		c.logger.Error(err)
		return nil, err
	}

	if err := validateDataset(&dataset); err != nil {
		err = fmt.Errorf("%w, %s failed schema validation, %w", cfspeed_errors.ErrDatasetUnavailable, path, err)
		c.logger.Error(err)
		return nil, err
	}

	c.logger.Debugf("loaded dataset from %s with %d stages", path, len(dataset.stages))
	return &dataset, nil
}
