package catalog_service

type Stage struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Percentile string `json:"percentile"`
}

type Level struct {
	Key  string `json:"key"`
	Tier string `json:"tier"`
	Name string `json:"name"`
}

var stages = []Stage{
	{ID: "elite", Name: "Elite", Percentile: "p5"},
	{ID: "excellent", Name: "Excellent", Percentile: "p20"},
	{ID: "standard", Name: "Standard", Percentile: "p40"},
	{ID: "learning", Name: "Learning", Percentile: "p55"},
	{ID: "basic", Name: "Basic", Percentile: "p75"},
	{ID: "beginner", Name: "Beginner", Percentile: "p95"},
}

var levels = []Level{
	{Key: "A", Tier: "tier1", Name: "Quick Solves"},
	{Key: "B", Tier: "tier2", Name: "Easy"},
	{Key: "C", Tier: "tier3", Name: "Medium"},
	{Key: "D", Tier: "tier4", Name: "Intermediate"},
	{Key: "E", Tier: "tier5", Name: "Advanced"},
	{Key: "F", Tier: "tier6", Name: "Expert"},
	{Key: "G", Tier: "tier7", Name: "Master"},
	{Key: "H", Tier: "s_tier", Name: "God Tier"},
}

var (
	levelToTier = make(map[string]string, len(levels))
	tierToLevel = make(map[string]string, len(levels))
)

func init() {
	for _, l := range levels {
		levelToTier[l.Key] = l.Tier
		tierToLevel[l.Tier] = l.Key
	}
}

func Stages() []Stage {
	return append([]Stage(nil), stages...)
}

func Levels() []Level {
	return append([]Level(nil), levels...)
}

// TierForLevel maps a user facing level (A-H) to the dataset tier key
func TierForLevel(level string) (string, bool) {
	tier, ok := levelToTier[level]
	return tier, ok
}

// LevelForTier maps a dataset tier key to its level. Unknown tiers pass through.
func LevelForTier(tier string) string {
	if level, ok := tierToLevel[tier]; ok {
		return level
	}
	return tier
}
