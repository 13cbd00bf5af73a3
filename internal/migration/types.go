// Package migration defines the analysis contract produced by the engine
// and consumed by report renderers.
package migration

// Severity levels used by breaking changes and incompatible dependencies.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Effort tiers for breaking changes and dependency replacements.
const (
	EffortTrivial = "trivial"
	EffortSmall   = "small"
	EffortMedium  = "medium"
	EffortLarge   = "large"
)

// Complexity levels and dependency migration complexity tiers.
const (
	ComplexityLow      = "low"
	ComplexityMedium   = "medium"
	ComplexityHigh     = "high"
	ComplexityCritical = "critical"
)

// Shared resource types.
const (
	ResourceDatabase = "database"
	ResourceCache    = "cache"
	ResourceAuth     = "auth"
	ResourceAPI      = "api"
)

// Recommended migration strategies.
const (
	StrategyBigBang     = "big-bang"
	StrategyIncremental = "incremental"
	StrategyParallelRun = "parallel-run"
)

// TechStackInfo describes either the detected source stack or the declared
// target stack. Immutable once produced for a run.
type TechStackInfo struct {
	Name            string         `json:"name"`
	Version         string         `json:"version,omitempty"`
	Type            string         `json:"type"`
	Dependencies    []string       `json:"dependencies"`
	DevDependencies []string       `json:"devDependencies"`
	Docs            string         `json:"docs"`
	Metadata        *StackMetadata `json:"metadata,omitempty"`
}

// StackMetadata carries detection evidence for a detected stack.
type StackMetadata struct {
	Confidence         int                 `json:"confidence"`
	DetectedFrameworks []DetectedFramework `json:"detectedFrameworks"`
}

// DetectedFramework is one framework signature that crossed the detection
// threshold. Several may coexist (primary plus secondaries).
type DetectedFramework struct {
	Framework  string `json:"framework"`
	Version    string `json:"version,omitempty"`
	Variant    string `json:"variant,omitempty"`
	Confidence int    `json:"confidence"`
}

// BreakingChange is a known code/API difference between the source and target
// frameworks that requires an edit to stay functional after migration.
type BreakingChange struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Severity       string `json:"severity"`
	Effort         string `json:"effort"`
	Automatable    bool   `json:"automatable"`
	SearchPattern  string `json:"searchPattern,omitempty"`
	Replacement    string `json:"replacement,omitempty"`
	MigrationGuide string `json:"migrationGuide,omitempty"`
}

// BreakingChangesSummary aggregates the breaking change list.
type BreakingChangesSummary struct {
	Total            int     `json:"total"`
	CriticalCount    int     `json:"criticalCount"`
	AutomatableCount int     `json:"automatableCount"`
	EstimatedHours   float64 `json:"estimatedHours"`
}

// IncompatibleDependency is a declared package that does not work with the
// target framework.
type IncompatibleDependency struct {
	Package    string `json:"package"`
	Reason     string `json:"reason"`
	Severity   string `json:"severity"`
	Resolution string `json:"resolution,omitempty"`
}

// Replacement suggests a target-compatible substitute for a package.
type Replacement struct {
	From            string `json:"from"`
	To              string `json:"to"`
	Confidence      string `json:"confidence"`
	MigrationEffort string `json:"migrationEffort"`
	Notes           string `json:"notes,omitempty"`
}

// DependencyInfo is the per-package classification record.
type DependencyInfo struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	Framework      string `json:"framework,omitempty"`
	IsCompatible   bool   `json:"isCompatible"`
	HasReplacement bool   `json:"hasReplacement"`
}

// DependencyAnalysis is the full compatibility classification of the
// dependency manifest against the target stack.
type DependencyAnalysis struct {
	TotalDependencies   int                      `json:"totalDependencies"`
	IncompatibleCount   int                      `json:"incompatibleCount"`
	HasReplacements     bool                     `json:"hasReplacements"`
	MigrationComplexity string                   `json:"migrationComplexity"`
	Incompatible        []IncompatibleDependency `json:"incompatible"`
	Replacements        []Replacement            `json:"replacements"`
	Dependencies        []DependencyInfo         `json:"dependencies"`
}

// SharedResource is infrastructure used by both the pre- and post-migration
// system during the transition window.
type SharedResource struct {
	Type              string `json:"type"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	CriticalityLevel  string `json:"criticalityLevel"`
	MigrationStrategy string `json:"migrationStrategy"`
}

// MigrationRisk is a typed risk record derived from the analysis.
type MigrationRisk struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Probability string `json:"probability"`
	Impact      string `json:"impact"`
	Mitigation  string `json:"mitigation"`
}

// ComplexityFactor is one weighted input to the complexity score.
type ComplexityFactor struct {
	Name        string `json:"name"`
	Impact      int    `json:"impact"` // 0-10, capped before weighting
	Description string `json:"description"`
}

// MigrationComplexity is the aggregated 0-100 score with its factors and a
// fixed-threshold level bucketing.
type MigrationComplexity struct {
	Score   int                `json:"score"`
	Factors []ComplexityFactor `json:"factors"`
	Level   string             `json:"level"`
}

// Checkpoint is a named milestone inside a phase that may require human
// approval before proceeding.
type Checkpoint struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	AutoTrigger bool     `json:"autoTrigger"`
	Conditions  []string `json:"conditions,omitempty"`
}

// MigrationPhase is one ordered step of the suggested plan. Dependencies
// reference only earlier-declared phase ids, so the list forms a DAG.
type MigrationPhase struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Description         string       `json:"description"`
	CriticalCheckpoints []Checkpoint `json:"criticalCheckpoints"`
	Dependencies        []string     `json:"dependencies"`
	RollbackPoint       bool         `json:"rollbackPoint"`
	EstimatedDuration   string       `json:"estimatedDuration"`
	Risks               []string     `json:"risks,omitempty"`
	ValidationCriteria  []string     `json:"validationCriteria"`
}

// RollbackTrigger is a condition under which rollback should be considered.
type RollbackTrigger struct {
	Condition string `json:"condition"`
	Severity  string `json:"severity"`
	Action    string `json:"action"`
}

// RollbackProcedure is the per-phase recovery runbook. One exists for every
// phase flagged as a rollback point.
type RollbackProcedure struct {
	Phase              string   `json:"phase"`
	Steps              []string `json:"steps"`
	VerificationPoints []string `json:"verificationPoints"`
	EstimatedDuration  string   `json:"estimatedDuration"`
}

// RollbackStrategy describes how to revert the migration.
type RollbackStrategy struct {
	Automatic          bool                `json:"automatic"`
	Triggers           []RollbackTrigger   `json:"triggers"`
	Procedures         []RollbackProcedure `json:"procedures"`
	DataBackupRequired bool                `json:"dataBackupRequired"`
	EstimatedTime      string              `json:"estimatedTime"`
}

// MigrationAnalysis is the complete result of one engine run. It contains no
// timestamps or random ids: the same project and target produce an identical
// value.
type MigrationAnalysis struct {
	SourceStack            TechStackInfo          `json:"sourceStack"`
	TargetStack            TechStackInfo          `json:"targetStack"`
	Complexity             MigrationComplexity    `json:"complexity"`
	Risks                  []MigrationRisk        `json:"risks"`
	SharedResources        []SharedResource       `json:"sharedResources"`
	SuggestedPhases        []MigrationPhase       `json:"suggestedPhases"`
	EstimatedDuration      string                 `json:"estimatedDuration"`
	RecommendedStrategy    string                 `json:"recommendedStrategy"`
	BreakingChanges        []BreakingChange       `json:"breakingChanges"`
	BreakingChangesSummary BreakingChangesSummary `json:"breakingChangesSummary"`
	DependencyAnalysis     DependencyAnalysis     `json:"dependencyAnalysis"`
	Rollback               RollbackStrategy       `json:"rollback"`
}
