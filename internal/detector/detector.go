// Package detector identifies the technology stack of a project tree from
// marker files, declared dependencies, source content and directory layout.
package detector

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/devarispbrown/stackshift/internal/manifest"
	"github.com/devarispbrown/stackshift/internal/migration"
	"github.com/devarispbrown/stackshift/internal/registry"
)

// Detection thresholds. A pattern is detected above DetectedThreshold; the
// primary framework needs PrimaryThreshold; secondaries need
// SecondaryThreshold.
const (
	DetectedThreshold  = 30
	PrimaryThreshold   = 70
	SecondaryThreshold = 50
)

const (
	defaultScanLimit = 10
	defaultWorkers   = 4
	maxContentBytes  = 1 << 20 // files above this are skipped, not read
	contentCacheSize = 256
)

// Detector scans a project root against the framework patterns of a ruleset.
// Patterns are scored independently, so scans may run concurrently and the
// result does not depend on scan order.
type Detector struct {
	root     string
	registry *registry.Registry

	// ScanLimit bounds how many glob-matched files are sampled per content
	// rule. Explicit so large synthetic trees stay testable.
	ScanLimit int
	// Workers bounds the concurrent per-pattern scans.
	Workers int

	cache *lru.Cache[string, []byte]
}

// Result holds everything the scan detected.
type Result struct {
	Primary   *migration.DetectedFramework  `json:"primary,omitempty"`
	Secondary []migration.DetectedFramework `json:"secondary"`
	All       []migration.DetectedFramework `json:"all"`
}

// New creates a detector for the given project root.
func New(root string, reg *registry.Registry) (*Detector, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("project root cannot be empty")
	}
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("cannot access project root %s: %w", root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("project root is not a directory: %s", root)
	}

	cache, err := lru.New[string, []byte](contentCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create content cache: %w", err)
	}

	return &Detector{
		root:      root,
		registry:  reg,
		ScanLimit: defaultScanLimit,
		Workers:   defaultWorkers,
		cache:     cache,
	}, nil
}

// Detect scores every framework pattern and classifies primary and secondary
// frameworks. Unreadable files degrade confidence instead of failing.
func (d *Detector) Detect(ctx context.Context, man *manifest.Manifest) (*Result, error) {
	patterns := d.registry.Frameworks()
	scores := make([]int, len(patterns))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.Workers)
	for i, p := range patterns {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			scores[i] = d.scorePattern(p, man)
			log.Debug("Scored framework pattern", "framework", p.Framework, "confidence", scores[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Secondary: []migration.DetectedFramework{}, All: []migration.DetectedFramework{}}
	for i, p := range patterns {
		if scores[i] > DetectedThreshold {
			result.All = append(result.All, migration.DetectedFramework{
				Framework:  p.Framework,
				Version:    d.resolveVersion(p, man),
				Confidence: scores[i],
			})
		}
	}

	// Confidence descending, name ascending: classification is independent
	// of the scan order.
	sort.SliceStable(result.All, func(i, j int) bool {
		if result.All[i].Confidence != result.All[j].Confidence {
			return result.All[i].Confidence > result.All[j].Confidence
		}
		return result.All[i].Framework < result.All[j].Framework
	})

	for i := range result.All {
		detected := result.All[i]
		if result.Primary == nil && detected.Confidence >= PrimaryThreshold {
			if p, ok := d.registry.Framework(detected.Framework); ok {
				detected.Variant = d.detectVariant(p, man)
			}
			result.All[i] = detected
			primary := detected
			result.Primary = &primary
			continue
		}
		if detected.Confidence >= SecondaryThreshold {
			result.Secondary = append(result.Secondary, detected)
		}
	}

	return result, nil
}

// detectVariant runs only for the chosen framework's declared variants:
// variant marker files first, then variant dependencies, first match wins.
func (d *Detector) detectVariant(p registry.FrameworkPattern, man *manifest.Manifest) string {
	for _, variant := range p.Variants {
		for _, file := range variant.Files {
			if d.fileExists(file) {
				return variant.Name
			}
		}
	}
	for _, variant := range p.Variants {
		for _, dep := range variant.Dependencies {
			if man.Has(dep) || man.HasDev(dep) {
				return variant.Name
			}
		}
	}
	return ""
}
