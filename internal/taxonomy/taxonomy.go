// Package taxonomy holds the keyword configuration that drives all
// classification: issue categories, the sentiment lexicon, resolution and
// retention phrase lists, and retention-strategy patterns. The engine never
// hardcodes keywords; everything routes through a Taxonomy value, which is
// read-only for the duration of a run.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is one entry in the issue taxonomy. Declaration order matters:
// classification ties resolve to the earliest declared category.
type Category struct {
	Tag         string   `yaml:"tag"`
	Keywords    []string `yaml:"keywords"`
	Description string   `yaml:"description"`
	Urgent      bool     `yaml:"urgent"`
}

// Strategy is a named retention technique with the support-side phrases that
// indicate it was attempted. Keyword sets may overlap across strategies.
type Strategy struct {
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

// Sentiment holds the three disjoint keyword sets used by the tagger.
type Sentiment struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
	Neutral  []string `yaml:"neutral"`
}

// Taxonomy is the full keyword configuration for one run.
type Taxonomy struct {
	// Categories in declaration order. DefaultTag is returned when no
	// category keyword matches; it must name one of the Categories.
	Categories []Category `yaml:"categories"`
	DefaultTag string     `yaml:"default_tag"`

	// RefundReasons is the separate taxonomy used to attribute a reason to a
	// refund conversation. UnspecifiedTag is its fallback.
	RefundReasons  []Category `yaml:"refund_reasons"`
	UnspecifiedTag string     `yaml:"unspecified_tag"`

	Sentiment Sentiment `yaml:"sentiment"`

	// ResolutionIndicators are customer phrases meaning the problem is fixed.
	ResolutionIndicators []string `yaml:"resolution_indicators"`

	// RefundIntent marks a conversation as refund-seeking when any message
	// contains one of these.
	RefundIntent []string `yaml:"refund_intent"`

	// RetentionPositive / RefundInsistence drive the retention outcome
	// detector. Insistence wins when both match the same message.
	RetentionPositive []string `yaml:"retention_positive"`
	RefundInsistence  []string `yaml:"refund_insistence"`

	// SolutionIndicators are advisory phrases that mark a support message as
	// solution language.
	SolutionIndicators []string `yaml:"solution_indicators"`

	Strategies []Strategy `yaml:"strategies"`
}

// CategoryByTag returns the category with the given tag, or nil.
func (t *Taxonomy) CategoryByTag(tag string) *Category {
	for i := range t.Categories {
		if t.Categories[i].Tag == tag {
			return &t.Categories[i]
		}
	}
	return nil
}

// Validate checks structural invariants: at least one category, a default tag
// that exists, and non-empty keyword sets.
func (t *Taxonomy) Validate() error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("taxonomy: no categories declared")
	}
	if t.DefaultTag == "" {
		return fmt.Errorf("taxonomy: default_tag is required")
	}
	if t.CategoryByTag(t.DefaultTag) == nil {
		return fmt.Errorf("taxonomy: default_tag %q is not a declared category", t.DefaultTag)
	}
	seen := make(map[string]bool, len(t.Categories))
	for _, c := range t.Categories {
		if c.Tag == "" {
			return fmt.Errorf("taxonomy: category with empty tag")
		}
		if seen[c.Tag] {
			return fmt.Errorf("taxonomy: duplicate category tag %q", c.Tag)
		}
		seen[c.Tag] = true
		if len(c.Keywords) == 0 {
			return fmt.Errorf("taxonomy: category %q has no keywords", c.Tag)
		}
	}
	if t.UnspecifiedTag == "" {
		return fmt.Errorf("taxonomy: unspecified_tag is required")
	}
	return nil
}

// normalize lowercases every keyword list. Matching lowercases only the
// message text, so keywords must arrive lowercase regardless of how they were
// written in the file.
func (t *Taxonomy) normalize() {
	lowerAll := func(kws []string) {
		for i, kw := range kws {
			kws[i] = strings.ToLower(kw)
		}
	}
	for i := range t.Categories {
		lowerAll(t.Categories[i].Keywords)
	}
	for i := range t.RefundReasons {
		lowerAll(t.RefundReasons[i].Keywords)
	}
	lowerAll(t.Sentiment.Positive)
	lowerAll(t.Sentiment.Negative)
	lowerAll(t.Sentiment.Neutral)
	lowerAll(t.ResolutionIndicators)
	lowerAll(t.RefundIntent)
	lowerAll(t.RetentionPositive)
	lowerAll(t.RefundInsistence)
	lowerAll(t.SolutionIndicators)
	for i := range t.Strategies {
		lowerAll(t.Strategies[i].Keywords)
	}
}

// LoadFile reads a taxonomy from a YAML file. The YAML sequence order is the
// declaration order used for tie-breaks; keywords are lowercased on load.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	t.normalize()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load returns the taxonomy from path, or the built-in default when path is
// empty.
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
