// Package observations is the persistent store for observation records:
// behavioral notes about the plugin ecosystem, classified by feature area
// and trackable to an external issue.
//
// All records live in a single versioned JSON document that is replaced
// atomically on every save.
package observations

import (
	"fmt"
	"strings"
)

// CurrentVersion is the schema tag written into new store documents.
const CurrentVersion = 1

// FeatureArea classifies which part of the ecosystem an observation is about.
type FeatureArea string

const (
	FeatureAreaTools  FeatureArea = "tools"
	FeatureAreaSkills FeatureArea = "skills"
	FeatureAreaAgents FeatureArea = "agents"
	FeatureAreaMCP    FeatureArea = "mcp"
	FeatureAreaConfig FeatureArea = "config"
	FeatureAreaOther  FeatureArea = "other"
)

// FeatureAreas lists every valid feature area in display order.
var FeatureAreas = []FeatureArea{
	FeatureAreaTools,
	FeatureAreaSkills,
	FeatureAreaAgents,
	FeatureAreaMCP,
	FeatureAreaConfig,
	FeatureAreaOther,
}

// ParseFeatureArea validates s against the closed set of feature areas.
func ParseFeatureArea(s string) (FeatureArea, error) {
	for _, a := range FeatureAreas {
		if string(a) == s {
			return a, nil
		}
	}
	names := make([]string, len(FeatureAreas))
	for i, a := range FeatureAreas {
		names[i] = string(a)
	}
	return "", fmt.Errorf("%w: feature area %q (choose from %s)", ErrInvalidObservation, s, strings.Join(names, ", "))
}

// Status tracks whether an observation has been reported upstream.
type Status string

const (
	StatusNew       Status = "new"
	StatusSubmitted Status = "submitted"
)

// ParseStatus validates s against the known statuses.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusSubmitted:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: status %q (choose from new, submitted)", ErrInvalidObservation, s)
}

// Observation is a single recorded behavioral note.
type Observation struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	FeatureArea FeatureArea `json:"feature_area"`
	Context     string      `json:"context"`
	Discovered  string      `json:"discovered"`
	Status      Status      `json:"status"`
	IssueURL    *string     `json:"issue_url"`
}

// Document is the whole persisted store.
type Document struct {
	Version      int           `json:"version"`
	Observations []Observation `json:"observations"`
	LastUpdated  *string       `json:"last_updated"`
}

// NewDocument returns an empty store document.
func NewDocument() *Document {
	return &Document{
		Version:      CurrentVersion,
		Observations: []Observation{},
	}
}

// NewObservation holds the caller-supplied fields for Add.
type NewObservation struct {
	Description string
	FeatureArea FeatureArea
	Context     string
	IssueURL    string
}

func (n NewObservation) validate() error {
	if strings.TrimSpace(n.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidObservation)
	}
	if _, err := ParseFeatureArea(string(n.FeatureArea)); err != nil {
		return err
	}
	return nil
}
