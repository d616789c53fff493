package merge

import (
	"fmt"

	"epigen/internal/common"
	"epigen/internal/errors"
	"epigen/internal/region"
)

// State is the lifecycle position of one output artifact.
type State int

const (
	// NotFound: no prior artifact; preserved regions are seeded.
	NotFound State = iota
	// Parsed: the prior artifact was decomposed into a region tree.
	Parsed
	// Merged: output text is final.
	Merged
)

// String returns a human-readable state.
func (s State) String() string {
	switch s {
	case NotFound:
		return "not-found"
	case Parsed:
		return "parsed"
	case Merged:
		return "merged"
	default:
		return common.UnknownStr
	}
}

// Artifact drives one output file through NotFound/Parsed -> Merged.
type Artifact struct {
	Path    string
	markers region.Markers
	state   State
	loaded  bool
	prior   *region.Node
	output  string
	report  Report
}

// NewArtifact creates an artifact that has not been loaded yet.
func NewArtifact(path string, markers region.Markers) *Artifact {
	return &Artifact{Path: path, markers: markers}
}

// Load records the prior content. When found is false the artifact is NotFound;
// otherwise content is parsed and a malformed file aborts with ErrMalformedArtifact.
func (a *Artifact) Load(content string, found bool) error {
	if a.loaded {
		return errors.Newf("%s: artifact loaded twice", a.Path)
	}

	a.loaded = true

	if !found {
		a.state = NotFound
		return nil
	}

	prior, err := a.markers.Parse(content)
	if err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "%s", a.Path),
			"fix or remove the region markers by hand; the artifact is left untouched",
		)
	}

	a.prior = prior
	a.state = Parsed

	return nil
}

// Merge combines fresh with the loaded prior tree and moves to Merged.
func (a *Artifact) Merge(fresh *region.Node) (string, error) {
	if !a.loaded {
		return "", errors.Newf("%s: merge before load", a.Path)
	}

	if a.state == Merged {
		return "", errors.Newf("%s: already merged", a.Path)
	}

	out, report, err := Merge(fresh, a.prior)
	if err != nil {
		return "", errors.Wrapf(err, "%s", a.Path)
	}

	a.output = a.markers.Render(out)
	a.report = report
	a.state = Merged

	return a.output, nil
}

// State returns the current lifecycle state.
func (a *Artifact) State() State {
	return a.state
}

// Output is the merged text. Empty before Merged.
func (a *Artifact) Output() string {
	return a.output
}

// Report is the merge report. Empty before Merged.
func (a *Artifact) Report() Report {
	return a.report
}

// String implements fmt.Stringer.
func (a *Artifact) String() string {
	return fmt.Sprintf("%s (%s)", a.Path, a.state)
}
