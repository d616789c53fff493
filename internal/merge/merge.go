package merge

import (
	"epigen/internal/common"
	"epigen/internal/region"
)

// Action records what the merge did with one region.
type Action int

const (
	// Regenerated: owned region rebuilt from the fresh tree.
	Regenerated Action = iota
	// Kept: preserved body copied from the prior artifact.
	Kept
	// Seeded: preserved body taken from the seed of a brand-new artifact.
	Seeded
	// Placeholder: preserved region absent from the prior artifact, left empty.
	Placeholder
	// Dropped: prior region with no fresh counterpart.
	Dropped
	// Discarded: prior text between regions of a framed node that could not
	// be placed next to the same regions again. Path is the preceding region.
	Discarded
)

// String returns a human-readable action.
func (a Action) String() string {
	switch a {
	case Regenerated:
		return "regenerated"
	case Kept:
		return "kept"
	case Seeded:
		return "seeded"
	case Placeholder:
		return "placeholder"
	case Dropped:
		return "dropped"
	case Discarded:
		return "discarded"
	default:
		return common.UnknownStr
	}
}

// Decision is the outcome for one region path.
type Decision struct {
	Path   string
	Action Action
	// Bytes is the body size that was kept or dropped.
	Bytes int
}

// Report lists every decision in output order, dropped regions after their parent.
type Report struct {
	Decisions []Decision
}

// Paths returns the paths that received action a.
func (r Report) Paths(a Action) []string {
	var out []string

	for _, d := range r.Decisions {
		if d.Action == a {
			out = append(out, d.Path)
		}
	}

	return out
}

// Merge combines fresh with prior. A nil prior means no artifact exists yet.
// The fresh tree is validated for duplicate sibling paths and is not modified.
func Merge(fresh, prior *region.Node) (*region.Node, Report, error) {
	if err := fresh.Validate(); err != nil {
		return nil, Report{}, err
	}

	m := &merger{firstRun: prior == nil}
	out := m.merge(fresh, prior)

	return out, m.report, nil
}

type merger struct {
	firstRun bool
	report   Report
}

func (m *merger) merge(fresh, prior *region.Node) *region.Node {
	if fresh.Category == region.Preserved {
		return m.preserve(fresh, prior)
	}

	if fresh.Category == region.Framed && prior != nil {
		return m.frame(fresh, prior)
	}

	out := &region.Node{Path: fresh.Path, Category: region.Owned}

	if !fresh.IsRoot() {
		m.report.Decisions = append(m.report.Decisions, Decision{Path: fresh.Path, Action: Regenerated})
	}

	for _, part := range fresh.Parts {
		if part.Node == nil {
			out.Text(part.Text)
			continue
		}

		out.Add(m.merge(part.Node, prior.Child(part.Node.Path)))
	}

	m.drop(fresh, prior)

	return out
}

func (m *merger) preserve(fresh, prior *region.Node) *region.Node {
	out := &region.Node{Path: fresh.Path, Category: region.Preserved}

	switch {
	case prior != nil:
		out.Parts = region.CloneParts(prior.Parts)
		m.report.Decisions = append(m.report.Decisions, Decision{Path: fresh.Path, Action: Kept, Bytes: len(prior.Body())})
	case m.firstRun:
		out.Parts = region.CloneParts(fresh.Seed)
		m.report.Decisions = append(m.report.Decisions, Decision{Path: fresh.Path, Action: Seeded})
	default:
		m.report.Decisions = append(m.report.Decisions, Decision{Path: fresh.Path, Action: Placeholder})
	}

	return out
}

func (m *merger) drop(fresh, prior *region.Node) {
	if prior == nil {
		return
	}

	for _, old := range prior.Children() {
		if fresh.Child(old.Path) == nil {
			m.report.Decisions = append(m.report.Decisions, Decision{Path: old.Path, Action: Dropped, Bytes: len(old.Body())})
		}
	}
}
