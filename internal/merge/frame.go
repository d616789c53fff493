package merge

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"epigen/internal/region"
)

// gap is the text between two sibling regions. An empty before or after
// stands for the start or the end of the parent.
type gap struct {
	before string
	after  string
	text   string
}

func splitGaps(n *region.Node) ([]gap, []*region.Node) {
	var (
		gaps  []gap
		nodes []*region.Node
		sb    strings.Builder
		prev  string
	)

	for _, p := range n.Parts {
		if p.Node == nil {
			sb.WriteString(p.Text)
			continue
		}

		gaps = append(gaps, gap{before: prev, after: p.Node.Path, text: sb.String()})
		nodes = append(nodes, p.Node)
		prev = p.Node.Path

		sb.Reset()
	}

	gaps = append(gaps, gap{before: prev, text: sb.String()})

	return gaps, nodes
}

// gapRules pair fresh gaps with prior ones, strongest first: the same two
// neighbours, then the same preceding region, then the same following one.
var gapRules = []func(fresh, prior gap) bool{
	func(f, p gap) bool { return f.before == p.before && f.after == p.after },
	func(f, p gap) bool { return f.before == p.before },
	func(f, p gap) bool { return f.after == p.after },
}

// pairGaps returns, per fresh gap, the index of its prior counterpart or -1.
func pairGaps(fresh, prior []gap) (match []int, used []bool) {
	match = make([]int, len(fresh))
	for i := range match {
		match[i] = -1
	}

	used = make([]bool, len(prior))

	for _, same := range gapRules {
		for i, f := range fresh {
			if match[i] >= 0 {
				continue
			}

			for j, p := range prior {
				if !used[j] && same(f, p) {
					match[i] = j
					used[j] = true

					break
				}
			}
		}
	}

	return match, used
}

// frame merges a Framed node: child regions follow the usual rules and each
// gap between them is reconciled with its prior counterpart.
func (m *merger) frame(fresh, prior *region.Node) *region.Node {
	out := &region.Node{Path: fresh.Path, Category: region.Owned}

	if !fresh.IsRoot() {
		m.report.Decisions = append(m.report.Decisions, Decision{Path: fresh.Path, Action: Regenerated})
	}

	freshGaps, freshNodes := splitGaps(fresh)
	priorGaps, _ := splitGaps(prior)

	match, used := pairGaps(freshGaps, priorGaps)

	for i, g := range freshGaps {
		text := g.text
		if j := match[i]; j >= 0 {
			text = reconcile(priorGaps[j].text, g.text)
		}

		out.Text(text)

		if i < len(freshNodes) {
			out.Add(m.merge(freshNodes[i], prior.Child(freshNodes[i].Path)))
		}
	}

	m.drop(fresh, prior)
	m.discard(priorGaps, used, freshGaps)

	return out
}

// reconcile keeps the fresh text and re-inserts every run of lines that
// only the prior text has. Lines the generator changed take the fresh form.
func reconcile(prior, fresh string) string {
	if prior == fresh {
		return fresh
	}

	a, b := splitLines(prior), splitLines(fresh)

	var sb strings.Builder

	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		if op.Tag == 'd' {
			sb.WriteString(strings.Join(a[op.I1:op.I2], ""))
			continue
		}

		sb.WriteString(strings.Join(b[op.J1:op.J2], ""))
	}

	return sb.String()
}

// discard reports prior gaps that found no fresh counterpart and held lines
// the generator no longer produces anywhere.
func (m *merger) discard(prior []gap, used []bool, fresh []gap) {
	known := make(map[string]bool)

	for _, g := range fresh {
		for _, line := range splitLines(g.text) {
			known[line] = true
		}
	}

	for j, g := range prior {
		if used[j] {
			continue
		}

		lost := 0

		for _, line := range splitLines(g.text) {
			if !known[line] {
				lost += len(line)
			}
		}

		if lost > 0 {
			m.report.Decisions = append(m.report.Decisions, Decision{Path: g.before, Action: Discarded, Bytes: lost})
		}
	}
}

// splitLines splits s after every newline; the last line may lack one.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
