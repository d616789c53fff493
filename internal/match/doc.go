// Package match ranks known names by similarity to an unknown one.
//
// It backs the "did you mean" hints attached to unresolved parent classes,
// unknown property types and misspelled enum references:
//   - NormalizeIdent: folds case, separators and the epi type prefix
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates / Suggest: orders candidates by normalized similarity
package match
