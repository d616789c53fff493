// Package diagnostic collects located, non-fatal findings produced while
// loading and validating epigen spec files.
//
// Diagnostics are accumulated rather than returned one at a time so that a
// single run reports every problem in every unit. Each entry carries a
// stable code, the unit file, and optionally the class and property it
// concerns, plus "did you mean" suggestions.
//
// Callers decide what is fatal: Diagnostics.Error() folds every error-level
// entry into one error and is nil when only warnings or infos were recorded.
package diagnostic
