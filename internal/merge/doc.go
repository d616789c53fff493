// Package merge combines a freshly emitted region tree with the region tree
// of the previously generated artifact.
//
// Rules, applied per region of the fresh tree and matched by path among siblings:
//   - owned regions take the fresh body; prior text is discarded
//   - preserved regions found in the prior artifact keep its body byte-for-byte
//   - preserved regions missing from an existing prior artifact start empty
//   - preserved regions of a brand-new artifact start from their seed
//   - prior regions with no fresh counterpart are dropped
//   - output order is always the fresh order
//   - framed nodes (the declaration root) treat text between their child
//     regions as shared: lines only the prior artifact has are re-inserted
//     into the fresh text, so hand-written includes and overloads survive
//
// Artifact wraps the rules in the NotFound -> Parsed -> Merged lifecycle of one output file.
package merge
