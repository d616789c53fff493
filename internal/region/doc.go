// Package region models generated artifacts as trees of named regions.
//
// A region is delimited by whole-line markers:
//
//	EPI_GENREGION_BEGIN(Color::EInnerMask)
//	        Value0 = 1 << 0,
//	EPI_GENREGION_END(Color::EInnerMask)
//
// Paths are qualified with "::" and only need to be unique among siblings.
// Parse turns text into a tree through an explicit token stream; Render
// linearizes a tree back to text. Text parsed from a file round-trips
// byte-for-byte, including the exact spelling of nested markers.
package region
