// Package pipeline implements the American-to-British spelling engine.
//
// The engine works in four stages:
//   - Region scanning: fenced code, inline code, URLs and colour markup
//     are located with precompiled patterns
//   - Region merging: overlapping or touching spans collapse into a sorted,
//     non-overlapping region set
//   - Context guarding: matches near a preserve phrase are vetoed
//   - Substitution: rules are applied in order, right to left, preserving
//     the case of the first letter
//
// ContentChecker is an optional safety net that re-parses the document with
// goldmark and confirms code and link targets survived the rewrite.
//
// Everything here is pure and in-memory. File handling lives in the CLI.
package pipeline
