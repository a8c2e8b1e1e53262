// Package core defines the shared language of the LeapViz plugin.
//
// This package contains:
//   - Domain entities (TimeBucket, Value, ModuleTypeInfo, AugmentedNode)
//   - Service interfaces (Runtime, LineageGraph, LineageBearer)
//   - Typed errors shared by the query synthesizer and the lineage annotator
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
