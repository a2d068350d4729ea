// Package schema defines the field configuration model shared by inference,
// generation, and the delegated synthesis pipeline: field types, generation
// strategies, per-strategy options, grouping, and the structural-change
// classifier that gates cached-program reuse.
package schema
