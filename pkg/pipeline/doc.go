// Package pipeline resolves and runs an ordered stack of named stages over a
// resource pool.
//
// Stages are registered by name in a Registry. Each provider declares a category
// (FILTER, TRANSFORMER, SORTER, COMPRESSOR or none) and every category owns a
// disjoint range of positions, so that without any configuration filters run
// before transformers, before sorters, before compressors, before uncategorized
// stages.
//
// A configuration entry may place its stage at an index inside its category
// range, at the FIRST or LAST slot of that range, or at an absolute position
// that ignores categories altogether. Resolve turns the entries into one total
// order: ascending position, configuration order for ties. The same
// configuration always gives the same order.
//
// The resulting Stack runs its stages sequentially. Each stage receives the pool
// produced by the previous one and returns a new pool; pools are never modified
// in place. The first error, whether while resolving, constructing or running,
// aborts the whole build.
package pipeline
