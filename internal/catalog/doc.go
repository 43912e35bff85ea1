// Package catalog models the static card metadata the deck engine consumes:
// card definitions, packs, cycles, taboo sets, and the precomputed relation
// indexes (duplicates, reprints, level siblings, bonded cards, parallel
// fronts). The catalog is read-only for the engine's lifetime; constructing
// it from upstream dumps is a boundary concern handled by LoadFromFS.
package catalog
