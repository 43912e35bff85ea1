// Package resolve turns a persisted deck record into a fully computed,
// display-ready projection: effective cards with taboo and customization
// overlays applied, per-group slot maps, aggregate stats, and attachment
// definitions. Resolution is deterministic and side-effect free; identical
// inputs always produce identical resolved decks.
package resolve
