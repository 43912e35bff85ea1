// Package deck defines the persisted deck record: the canonical form a deck
// takes between the editor, the store, and the resolution engine. Slot maps
// are card-code-to-quantity; a code absent from a map is quantity zero.
package deck
