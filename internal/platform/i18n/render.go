// Package i18n renders typed validation problems as human-readable
// messages. Rendering is a display concern: the engine's problems stay
// structured, and only this layer turns them into locale-aware text.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/deckwright/internal/deck/validate"
)

// Renderer formats problems for one locale.
type Renderer struct {
	printer *message.Printer
}

// NewRenderer returns a renderer for the given locale, falling back to
// English when the locale does not parse.
func NewRenderer(locale string) *Renderer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Renderer{printer: message.NewPrinter(tag)}
}

// Render returns a message for one problem.
func (r *Renderer) Render(p validate.Problem) string {
	switch p.Code {
	case validate.CodeInvalidInvestigator:
		return r.printer.Sprintf("Investigator %s could not be resolved.", p.Target)
	case validate.CodeTooFewCards:
		return r.printer.Sprintf("Deck has %d cards but needs %d.", p.Actual, p.Expected)
	case validate.CodeTooManyCards:
		return r.printer.Sprintf("Deck has %d cards but allows only %d.", p.Actual, p.Expected)
	case validate.CodeTooManyCopies:
		return r.printer.Sprintf("Too many copies of %s: %d of %d allowed.", joinCodes(p.Cards), p.Actual, p.Expected)
	case validate.CodeMissingRequiredCard:
		return r.printer.Sprintf("Required card %s: deck has %d of %d copies.", p.Target, p.Actual, p.Expected)
	case validate.CodeInvalidCard:
		return r.printer.Sprintf("Cards not allowed by deckbuilding rules: %s.", joinCodes(p.Cards))
	case validate.CodeDeckOptionsLimit:
		return r.printer.Sprintf("Limited slots over budget (%s): %d of %d used.", p.Target, p.Actual, p.Expected)
	case validate.CodeAtLeastUnmet:
		return r.printer.Sprintf("Deck needs %d factions represented but has %d.", p.Expected, p.Actual)
	case validate.CodeInvalidCustomization:
		return r.printer.Sprintf("Customizations of %s exceed their bounds.", p.Target)
	case validate.CodeCardPoolViolation:
		return r.printer.Sprintf("Cards outside the selected card pool: %s.", joinCodes(p.Cards))
	case validate.CodeSealedDeckViolation:
		return r.printer.Sprintf("Cards outside the sealed pool %s: %s.", p.Target, joinCodes(p.Cards))
	case validate.CodeExtraDeckSizeMismatch:
		return r.printer.Sprintf("Secondary deck has %d cards but needs exactly %d.", p.Actual, p.Expected)
	}
	return r.printer.Sprintf("Deck violates rule %s.", string(p.Code))
}

func joinCodes(cards []validate.CardCount) string {
	codes := make([]string, len(cards))
	for i, card := range cards {
		codes[i] = card.Code
	}
	return strings.Join(codes, ", ")
}
