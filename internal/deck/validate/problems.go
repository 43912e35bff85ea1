package validate

// Code is a machine-readable problem type.
type Code string

const (
	CodeInvalidInvestigator   Code = "INVALID_INVESTIGATOR"
	CodeTooFewCards           Code = "TOO_FEW_CARDS"
	CodeTooManyCards          Code = "TOO_MANY_CARDS"
	CodeTooManyCopies         Code = "TOO_MANY_COPIES"
	CodeMissingRequiredCard   Code = "MISSING_REQUIRED_CARD"
	CodeInvalidCard           Code = "INVALID_CARD"
	CodeDeckOptionsLimit      Code = "DECK_OPTIONS_LIMIT"
	CodeAtLeastUnmet          Code = "AT_LEAST_UNMET"
	CodeInvalidCustomization  Code = "INVALID_CUSTOMIZATION"
	CodeCardPoolViolation     Code = "CARD_POOL_VIOLATION"
	CodeSealedDeckViolation   Code = "SEALED_DECK_VIOLATION"
	CodeExtraDeckSizeMismatch Code = "EXTRA_DECK_SIZE_MISMATCH"
)

// CardCount identifies an offending card with its count and the bound it
// violated.
type CardCount struct {
	Code     string
	Quantity int
	Limit    int
}

// Problem is one structured rule violation with enough detail to render a
// message.
type Problem struct {
	Code Code
	// Cards lists the offending codes, when the problem is card-scoped.
	Cards []CardCount
	// Target names the rule subject: a required signature code, a deck
	// option name, a pack token.
	Target string
	// Expected and Actual carry the violated bound.
	Expected int
	Actual   int
}

// Result is the outcome of validating one resolved deck.
type Result struct {
	Valid    bool
	Problems []Problem
}
