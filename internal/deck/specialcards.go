package deck

// Card codes whose rules text the engine interprets directly. Each one is a
// family exemplar: reprints resolve to these canonical codes through the
// catalog's reprint relation before the engine checks for them.
const (
	// CodeArcaneResearch discounts one Spell upgrade per copy.
	CodeArcaneResearch = "04109"
	// CodeAdaptable grants two free level-0 swaps per copy.
	CodeAdaptable = "02110"
	// CodeDownTheRabbitHole discounts upgrades and penalizes new purchases.
	CodeDownTheRabbitHole = "08059"
	// CodeDejaVu refunds repurchases of exiled cards.
	CodeDejaVu = "60531"
	// CodeVersatile raises deck size by five and grants one off-class
	// level-0 card.
	CodeVersatile = "06167"
	// CodeUnderworldSupport lowers deck size by five and limits the deck to
	// one copy of each card by title.
	CodeUnderworldSupport = "08046"
)

// SpellTrait is the trait Arcane Research discounts.
const SpellTrait = "Spell"

// DejaVuCodesPerCopy is how many distinct exiled codes one Déjà Vu copy can
// refund.
const DejaVuCodesPerCopy = 3

// AdaptableSwapsPerCopy is how many free level-0 swaps one Adaptable copy
// grants.
const AdaptableSwapsPerCopy = 2
