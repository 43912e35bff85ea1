package resolve

import "github.com/louisbranch/deckwright/internal/deck/meta"

// resolveInvestigator builds the resolved front/back pair. A transform_into
// override replaces the investigator wholesale; alternate_front and
// alternate_back swap in parallel sides individually.
func resolveInvestigator(resolver *CardResolver, code string, decoded meta.Meta) Investigator {
	inv := Investigator{}

	effectiveCode := code
	if decoded.TransformInto != "" {
		if transformed := resolver.Resolve(decoded.TransformInto, nil); transformed != nil {
			effectiveCode = decoded.TransformInto
			inv.TransformedFrom = code
		}
	}

	frontCode := effectiveCode
	backCode := effectiveCode
	if decoded.AlternateFront != "" && decoded.AlternateFront != effectiveCode {
		if alt := resolver.Resolve(decoded.AlternateFront, nil); alt != nil && isParallelOf(alt, effectiveCode) {
			frontCode = decoded.AlternateFront
		}
	}
	if decoded.AlternateBack != "" && decoded.AlternateBack != effectiveCode {
		if alt := resolver.Resolve(decoded.AlternateBack, nil); alt != nil && isParallelOf(alt, effectiveCode) {
			backCode = decoded.AlternateBack
		}
	}

	inv.Front = resolver.Resolve(frontCode, nil)
	inv.Back = resolver.Resolve(backCode, nil)
	return inv
}

// isParallelOf reports whether card is a parallel version of code (or code
// itself), guarding against meta overrides pointing at unrelated cards.
func isParallelOf(card *EffectiveCard, code string) bool {
	if card == nil {
		return false
	}
	if card.Card.Code == code || card.Card.AlternateOf == code {
		return true
	}
	return false
}
