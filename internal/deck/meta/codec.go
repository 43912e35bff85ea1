package meta

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Key namespace per concern. Everything else is preserved opaquely.
const (
	keyCustomizations  = "cus_"
	keyAttachments     = "attachments_"
	keyAnnotation      = "annotation_"
	keyCardPool        = "card_pool"
	keySealedDeck      = "sealed_deck"
	keySealedDeckName  = "sealed_deck_name"
	keyAlternateFront  = "alternate_front"
	keyAlternateBack   = "alternate_back"
	keyTransformInto   = "transform_into"
	keyFactionSelected = "faction_selected"
	keyExtraDeck       = "extra_deck"
	keyHiddenSlots     = "hidden_slots"
)

// Decode parses the opaque meta string. Decoding never fails: malformed
// sub-fields decode to absent, and unrecognized keys are kept verbatim.
func Decode(raw string) Meta {
	var m Meta
	if strings.TrimSpace(raw) == "" {
		return m
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
		switch {
		case strings.HasPrefix(key, keyCustomizations):
			code := strings.TrimPrefix(key, keyCustomizations)
			if entries := parseCustomizations(value); len(entries) > 0 {
				if m.Customizations == nil {
					m.Customizations = map[string][]CustomizationEntry{}
				}
				m.Customizations[code] = entries
			}
		case strings.HasPrefix(key, keyAttachments):
			code := strings.TrimPrefix(key, keyAttachments)
			if attached := parseQuantityList(value); len(attached) > 0 {
				if m.Attachments == nil {
					m.Attachments = map[string]map[string]int{}
				}
				m.Attachments[code] = attached
			}
		case strings.HasPrefix(key, keyAnnotation):
			code := strings.TrimPrefix(key, keyAnnotation)
			if value != "" {
				if m.Annotations == nil {
					m.Annotations = map[string]string{}
				}
				m.Annotations[code] = value
			}
		case key == keyCardPool:
			m.CardPool = parseTokenList(value)
		case key == keySealedDeck:
			m.SealedDeck = parseQuantityList(value)
		case key == keySealedDeckName:
			m.SealedDeckName = value
		case key == keyAlternateFront:
			m.AlternateFront = value
		case key == keyAlternateBack:
			m.AlternateBack = value
		case key == keyTransformInto:
			m.TransformInto = value
		case key == keyFactionSelected:
			m.FactionSelected = value
		case key == keyExtraDeck:
			m.ExtraDeck = parseQuantityList(value)
		case key == keyHiddenSlots:
			m.HiddenSlots = parseQuantityList(value)
		default:
			if m.Unknown == nil {
				m.Unknown = map[string]string{}
			}
			m.Unknown[key] = value
		}
	}
	return m
}

// Encode is the exact inverse of Decode. Keys are emitted in sorted order so
// identical metas encode to identical strings.
func Encode(m Meta) string {
	pairs := map[string]string{}

	for code, entries := range m.Customizations {
		if encoded := encodeCustomizations(entries); encoded != "" {
			pairs[keyCustomizations+code] = encoded
		}
	}
	for code, attached := range m.Attachments {
		if encoded := encodeQuantityList(attached); encoded != "" {
			pairs[keyAttachments+code] = encoded
		}
	}
	for code, text := range m.Annotations {
		if text != "" {
			pairs[keyAnnotation+code] = text
		}
	}
	if len(m.CardPool) > 0 {
		pairs[keyCardPool] = strings.Join(m.CardPool, ",")
	}
	if encoded := encodeQuantityList(m.SealedDeck); encoded != "" {
		pairs[keySealedDeck] = encoded
	}
	if m.SealedDeckName != "" {
		pairs[keySealedDeckName] = m.SealedDeckName
	}
	if m.AlternateFront != "" {
		pairs[keyAlternateFront] = m.AlternateFront
	}
	if m.AlternateBack != "" {
		pairs[keyAlternateBack] = m.AlternateBack
	}
	if m.TransformInto != "" {
		pairs[keyTransformInto] = m.TransformInto
	}
	if m.FactionSelected != "" {
		pairs[keyFactionSelected] = m.FactionSelected
	}
	if encoded := encodeQuantityList(m.ExtraDeck); encoded != "" {
		pairs[keyExtraDeck] = encoded
	}
	if encoded := encodeQuantityList(m.HiddenSlots); encoded != "" {
		pairs[keyHiddenSlots] = encoded
	}
	for key, value := range m.Unknown {
		if _, taken := pairs[key]; !taken {
			pairs[key] = value
		}
	}

	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pairs[key]))
	}
	return b.String()
}

// parseCustomizations reads "index|xp" or "index|xp|sel^sel" entries joined
// by commas. Malformed entries are skipped.
func parseCustomizations(value string) []CustomizationEntry {
	var entries []CustomizationEntry
	for _, raw := range strings.Split(value, ",") {
		parts := strings.Split(raw, "|")
		if len(parts) < 2 {
			continue
		}
		index, err := strconv.Atoi(parts[0])
		if err != nil || index < 0 {
			continue
		}
		xp, err := strconv.Atoi(parts[1])
		if err != nil || xp < 0 {
			continue
		}
		entry := CustomizationEntry{Index: index, XPSpent: xp}
		if len(parts) > 2 && parts[2] != "" {
			entry.Selections = strings.Split(parts[2], "^")
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Index < entries[j].Index })
	return entries
}

func encodeCustomizations(entries []CustomizationEntry) string {
	sorted := append([]CustomizationEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })
	parts := make([]string, 0, len(sorted))
	for _, e := range sorted {
		encoded := strconv.Itoa(e.Index) + "|" + strconv.Itoa(e.XPSpent)
		if len(e.Selections) > 0 {
			encoded += "|" + strings.Join(e.Selections, "^")
		}
		parts = append(parts, encoded)
	}
	return strings.Join(parts, ",")
}

// parseQuantityList reads "code:qty" entries joined by commas.
func parseQuantityList(value string) map[string]int {
	var out map[string]int
	for _, raw := range strings.Split(value, ",") {
		code, qtyRaw, ok := strings.Cut(raw, ":")
		if !ok || code == "" {
			continue
		}
		qty, err := strconv.Atoi(qtyRaw)
		if err != nil || qty < 0 {
			continue
		}
		if out == nil {
			out = map[string]int{}
		}
		out[code] = qty
	}
	return out
}

func encodeQuantityList(quantities map[string]int) string {
	codes := make([]string, 0, len(quantities))
	for code, qty := range quantities {
		if qty >= 0 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, code+":"+strconv.Itoa(quantities[code]))
	}
	return strings.Join(parts, ",")
}

func parseTokenList(value string) []string {
	var tokens []string
	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
