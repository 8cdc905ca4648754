package ranges

import (
	"strconv"
	"strings"

	"github.com/behrlich/gto-solver/pkg/cards"
)

// Parse parses a comma-separated textual range into a weighted Range.
// Tokens are pair ("AA"), suited/offsuit ("AKs"/"AKo"), dash ranges
// ("AA-77", "AKs-ATs"), each with an optional ":w" weight suffix in (0,1].
// Duplicate combos across tokens take the maximum specified weight.
func Parse(rangeStr string) (*Range, error) {
	r := New()

	offset := 0
	for _, rawPart := range strings.Split(rangeStr, ",") {
		partOffset := offset
		offset += len(rawPart) + 1 // +1 for the consumed comma

		part := strings.TrimSpace(rawPart)
		leading := len(rawPart) - len(strings.TrimLeft(rawPart, " \t"))
		partOffset += leading

		if part == "" {
			continue
		}

		token, weight, err := splitWeight(part, partOffset)
		if err != nil {
			return nil, err
		}

		var combos []Combo
		switch {
		case isSpecificCombo(token):
			combo, cerr := parseSpecificCombo(token, partOffset)
			if cerr != nil {
				err = cerr
			} else {
				combos = []Combo{combo}
			}
		case strings.Contains(token, "-"):
			combos, err = parseDashRange(token, partOffset)
		default:
			combos, err = parseSingleToken(token, partOffset)
		}
		if err != nil {
			return nil, err
		}

		for _, c := range combos {
			if existing, ok := r.weights[c]; !ok || weight > existing {
				r.weights[c] = weight
			}
		}
	}

	return r, nil
}

// splitWeight splits "AKs:0.5" into ("AKs", 0.5). Tokens without a ":"
// suffix default to weight 1.0.
func splitWeight(token string, offset int) (string, float64, error) {
	idx := strings.LastIndex(token, ":")
	if idx < 0 {
		return token, 1.0, nil
	}

	base := token[:idx]
	weightStr := token[idx+1:]
	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		return "", 0, newParseError(token, offset, "invalid weight %q", weightStr)
	}
	if weight <= 0 || weight > 1 {
		return "", 0, newParseError(token, offset, "weight %v out of range (0,1]", weight)
	}

	return base, weight, nil
}

// parseSingleToken parses a single hand notation ("AA", "AKs", "AKo").
func parseSingleToken(token string, offset int) ([]Combo, error) {
	if len(token) < 2 || len(token) > 3 {
		return nil, newParseError(token, offset, "invalid hand notation")
	}

	r1, err := parseRankChar(token[0])
	if err != nil {
		return nil, newParseError(token, offset, "%s", err.Error())
	}
	r2, err := parseRankChar(token[1])
	if err != nil {
		return nil, newParseError(token, offset, "%s", err.Error())
	}

	suited, err := parseSuitedTag(token, r1, r2, offset)
	if err != nil {
		return nil, err
	}

	return generateCombos(r1, r2, suited), nil
}

// parseDashRange parses a dash range ("AA-77" or "AKs-ATs").
func parseDashRange(token string, offset int) ([]Combo, error) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return nil, newParseError(token, offset, "invalid range notation")
	}

	start, end := parts[0], parts[1]

	sr1, sr2, sSuited, err := parseHandComponents(start, token, offset)
	if err != nil {
		return nil, err
	}
	er1, er2, eSuited, err := parseHandComponents(end, token, offset)
	if err != nil {
		return nil, err
	}
	if sSuited != eSuited {
		return nil, newParseError(token, offset, "mismatched suited/offsuit endpoints")
	}

	var combos []Combo
	if sr1 == sr2 && er1 == er2 {
		if er1 > sr1 {
			return nil, newParseError(token, offset, "pair range must descend (e.g. AA-77)")
		}
		for r := int(sr1); r >= int(er1); r-- {
			combos = append(combos, generateCombos(cards.Rank(r), cards.Rank(r), sSuited)...)
		}
		return combos, nil
	}

	if sr1 != er1 {
		return nil, newParseError(token, offset, "range endpoints must share their top rank")
	}
	if er2 > sr2 {
		return nil, newParseError(token, offset, "kicker range must descend (e.g. AKs-ATs)")
	}
	for r := int(sr2); r >= int(er2); r-- {
		combos = append(combos, generateCombos(sr1, cards.Rank(r), sSuited)...)
	}
	return combos, nil
}

func parseHandComponents(hand, token string, offset int) (cards.Rank, cards.Rank, bool, error) {
	if len(hand) < 2 || len(hand) > 3 {
		return 0, 0, false, newParseError(token, offset, "invalid range endpoint %q", hand)
	}
	r1, err := parseRankChar(hand[0])
	if err != nil {
		return 0, 0, false, newParseError(token, offset, "%s", err.Error())
	}
	r2, err := parseRankChar(hand[1])
	if err != nil {
		return 0, 0, false, newParseError(token, offset, "%s", err.Error())
	}
	suited, perr := parseSuitedTag(hand, r1, r2, offset)
	if perr != nil {
		return 0, 0, false, perr
	}
	return r1, r2, suited, nil
}

func parseSuitedTag(hand string, r1, r2 cards.Rank, offset int) (bool, error) {
	if len(hand) == 3 {
		if r1 == r2 {
			return false, newParseError(hand, offset, "pair %q cannot carry a suited/offsuit tag", hand)
		}
		switch hand[2] {
		case 's', 'S':
			return true, nil
		case 'o', 'O':
			return false, nil
		default:
			return false, newParseError(hand, offset, "invalid suited/offsuit tag %q", hand[2:3])
		}
	}
	if r1 != r2 {
		return false, newParseError(hand, offset, "ambiguous hand %q: add 's' or 'o'", hand)
	}
	return false, nil
}

// isSpecificCombo reports whether token names two explicit cards (e.g.
// "AsKh") rather than a hand-class token like "AKs".
func isSpecificCombo(token string) bool {
	if len(token) != 4 {
		return false
	}
	ranks := "AaKkQqJjTt98765432"
	suits := "shdcSHDC"
	return strings.ContainsAny(string(token[0]), ranks) &&
		strings.ContainsAny(string(token[1]), suits) &&
		strings.ContainsAny(string(token[2]), ranks) &&
		strings.ContainsAny(string(token[3]), suits)
}

func parseSpecificCombo(token string, offset int) (Combo, error) {
	c1, err := cards.ParseCard(token[0:2])
	if err != nil {
		return Combo{}, newParseError(token, offset, "%s", err.Error())
	}
	c2, err := cards.ParseCard(token[2:4])
	if err != nil {
		return Combo{}, newParseError(token, offset, "%s", err.Error())
	}
	if c1 == c2 {
		return Combo{}, newParseError(token, offset, "combo repeats the same card %s", c1)
	}
	return NewCombo(c1, c2), nil
}

func parseRankChar(b byte) (cards.Rank, error) {
	switch b {
	case 'A', 'a':
		return cards.Ace, nil
	case 'K', 'k':
		return cards.King, nil
	case 'Q', 'q':
		return cards.Queen, nil
	case 'J', 'j':
		return cards.Jack, nil
	case 'T', 't':
		return cards.Ten, nil
	case '9':
		return cards.Nine, nil
	case '8':
		return cards.Eight, nil
	case '7':
		return cards.Seven, nil
	case '6':
		return cards.Six, nil
	case '5':
		return cards.Five, nil
	case '4':
		return cards.Four, nil
	case '3':
		return cards.Three, nil
	case '2':
		return cards.Two, nil
	default:
		return 0, newParseError(string(b), 0, "invalid rank %q", string(b))
	}
}

// generateCombos generates all combos for a rank pair with the given
// suitedness (pairs ignore the suited flag and always produce 6 combos).
func generateCombos(r1, r2 cards.Rank, suited bool) []Combo {
	suits := []cards.Suit{cards.Spades, cards.Hearts, cards.Diamonds, cards.Clubs}
	var combos []Combo

	if r1 == r2 {
		for i := 0; i < len(suits); i++ {
			for j := i + 1; j < len(suits); j++ {
				combos = append(combos, NewCombo(cards.NewCard(r1, suits[i]), cards.NewCard(r2, suits[j])))
			}
		}
		return combos
	}

	if suited {
		for _, s := range suits {
			combos = append(combos, NewCombo(cards.NewCard(r1, s), cards.NewCard(r2, s)))
		}
		return combos
	}

	for _, s1 := range suits {
		for _, s2 := range suits {
			if s1 != s2 {
				combos = append(combos, NewCombo(cards.NewCard(r1, s1), cards.NewCard(r2, s2)))
			}
		}
	}
	return combos
}
