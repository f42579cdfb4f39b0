package engine

// HandValue scores a blackjack hand. Aces count 11 until the total passes
// 21, then drop to 1 one at a time. The total is a plain int so long hands
// cannot wrap.
func HandValue(hand []Card) int {
	value, aces := 0, 0
	for _, c := range hand {
		switch r := c.Rank(); {
		case r == 1:
			aces++
			value += 11
		case r > 10:
			value += 10
		default:
			value += r
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}
