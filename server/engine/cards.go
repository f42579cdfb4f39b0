package engine

import "fmt"

func (c Card) String() string {
	ranks := "A23456789TJQK"
	suits := "cdhs"
	return fmt.Sprintf("%c%c", ranks[int(c)%13], suits[int(c)/13])
}

// Strings renders a hand for log lines and API payloads.
func Strings(hand []Card) []string {
	out := make([]string, len(hand))
	for i, c := range hand {
		out[i] = c.String()
	}
	return out
}
