package engine

// Resolve compares final hand values and returns the outcome plus the
// amount to credit back to the player. The bet was already debited at
// deal time: a loss credits nothing, a win credits twice the bet, a push
// returns the stake.
func Resolve(playerValue, dealerValue int, bet uint64) (Outcome, uint64) {
	switch {
	case playerValue > 21:
		return PlayerBust, 0
	case dealerValue > 21:
		return DealerBust, 2 * bet
	case playerValue > dealerValue:
		return PlayerWin, 2 * bet
	case playerValue < dealerValue:
		return DealerWin, 0
	default:
		return Push, bet
	}
}
