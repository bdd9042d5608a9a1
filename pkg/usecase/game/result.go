package game

import "github.com/m-mizutani/twentyq/pkg/model"

type State string

const (
	// StateGuessed means the user confirmed the proposed guess
	StateGuessed State = "guessed"
	// StateWrongGuess means the user rejected the proposed guess
	StateWrongGuess State = "wrong_guess"
	// StateSurrenderedNoMatch means no record agreed with the answers
	StateSurrenderedNoMatch State = "surrendered_no_match"
	// StateSurrenderedByBudget means the question budget ran out before a guess
	StateSurrenderedByBudget State = "surrendered_by_budget"
)

// RoundResult describes how a single round ended
type RoundResult struct {
	ID        model.RoundID
	State     State
	Questions int
	Answers   model.Answers
	Guess     string
}

// Won reports whether the game guessed the user's object
func (r *RoundResult) Won() bool {
	return r.State == StateGuessed
}
