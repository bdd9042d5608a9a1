package model

import "github.com/google/uuid"

type RoundID string

// NewRoundID generates a new unique RoundID
func NewRoundID() RoundID {
	return RoundID(uuid.New().String())
}

// Answers holds the yes (1) / no (0) replies collected during one round
type Answers map[string]int

// Set records the reply for trait
func (a Answers) Set(trait string, yes bool) {
	if yes {
		a[trait] = 1
	} else {
		a[trait] = 0
	}
}

// Matches reports whether the record agrees with every answered trait
func (a Answers) Matches(r *Record) bool {
	for trait, want := range a {
		if got, ok := r.Value(trait); !ok || got != want {
			return false
		}
	}
	return true
}
