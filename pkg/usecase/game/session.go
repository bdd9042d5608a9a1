package game

import (
	"context"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/twentyq/pkg/model"
	"github.com/m-mizutani/twentyq/pkg/tree"
	"github.com/m-mizutani/twentyq/pkg/utils/logging"
)

// MaxQuestions is the number of yes/no prompts allowed per round
const MaxQuestions = 20

const (
	playAgainPrompt = "(yes/no) "
	msgPlayAgain    = "Would you like to play again?"
	msgWellPlayed   = "I couldn't guess it. Well played!"
	msgGoodbye      = "Goodbye!"
)

// Prompter asks a yes/no question and blocks until a valid reply arrives
type Prompter interface {
	AskYesNo(ctx context.Context, prompt string) (bool, error)
}

// Session plays rounds of the guessing game over a prebuilt tree
type Session struct {
	root     *tree.Node
	dataset  *model.Dataset
	prompter Prompter
	w        io.Writer
	rnd      tree.Rand
}

// NewInput contains parameters for creating a new game session
type NewInput struct {
	Root     *tree.Node
	Dataset  *model.Dataset
	Prompter Prompter
	Writer   io.Writer
	Rand     tree.Rand
}

func New(input NewInput) *Session {
	return &Session{
		root:     input.Root,
		dataset:  input.Dataset,
		prompter: input.Prompter,
		w:        input.Writer,
		rnd:      input.Rand,
	}
}

// Run plays rounds until the user declines to play again
func (s *Session) Run(ctx context.Context) error {
	for {
		result, err := s.Round(ctx)
		if err != nil {
			return err
		}
		logging.From(ctx).Debug("round finished",
			"round_id", result.ID,
			"state", result.State,
			"questions", result.Questions,
			"guess", result.Guess,
		)

		again, err := s.prompter.AskYesNo(ctx, playAgainPrompt)
		if err != nil {
			return goerr.Wrap(err, "failed to ask for another round")
		}
		if !again {
			fmt.Fprintln(s.w, msgGoodbye)
			return nil
		}
	}
}

// Round walks the tree from the root, then resolves a guess against the whole dataset.
// The leaf's own guess only ends the walk; the proposed answer comes from Candidates.
func (s *Session) Round(ctx context.Context) (*RoundResult, error) {
	result := &RoundResult{
		ID:      model.NewRoundID(),
		Answers: model.Answers{},
	}
	logger := logging.From(ctx).With("round_id", result.ID)

	node := s.root
	for !node.IsLeaf() {
		if result.Questions >= MaxQuestions {
			return s.surrenderByBudget(result), nil
		}

		result.Questions++
		yes, err := s.prompter.AskYesNo(ctx, questionPrompt(node.Trait()))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to ask question",
				goerr.V("trait", node.Trait()), goerr.V("question", result.Questions))
		}
		result.Answers.Set(node.Trait(), yes)
		node = node.Next(yes)
	}

	if result.Questions >= MaxQuestions {
		return s.surrenderByBudget(result), nil
	}
	result.Questions++

	candidates := Candidates(s.dataset, result.Answers)
	logger.Debug("resolving guess",
		"leaf", node.Guess(),
		"candidates", len(candidates),
		"answers", result.Answers,
	)

	switch len(candidates) {
	case 0:
		result.State = StateSurrenderedNoMatch
		s.announceDefeat()
		return result, nil
	case 1:
		result.Guess = candidates[0].ID
	default:
		result.Guess = candidates[s.rnd.IntN(len(candidates))].ID
	}

	correct, err := s.prompter.AskYesNo(ctx, guessPrompt(result.Guess))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to ask final guess", goerr.V("guess", result.Guess))
	}
	if !correct {
		result.State = StateWrongGuess
		s.announceDefeat()
		return result, nil
	}

	result.State = StateGuessed
	fmt.Fprintf(s.w, "Good game! I won in %d guesses. %s\n", result.Questions, msgPlayAgain)
	return result, nil
}

func (s *Session) surrenderByBudget(result *RoundResult) *RoundResult {
	result.State = StateSurrenderedByBudget
	fmt.Fprintf(s.w, "I couldn't guess in %d questions. You win!\n", MaxQuestions)
	return result
}

func (s *Session) announceDefeat() {
	fmt.Fprintln(s.w, msgWellPlayed)
	fmt.Fprintln(s.w, msgPlayAgain)
}

// Candidates returns the records of dataset consistent with every answer, in dataset order
func Candidates(dataset *model.Dataset, answers model.Answers) []*model.Record {
	var matched []*model.Record
	for _, r := range dataset.Records {
		if answers.Matches(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

func questionPrompt(trait string) string {
	return fmt.Sprintf("Does it have the following classification: %s? (yes/no) ", trait)
}

func guessPrompt(guess string) string {
	return fmt.Sprintf("Is your object %s? (yes/no) ", guess)
}
