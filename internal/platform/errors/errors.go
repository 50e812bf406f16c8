package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNoDeckSelected  = errors.New("no deck selected")
	ErrDeckEmpty       = errors.New("deck is empty")
	ErrNoActiveQuiz    = errors.New("no active quiz")
	ErrQuizNotComplete = errors.New("quiz is not complete")
)
