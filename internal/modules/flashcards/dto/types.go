package dto

type DeckOutput struct {
	ID        string
	Name      string
	CardCount int
}

type CardOutput struct {
	ID    string
	Front string
	Back  string
}

type DeckDetailOutput struct {
	ID    string
	Name  string
	Cards []CardOutput
}

type CardInput struct {
	DeckID string
	Front  string
	Back   string
}

type EditCardInput struct {
	DeckID string
	CardID string
	Front  string
	Back   string
}

type CardDraft struct {
	Front string
	Back  string
}

type ExportOutput struct {
	DeckID string
	Path   string
}

type ImportOutput struct {
	Deck  DeckOutput
	Path  string
	Cards int
}

// QuizOutput is a view of the quiz state machine. Card is nil unless the
// quiz is active.
type QuizOutput struct {
	Phase    string
	DeckID   string
	DeckName string
	Index    int
	Total    int
	Correct  int
	Score    int
	Card     *CardOutput
}
