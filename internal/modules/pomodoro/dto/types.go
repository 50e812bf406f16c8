package dto

type StatusOutput struct {
	Mode        string
	IsRunning   bool
	SecondsLeft int
	Readout     string
	Focus       int
	Short       int
	Long        int
	FocusCount  int
	Cycle       int
}

type DurationsInput struct {
	Focus int
	Short int
	Long  int
}

type CompletionOutput struct {
	Finished string
	Minutes  int
	Next     string
	Skipped  bool
}
