package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type CommandInfo struct {
	ID              string
	Title           string
	Description     string
	Kind            string
	InputSchemaJSON string
	TimeoutMS       int
}

// ExecuteInput runs a command. DeckRef, when set, is resolved by id or name
// and the deck's cards travel with the request.
type ExecuteInput struct {
	PluginName string
	CommandID  string
	InputJSON  string
	DeckRef    string
	DataDir    string
}

type ExecuteOutput struct {
	PluginName string
	CommandID  string
	Stdout     string
	Stderr     string
	OutputJSON string
	ExitCode   int
}

// CardsOutput reports cards a plugin generated and the deck they landed in.
type CardsOutput struct {
	ExecuteOutput
	DeckID   string
	DeckName string
	Added    int
}
