package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Capability string

const (
	CapabilityCommand Capability = "command"
	CapabilityCards   Capability = "cards"
)

var (
	ErrPluginDisabled    = errors.New("plugin is disabled")
	ErrPluginNotFound    = errors.New("plugin not found")
	ErrChecksumMismatch  = errors.New("plugin checksum mismatch")
	ErrCapabilityMissing = errors.New("plugin capability missing")
	ErrCommandNotFound   = errors.New("plugin command not found")
	ErrPluginTimeout     = errors.New("plugin timeout")
	ErrInvalidOutput     = errors.New("plugin output invalid")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest is one entry of plugins.json.
type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	switch {
	case strings.TrimSpace(m.Name) == "":
		return fmt.Errorf("plugin name is required")
	case strings.TrimSpace(m.Version) == "":
		return fmt.Errorf("plugin %s: version is required", m.Name)
	case strings.TrimSpace(m.Binary) == "":
		return fmt.Errorf("plugin %s: binary path is required", m.Name)
	case !sha256Pattern.MatchString(m.SHA256):
		return fmt.Errorf("plugin %s: sha256 must be lowercase 64-char hex", m.Name)
	case len(m.Capabilities) == 0:
		return fmt.Errorf("plugin %s: capabilities are required", m.Name)
	}
	seen := make(map[Capability]bool, len(m.Capabilities))
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return fmt.Errorf("plugin %s: %w", m.Name, err)
		}
		if seen[capability] {
			return fmt.Errorf("plugin %s: duplicate capability %s", m.Name, capability)
		}
		seen[capability] = true
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityCommand, CapabilityCards:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// CommandKind matches the capability a command needs.
type CommandKind string

const (
	CommandKindCommand CommandKind = "command"
	CommandKindCards   CommandKind = "cards"
)

func (k CommandKind) Validate() error {
	switch k {
	case CommandKindCommand, CommandKindCards:
		return nil
	default:
		return fmt.Errorf("unknown command kind: %s", k)
	}
}

type CommandDescriptor struct {
	ID              string
	Title           string
	Description     string
	Kind            CommandKind
	InputSchemaJSON string
	TimeoutMS       int
}

func (d CommandDescriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("command id is required")
	}
	return d.Kind.Validate()
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// ExecuteContext is what a plugin learns about the host. Deck fields are
// empty when no deck is selected.
type ExecuteContext struct {
	DataDir  string
	DeckID   string
	DeckName string
	Cards    []Card
}

type ExecuteRequest struct {
	CommandID string
	InputJSON string
	TimeoutMS int
	Context   ExecuteContext
}

func (r ExecuteRequest) Validate() error {
	if r.CommandID == "" {
		return fmt.Errorf("command id is required")
	}
	if r.Context.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	if r.InputJSON != "" && !json.Valid([]byte(r.InputJSON)) {
		return fmt.Errorf("input-json must be valid JSON")
	}
	return nil
}

type ExecuteResult struct {
	Stdout     string
	Stderr     string
	OutputJSON string
	ExitCode   int
}

// ParseCards reads the {"cards":[{"front","back"}]} payload returned by a
// cards command. Cards with a blank side are rejected rather than skipped.
func ParseCards(outputJSON string) ([]Card, error) {
	var payload struct {
		Cards []Card `json:"cards"`
	}
	if err := json.Unmarshal([]byte(outputJSON), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if len(payload.Cards) == 0 {
		return nil, fmt.Errorf("%w: no cards returned", ErrInvalidOutput)
	}
	cards := make([]Card, 0, len(payload.Cards))
	for i, card := range payload.Cards {
		front, back := strings.TrimSpace(card.Front), strings.TrimSpace(card.Back)
		if front == "" || back == "" {
			return nil, fmt.Errorf("%w: card %d needs a front and a back", ErrInvalidOutput, i+1)
		}
		cards = append(cards, Card{Front: front, Back: back})
	}
	return cards, nil
}
