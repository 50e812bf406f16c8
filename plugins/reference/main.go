// Command reference is a sample studysphere plugin. It serves two plain
// commands and two card generators over the go-plugin gRPC transport.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-plugin"

	pluginrpc "studysphere/internal/modules/plugin/adapter/out/rpc"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"command", "cards"},
	}, nil
}

func (s *server) ListCommands(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.ListCommandsResponse, error) {
	return &pluginrpc.ListCommandsResponse{Commands: []pluginrpc.CommandDescriptor{
		{ID: "echo", Title: "Echo", Description: "Echoes the input payload", Kind: "command", TimeoutMS: 2000},
		{ID: "deck-stats", Title: "Deck stats", Description: "Counts cards and words in the selected deck", Kind: "command", TimeoutMS: 2000},
		{ID: "reverse", Title: "Reverse cards", Description: "Adds a back-to-front copy of every card", Kind: "cards", TimeoutMS: 2500},
		{
			ID:              "glossary",
			Title:           "Glossary",
			Description:     `Turns "term: definition" lines into cards`,
			Kind:            "cards",
			InputSchemaJSON: `{"type":"object","properties":{"text":{"type":"string"}},"required":["text"]}`,
			TimeoutMS:       2500,
		},
	}}, nil
}

func (s *server) Execute(_ context.Context, in *pluginrpc.ExecuteRequest) (*pluginrpc.ExecuteResponse, error) {
	switch in.CommandID {
	case "echo":
		if strings.TrimSpace(in.InputJSON) == "" {
			return &pluginrpc.ExecuteResponse{Stdout: "echo", OutputJSON: `{"echo":""}`}, nil
		}
		return &pluginrpc.ExecuteResponse{Stdout: in.InputJSON, OutputJSON: fmt.Sprintf(`{"echo":%q}`, in.InputJSON)}, nil
	case "deck-stats":
		return deckStats(in.Context)
	case "reverse":
		cards := make([]pluginrpc.Card, 0, len(in.Context.Cards))
		for _, card := range in.Context.Cards {
			cards = append(cards, pluginrpc.Card{Front: card.Back, Back: card.Front})
		}
		return cardsResponse(cards)
	case "glossary":
		var input struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal([]byte(in.InputJSON), &input); err != nil {
			return &pluginrpc.ExecuteResponse{Stderr: "input must be {\"text\": \"...\"}", ExitCode: 2}, nil
		}
		return cardsResponse(glossary(input.Text))
	default:
		return nil, fmt.Errorf("unknown command: %s", in.CommandID)
	}
}

func deckStats(ctx pluginrpc.ExecuteContext) (*pluginrpc.ExecuteResponse, error) {
	if ctx.DeckID == "" {
		return &pluginrpc.ExecuteResponse{Stderr: "no deck selected", ExitCode: 1}, nil
	}
	words := 0
	for _, card := range ctx.Cards {
		words += len(strings.Fields(card.Front)) + len(strings.Fields(card.Back))
	}
	raw, err := json.Marshal(map[string]any{"deck_id": ctx.DeckID, "cards": len(ctx.Cards), "words": words})
	if err != nil {
		return nil, err
	}
	stdout := fmt.Sprintf("%s: %d cards, %d words", ctx.DeckName, len(ctx.Cards), words)
	return &pluginrpc.ExecuteResponse{Stdout: stdout, OutputJSON: string(raw)}, nil
}

func glossary(text string) []pluginrpc.Card {
	var cards []pluginrpc.Card
	for _, line := range strings.Split(text, "\n") {
		term, definition, ok := strings.Cut(line, ":")
		term, definition = strings.TrimSpace(term), strings.TrimSpace(definition)
		if !ok || term == "" || definition == "" {
			continue
		}
		cards = append(cards, pluginrpc.Card{Front: term, Back: definition})
	}
	return cards
}

func cardsResponse(cards []pluginrpc.Card) (*pluginrpc.ExecuteResponse, error) {
	raw, err := json.Marshal(map[string]any{"cards": cards})
	if err != nil {
		return nil, err
	}
	return &pluginrpc.ExecuteResponse{Stdout: fmt.Sprintf("%d cards", len(cards)), OutputJSON: string(raw)}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
