package commands

import (
	"context"
	"sort"
	"strings"
)

// Describer is what list needs to know about a command.
type Describer interface {
	GetSignature() string
	GetDescription() string
}

type ListCommand struct {
	BaseCommand
	Commands func() []Describer
}

func (c *ListCommand) GetSignature() string {
	return "list"
}

func (c *ListCommand) GetDescription() string {
	return "List all available commands"
}

func (c *ListCommand) Execute(_ context.Context, _ []string) error {
	var commands []Describer
	if c.Commands != nil {
		commands = c.Commands()
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].GetSignature() < commands[j].GetSignature()
	})

	width := 0
	for _, cmd := range commands {
		width = max(width, len(cmd.GetSignature()))
	}

	c.Printf("Available commands:\n")
	group := ""
	for _, cmd := range commands {
		sig := cmd.GetSignature()
		if g, _, ok := strings.Cut(sig, ":"); ok && g != group {
			group = g
			c.Printf(" %s\n", group)
		}
		c.Printf("  %-*s  %s\n", width, sig, cmd.GetDescription())
	}
	return nil
}
