// Package agent implements the content agents: LLM-backed operations that
// accept a prompt and return structured newsletter content.
package agent

import (
	"context"
)

// Agent is the interface every content agent implements.
type Agent[T any] interface {
	// Role identifies the agent.
	Role() Role

	// Run sends prompt to the agent and returns its structured result.
	Run(ctx context.Context, prompt string) (T, error)
}

// Role identifies a content agent type.
type Role string

const (
	RoleResearch Role = "research"
	RoleNews     Role = "news"
	RoleHeader   Role = "header"
)

// Roles lists the agents in the order they are built and tested.
var Roles = []Role{RoleResearch, RoleNews, RoleHeader}
