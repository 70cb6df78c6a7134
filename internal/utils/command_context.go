package utils

import (
	"context"
	"time"
)

const invocationContextKeyConstant = commandContextKey("invocation")

type commandContextKey string

// InvocationMetadata describes the current CLI invocation.
type InvocationMetadata struct {
	ConfigurationFilePath string
	StartedAt             time.Time
}

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithInvocation attaches invocation metadata to the provided context.
func (accessor CommandContextAccessor) WithInvocation(parentContext context.Context, metadata InvocationMetadata) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, invocationContextKeyConstant, metadata)
}

// Invocation extracts invocation metadata from the provided context.
func (accessor CommandContextAccessor) Invocation(executionContext context.Context) (InvocationMetadata, bool) {
	if executionContext == nil {
		return InvocationMetadata{}, false
	}
	metadata, available := executionContext.Value(invocationContextKeyConstant).(InvocationMetadata)
	return metadata, available
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	metadata, available := accessor.Invocation(executionContext)
	if !available {
		return "", false
	}
	return metadata.ConfigurationFilePath, true
}
