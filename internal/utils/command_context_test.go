package utils_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pubrelease/internal/utils"
)

func TestCommandContextAccessorRoundTrip(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, available := accessor.Invocation(context.Background())
	require.False(testInstance, available)

	startedAt := time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)
	executionContext := accessor.WithInvocation(context.Background(), utils.InvocationMetadata{
		ConfigurationFilePath: "/etc/pubrelease/config.yaml",
		StartedAt:             startedAt,
	})

	metadata, available := accessor.Invocation(executionContext)
	require.True(testInstance, available)
	require.Equal(testInstance, startedAt, metadata.StartedAt)

	configurationFilePath, available := accessor.ConfigurationFilePath(executionContext)
	require.True(testInstance, available)
	require.Equal(testInstance, "/etc/pubrelease/config.yaml", configurationFilePath)
}
