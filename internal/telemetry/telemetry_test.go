// SPDX-License-Identifier: MIT
package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qdna/internal/telemetry"
)

func TestSetupNoopWithoutEndpoint(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), "qdna-test", " ")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetupWithEndpoint(t *testing.T) {
	// non-routable; nothing is exported before shutdown
	shutdown, err := telemetry.Setup(context.Background(), "qdna-test", "192.0.2.1:4318")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
