package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookapp-api/app/features/command/addauthor"
	"github.com/AntonStoeckl/bookapp-api/app/shared/shell/config"
	"github.com/AntonStoeckl/bookapp-api/storage/memoryengine"
	. "github.com/AntonStoeckl/bookapp-api/testutil/helper" //nolint:revive
)

func Test_initializeStore_MemoryEngine(t *testing.T) {
	// arrange
	cfg := config.Default()
	logger := slog.New(NewLogHandlerSpy(false))

	// act
	store, closeStore, err := initializeStore(context.Background(), cfg, logger, &observability{})

	// assert
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &memoryengine.Store{}, store)
}

func Test_newPostgresStore_UnsupportedDriver_Fails(t *testing.T) {
	// arrange
	cfg := config.Default().Storage.Postgres
	cfg.Driver = "odbc"

	// act
	_, _, err := newPostgresStore(context.Background(), cfg, nil)

	// assert
	assert.ErrorContains(t, err, "odbc")
}

func Test_initializeDispatcher_DispatchesThroughAllLayers(t *testing.T) {
	// arrange
	logHandler := NewLogHandlerSpy(false)
	logger := slog.New(logHandler)
	telemetry, err := initializeObservability(context.Background(), config.Default(), logger)
	require.NoError(t, err)

	dispatcher, err := initializeDispatcher(memoryengine.NewStore(), logger, telemetry)
	require.NoError(t, err)

	// act
	result, err := dispatcher.Dispatch(context.Background(), addauthor.BuildCommand("Frank", "Herbert"))

	// assert
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.True(t, logHandler.HasInfoLogWithMessage("handlers registered").WithAttributeKey("message_types").Assert())
	assert.True(t, logHandler.HasInfoLogWithMessage("dispatch completed").WithAttribute("message_type", "AddAuthor").Assert())
}
