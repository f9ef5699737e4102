package main

import (
	"testing"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/alexanderramin/teachdesk/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewStore_LogsUnderStoreName(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	now := func() time.Time { return time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC) }

	st := newStore(zap.New(core), now)
	st.Dispatch(store.AddEvent{Event: domain.Event{ID: "e1", Title: "Assembly"}})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "store", entries[0].LoggerName)
}
