package store

import (
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/teachdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []DispatchEvent
}

func (r *recordingObserver) ObserveDispatch(e DispatchEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestNew_UsesClockForInitialState(t *testing.T) {
	now := time.Date(2024, 9, 2, 7, 30, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return now }))

	general, ok := s.State().GeneralTasks()
	require.True(t, ok)
	assert.Equal(t, domain.StartOfDay(now), general.StartDate)
}

func TestNew_WithState(t *testing.T) {
	seed := fresh()
	seed = Reduce(seed, AddEvent{Event: domain.Event{ID: "e1"}})

	s := New(WithState(seed))
	assert.Len(t, s.State().Events, 1)
}

func TestDispatch_ReportsToObserver(t *testing.T) {
	rec := &recordingObserver{}
	s := New(WithObserver(rec))

	s.Dispatch(AddTask{Task: domain.Task{ID: "t1", Title: "Seating chart"}})
	s.Dispatch(DeleteTask{TaskID: "missing"})

	require.Len(t, rec.events, 2)
	assert.Equal(t, "ADD_TASK", rec.events[0].Action)
	assert.True(t, rec.events[0].Applied)
	assert.Equal(t, 1, rec.events[0].Projects)
	assert.Equal(t, "DELETE_TASK", rec.events[1].Action)
	assert.False(t, rec.events[1].Applied)
}

func TestDispatch_NotifiesSubscribersOnChangeOnly(t *testing.T) {
	s := New()
	var seen []State
	cancel := s.Subscribe(func(st State) { seen = append(seen, st) })

	s.Dispatch(AddEvent{Event: domain.Event{ID: "e1", Title: "Assembly"}})
	s.Dispatch(DeleteEvent{ID: "missing"})
	require.Len(t, seen, 1)
	assert.Len(t, seen[0].Events, 1)

	cancel()
	s.Dispatch(DeleteEvent{ID: "e1"})
	assert.Len(t, seen, 1)
	assert.Empty(t, s.State().Events)
}

func TestDispatch_NilActionIsIgnored(t *testing.T) {
	rec := &recordingObserver{}
	s := New(WithObserver(rec))
	before := s.State()

	assert.Equal(t, before, s.Dispatch(nil))
	assert.Empty(t, rec.events)
}

func TestDispatch_ConcurrentCallersAreSerialised(t *testing.T) {
	s := New()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Dispatch(AddEvent{Event: domain.Event{ID: string(rune('A' + i)), Title: "e"}})
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.State().Events, n)
}

func TestState_SnapshotSurvivesLaterDispatches(t *testing.T) {
	s := New()
	s.Dispatch(AddTask{Task: domain.Task{ID: "t1", Title: "Draft rubric"}})
	before := s.State()

	s.Dispatch(UpdateTask{Task: domain.Task{ID: "t1", Title: "Final rubric"}})

	old, ok := before.FindTask("t1")
	require.True(t, ok)
	assert.Equal(t, "Draft rubric", old.Title)
	cur, _ := s.State().FindTask("t1")
	assert.Equal(t, "Final rubric", cur.Title)
}

func TestLogObserver_WritesStructuredEntries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(WithObserver(NewLogObserver(zap.New(core))))

	s.Dispatch(AddEvent{Event: domain.Event{ID: "e1"}})
	s.Dispatch(DeleteEvent{ID: "missing"})

	entries := logs.All()
	require.Len(t, entries, 2)

	applied := entries[0]
	assert.Equal(t, "dispatch", applied.Message)
	assert.Equal(t, "store", applied.LoggerName)
	fields := applied.ContextMap()
	assert.Equal(t, "ADD_EVENT", fields["action"])
	assert.Equal(t, true, fields["applied"])
	assert.Equal(t, int64(1), fields["events"])

	ignored := entries[1]
	assert.Equal(t, "dispatch ignored", ignored.Message)
	assert.Equal(t, false, ignored.ContextMap()["applied"])
}

func TestNewLogObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopObserver{}, NewLogObserver(nil))
}
