package events_test

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/clubinho/internal/domain"
	"github.com/waabox/clubinho/internal/events"
)

type recorder struct {
	mu     sync.Mutex
	toasts []domain.Toast
	errs   []domain.ClassifiedError
}

func (r *recorder) OnToast(t domain.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *recorder) OnAPIError(e domain.ClassifiedError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, e)
}

func TestBus_DeliversToEveryObserver(t *testing.T) {
	bus := events.NewBus()
	a, b := &recorder{}, &recorder{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.PublishToast(domain.Toast{Message: "salvo", Variant: domain.ToastSuccess})
	bus.PublishAPIError(domain.ClassifiedError{Category: domain.CategoryClub, Code: "CLUB_6003"})

	for _, r := range []*recorder{a, b} {
		require.Len(t, r.toasts, 1)
		assert.Equal(t, "salvo", r.toasts[0].Message)
		require.Len(t, r.errs, 1)
		assert.Equal(t, "CLUB_6003", r.errs[0].Code)
	}
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := events.NewBus()
	r := &recorder{}
	unsubscribe := bus.Subscribe(r)
	unsubscribe()

	bus.PublishToast(domain.Toast{Message: "ignored"})
	assert.Empty(t, r.toasts)
}

func TestFuncs_SkipsNilHandlers(t *testing.T) {
	var got []string
	bus := events.NewBus()
	bus.Subscribe(events.Funcs{Toast: func(t domain.Toast) { got = append(got, t.Message) }})

	bus.PublishToast(domain.Toast{Message: "ok"})
	bus.PublishAPIError(domain.ClassifiedError{})
	assert.Equal(t, []string{"ok"}, got)
}

func TestChannel_ForwardsAndDropsWhenFull(t *testing.T) {
	ch := events.NewChannel(1)
	ch.OnToast(domain.Toast{Message: "first"})
	ch.OnAPIError(domain.ClassifiedError{Code: "dropped"})

	v := <-ch.C()
	toast, ok := v.(events.ToastRequested)
	require.True(t, ok)
	assert.Equal(t, "first", toast.Toast.Message)

	select {
	case extra := <-ch.C():
		t.Fatalf("expected buffer overflow to drop, got %v", extra)
	default:
	}
}

func TestLogObserver_WritesClassifiedErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := events.LogObserver{Logger: logger}

	obs.OnAPIError(domain.ClassifiedError{Category: domain.CategoryValidation, Code: "VAL_4005", Field: "birthDate", HTTPStatus: 422})
	obs.OnToast(domain.Toast{Message: "Data inválida", Variant: domain.ToastWarning})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "code=VAL_4005")
	assert.Contains(t, out, "field=birthDate")
	assert.Contains(t, out, "variant=warning")
}
