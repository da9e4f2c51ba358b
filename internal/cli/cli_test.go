package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/timeflow/backend/config"
	"github.com/timeflow/backend/internal/infra/dependency"
	"github.com/timeflow/backend/internal/integration/persistence"
	"github.com/timeflow/backend/internal/testutil"
)

type harness struct {
	t        *testing.T
	ctx      context.Context
	clock    *testutil.FakeClock
	injector *dependency.Injector
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Persistence.Driver = config.DriverMemory

	clock := testutil.NewFakeClock(time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC))
	injector := dependency.NewInjectorWithProvider(cfg, persistence.NewMemoryProvider(), clock)
	if _, err := injector.Categories.Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	return &harness{t: t, ctx: context.Background(), clock: clock, injector: injector}
}

func (h *harness) execute(args ...string) (string, error) {
	h.t.Helper()

	cmd := NewRootCommand(h.ctx, func(context.Context) (*dependency.Injector, error) {
		return h.injector, nil
	})
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func (h *harness) mustExecute(args ...string) string {
	h.t.Helper()
	out, err := h.execute(args...)
	if err != nil {
		h.t.Fatalf("execute(%q): %v\n%s", args, err, out)
	}
	return out
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q missing substring %q", output, want)
	}
}

func assertNotContains(t *testing.T, output, want string) {
	t.Helper()
	if strings.Contains(output, want) {
		t.Fatalf("output %q unexpectedly contained substring %q", output, want)
	}
}

func TestCLITimerWorkflow(t *testing.T) {
	h := newHarness(t)

	// 1. Nothing is running yet.
	assertContains(t, h.mustExecute("status"), "No timer running")

	// 2. Start a timer; multi-word activities are joined.
	out := h.mustExecute("start", "Write", "design", "doc", "--category", "work")
	assertContains(t, out, "Started #1 09:00-")
	assertContains(t, out, "Write design doc [work] running 0:00")

	// 3. Status shows elapsed time.
	h.clock.Advance(20 * time.Minute)
	assertContains(t, h.mustExecute("status"), "Write design doc [work] running for 20:00 (since 09:00)")

	// 4. Starting another timer stops the first.
	out = h.mustExecute("start", "Email", "-c", "admin")
	assertContains(t, out, "Stopped #1 09:00-09:20 Write design doc [work] 20m")
	assertContains(t, out, "Started #2 09:20-")

	// 5. Stop the running timer.
	h.clock.Advance(90 * time.Minute)
	assertContains(t, h.mustExecute("stop"), "Stopped #2 09:20-10:50 Email [admin] 1h 30m")

	// 6. Stopping again fails.
	if _, err := h.execute("stop"); err == nil {
		t.Fatal("expected error stopping without a running timer")
	}

	// 7. The summary groups both entries.
	out = h.mustExecute("summary")
	assertContains(t, out, "2025-01-15  1h 50m across 2 entries")
	assertContains(t, out, "81.82%")
	assertContains(t, out, "18.18%")
	assertContains(t, out, "Work")

	// 8. Listing honours limit and date.
	out = h.mustExecute("entries", "--limit", "1")
	assertContains(t, out, "#1 09:00-09:20")
	assertNotContains(t, out, "#2")

	assertContains(t, h.mustExecute("entries", "--date", "2025-01-14"), "(no entries)")
	assertContains(t, h.mustExecute("summary", "--date", "2025-01-14"), "0m across 0 entries")
}

func TestCLICategories(t *testing.T) {
	h := newHarness(t)

	out := h.mustExecute("categories")
	assertContains(t, out, "#1 work (Work)")
	assertContains(t, out, "meeting")
}

func TestCLIArgumentErrors(t *testing.T) {
	h := newHarness(t)

	if _, err := h.execute("start"); err == nil {
		t.Fatal("expected error when activity is missing")
	}

	_, err := h.execute("summary", "--date", "15-01-2025")
	if err == nil || !strings.Contains(err.Error(), "parse date") {
		t.Fatalf("expected parse date error, got %v", err)
	}

	if _, err := h.execute("entries", "--limit", "-1"); err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestCLIBackendOpenFailure(t *testing.T) {
	cmd := NewRootCommand(context.Background(), func(context.Context) (*dependency.Injector, error) {
		return nil, errors.New("connection refused")
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"status"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "open backend") {
		t.Fatalf("expected open backend error, got %v", err)
	}
}
