package session

import (
	"context"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestManager() (*Manager, *MemoryStore, *clock) {
	store := NewMemoryStore()
	clk := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewManager(store, testSecret, 24*time.Hour).WithClock(clk.now), store, clk
}

func TestCreateAndResolve(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	created, cookie, err := m.Create(ctx, "kringe_fan", "fan@kringe.music")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !strings.HasPrefix(cookie, created.Token+".") {
		t.Errorf("cookie %q does not carry the token", cookie)
	}

	got, err := m.Resolve(ctx, cookie)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got == nil || got.Login != "kringe_fan" || got.Email != "fan@kringe.music" {
		t.Errorf("Resolve() = %+v", got)
	}
}

func TestResolveExpired(t *testing.T) {
	tests := []struct {
		name    string
		age     time.Duration
		wantHit bool
	}{
		{"fresh", time.Minute, true},
		{"just before ttl", 24*time.Hour - time.Second, true},
		{"exactly ttl", 24 * time.Hour, false},
		{"older than ttl", 25 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store, clk := newTestManager()
			ctx := context.Background()

			_, cookie, err := m.Create(ctx, "kringe_fan", "fan@kringe.music")
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			clk.t = clk.t.Add(tt.age)

			got, err := m.Resolve(ctx, cookie)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if (got != nil) != tt.wantHit {
				t.Errorf("Resolve() = %+v, want logged in = %v", got, tt.wantHit)
			}
			if !tt.wantHit && store.Len() != 0 {
				t.Errorf("expired session left in store, len = %d", store.Len())
			}
		})
	}
}

func TestResolveRejectsForgedCookies(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	created, cookie, err := m.Create(ctx, "kringe_fan", "fan@kringe.music")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	other := NewManager(NewMemoryStore(), "another-secret-another-secret!!", 24*time.Hour)

	tests := map[string]string{
		"empty":            "",
		"token only":       created.Token,
		"bad signature":    created.Token + ".AAAA",
		"foreign secret":   other.sign(created.Token),
		"tampered token":   "x" + cookie,
		"missing token":    "." + strings.SplitN(cookie, ".", 2)[1],
		"missing sig part": created.Token + ".",
	}

	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := m.Resolve(ctx, value)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != nil {
				t.Errorf("Resolve(%q) = %+v, want anonymous", value, got)
			}
		})
	}
}

func TestDestroy(t *testing.T) {
	m, store, _ := newTestManager()
	ctx := context.Background()

	_, cookie, _ := m.Create(ctx, "kringe_fan", "fan@kringe.music")
	if err := m.Destroy(ctx, cookie); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("store len = %d, want 0", store.Len())
	}

	got, _ := m.Resolve(ctx, cookie)
	if got != nil {
		t.Error("session still resolves after Destroy")
	}

	if err := m.Destroy(ctx, "garbage"); err != nil {
		t.Errorf("Destroy(garbage) = %v, want nil", err)
	}
}

func TestTokensAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := newToken()
		if err != nil {
			t.Fatal(err)
		}
		if len(tok) != 64 {
			t.Fatalf("len(token) = %d, want 64", len(tok))
		}
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}
