package ch

import (
	"context"
	"testing"
)

// TestOpen_BadDSN fails fast before dialing
func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, err := Open(ctx, Config{URL: "not-a-dsn"}); err == nil {
		t.Fatalf("Open expected DSN parse error, got nil")
	}
}

// Nil client guards: every method should refuse instead of panicking

func TestNilClientGuards(t *testing.T) {
	t.Parallel()

	cl := &CH{}
	ctx := context.Background()

	if _, err := cl.Query(ctx, "SELECT 1"); err == nil {
		t.Fatalf("Query on nil conn expected error")
	}
	if err := cl.Exec(ctx, "SELECT 1"); err == nil {
		t.Fatalf("Exec on nil conn expected error")
	}
	if err := cl.InsertBatch(ctx, "INSERT INTO t", [][]any{{1}}); err == nil {
		t.Fatalf("InsertBatch on nil conn expected error")
	}
	if err := cl.Ping(ctx); err == nil {
		t.Fatalf("Ping on nil conn expected error")
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close on nil conn should be a no op, got %v", err)
	}
}

// Empty batches are a no op and must not require a connection
func TestInsertBatch_EmptyRows(t *testing.T) {
	t.Parallel()

	cl := &CH{}
	if err := cl.InsertBatch(context.Background(), "INSERT INTO video_snapshots", nil); err != nil {
		t.Fatalf("InsertBatch with no rows should be nil, got %v", err)
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	ci := BuildClientInfo("import", "")
	if len(ci.Products) == 0 {
		t.Fatalf("expected products in client info")
	}
	if ci.Products[0].Name != "vidtally" {
		t.Fatalf("default product = %q, want vidtally", ci.Products[0].Name)
	}
	found := false
	for _, p := range ci.Products {
		if p.Name == "role" && p.Version == "import" {
			found = true
		}
	}
	if !found {
		t.Fatalf("role product missing: %+v", ci.Products)
	}
}
