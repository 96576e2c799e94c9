package cache

import (
	"context"
	"testing"
	"time"
)

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()

	if err := c.SetAnalysis(ctx, "key", "analysis", time.Minute); err != nil {
		t.Errorf("SetAnalysis: %v", err)
	}

	got, err := c.GetAnalysis(ctx, "key")
	if err != nil {
		t.Errorf("GetAnalysis: %v", err)
	}
	if got != "" {
		t.Errorf("GetAnalysis = %q, want miss", got)
	}

	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestKey(t *testing.T) {
	a := Key("document", "query")
	b := Key("document", "query")
	if a != b {
		t.Error("same inputs should produce the same key")
	}
	if Key("document", "other") == a {
		t.Error("different queries should produce different keys")
	}
	if Key("other", "query") == a {
		t.Error("different documents should produce different keys")
	}
	// The separator keeps (doc, query) pairs from colliding on concatenation.
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("boundary shift should change the key")
	}
}
