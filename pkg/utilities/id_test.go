package utilities

import "testing"

func TestNewKSUID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewKSUID()
		if id == "" {
			t.Fatal("empty ksuid")
		}
		if seen[id] {
			t.Fatalf("duplicate ksuid %s", id)
		}
		seen[id] = true
	}
}

func TestNewSnowflakeID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewSnowflakeID()
		if id == "" {
			t.Fatal("empty snowflake id")
		}
		if seen[id] {
			t.Fatalf("duplicate snowflake id %s", id)
		}
		seen[id] = true
	}
}

func TestSnowflakeNodeID_Default(t *testing.T) {
	t.Setenv("SNOWFLAKE_NODE", "")
	if got := SnowflakeNodeID(); got != 1 {
		t.Errorf("node id = %d, want 1", got)
	}
	t.Setenv("SNOWFLAKE_NODE", "7")
	if got := SnowflakeNodeID(); got != 7 {
		t.Errorf("node id = %d, want 7", got)
	}
	t.Setenv("SNOWFLAKE_NODE", "not-a-number")
	if got := SnowflakeNodeID(); got != 1 {
		t.Errorf("node id = %d, want fallback 1", got)
	}
}
