package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	kv := NewSQLite(db)

	if _, ok, err := kv.Load(ctx, "sales_records"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v, want absent", ok, err)
	}

	if err := kv.Save(ctx, "sales_records", []byte(`[{"entry_id":"a"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := kv.Load(ctx, "sales_records")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(got) != `[{"entry_id":"a"}]` {
		t.Errorf("value = %s", got)
	}

	// overwrite
	if err := kv.Save(ctx, "sales_records", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _, _ = kv.Load(ctx, "sales_records")
	if string(got) != `[]` {
		t.Errorf("after overwrite = %s", got)
	}
}
