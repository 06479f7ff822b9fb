package services

import (
	"strings"
	"sync"
	"testing"

	"yulin/internal/storage"
	"yulin/internal/tree"
)

func TestSnapshotSaveAndRestore(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	tr := tree.NewCommentTree()
	var mu sync.Mutex
	svc := InitSnapshotService(tr, &mu, store)

	pid := 1
	tr.AddComment(1, "root", "Alice", nil)
	tr.AddComment(2, "reply", "Bob", &pid)

	svc.SaveNow()
	if !store.Exists(SnapshotFile) {
		t.Fatal("snapshot file missing after SaveNow")
	}
	data, _ := store.LoadText(SnapshotFile)
	if !strings.Contains(data, `"comments"`) {
		t.Errorf("snapshot is not the JSON document: %q", data)
	}

	// 清空树后从快照恢复
	if err := tr.FromJSON(`{"comments": []}`); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if tr.Len() != 0 {
		t.Fatalf("tree should be empty, has %d nodes", tr.Len())
	}
	if !svc.Restore() {
		t.Fatal("Restore reported no snapshot")
	}
	if tr.Len() != 2 {
		t.Errorf("restored tree has %d nodes, want 2", tr.Len())
	}
	node, ok := tr.Get(2)
	if !ok || node.ParentID == nil || *node.ParentID != 1 {
		t.Error("restored tree lost parent linkage")
	}
}

func TestRestoreWithoutSnapshot(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	svc := &SnapshotService{
		tr:    tree.NewCommentTree(),
		trMu:  &sync.Mutex{},
		store: store,
		queue: make(chan struct{}, 1),
	}
	if svc.Restore() {
		t.Error("Restore should report false when no snapshot exists")
	}
}
