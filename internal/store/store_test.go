package store

import (
	"database/sql"
	"testing"

	"crosspost/internal/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSessionSaveGetClear(t *testing.T) {
	ss := NewSessionStore(setupTestDB(t))

	_, _, ok, err := ss.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected no session initially")
	}

	if err := ss.Save([]byte("tok-123"), false); err != nil {
		t.Fatalf("save: %v", err)
	}

	token, sealed, ok, err := ss.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected a session")
	}
	if string(token) != "tok-123" {
		t.Errorf("token = %q, want %q", token, "tok-123")
	}
	if sealed {
		t.Error("expected unsealed token")
	}

	if err := ss.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, _, ok, _ := ss.Get(); ok {
		t.Error("expected no session after clear")
	}
}

func TestSessionSaveReplaces(t *testing.T) {
	ss := NewSessionStore(setupTestDB(t))

	ss.Save([]byte("first"), false)
	if err := ss.Save([]byte("second"), true); err != nil {
		t.Fatalf("save: %v", err)
	}

	token, sealed, _, err := ss.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(token) != "second" {
		t.Errorf("token = %q, want %q", token, "second")
	}
	if !sealed {
		t.Error("expected sealed flag to be replaced too")
	}
}

func TestConnectionUnknownPlatformReadsDisconnected(t *testing.T) {
	cs := NewConnectionStore(setupTestDB(t))

	conn, err := cs.Get("linkedin")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if conn.Connected {
		t.Error("unknown platform should read as disconnected")
	}
}

func TestConnectionUpsertAndDisconnect(t *testing.T) {
	cs := NewConnectionStore(setupTestDB(t))

	if err := cs.Upsert("twitter", true, "wren"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	conn, err := cs.Get("twitter")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !conn.Connected {
		t.Error("expected connected")
	}
	if conn.ScreenName != "wren" {
		t.Errorf("screen_name = %q, want %q", conn.ScreenName, "wren")
	}
	if conn.CheckedAt.IsZero() {
		t.Error("expected checked_at to be set")
	}

	if err := cs.Disconnect("twitter"); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	conn, _ = cs.Get("twitter")
	if conn.Connected {
		t.Error("expected disconnected")
	}
	if conn.ScreenName != "" {
		t.Errorf("screen_name = %q, want empty", conn.ScreenName)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	ds := NewDraftStore(setupTestDB(t))

	text, err := ds.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty draft, got %q", text)
	}

	if err := ds.Save("hello world"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := ds.Save("hello again"); err != nil {
		t.Fatalf("save replace: %v", err)
	}

	text, _ = ds.Get()
	if text != "hello again" {
		t.Errorf("text = %q, want %q", text, "hello again")
	}

	if err := ds.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	text, _ = ds.Get()
	if text != "" {
		t.Errorf("expected empty draft after clear, got %q", text)
	}
}

func TestAttachmentFieldsMoveTogether(t *testing.T) {
	as := NewAttachmentStore(setupTestDB(t))

	if err := as.Save("photo.jpg", []byte{0xFF, 0xD8}, "/tmp/photo.jpg"); err != nil {
		t.Fatalf("save: %v", err)
	}

	name, data, preview, ok, err := as.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected attachment")
	}
	if name != "photo.jpg" || preview != "/tmp/photo.jpg" || len(data) != 2 {
		t.Errorf("got (%q, %d bytes, %q)", name, len(data), preview)
	}

	if err := as.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	_, _, _, ok, _ = as.Get()
	if ok {
		t.Error("expected no attachment after clear")
	}

	// Clearing twice is a no-op.
	if err := as.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestHistoryAppendAndList(t *testing.T) {
	hs := NewHistoryStore(setupTestDB(t))

	if _, err := hs.Append("linkedin", true, "Posted successfully!", 42, false); err != nil {
		t.Fatalf("append: %v", err)
	}
	entry, err := hs.Append("twitter", false, "Tweet failed: duplicate content", 42, true)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if entry.ID == "" {
		t.Error("expected assigned id")
	}

	entries, err := hs.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Platform == "twitter" {
			if e.OK {
				t.Error("expected twitter entry to be a failure")
			}
			if !e.HadImage {
				t.Error("expected had_image for twitter entry")
			}
		}
	}
}

func TestSettingsGetSetDelete(t *testing.T) {
	st := NewSettingsStore(setupTestDB(t))

	v, err := st.Get("callback_addr")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "" {
		t.Errorf("expected empty value, got %q", v)
	}

	if err := st.Set("callback_addr", "127.0.0.1:8976"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set("callback_addr", "127.0.0.1:9000"); err != nil {
		t.Fatalf("set replace: %v", err)
	}

	v, _ = st.Get("callback_addr")
	if v != "127.0.0.1:9000" {
		t.Errorf("value = %q", v)
	}

	if err := st.Delete("callback_addr"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	v, _ = st.Get("callback_addr")
	if v != "" {
		t.Errorf("expected empty after delete, got %q", v)
	}
}
