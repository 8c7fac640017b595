package cart

import (
	"testing"

	"github.com/gin-contrib/sessions"
)

// fakeSession is an in-memory sessions.Session for tests.
type fakeSession struct {
	values map[interface{}]interface{}
	saves  int
}

func newFakeSession() *fakeSession {
	return &fakeSession{values: map[interface{}]interface{}{}}
}

func (s *fakeSession) ID() string { return "test-session" }

func (s *fakeSession) Get(key interface{}) interface{} { return s.values[key] }

func (s *fakeSession) Set(key interface{}, val interface{}) { s.values[key] = val }

func (s *fakeSession) Delete(key interface{}) { delete(s.values, key) }

func (s *fakeSession) Clear() { s.values = map[interface{}]interface{}{} }

func (s *fakeSession) AddFlash(value interface{}, vars ...string) {}

func (s *fakeSession) Flashes(vars ...string) []interface{} { return nil }

func (s *fakeSession) Options(sessions.Options) {}

func (s *fakeSession) Save() error {
	s.saves++
	return nil
}

func TestCart_AddAccumulates(t *testing.T) {
	c := New(newFakeSession())

	c.Add(7, 2, false)
	c.Add(7, 3, false)

	if got := c.Count(); got != 5 {
		t.Errorf("Expected count 5, got %d", got)
	}
	if got := c.Len(); got != 1 {
		t.Errorf("Expected 1 line, got %d", got)
	}
}

func TestCart_AddOverwriteReplaces(t *testing.T) {
	c := New(newFakeSession())

	c.Add(7, 5, false)
	c.Add(7, 2, true)

	if got := c.Count(); got != 2 {
		t.Errorf("Expected count 2 after overwrite, got %d", got)
	}
}

func TestCart_QuantityFloorsAtOne(t *testing.T) {
	c := New(newFakeSession())

	c.Add(7, 0, false)
	if got := c.Count(); got != 1 {
		t.Errorf("Expected floor of 1 on add, got %d", got)
	}

	c.Add(7, -10, true)
	if got := c.Count(); got != 1 {
		t.Errorf("Expected floor of 1 on overwrite, got %d", got)
	}
}

func TestCart_RemoveIsIdempotent(t *testing.T) {
	session := newFakeSession()
	c := New(session)

	c.Add(7, 2, false)
	c.Add(9, 1, false)

	c.Remove(7)
	if got := c.Len(); got != 1 {
		t.Fatalf("Expected 1 line after remove, got %d", got)
	}

	saves := session.saves
	c.Remove(7)
	c.Remove(42)
	if session.saves != saves {
		t.Error("Expected removing absent lines not to rewrite the session")
	}
	if got := c.Len(); got != 1 {
		t.Errorf("Expected 1 line, got %d", got)
	}
}

func TestCart_Clear(t *testing.T) {
	c := New(newFakeSession())

	c.Add(7, 2, false)
	c.Add(9, 4, false)
	c.Clear()

	if got := c.Len(); got != 0 {
		t.Errorf("Expected empty cart, got %d lines", got)
	}
	if got := c.Count(); got != 0 {
		t.Errorf("Expected count 0, got %d", got)
	}
}

func TestCart_SanitizePurgesGarbage(t *testing.T) {
	session := newFakeSession()
	session.Set(sessionKeyCart, map[string]Entry{
		"7":        {Qty: 2},
		"0":        {Qty: 3},
		"-4":       {Qty: 1},
		"notanid":  {Qty: 1},
		"9":        {Qty: 0},
		"12345678": {Qty: 1},
	})

	c := New(session)
	if got := c.Len(); got != 2 {
		t.Errorf("Expected 2 surviving lines, got %d", got)
	}
	if got := c.Count(); got != 3 {
		t.Errorf("Expected count 3, got %d", got)
	}
}

func TestCart_CorruptPayloadResets(t *testing.T) {
	session := newFakeSession()
	session.Set(sessionKeyCart, "not a cart")

	c := New(session)
	if got := c.Len(); got != 0 {
		t.Errorf("Expected reset cart, got %d lines", got)
	}

	c.Add(7, 1, false)
	if got := c.Count(); got != 1 {
		t.Errorf("Expected cart usable after reset, got count %d", got)
	}
}

func TestCart_SessionKeyIsStable(t *testing.T) {
	c := New(newFakeSession())

	first := c.SessionKey()
	if first == "" {
		t.Fatal("Expected a session key to be minted")
	}
	if second := c.SessionKey(); second != first {
		t.Errorf("Expected stable session key, got %q then %q", first, second)
	}
}

func TestCart_CurrentOrderPointer(t *testing.T) {
	c := New(newFakeSession())

	if got := c.CurrentOrderID(); got != 0 {
		t.Errorf("Expected no current order, got %d", got)
	}

	c.SetCurrentOrderID(42)
	if got := c.CurrentOrderID(); got != 42 {
		t.Errorf("Expected current order 42, got %d", got)
	}

	c.ClearCurrentOrderID()
	if got := c.CurrentOrderID(); got != 0 {
		t.Errorf("Expected pointer cleared, got %d", got)
	}
}
