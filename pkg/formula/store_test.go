package formula

import "testing"

func TestStoreReplaceNotifiesInOrder(t *testing.T) {
	s := NewStore()
	var log []string
	s.Subscribe(func(c Change) { log = append(log, "first") })
	unsub := s.Subscribe(func(c Change) { log = append(log, "second") })

	f := mustDerive(t, "x")
	change, ok := s.Replace(f)
	if !ok || change.Generation != 1 || change.Previous != nil || change.Current != f {
		t.Fatalf("change = %+v, ok = %v", change, ok)
	}
	if len(log) != 2 || log[0] != "first" || log[1] != "second" {
		t.Errorf("notification order = %v", log)
	}

	if _, ok := s.Replace(f); ok {
		t.Error("re-installing the current document should be a no-op")
	}
	if _, ok := s.Replace(nil); ok {
		t.Error("installing nil should be a no-op")
	}

	unsub()
	g := mustDerive(t, "y")
	change, _ = s.Replace(g)
	if change.Previous != f || s.Current() != g || s.Generation() != 2 {
		t.Errorf("second change = %+v", change)
	}
	if len(log) != 3 {
		t.Errorf("unsubscribed callback ran: %v", log)
	}
}
