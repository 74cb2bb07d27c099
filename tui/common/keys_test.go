package common

import "testing"

func TestDefaultKeyMap_HasCriticalBindings(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ForceQuit.Keys()) == 0 || km.ForceQuit.Keys()[0] != "ctrl+c" {
		t.Fatalf("expected ctrl+c force quit binding")
	}
	if got := km.Search.Keys(); len(got) != 2 || got[0] != "/" || got[1] != "s" {
		t.Fatalf("expected / and s to start a search, got %v", got)
	}
	for _, k := range km.Quit.Keys() {
		if k == "ctrl+c" {
			t.Fatalf("q binding must not swallow ctrl+c")
		}
	}
}

func TestKeyMaps_NoDuplicateNormalKeys(t *testing.T) {
	km := DefaultKeyMap()
	seen := map[string]bool{}
	for _, b := range []interface{ Keys() []string }{
		km.Up, km.Down, km.Select, km.Quit, km.Back, km.ForceQuit, km.Search,
		km.CycleSort, km.CycleTime, km.ScrollDown, km.ScrollUp, km.Refresh,
		km.OpenBrowser, km.CopyURL,
	} {
		for _, k := range b.Keys() {
			if seen[k] {
				t.Fatalf("key %q bound twice", k)
			}
			seen[k] = true
		}
	}
}

func TestDefaultEditKeyMap(t *testing.T) {
	em := DefaultEditKeyMap()
	if em.Submit.Keys()[0] != "enter" || em.Cancel.Keys()[0] != "esc" {
		t.Fatalf("unexpected submit/cancel bindings")
	}
}
