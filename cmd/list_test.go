package cmd

import (
	"testing"

	"github.com/mj1618/grabtext/internal/model"
)

func TestListCommand_Flags(t *testing.T) {
	f := listCmd.Flags().Lookup("pid")
	if f == nil {
		t.Fatal("expected flag \"pid\" not found")
	}
	if f.Value.Type() != "int" {
		t.Errorf("flag pid: expected type int, got %q", f.Value.Type())
	}
}

func TestListCommand_IsRegistered(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "list" {
			return
		}
	}
	t.Error("list command not registered on root")
}

func TestFilterWindows(t *testing.T) {
	windows := []model.Window{
		{Handle: 3, PID: 30, Title: "Editor"},
		{Handle: 2, PID: 20, Title: "Terminal"},
		{Handle: 1, PID: 30, Title: "Editor - second"},
	}

	if got := filterWindows(windows, 0); len(got) != 3 {
		t.Errorf("pid 0 should keep every window, got %d", len(got))
	}

	got := filterWindows(windows, 30)
	if len(got) != 2 || got[0].Handle != 3 || got[1].Handle != 1 {
		t.Errorf("filter by pid 30 = %+v", got)
	}

	if got := filterWindows(windows, 99); got == nil || len(got) != 0 {
		t.Errorf("no match should be an empty, non-nil list, got %#v", got)
	}
}
