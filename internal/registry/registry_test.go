package registry

import (
	"testing"

	"github.com/vovakirdan/match3/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return "Stub" }
func (g stubGame) Reset(core.RuntimeConfig) error       { return nil }
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	Register(GameInfo{ID: "zz_stub_b", Title: "B"}, func() Game { return stubGame{id: "zz_stub_b"} })
	Register(GameInfo{ID: "zz_stub_a", Title: "A"}, func() Game { return stubGame{id: "zz_stub_a"} })

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("List not sorted: %v", ids)
		}
	}

	g, err := Create("zz_stub_a")
	if err != nil || g.ID() != "zz_stub_a" {
		t.Fatalf("Create returned %v, %v", g, err)
	}
	if !Exists("zz_stub_b") || Exists("zz_missing") {
		t.Error("Exists reported the wrong result")
	}
	if _, err := Create("zz_missing"); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "zz_dup"}, func() Game { return stubGame{} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate id")
		}
	}()
	Register(GameInfo{ID: "zz_dup"}, func() Game { return stubGame{} })
}
