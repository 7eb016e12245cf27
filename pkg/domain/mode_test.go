package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/wayfinder/pkg/domain"
)

func TestModes_FixedOrder(t *testing.T) {
	want := []string{"BFS", "DFS", "Greedy BFS", "A*"}
	got := domain.ModeNames()
	if len(got) != len(want) {
		t.Fatalf("ModeNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ModeNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMode_Next(t *testing.T) {
	tests := []struct {
		from, want domain.Mode
	}{
		{domain.BFS, domain.DFS},
		{domain.DFS, domain.GreedyBFS},
		{domain.GreedyBFS, domain.AStar},
		{domain.AStar, domain.BFS},
	}
	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("%v.Next() = %v, want %v", tt.from, got, tt.want)
		}
	}
}

func TestMode_NextOfInvalidMode(t *testing.T) {
	for _, m := range []domain.Mode{-1, -3, -4, 4, 99} {
		if got := m.Next(); got != domain.BFS {
			t.Errorf("Mode(%d).Next() = %v, want BFS", int(m), got)
		}
	}
	if got := domain.DrawMode(-2).Next(); got != domain.DrawWalls {
		t.Errorf("DrawMode(-2).Next() = %v, want Walls", got)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Mode
	}{
		{"BFS", domain.BFS},
		{"dfs", domain.DFS},
		{"Greedy BFS", domain.GreedyBFS},
		{"greedy", domain.GreedyBFS},
		{"A*", domain.AStar},
		{" astar ", domain.AStar},
		{"1", domain.BFS},
		{"2", domain.DFS},
		{"3", domain.GreedyBFS},
		{" 4 ", domain.AStar},
	}
	for _, tt := range tests {
		got, err := domain.ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"dijkstra", "0", "5", "-1"} {
		if _, err := domain.ParseMode(bad); err == nil {
			t.Errorf("ParseMode(%q): expected error", bad)
		}
	}
}

func TestMode_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]domain.Mode{"mode": domain.AStar})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"mode":"A*"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var decoded struct {
		Mode domain.Mode `json:"mode"`
	}
	if err := json.Unmarshal([]byte(`{"mode":"Greedy BFS"}`), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Mode != domain.GreedyBFS {
		t.Errorf("decoded %v", decoded.Mode)
	}
}

func TestDrawMode_Cycle(t *testing.T) {
	d := domain.DrawWalls
	seen := []string{}
	for i := 0; i < 4; i++ {
		seen = append(seen, d.String())
		d = d.Next()
	}
	want := []string{"Walls", "Agent", "Destination", "Walls"}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("cycle[%d] = %s, want %s", i, seen[i], want[i])
		}
	}
}
