package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const montlakeYAML = `name: montlake
city: seattle
gps_bounds: {min_lon: -122.31, min_lat: 47.63, max_lon: -122.29, max_lat: 47.65}
bounds: {min_x: 0, min_y: 0, max_x: 1000, max_y: 1000}
buildings:
  - id: 1
    points: [{x: 100, y: 100}, {x: 140, y: 100}, {x: 140, y: 140}, {x: 100, y: 140}]
  - id: 2
    points: [{x: 500, y: 500}, {x: 560, y: 500}, {x: 560, y: 560}, {x: 500, y: 560}]
intersections:
  - id: 1
    border: true
    points: [{x: 0, y: 480}, {x: 20, y: 480}, {x: 20, y: 500}, {x: 0, y: 500}]
`

const riversideYAML = `scenario_name: riverside
map_name: montlake
people:
  - id: 0
    trips:
      - id: 0
        from: {kind: building, id: 1}
        to: {kind: building, id: 2}
        depart_at: 7h30m
        purpose: [Home, Work]
        mode: Walk
        trip_time: 10m
        trip_dist: 1200
      - id: 1
        from: {kind: border, id: 1, pt: {x: -300, y: 490}}
        to: {kind: building, id: 2}
        depart_at: 8h
        purpose: [Home, Shopping]
        mode: Drive
        trip_time: 5m
        trip_dist: 3000
      - id: 2
        from: {kind: building, id: 9}
        to: {kind: building, id: 1}
        depart_at: 17h
        purpose: [Shopping, Home]
        mode: Drive
        trip_time: 6m
        trip_dist: 3100
`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func dataDirFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "maps/montlake.yaml", montlakeYAML)
	writeFile(t, root, "scenarios/montlake/riverside.yaml", riversideYAML)
	return root
}

// resetFlags puts every flag back to its default so commands can run more
// than once in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	// Keep the user's config file out of the test.
	args = append(args, "--config", filepath.Join(t.TempDir(), "config.yaml"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	root := dataDirFixture(t)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "maps",
			args: []string{"list", "maps"},
			want: "montlake\n",
		},
		{
			name: "scenarios of the default map",
			args: []string{"list", "scenarios"},
			want: "riverside\n",
		},
		{
			name: "scenarios of a named map",
			args: []string{"list", "scenarios", "--map", "montlake"},
			want: "riverside\n",
		},
		{
			name: "empty category",
			args: []string{"list", "polygons"},
			want: "No polygons in input/seattle/polygons\n",
		},
		{
			name:    "unknown category",
			args:    []string{"list", "roads"},
			wantErr: true,
		},
		{
			name:    "unknown map",
			args:    []string{"list", "datasets", "--map", "ballard"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, append(tt.args, "--data-dir", root)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListWithoutMaps(t *testing.T) {
	_, err := execute(t, "list", "scenarios", "--data-dir", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no maps") {
		t.Errorf("error = %v, want a no maps error", err)
	}
}

func TestTripsPrint(t *testing.T) {
	root := dataDirFixture(t)

	got, err := execute(t, "trips", "riverside", "--print", "--data-dir", root)
	if err != nil {
		t.Fatalf("trips error = %v", err)
	}

	for _, want := range []string{
		"Scenario riverside on montlake: 3 trips, 2 on the map",
		"Leave at 7:30:00",
		"Mode: Drive",
		"Trip distance: 3.0 km",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Trip 2 ") {
		t.Error("trips from unknown buildings should be clipped")
	}
}

func TestTripsUnknownScenario(t *testing.T) {
	root := dataDirFixture(t)
	if _, err := execute(t, "trips", "downtown", "--print", "--data-dir", root); err == nil {
		t.Error("expected an error for a missing scenario")
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maptools", "config.yaml")

	run := func(args ...string) (string, error) {
		resetFlags(rootCmd)
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(append([]string{"init", "--config", path}, args...))
		err := rootCmd.Execute()
		return out.String(), err
	}

	got, err := run("--data-dir", "/srv/maps", "--map", "montlake")
	if err != nil {
		t.Fatalf("init error = %v", err)
	}
	if !strings.Contains(got, path) {
		t.Errorf("output = %q, want the written path", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"data_dir: /srv/maps", "default_map: montlake", "version: 1"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("config missing %q:\n%s", want, data)
		}
	}

	if _, err := run(); err == nil {
		t.Error("init should refuse to overwrite an existing config")
	}
	if _, err := run("--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}

func TestVersion(t *testing.T) {
	got, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "maptools ") || !strings.Contains(got, "commit:") {
		t.Errorf("version output = %q", got)
	}
}
