package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	in := `Task ID,Task Name,Duration (days),Resource,Dependencies
T1,Plan,1,PM,
T2,Build,3,Dev,T1
T3,Test,1,QA,T1;T2
`
	records, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0]["Task ID"] != "T1" || records[0]["Task Name"] != "Plan" {
		t.Errorf("unexpected first record: %v", records[0])
	}
	if records[2]["Dependencies"] != "T1;T2" {
		t.Errorf("expected raw delimiter preserved, got %v", records[2]["Dependencies"])
	}
}

func TestReadCSV_ShortRowsPadded(t *testing.T) {
	in := "task_id,duration,dependencies\nT1,2\n"
	records, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["dependencies"] != "" {
		t.Errorf("expected missing cell padded to empty, got %v", records[0]["dependencies"])
	}
}

func TestReadCSV_Empty(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestReadJSON_BareArray(t *testing.T) {
	in := `[
		{"task_id": "a", "duration": 2, "dependencies": "b,c"},
		{"task_id": "b", "duration": 1.5}
	]`
	records, err := ReadJSON([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["task_id"] != "a" {
		t.Errorf("unexpected record: %v", records[0])
	}
	if records[1]["duration"] != 1.5 {
		t.Errorf("expected numeric value preserved, got %T %v", records[1]["duration"], records[1]["duration"])
	}
}

func TestReadJSON_TasksObject(t *testing.T) {
	in := `{"tasks": [{"Task ID": "x", "Duration": 4}]}`
	records, err := ReadJSON([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0]["Task ID"] != "x" {
		t.Errorf("unexpected records: %v", records)
	}
}

func TestReadJSON_ListDependencies(t *testing.T) {
	in := `[{"task_id": "a", "dependencies": ["b", "c"]}]`
	records, err := ReadJSON([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deps, ok := records[0]["dependencies"].([]any)
	if !ok || len(deps) != 2 {
		t.Errorf("expected list value preserved, got %T %v", records[0]["dependencies"], records[0]["dependencies"])
	}
}

func TestReadJSON_Invalid(t *testing.T) {
	for _, in := range []string{"{not json", `{"other": 1}`, `"just a string"`} {
		if _, err := ReadJSON([]byte(in)); err == nil {
			t.Errorf("input %q: expected error", in)
		}
	}
}

func TestReadFile_ByExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "tasks.csv")
	if err := os.WriteFile(csvPath, []byte("task_id,duration\na,1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "tasks.json")
	if err := os.WriteFile(jsonPath, []byte(`[{"task_id": "a"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{csvPath, jsonPath} {
		records, err := ReadFile(path)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", path, err)
			continue
		}
		if len(records) != 1 {
			t.Errorf("%s: expected 1 record, got %d", path, len(records))
		}
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
