package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nconklindev/gridedit/internal/grid"
	"github.com/nconklindev/gridedit/internal/session"
	"github.com/nconklindev/gridedit/internal/types"

	"github.com/xuri/excelize/v2"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected types.Format
		wantErr  bool
	}{
		{"CSV", "data.csv", types.FormatCSV, false},
		{"Upper case CSV", "DATA.CSV", types.FormatCSV, false},
		{"XLSX", "/tmp/book.xlsx", types.FormatXLSX, false},
		{"Text file", "notes.txt", "", true},
		{"No extension", "README", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatOf(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatOf(%q) error = %v; wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("FormatOf(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		suffix   string
		format   types.Format
		expected string
	}{
		{"Same format", "/data/people.csv", "_edited", "", "/data/people_edited.csv"},
		{"CSV to XLSX", "/data/people.csv", "_edited", types.FormatXLSX, "/data/people_edited.xlsx"},
		{"XLSX to CSV", "book.xlsx", "_out", types.FormatCSV, "book_out.csv"},
		{"Empty suffix", "a.csv", "", types.FormatCSV, "a.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputPath(tt.input, tt.suffix, tt.format)
			if got != tt.expected {
				t.Errorf("OutputPath(%q, %q, %q) = %q; want %q", tt.input, tt.suffix, tt.format, got, tt.expected)
			}
		})
	}
}

func TestReadFile_CSVIsRaw(t *testing.T) {
	tmpDir := t.TempDir()
	inputFile := filepath.Join(tmpDir, "input.csv")

	// Quotes and the trailing newline must survive untouched.
	raw := "name,note\n\"Alice\",\"a,b\"\n"
	if err := os.WriteFile(inputFile, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFile(inputFile)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if data.Text != raw {
		t.Errorf("Text = %q; want %q", data.Text, raw)
	}
	if data.Format != types.FormatCSV || data.Path != inputFile {
		t.Errorf("FileData = %+v", data)
	}
}

func TestReadFile_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := ReadFile(filepath.Join(tmpDir, "missing.csv")); err == nil {
		t.Errorf("expected error for missing file")
	}

	txt := filepath.Join(tmpDir, "notes.txt")
	os.WriteFile(txt, []byte("a,b"), 0o644)
	if _, err := ReadFile(txt); err == nil {
		t.Errorf("expected error for unsupported extension")
	}
}

func TestReadFile_XLSXSkipsTitleRows(t *testing.T) {
	tmpDir := t.TempDir()
	inputFile := filepath.Join(tmpDir, "input.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "Quarterly report")
	f.SetSheetRow(sheet, "A3", &[]interface{}{"Name", "Hours", "Team"})
	f.SetSheetRow(sheet, "A4", &[]interface{}{"Alice", 8, "Ops"})
	f.SetSheetRow(sheet, "A5", &[]interface{}{"Bob", 7.5})
	if err := f.SaveAs(inputFile); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, err := ReadFile(inputFile)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if data.HeaderRow != 2 {
		t.Errorf("HeaderRow = %d; want 2", data.HeaderRow)
	}
	want := "Name,Hours,Team\nAlice,8,Ops\nBob,7.5,"
	if data.Text != want {
		t.Errorf("Text = %q; want %q", data.Text, want)
	}
}

func TestWriteFile_XLSXRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.xlsx")

	g := grid.Grid{{"name", "age"}, {"Alice", "31"}, {"Bob", ""}}
	if err := WriteFile(path, g); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if want := grid.Serialize(g); data.Text != want {
		t.Errorf("Text = %q; want %q", data.Text, want)
	}
}

func TestWriteFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteFile(path, grid.Grid{{"a", "b"}, {""}}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a,b\n" {
		t.Errorf("file = %q; want %q", got, "a,b\n")
	}
}

func TestExport_EndToEnd(t *testing.T) {
	tmpDir := t.TempDir()
	inputFile := filepath.Join(tmpDir, "people.csv")
	os.WriteFile(inputFile, []byte("name,age\nAlice,30\nBob,25"), 0o644)

	data, err := ReadFile(inputFile)
	if err != nil {
		t.Fatal(err)
	}

	s := session.New(session.Options{})
	s.Load(data.Text)
	s.EditCell(1, 1, "31")
	s.DeleteRow(2)
	s.AddRow()

	outputFile := OutputPath(inputFile, "_edited", "")
	result, err := Export(s, inputFile, outputFile)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	got, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	if want := "name,age\nAlice,31\n,"; string(got) != want {
		t.Errorf("exported file = %q; want %q", got, want)
	}
	if result.Rows != 3 || result.Columns != 2 || result.Format != types.FormatCSV {
		t.Errorf("result = %+v", result)
	}
}

func TestExport_EmptySession(t *testing.T) {
	s := session.New(session.Options{})
	outputFile := filepath.Join(t.TempDir(), "out.csv")

	if _, err := Export(s, "in.csv", outputFile); err == nil {
		t.Fatalf("expected error exporting an empty session")
	}
	if _, err := os.Stat(outputFile); !os.IsNotExist(err) {
		t.Errorf("expected no output file, stat err = %v", err)
	}
}

func TestFindHeaderRow(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected int
	}{
		{"First row", [][]string{{"a", "b"}, {"1", "2"}}, 0},
		{"After title", [][]string{{"Title"}, {}, {"Name", "Hours"}, {"x", "1"}}, 2},
		{"Numbers only", [][]string{{"1", "2"}, {"3", "4"}}, -1},
		{"Single column", [][]string{{"Name"}, {"Alice"}}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findHeaderRow(tt.rows); got != tt.expected {
				t.Errorf("findHeaderRow() = %d; want %d", got, tt.expected)
			}
		})
	}
}
