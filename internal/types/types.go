package types

type Format string

const (
	FormatCSV  Format = ".csv"
	FormatXLSX Format = ".xlsx"
)

type ExportResult struct {
	InputFile  string
	OutputFile string
	Format     Format
	Rows       int
	Columns    int
}

// FileData is the decoded text of a loaded file. XLSX sources are flattened
// into the same comma/newline text so every format loads the same way.
type FileData struct {
	Path      string
	Format    Format
	Text      string
	HeaderRow int
}
