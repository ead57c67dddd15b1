package excel

// RawRowData represents a row of raw tabular data as header -> cell text
type RawRowData map[string]string

// ExcelData represents a complete table as read from a CSV or XLSX file
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// Supported file types, selected by extension
const (
	fileTypeCSV  = "csv"
	fileTypeXLSX = "xlsx"
)

// defaultSheet is the sheet written and read in XLSX workbooks
const defaultSheet = "Sheet1"
