package excel

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"statkit/domain/stats"
	"statkit/internal/errors"
)

// DataReader handles reading exported CSV and XLSX datasets
type DataReader struct {
	filePath string
	fileType string
	logger   *zap.Logger
}

// NewDataReader creates a reader for filePath; the format follows the extension
func NewDataReader(filePath string, logger *zap.Logger) *DataReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataReader{filePath: filePath, fileType: fileTypeFor(filePath), logger: logger}
}

// ReadData reads the file into raw header/row form
func (r *DataReader) ReadData() (*ExcelData, error) {
	if _, err := os.Stat(r.filePath); err != nil {
		return nil, errors.IOFailure(strings.ToUpper(r.fileType)+" file not accessible: "+r.filePath, err)
	}

	start := time.Now()
	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case fileTypeXLSX:
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readCSVRows()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 1 {
		return nil, errors.InvalidInput(strings.ToUpper(r.fileType) + " file has no header row")
	}

	r.logger.Debug("read tabular file",
		zap.String("path", r.filePath),
		zap.String("type", r.fileType),
		zap.Int("rows", len(rows)-1),
		zap.Duration("elapsed", time.Since(start)))

	return processRows(rows), nil
}

// ReadDataset reads and validates a student dataset written by DatasetWriter
func (r *DataReader) ReadDataset() (*stats.Dataset, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	if err := validateHeaders(data.Headers); err != nil {
		return nil, err
	}

	records := make([]stats.StudentRecord, len(data.Rows))
	for i, row := range data.Rows {
		rec, err := parseRecord(row)
		if err != nil {
			// row numbers are 1-based and count the header
			return nil, errors.Wrapf(err, "row %d", i+2)
		}
		records[i] = rec
	}

	return &stats.Dataset{Records: records}, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IOFailure("failed to open XLSX file", err)
	}
	defer f.Close()

	rows, err := f.GetRows(defaultSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.IOFailure("failed to read "+defaultSheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IOFailure("failed to open CSV file", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "failed to parse CSV file"))
	}
	return rows, nil
}

// processRows converts raw string rows into ExcelData format
func processRows(rows [][]string) *ExcelData {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	return &ExcelData{Headers: headers, Rows: dataRows}
}

func validateHeaders(headers []string) error {
	if len(headers) != len(stats.DatasetColumns) {
		return errors.InvalidInputf("expected %d columns, got %d", len(stats.DatasetColumns), len(headers))
	}
	for i, col := range stats.DatasetColumns {
		if headers[i] != col {
			return errors.InvalidInputf("column %d: expected %q, got %q", i+1, col, headers[i])
		}
	}
	return nil
}

func parseRecord(row RawRowData) (stats.StudentRecord, error) {
	var rec stats.StudentRecord
	var err error

	floats := []struct {
		column string
		dst    *float64
	}{
		{"score", &rec.Score},
		{"study_hours", &rec.StudyHours},
		{"attendance_rate", &rec.AttendanceRate},
		{"previous_gpa", &rec.PreviousGPA},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(row[f.column], 64); err != nil {
			return rec, errors.InvalidInputf("%s: invalid number %q", f.column, row[f.column])
		}
	}

	var ok bool
	if rec.Gender, ok = stats.ParseGender(row["gender"]); !ok {
		return rec, errors.InvalidInputf("gender: unknown value %q", row["gender"])
	}
	if rec.TeachingMethod, ok = stats.ParseTeachingMethod(row["teaching_method"]); !ok {
		return rec, errors.InvalidInputf("teaching_method: unknown value %q", row["teaching_method"])
	}
	if rec.SchoolType, ok = stats.ParseSchoolType(row["school_type"]); !ok {
		return rec, errors.InvalidInputf("school_type: unknown value %q", row["school_type"])
	}

	switch row["passed"] {
	case "0":
		rec.Passed = 0
	case "1":
		rec.Passed = 1
	default:
		return rec, errors.InvalidInputf("passed: expected 0 or 1, got %q", row["passed"])
	}

	return rec, nil
}
