package excel

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"statkit/domain/stats"
	"statkit/internal/errors"
)

// DatasetWriter exports a student dataset as CSV or XLSX, chosen by file extension
type DatasetWriter struct {
	logger *zap.Logger
}

// NewDatasetWriter creates a writer; a nil logger disables logging
func NewDatasetWriter(logger *zap.Logger) *DatasetWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetWriter{logger: logger}
}

// Write exports ds to path with a header row and no index column
func (w *DatasetWriter) Write(path string, ds *stats.Dataset) error {
	if ds == nil {
		return errors.InvalidInput("dataset is nil")
	}

	var err error
	switch fileTypeFor(path) {
	case fileTypeXLSX:
		err = w.writeXLSX(path, ds)
	default:
		err = w.writeCSV(path, ds)
	}
	if err != nil {
		return err
	}

	w.logger.Info("exported student dataset",
		zap.String("path", path),
		zap.Int("rows", ds.Len()))
	return nil
}

func (w *DatasetWriter) writeCSV(path string, ds *stats.Dataset) error {
	return writeAtomic(path, func(out io.Writer) error {
		cw := csv.NewWriter(out)
		if err := cw.Write(stats.DatasetColumns); err != nil {
			return errors.IOFailure("failed to write CSV header", err)
		}
		for _, r := range ds.Records {
			if err := cw.Write(formatRecord(r)); err != nil {
				return errors.IOFailure("failed to write CSV row", err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return errors.IOFailure("failed to flush CSV file", err)
		}
		return nil
	})
}

func (w *DatasetWriter) writeXLSX(path string, ds *stats.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(stats.DatasetColumns))
	for i, col := range stats.DatasetColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(defaultSheet, "A1", &header); err != nil {
		return errors.IOFailure("failed to write XLSX header", err)
	}

	for i, r := range ds.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.IOFailure("failed to address XLSX row", err)
		}
		row := []interface{}{
			r.Score,
			r.StudyHours,
			r.AttendanceRate,
			r.PreviousGPA,
			string(r.Gender),
			string(r.TeachingMethod),
			string(r.SchoolType),
			r.Passed,
		}
		if err := f.SetSheetRow(defaultSheet, cell, &row); err != nil {
			return errors.IOFailure("failed to write XLSX row", err)
		}
	}

	return writeAtomic(path, func(out io.Writer) error {
		if err := f.Write(out); err != nil {
			return errors.IOFailure("failed to save XLSX file", err)
		}
		return nil
	})
}

// writeAtomic writes into a temporary file next to path and renames it into
// place; a failed write never leaves a partial file at path.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.IOFailure("failed to create output file", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return errors.IOFailure("failed to set output file mode", err)
	}
	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return errors.IOFailure("failed to close output file", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.IOFailure("failed to move output file into place", err)
	}
	return nil
}

func formatRecord(r stats.StudentRecord) []string {
	return []string{
		formatFloat(r.Score),
		formatFloat(r.StudyHours),
		formatFloat(r.AttendanceRate),
		formatFloat(r.PreviousGPA),
		string(r.Gender),
		string(r.TeachingMethod),
		string(r.SchoolType),
		strconv.Itoa(r.Passed),
	}
}

// formatFloat writes the shortest decimal text that parses back to v
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fileTypeFor(path string) string {
	if strings.ToLower(filepath.Ext(path)) == ".xlsx" {
		return fileTypeXLSX
	}
	return fileTypeCSV
}
