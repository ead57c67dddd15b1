package excel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statkit/domain/stats"
	"statkit/internal/errors"
)

func sampleDataset() *stats.Dataset {
	return &stats.Dataset{Records: []stats.StudentRecord{
		{Score: 71.25, StudyHours: 6.5, AttendanceRate: 88.125, PreviousGPA: 3.2, Gender: stats.GenderFemale, TeachingMethod: stats.MethodB, SchoolType: stats.SchoolPublic, Passed: 1},
		{Score: 49.999999999999, StudyHours: 0, AttendanceRate: 40, PreviousGPA: 1.5, Gender: stats.GenderMale, TeachingMethod: stats.MethodC, SchoolType: stats.SchoolPrivate, Passed: 0},
		{Score: 100, StudyHours: 12.125, AttendanceRate: 100, PreviousGPA: 4, Gender: stats.GenderMale, TeachingMethod: stats.MethodA, SchoolType: stats.SchoolPublic, Passed: 1},
	}}
}

func TestDatasetWriter_CSVLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	require.NoError(t, NewDatasetWriter(nil).Write(path, sampleDataset()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "score,study_hours,attendance_rate,previous_gpa,gender,teaching_method,school_type,passed", lines[0])
	assert.Equal(t, "71.25,6.5,88.125,3.2,F,B,Public,1", lines[1])
	assert.Equal(t, "100,12.125,100,4,M,A,Public,1", lines[3])
}

func TestDatasetIO_RoundTrip(t *testing.T) {
	for _, name := range []string{"students.csv", "students.xlsx", "students.txt"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := sampleDataset()

			require.NoError(t, NewDatasetWriter(nil).Write(path, want))
			got, err := NewDataReader(path, nil).ReadDataset()
			require.NoError(t, err)

			require.Equal(t, want.Len(), got.Len())
			for i := range want.Records {
				w, g := want.Records[i], got.Records[i]
				assert.InDelta(t, w.Score, g.Score, 1e-12)
				assert.InDelta(t, w.StudyHours, g.StudyHours, 1e-12)
				assert.InDelta(t, w.AttendanceRate, g.AttendanceRate, 1e-12)
				assert.InDelta(t, w.PreviousGPA, g.PreviousGPA, 1e-12)
				assert.Equal(t, w.Gender, g.Gender)
				assert.Equal(t, w.TeachingMethod, g.TeachingMethod)
				assert.Equal(t, w.SchoolType, g.SchoolType)
				assert.Equal(t, w.Passed, g.Passed)
			}
		})
	}
}

func TestDatasetWriter_UnwritablePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing", "nested")
	for _, name := range []string{"out.csv", "out.xlsx"} {
		err := NewDatasetWriter(nil).Write(filepath.Join(dir, name), sampleDataset())
		require.Error(t, err)
		assert.Equal(t, errors.CodeIOFailure, errors.GetCode(err), name)
	}
}

func TestDatasetWriter_FailedWriteLeavesNoFiles(t *testing.T) {
	for _, name := range []string{"out.csv", "out.xlsx"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			// a directory at the destination makes the final rename fail
			target := filepath.Join(dir, name)
			require.NoError(t, os.Mkdir(target, 0o755))

			err := NewDatasetWriter(nil).Write(target, sampleDataset())
			require.Error(t, err)
			assert.Equal(t, errors.CodeIOFailure, errors.GetCode(err))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.True(t, entries[0].IsDir())
		})
	}
}

func TestDatasetWriter_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, NewDatasetWriter(nil).Write(path, sampleDataset()))

	got, err := NewDataReader(path, nil).ReadDataset()
	require.NoError(t, err)
	assert.Equal(t, sampleDataset().Len(), got.Len())
}

func TestDataReader_MissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv"), nil).ReadDataset()
	assert.Equal(t, errors.CodeIOFailure, errors.GetCode(err))
}

func TestDataReader_RejectsMalformedContent(t *testing.T) {
	cases := map[string]string{
		"wrong header":   "score,hours\n1,2\n",
		"bad number":     "score,study_hours,attendance_rate,previous_gpa,gender,teaching_method,school_type,passed\nabc,1,80,3,M,A,Public,1\n",
		"unknown gender": "score,study_hours,attendance_rate,previous_gpa,gender,teaching_method,school_type,passed\n60,1,80,3,X,A,Public,1\n",
		"bad passed":     "score,study_hours,attendance_rate,previous_gpa,gender,teaching_method,school_type,passed\n60,1,80,3,M,A,Public,yes\n",
		"empty":          "",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.csv")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := NewDataReader(path, nil).ReadDataset()
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}
}

func TestDataReader_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, NewDatasetWriter(nil).Write(path, &stats.Dataset{}))

	ds, err := NewDataReader(path, nil).ReadDataset()
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}
