package stats

// Gender of a synthetic student
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// TeachingMethod assigned to a synthetic student
type TeachingMethod string

const (
	MethodA TeachingMethod = "A"
	MethodB TeachingMethod = "B"
	MethodC TeachingMethod = "C"
)

// SchoolType of a synthetic student
type SchoolType string

const (
	SchoolPublic  SchoolType = "Public"
	SchoolPrivate SchoolType = "Private"
)

// Genders, TeachingMethods and SchoolTypes list every valid category in draw order
var (
	Genders         = []Gender{GenderMale, GenderFemale}
	TeachingMethods = []TeachingMethod{MethodA, MethodB, MethodC}
	SchoolTypes     = []SchoolType{SchoolPublic, SchoolPrivate}
)

// PassThreshold is the minimum score counted as a pass
const PassThreshold = 50.0

// DatasetColumns is the exact export header, in order
var DatasetColumns = []string{
	"score",
	"study_hours",
	"attendance_rate",
	"previous_gpa",
	"gender",
	"teaching_method",
	"school_type",
	"passed",
}

// StudentRecord is one row of the student performance dataset
type StudentRecord struct {
	Score          float64        `json:"score"`
	StudyHours     float64        `json:"study_hours"`
	AttendanceRate float64        `json:"attendance_rate"`
	PreviousGPA    float64        `json:"previous_gpa"`
	Gender         Gender         `json:"gender"`
	TeachingMethod TeachingMethod `json:"teaching_method"`
	SchoolType     SchoolType     `json:"school_type"`
	Passed         int            `json:"passed"`
}

// Dataset is an in-memory table of student records
type Dataset struct {
	Records []StudentRecord `json:"records"`
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.Records)
}

func (d *Dataset) column(get func(StudentRecord) float64) []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = get(r)
	}
	return out
}

// Scores returns the score column
func (d *Dataset) Scores() []float64 {
	return d.column(func(r StudentRecord) float64 { return r.Score })
}

// StudyHours returns the study_hours column
func (d *Dataset) StudyHours() []float64 {
	return d.column(func(r StudentRecord) float64 { return r.StudyHours })
}

// AttendanceRates returns the attendance_rate column
func (d *Dataset) AttendanceRates() []float64 {
	return d.column(func(r StudentRecord) float64 { return r.AttendanceRate })
}

// PreviousGPAs returns the previous_gpa column
func (d *Dataset) PreviousGPAs() []float64 {
	return d.column(func(r StudentRecord) float64 { return r.PreviousGPA })
}

// PassRate returns the share of rows with Passed == 1, or 0 for an empty dataset
func (d *Dataset) PassRate() float64 {
	if len(d.Records) == 0 {
		return 0
	}
	passed := 0
	for _, r := range d.Records {
		passed += r.Passed
	}
	return float64(passed) / float64(len(d.Records))
}

// ScoresByGender splits the score column by gender
func (d *Dataset) ScoresByGender() map[Gender][]float64 {
	out := make(map[Gender][]float64, len(Genders))
	for _, r := range d.Records {
		out[r.Gender] = append(out[r.Gender], r.Score)
	}
	return out
}

// ScoresByMethod splits the score column by teaching method
func (d *Dataset) ScoresByMethod() map[TeachingMethod][]float64 {
	out := make(map[TeachingMethod][]float64, len(TeachingMethods))
	for _, r := range d.Records {
		out[r.TeachingMethod] = append(out[r.TeachingMethod], r.Score)
	}
	return out
}

// ScoresBySchool splits the score column by school type
func (d *Dataset) ScoresBySchool() map[SchoolType][]float64 {
	out := make(map[SchoolType][]float64, len(SchoolTypes))
	for _, r := range d.Records {
		out[r.SchoolType] = append(out[r.SchoolType], r.Score)
	}
	return out
}

// ParseGender validates a gender label
func ParseGender(s string) (Gender, bool) {
	for _, g := range Genders {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}

// ParseTeachingMethod validates a teaching method label
func ParseTeachingMethod(s string) (TeachingMethod, bool) {
	for _, m := range TeachingMethods {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// ParseSchoolType validates a school type label
func ParseSchoolType(s string) (SchoolType, bool) {
	for _, st := range SchoolTypes {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}
