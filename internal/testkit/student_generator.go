package testkit

import (
	"math/rand/v2"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"

	"statkit/adapters/excel"
	"statkit/domain/stats"
	"statkit/internal/errors"
)

// pcgStream fixes the PCG stream so a seed alone determines the output
const pcgStream = 0x5851f42d4c957f2d

// Score model: score = base + hours*3 + attendance*0.25 + gpa*4 + bonuses + noise
const (
	scoreBase         = 50.0
	studyHoursWeight  = 3.0
	attendanceWeight  = 0.25
	previousGPAWeight = 4.0
	scoreNoiseSD      = 8.0
	femaleBonus       = 1.5
)

var methodBonus = map[stats.TeachingMethod]float64{
	stats.MethodA: 2,
	stats.MethodB: 5,
	stats.MethodC: -1,
}

var (
	genderWeights = []float64{0.5, 0.5}
	methodWeights = []float64{0.3, 0.4, 0.3}
	schoolWeights = []float64{0.7, 0.3}
)

// StudentGeneratorConfig configures the student performance generator
type StudentGeneratorConfig struct {
	Samples  int    `json:"samples"`
	Seed     int64  `json:"seed"`
	SavePath string `json:"save_path,omitempty"`
}

// DefaultStudentConfig returns the reference configuration (n=4000, seed=42, no export)
func DefaultStudentConfig() StudentGeneratorConfig {
	return StudentGeneratorConfig{
		Samples: 4000,
		Seed:    42,
	}
}

// StudentDataGenerator synthesizes a student performance dataset with a known
// generating model. Each Generate call reseeds its own source, so repeated
// calls with the same config return identical datasets.
type StudentDataGenerator struct {
	config StudentGeneratorConfig
	writer *excel.DatasetWriter
	logger *zap.Logger
}

// NewStudentDataGenerator creates a generator; a nil logger disables logging
func NewStudentDataGenerator(config StudentGeneratorConfig, logger *zap.Logger) *StudentDataGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentDataGenerator{
		config: config,
		writer: excel.NewDatasetWriter(logger),
		logger: logger,
	}
}

// GenerateStudentDataset generates n rows from seed and, when savePath is not
// empty, exports them.
func GenerateStudentDataset(n int, seed int64, savePath string) (*stats.Dataset, error) {
	cfg := StudentGeneratorConfig{Samples: n, Seed: seed, SavePath: savePath}
	return NewStudentDataGenerator(cfg, nil).Generate()
}

// Generate draws the dataset and exports it if a save path is configured
func (g *StudentDataGenerator) Generate() (*stats.Dataset, error) {
	n := g.config.Samples
	if n < 1 {
		return nil, errors.InvalidInputf("sample count must be positive, got %d", n)
	}

	src := rand.NewPCG(uint64(g.config.Seed), pcgStream)

	// Columns are drawn one after another from the shared source
	genders := drawCategories(src, stats.Genders, genderWeights, n)
	methods := drawCategories(src, stats.TeachingMethods, methodWeights, n)
	schools := drawCategories(src, stats.SchoolTypes, schoolWeights, n)

	studyHours := drawNormal(src, 6, 2, n)
	attendance := drawNormal(src, 80, 10, n)
	previousGPA := drawNormal(src, 3.0, 0.4, n)
	noise := drawNormal(src, 0, scoreNoiseSD, n)

	records := make([]stats.StudentRecord, n)
	for i := range records {
		hours := max(studyHours[i], 0)
		rate := clip(attendance[i], 40, 100)
		gpa := clip(previousGPA[i], 1.5, 4.0)

		score := scoreBase +
			studyHoursWeight*hours +
			attendanceWeight*rate +
			previousGPAWeight*gpa +
			methodBonus[methods[i]] +
			genderBonus(genders[i]) +
			noise[i]
		score = clip(score, 0, 100)

		passed := 0
		if score >= stats.PassThreshold {
			passed = 1
		}

		records[i] = stats.StudentRecord{
			Score:          score,
			StudyHours:     hours,
			AttendanceRate: rate,
			PreviousGPA:    gpa,
			Gender:         genders[i],
			TeachingMethod: methods[i],
			SchoolType:     schools[i],
			Passed:         passed,
		}
	}

	ds := &stats.Dataset{Records: records}
	g.logger.Info("generated student dataset",
		zap.Int("rows", n),
		zap.Int64("seed", g.config.Seed),
		zap.Float64("pass_rate", ds.PassRate()))

	if g.config.SavePath != "" {
		if err := g.writer.Write(g.config.SavePath, ds); err != nil {
			return nil, errors.Wrapf(err, "failed to save student dataset to %s", g.config.SavePath)
		}
	}

	return ds, nil
}

func drawCategories[T any](src rand.Source, values []T, weights []float64, n int) []T {
	dist := distuv.NewCategorical(weights, src)
	out := make([]T, n)
	for i := range out {
		out[i] = values[int(dist.Rand())]
	}
	return out
}

func drawNormal(src rand.Source, mu, sigma float64, n int) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

func genderBonus(g stats.Gender) float64 {
	if g == stats.GenderFemale {
		return femaleBonus
	}
	return 0
}

func clip(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
