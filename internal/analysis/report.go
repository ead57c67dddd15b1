// Package analysis composes effect sizes and inference helpers into a summary
// report over a student performance dataset.
package analysis

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"statkit/domain/stats"
	"statkit/internal/effectsize"
	"statkit/internal/errors"
	"statkit/internal/inference"
	"statkit/internal/profiling"
)

// Report is the result of analyzing one dataset
type Report struct {
	ID           uuid.UUID                    `json:"id"`
	GeneratedAt  time.Time                    `json:"generated_at"`
	Rows         int                          `json:"rows"`
	PassRate     float64                      `json:"pass_rate"`
	Confidence   float64                      `json:"confidence"`
	Alpha        float64                      `json:"alpha"`
	Columns      map[string]profiling.Summary `json:"columns"`
	ScoreMeanCI  stats.ConfidenceInterval     `json:"score_mean_ci"`
	Gender       GroupComparison              `json:"gender"`
	School       GroupComparison              `json:"school"`
	Method       MethodEffect                 `json:"teaching_method"`
	Observations []string                     `json:"observations,omitempty"`
}

// GroupComparison compares the score of two groups (first minus second)
type GroupComparison struct {
	First          string                   `json:"first"`
	Second         string                   `json:"second"`
	FirstN         int                      `json:"first_n"`
	SecondN        int                      `json:"second_n"`
	CohensD        float64                  `json:"cohens_d"`
	HedgesG        float64                  `json:"hedges_g"`
	Magnitude      stats.EffectSizeCategory `json:"magnitude"`
	DiffCI         stats.ConfidenceInterval `json:"diff_ci"`
	FirstNormal    bool                     `json:"first_normal"`
	SecondNormal   bool                     `json:"second_normal"`
	EqualVariances bool                     `json:"equal_variances"`
}

// MethodEffect is the share of score variance explained by teaching method
type MethodEffect struct {
	GroupSizes map[stats.TeachingMethod]int `json:"group_sizes"`
	SSBetween  float64                      `json:"ss_between"`
	SSTotal    float64                      `json:"ss_total"`
	EtaSquared float64                      `json:"eta_squared"`
}

// Analyzer builds reports with fixed confidence and significance levels
type Analyzer struct {
	confidence float64
	alpha      float64
	logger     *zap.Logger
}

// minAnalysisRows is the smallest dataset with defined column quartiles
const minAnalysisRows = 4

// NewAnalyzer creates an analyzer; a nil logger disables logging
func NewAnalyzer(confidence, alpha float64, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{confidence: confidence, alpha: alpha, logger: logger}
}

// Analyze computes the report. Every group must have enough rows for the tests
// it feeds, otherwise an INVALID_INPUT error is returned.
func (a *Analyzer) Analyze(ds *stats.Dataset) (*Report, error) {
	if ds == nil || ds.Len() < minAnalysisRows {
		return nil, errors.InvalidInputf("analysis needs a dataset with at least %d rows", minAnalysisRows)
	}

	report := &Report{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Rows:        ds.Len(),
		PassRate:    ds.PassRate(),
		Confidence:  a.confidence,
		Alpha:       a.alpha,
		Columns:     make(map[string]profiling.Summary, 4),
	}

	columns := map[string][]float64{
		"score":           ds.Scores(),
		"study_hours":     ds.StudyHours(),
		"attendance_rate": ds.AttendanceRates(),
		"previous_gpa":    ds.PreviousGPAs(),
	}
	for name, values := range columns {
		summary, err := profiling.Summarize(values)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to summarize %s", name)
		}
		report.Columns[name] = summary
	}

	ci, err := inference.ConfidenceIntervalMean(columns["score"], a.confidence)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute score confidence interval")
	}
	report.ScoreMeanCI = ci

	byGender := ds.ScoresByGender()
	report.Gender, err = a.compareGroups(
		string(stats.GenderFemale), byGender[stats.GenderFemale],
		string(stats.GenderMale), byGender[stats.GenderMale])
	if err != nil {
		return nil, errors.Wrap(err, "failed to compare genders")
	}

	bySchool := ds.ScoresBySchool()
	report.School, err = a.compareGroups(
		string(stats.SchoolPrivate), bySchool[stats.SchoolPrivate],
		string(stats.SchoolPublic), bySchool[stats.SchoolPublic])
	if err != nil {
		return nil, errors.Wrap(err, "failed to compare school types")
	}

	report.Method, err = methodEffect(ds)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute teaching method effect")
	}

	report.Observations = observations(report)

	a.logger.Info("analyzed student dataset",
		zap.String("report_id", report.ID.String()),
		zap.Int("rows", report.Rows),
		zap.Float64("gender_cohens_d", report.Gender.CohensD),
		zap.Float64("method_eta_squared", report.Method.EtaSquared))

	return report, nil
}

func (a *Analyzer) compareGroups(firstName string, first []float64, secondName string, second []float64) (GroupComparison, error) {
	cmp := GroupComparison{
		First:   firstName,
		Second:  secondName,
		FirstN:  len(first),
		SecondN: len(second),
	}

	var err error
	if cmp.CohensD, err = effectsize.CohensDTwoSample(first, second); err != nil {
		return cmp, err
	}
	if cmp.HedgesG, err = effectsize.HedgesG(cmp.CohensD, len(first)+len(second)); err != nil {
		return cmp, err
	}
	cmp.Magnitude = effectsize.InterpretCohensD(cmp.CohensD)

	if cmp.DiffCI, err = inference.ConfidenceIntervalDiffMeans(first, second, a.confidence); err != nil {
		return cmp, err
	}
	for name, g := range map[string][]float64{firstName: first, secondName: second} {
		if len(g) > inference.ShapiroAccurateMaxN {
			a.logger.Warn("normality p-value may be inaccurate for large group",
				zap.String("group", name),
				zap.Int("n", len(g)))
		}
	}
	if cmp.FirstNormal, err = inference.CheckNormality(first, a.alpha); err != nil {
		return cmp, errors.Wrapf(err, "normality of %s", firstName)
	}
	if cmp.SecondNormal, err = inference.CheckNormality(second, a.alpha); err != nil {
		return cmp, errors.Wrapf(err, "normality of %s", secondName)
	}
	if cmp.EqualVariances, err = inference.CheckEqualVariance(first, second, a.alpha); err != nil {
		return cmp, err
	}

	return cmp, nil
}

func methodEffect(ds *stats.Dataset) (MethodEffect, error) {
	byMethod := ds.ScoresByMethod()

	effect := MethodEffect{GroupSizes: make(map[stats.TeachingMethod]int, len(stats.TeachingMethods))}
	groups := make([][]float64, 0, len(stats.TeachingMethods))
	for _, m := range stats.TeachingMethods {
		effect.GroupSizes[m] = len(byMethod[m])
		if len(byMethod[m]) > 0 {
			groups = append(groups, byMethod[m])
		}
	}

	var err error
	if effect.SSBetween, effect.SSTotal, err = effectsize.GroupSumsOfSquares(groups...); err != nil {
		return effect, err
	}
	if effect.EtaSquared, err = effectsize.EtaSquared(effect.SSBetween, effect.SSTotal); err != nil {
		return effect, err
	}
	return effect, nil
}
