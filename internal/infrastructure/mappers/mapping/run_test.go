package mapping

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/logging"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

type fakeReport struct {
	target      string
	unavailable bool
}

func (r fakeReport) Summary() seo.Summary {
	return seo.Summary{Domain: seo.DomainOverview, Target: r.target, Unavailable: r.unavailable}
}

func testGuard(logger logging.Logger, build BuildFunc) Guard {
	return Guard{
		Domain: seo.DomainOverview,
		Shape:  Shape{"scores": KindObject, "issues": KindArray},
		Build:  build,
		Fallback: func(env Env) seo.Report {
			return fakeReport{unavailable: true}
		},
		Options: NewOptions(
			WithLogger(logger),
			WithClock(func() time.Time { return fixedNow }),
		),
	}
}

func echoBuild(obj coerce.Object, env Env) (seo.Report, int) {
	return fakeReport{target: obj.String("url")}, len(obj.Slice("issues"))
}

func TestGuard_Map_Success(t *testing.T) {
	result := testGuard(nil, echoBuild).Map([]byte(`{"url":"https://example.com","issues":[{},{}]}`))

	assert.False(t, result.Fallback)
	assert.NoError(t, result.Err)
	assert.Equal(t, seo.DomainOverview, result.Domain)
	assert.Equal(t, "https://example.com", result.Report.Summary().Target)
	assert.Equal(t, 2, result.Entities)
}

func TestGuard_Map_Fallbacks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		stage string
	}{
		{"empty", ``, StageDecode},
		{"null", `null`, StageDecode},
		{"array", `[1,2]`, StageDecode},
		{"truncated", `{"url":`, StageDecode},
		{"scores not object", `{"scores":[1]}`, StageShape},
		{"issues not array", `{"issues":"many"}`, StageShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			result := testGuard(logging.FromZap(zap.New(core)), echoBuild).Map([]byte(tt.input))

			require.True(t, result.Fallback)
			assert.Equal(t, tt.stage, result.Reason)
			assert.True(t, result.Report.Summary().Unavailable)

			var pe *ParseError
			require.ErrorAs(t, result.Err, &pe)
			assert.Equal(t, tt.stage, pe.Stage)
			assert.Equal(t, tt.stage, StageOf(result.Err))

			warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
			require.Len(t, warns, 1)
			assert.Equal(t, "overview", warns[0].ContextMap()["domain"])
			assert.Equal(t, tt.stage, warns[0].ContextMap()["reason"])
		})
	}
}

func TestGuard_Map_NullStructuralKeysAllowed(t *testing.T) {
	result := testGuard(nil, echoBuild).Map([]byte(`{"scores":null,"issues":null}`))
	assert.False(t, result.Fallback)
}

func TestGuard_Map_RecoversPanic(t *testing.T) {
	boom := errors.New("boom")
	g := testGuard(nil, func(coerce.Object, Env) (seo.Report, int) {
		panic(boom)
	})

	result := g.Map([]byte(`{}`))
	require.True(t, result.Fallback)
	assert.Equal(t, StagePanic, result.Reason)
	assert.ErrorIs(t, result.Err, boom)

	g = testGuard(nil, func(coerce.Object, Env) (seo.Report, int) {
		var m map[string]int
		m["x"] = 1
		return nil, 0
	})
	result = g.Map([]byte(`{}`))
	assert.Equal(t, StagePanic, result.Reason)
	assert.NotNil(t, result.Report)
}

func TestGuard_MapObject(t *testing.T) {
	g := testGuard(nil, echoBuild)

	result := g.MapObject(map[string]any{"url": "https://a.test"})
	assert.False(t, result.Fallback)
	assert.Equal(t, "https://a.test", result.Report.Summary().Target)

	result = g.MapObject(nil)
	assert.True(t, result.Fallback)
	assert.ErrorIs(t, result.Err, coerce.ErrNotObject)
}

func TestParseError(t *testing.T) {
	cause := errors.New("bad")
	err := &ParseError{Domain: seo.DomainSecurity, Stage: StageShape, Err: cause}
	assert.Equal(t, "map security payload: shape: bad", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "", StageOf(cause))
}

func TestShape_Check(t *testing.T) {
	shape := Shape{"a": KindObject, "b": KindArray}

	assert.NoError(t, shape.Check(coerce.Object{}))
	assert.NoError(t, shape.Check(coerce.Object{"a": map[string]any{}, "b": []any{}}))
	assert.NoError(t, shape.Check(coerce.Object{"a": coerce.Object{}}))

	err := shape.Check(coerce.Object{"a": "text", "b": 3.0})
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "a", se.Key)
	assert.Equal(t, `field "a": want object, got string`, err.Error())

	err = shape.Check(coerce.Object{"b": map[string]any{}})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "array", se.Want.String())
}

func TestEnv_Metadata(t *testing.T) {
	env := Env{Now: fixedNow, Tool: "Custom", Version: "9.9"}

	md := env.Metadata(seo.DomainContent, coerce.Object{"analysis_id": "abc", "created_at": "2024-06-15"}, "seed")
	assert.Equal(t, "abc", md.AnalysisID)
	assert.Equal(t, "2024-06-15T00:00:00.000Z", md.AnalysisDate)
	assert.Equal(t, "Custom", md.Tool)
	assert.Equal(t, "9.9", md.Version)

	derived := env.Metadata(seo.DomainContent, coerce.Object{}, "seed")
	assert.Equal(t, "2025-01-02T03:04:05.000Z", derived.AnalysisDate)
	assert.Equal(t, derived.AnalysisID, env.Metadata(seo.DomainContent, nil, "seed").AnalysisID)
	assert.NotEqual(t, derived.AnalysisID, env.Metadata(seo.DomainSecurity, nil, "seed").AnalysisID)
}

func TestNewOptions(t *testing.T) {
	o := NewOptions()
	assert.Equal(t, seo.DefaultTool, o.Tool)
	assert.Equal(t, seo.DefaultVersion, o.Version)
	assert.NotNil(t, o.Logger)
	assert.NotNil(t, o.Clock)

	o = NewOptions(
		WithLogger(nil),
		WithClock(nil),
		WithTool("", "2.0"),
		WithThresholds(scoring.Thresholds{scoring.MetricLCP: {Good: 1000, Poor: 2000}}),
	)
	assert.NotNil(t, o.Logger)
	assert.NotNil(t, o.Clock)
	assert.Equal(t, seo.DefaultTool, o.Tool)
	assert.Equal(t, "2.0", o.Version)
	assert.Equal(t, 1000.0, o.Thresholds[scoring.MetricLCP].Good)
	assert.Equal(t, 100.0, o.Thresholds[scoring.MetricFID].Good)
}
