package mapping

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/logging"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// BuildFunc builds the view model of a decoded payload and returns it
// with the number of entities mapped.
type BuildFunc func(obj coerce.Object, env Env) (seo.Report, int)

// FallbackFunc returns the unavailable view model of a domain.
type FallbackFunc func(env Env) seo.Report

// Guard runs a domain's build function behind the orchestrator boundary.
// It never fails: decode errors, shape errors and panics all produce the
// fallback view model with a ParseError attached.
type Guard struct {
	Domain   seo.Domain
	Shape    Shape
	Build    BuildFunc
	Fallback FallbackFunc
	Options  Options
}

// Map decodes data and maps it.
func (g Guard) Map(data []byte) ports.MapResult {
	start := time.Now()
	env := g.env()

	obj, err := coerce.Decode(data)
	if err != nil {
		return g.fail(env, start, StageDecode, err)
	}
	return g.run(env, start, obj)
}

// MapObject maps an already decoded payload.
func (g Guard) MapObject(payload map[string]any) ports.MapResult {
	start := time.Now()
	env := g.env()
	if payload == nil {
		return g.fail(env, start, StageDecode, coerce.ErrNotObject)
	}
	return g.run(env, start, coerce.Object(payload))
}

func (g Guard) env() Env {
	return Env{
		Now:        g.Options.Clock(),
		Thresholds: g.Options.Thresholds,
		Tool:       g.Options.Tool,
		Version:    g.Options.Version,
	}
}

func (g Guard) run(env Env, start time.Time, obj coerce.Object) (result ports.MapResult) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			result = g.fail(env, start, StagePanic, err)
		}
	}()

	if err := g.Shape.Check(obj); err != nil {
		return g.fail(env, start, StageShape, err)
	}

	report, entities := g.Build(obj, env)
	g.Options.Logger.Debug("payload mapped",
		logging.Domain(string(g.Domain)),
		logging.Int("entities", entities),
	)
	return ports.MapResult{
		Domain:   g.Domain,
		Report:   report,
		Entities: entities,
		Duration: time.Since(start),
	}
}

func (g Guard) fail(env Env, start time.Time, stage string, cause error) ports.MapResult {
	err := &ParseError{Domain: g.Domain, Stage: stage, Err: cause}
	g.Options.Logger.Warn("mapping fell back to unavailable view model",
		logging.Domain(string(g.Domain)),
		logging.Reason(stage),
		logging.Error(err),
	)
	return ports.MapResult{
		Domain:   g.Domain,
		Report:   g.Fallback(env),
		Fallback: true,
		Reason:   stage,
		Err:      err,
		Duration: time.Since(start),
	}
}

// StageOf returns the stage of a mapping error, or "" when err is not a
// ParseError.
func StageOf(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Stage
	}
	return ""
}
