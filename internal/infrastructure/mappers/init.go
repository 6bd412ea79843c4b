package mappers

import (
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/backlinks"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/content"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/mapping"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/overview"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/security"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/technical"
)

// NewDefaultRegistry creates a registry with a mapper for every analysis
// domain. The options apply to each mapper.
func NewDefaultRegistry(opts ...mapping.Option) *Registry {
	r := NewRegistry()

	r.Register(overview.NewMapper(opts...))
	r.Register(technical.NewMapper(opts...))
	r.Register(security.NewMapper(opts...))
	r.Register(content.NewMapper(opts...))
	r.Register(backlinks.NewMapper(opts...))

	return r
}
