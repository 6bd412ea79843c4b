package seo

import (
	"time"

	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
	"github.com/google/uuid"
)

// Tool and version stamped into every view model.
const (
	DefaultTool    = "Fire Salamander"
	DefaultVersion = "1.0.0"
)

// analysisNamespace scopes the name-based UUIDs generated for analyses
// whose backend payload carries no identifier.
var analysisNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://firesalamander.dev/analysis"))

// Metadata describes when and by what an analysis was produced.
type Metadata struct {
	AnalysisDate string `json:"analysisDate"`
	AnalysisID   string `json:"analysisId"`
	Version      string `json:"version"`
	Tool         string `json:"tool"`
}

// NewMetadata builds metadata for an analysis. When id is empty a
// deterministic identifier is derived from the domain and seed so that
// mapping the same payload twice yields the same id.
func NewMetadata(id, domain, seed, date string) Metadata {
	if id == "" {
		id = DeriveAnalysisID(domain, seed)
	}
	return Metadata{
		AnalysisDate: date,
		AnalysisID:   id,
		Version:      DefaultVersion,
		Tool:         DefaultTool,
	}
}

// DeriveAnalysisID returns a SHA-1 name-based UUID for domain and seed.
func DeriveAnalysisID(domain, seed string) string {
	return uuid.NewSHA1(analysisNamespace, []byte(domain+"|"+seed)).String()
}

// EmptyMetadata returns the metadata of a fallback analysis.
func EmptyMetadata(domain string, now time.Time) Metadata {
	return Metadata{
		AnalysisDate: coerce.FormatTime(now),
		AnalysisID:   DeriveAnalysisID(domain, "fallback"),
		Version:      DefaultVersion,
		Tool:         DefaultTool,
	}
}
