package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	"github.com/felixgeelhaar/firesalamander/internal/application/usecases"
	"github.com/felixgeelhaar/firesalamander/internal/domain/content"
	"github.com/felixgeelhaar/firesalamander/internal/domain/overview"
	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/domain/services"
	"github.com/felixgeelhaar/firesalamander/internal/domain/technical"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/config"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/writers"
	"github.com/felixgeelhaar/firesalamander/pkg/redact"
	"github.com/felixgeelhaar/mcp-go"
)

// ToolPrefix prefixes the per-domain mapping tools.
const ToolPrefix = "salamander_map_"

// Server wraps the MCP server with Fire Salamander functionality.
type Server struct {
	mcpServer  *mcp.Server
	config     *config.Config
	registry   ports.MapperRegistry
	mapper     *usecases.MapAnalysisUseCase
	truncation *services.TruncationService
}

// NewServer creates a new Fire Salamander MCP server.
func NewServer(cfg *config.Config, version string) *Server {
	return NewServerWithRegistry(cfg, mappers.NewDefaultRegistry(cfg.MapperOptions(nil)...), version)
}

// NewServerWithRegistry creates a new MCP server with a custom registry.
// The CLI uses it to share a registry whose mappers carry its logger.
func NewServerWithRegistry(cfg *config.Config, registry ports.MapperRegistry, version string) *Server {
	if version == "" {
		version = "dev"
	}
	srv := mcp.NewServer(mcp.ServerInfo{
		Name:    "firesalamander",
		Version: version,
		Capabilities: mcp.Capabilities{
			Tools:     true,
			Resources: true,
		},
	})

	s := &Server{
		mcpServer:  srv,
		config:     cfg,
		registry:   registry,
		mapper:     usecases.NewMapAnalysisUseCase(registry, nil, writers.NewSilentWriter()),
		truncation: services.NewTruncationService(),
	}

	s.registerTools()
	s.registerResources()

	return s
}

// ServeStdio starts the MCP server with stdio transport.
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

// ServeHTTP starts the MCP server with HTTP transport.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr,
		mcp.WithReadTimeout(60*time.Second),
		mcp.WithWriteTimeout(60*time.Second),
	)
}

// registerTools registers one mapping tool per registered domain plus the
// domain listing tool.
func (s *Server) registerTools() {
	for _, m := range s.registry.All() {
		domain := m.Domain()
		s.mcpServer.Tool(ToolPrefix + string(domain)).
			Description(fmt.Sprintf("Map a raw %s analysis payload from the SEO backend into its dashboard view model. Returns the headline, the most important issues and optionally the full view model.", domain)).
			Handler(func(ctx context.Context, input MapInput) (*MapToolResult, error) {
				return s.runMap(ctx, domain, input)
			})
	}

	s.mcpServer.Tool("salamander_domains").
		Description("List the analysis domains that can be mapped and the tool that maps each.").
		Handler(s.handleDomains)
}

// registerResources registers all Fire Salamander MCP resources.
func (s *Server) registerResources() {
	s.mcpServer.Resource("salamander://config").
		Name("Configuration").
		Description("Current Fire Salamander configuration including output, mapping and MCP limits.").
		MimeType("application/json").
		Handler(s.handleConfigResource)

	s.mcpServer.Resource("salamander://domains").
		Name("Domains").
		Description("Registered analysis domains and their mapping tools.").
		MimeType("application/json").
		Handler(s.handleDomainsResource)

	s.mcpServer.Resource("salamander://thresholds").
		Name("Core Web Vitals thresholds").
		Description("Effective good/poor boundaries used to grade performance metrics.").
		MimeType("application/json").
		Handler(s.handleThresholdsResource)
}

// MapInput defines the input for mapping tools.
type MapInput struct {
	Payload       string `json:"payload" jsonschema:"description=Raw backend analysis JSON"`
	IncludeReport bool   `json:"include_report,omitempty" jsonschema:"description=Include the full view model in the response"`
}

// MapToolResult represents the result of a mapping tool.
type MapToolResult struct {
	Domain         string          `json:"domain"`
	Status         string          `json:"status"`
	Reason         string          `json:"reason,omitempty"`
	Error          string          `json:"error,omitempty"`
	Entities       int             `json:"entities"`
	Duration       string          `json:"duration"`
	Summary        seo.Summary     `json:"summary"`
	TotalIssues    int             `json:"total_issues"`
	ShownIssues    int             `json:"shown_issues"`
	Truncated      bool            `json:"truncated"`
	Issues         []IssueInfo     `json:"issues"`
	TruncationInfo *TruncationInfo `json:"truncation_info,omitempty"`
	Report         json.RawMessage `json:"report,omitempty"`
}

// TruncationInfo provides details about truncated results.
type TruncationInfo struct {
	TotalIssues      int            `json:"total_issues"`
	ShownIssues      int            `json:"shown_issues"`
	HiddenBySeverity map[string]int `json:"hidden_by_severity"`
	Strategy         string         `json:"strategy"`
	Message          string         `json:"message"`
}

// IssueInfo represents a single issue in tool results.
type IssueInfo struct {
	Type         string  `json:"type"`
	Severity     string  `json:"severity"`
	Description  string  `json:"description"`
	Count        int     `json:"count"`
	Priority     int     `json:"priority,omitempty"`
	EstimatedROI float64 `json:"estimated_roi,omitempty"`
}

// Mapping status values.
const (
	StatusMapped   = "mapped"
	StatusFallback = "fallback"
)

func (s *Server) runMap(ctx context.Context, domain seo.Domain, input MapInput) (*MapToolResult, error) {
	output, err := s.mapper.Execute(ctx, usecases.MapAnalysisInput{
		Domain:  domain,
		Payload: []byte(input.Payload),
	})
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", domain, err)
	}

	res := output.Result
	result := &MapToolResult{
		Domain:   string(domain),
		Status:   StatusMapped,
		Entities: res.Entities,
		Duration: res.Duration.String(),
		Summary:  output.Summary,
	}
	if res.Fallback {
		result.Status = StatusFallback
		result.Reason = res.Reason
		if res.Err != nil {
			result.Error = redact.RedactString(res.Err.Error())
		}
	}

	// Apply truncation based on MCP config
	truncCfg := s.config.TruncationConfig()
	truncResult := s.truncation.Truncate(reportIssues(res.Report), truncCfg)

	result.TotalIssues = truncResult.TotalCount
	result.ShownIssues = truncResult.ShownCount
	result.Truncated = truncResult.Truncated
	result.Issues = make([]IssueInfo, 0, len(truncResult.Issues))
	for _, issue := range truncResult.Issues {
		result.Issues = append(result.Issues, IssueInfo{
			Type:         issue.Type,
			Severity:     issue.Severity.String(),
			Description:  issue.Description,
			Count:        issue.Count,
			Priority:     issue.Priority,
			EstimatedROI: issue.EstimatedROI,
		})
	}

	if truncResult.Truncated {
		hiddenBySeverity := make(map[string]int)
		for sev, count := range truncResult.Summary.HiddenBySeverity {
			if count > 0 {
				hiddenBySeverity[sev.String()] = count
			}
		}

		result.TruncationInfo = &TruncationInfo{
			TotalIssues:      truncResult.TotalCount,
			ShownIssues:      truncResult.ShownCount,
			HiddenBySeverity: hiddenBySeverity,
			Strategy:         string(truncCfg.Strategy),
			Message: fmt.Sprintf("Showing %d of %d issues (sorted by %s)",
				truncResult.ShownCount, truncResult.TotalCount, truncCfg.Strategy),
		}
	}

	if input.IncludeReport {
		data, err := json.Marshal(res.Report)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s view model: %w", domain, err)
		}
		result.Report = data
	}

	return result, nil
}

// reportIssues returns the site-wide issues of a view model in the shape
// the truncation service ranks.
func reportIssues(report seo.Report) []seo.GlobalIssue {
	switch r := report.(type) {
	case technical.Analysis:
		return r.GlobalIssues
	case content.Analysis:
		return r.GlobalIssues
	case overview.Analysis:
		issues := make([]seo.GlobalIssue, 0, len(r.TopIssues))
		for _, top := range r.TopIssues {
			issues = append(issues, seo.GlobalIssue{
				Type:        top.ID,
				Severity:    top.Severity,
				Description: top.Title,
				Count:       top.AffectedPages,
			})
		}
		return issues
	case nil:
		return nil
	default:
		return summaryIssues(r.Summary())
	}
}

// summaryIssues lifts the headline issues of view models without a
// structured issue index.
func summaryIssues(s seo.Summary) []seo.GlobalIssue {
	issues := make([]seo.GlobalIssue, 0, len(s.TopIssues))
	for _, text := range s.TopIssues {
		issues = append(issues, seo.GlobalIssue{
			Type:        "issue",
			Severity:    seo.SeverityWarning,
			Description: text,
			Count:       1,
		})
	}
	return issues
}

// DomainsInput is the empty input of the domains tool.
type DomainsInput struct{}

// DomainsResult lists the mappable domains.
type DomainsResult struct {
	Domains []DomainInfo `json:"domains"`
}

// DomainInfo describes one registered mapper.
type DomainInfo struct {
	Domain string `json:"domain"`
	Tool   string `json:"tool"`
}

func (s *Server) handleDomains(_ context.Context, _ DomainsInput) (*DomainsResult, error) {
	return &DomainsResult{Domains: s.domainInfos()}, nil
}

func (s *Server) domainInfos() []DomainInfo {
	all := s.registry.All()
	infos := make([]DomainInfo, 0, len(all))
	for _, m := range all {
		infos = append(infos, DomainInfo{
			Domain: string(m.Domain()),
			Tool:   ToolPrefix + string(m.Domain()),
		})
	}
	return infos
}

// configResourceData represents the config resource structure for JSON marshaling.
type configResourceData struct {
	Version string            `json:"version"`
	Output  configOutputData  `json:"output"`
	Mapping configMappingData `json:"mapping"`
	MCP     config.MCPConfig  `json:"mcp"`
}

type configOutputData struct {
	Format    string `json:"format"`
	Verbosity string `json:"verbosity"`
}

type configMappingData struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`
}

func (s *Server) handleConfigResource(_ context.Context, uri string, _ map[string]string) (*mcp.ResourceContent, error) {
	data := configResourceData{
		Version: s.config.Version,
		Output: configOutputData{
			Format:    string(s.config.GetOutputFormat()),
			Verbosity: string(s.config.GetVerbosity()),
		},
		Mapping: configMappingData{
			Tool:    s.config.Mapping.Tool,
			Version: s.config.Mapping.Version,
		},
		MCP: s.config.GetMCPConfig(),
	}

	return jsonResource(uri, data, "config")
}

func (s *Server) handleDomainsResource(_ context.Context, uri string, _ map[string]string) (*mcp.ResourceContent, error) {
	return jsonResource(uri, DomainsResult{Domains: s.domainInfos()}, "domains")
}

// thresholdData represents one metric of the thresholds resource.
type thresholdData struct {
	Metric string  `json:"metric"`
	Unit   string  `json:"unit"`
	Good   float64 `json:"good"`
	Poor   float64 `json:"poor"`
}

func (s *Server) handleThresholdsResource(_ context.Context, uri string, _ map[string]string) (*mcp.ResourceContent, error) {
	thresholds := s.config.GetThresholds()
	data := make([]thresholdData, 0, len(scoring.AllMetricTypes()))
	for _, m := range scoring.AllMetricTypes() {
		th := thresholds.For(m)
		data = append(data, thresholdData{
			Metric: string(m),
			Unit:   m.Unit(),
			Good:   th.Good,
			Poor:   th.Poor,
		})
	}

	return jsonResource(uri, map[string]any{"thresholds": data}, "thresholds")
}

func jsonResource(uri string, v any, name string) (*mcp.ResourceContent, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(jsonBytes),
	}, nil
}
