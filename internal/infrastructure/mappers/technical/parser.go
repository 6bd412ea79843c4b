package technical

import (
	"strings"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	model "github.com/felixgeelhaar/firesalamander/internal/domain/technical"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/mapping"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// loadThreshold grades a bare load time when the page reports no vitals.
var loadThreshold = scoring.Threshold{Good: model.SlowPageMs / 2, Poor: model.SlowPageMs}

func parsePages(raw []any, env mapping.Env) []model.Page {
	pages := make([]model.Page, 0, len(raw))
	for _, item := range raw {
		if obj := coerce.AsObject(item); obj != nil {
			pages = append(pages, parsePage(obj, env))
		}
	}
	return pages
}

func parsePage(obj coerce.Object, env mapping.Env) model.Page {
	status := 200
	if obj.Has("status_code") || obj.Has("status") {
		status = coerce.ValidateStatusCode(obj.Value("status_code", "status"))
	}

	p := model.Page{
		URL:             obj.String("url"),
		StatusCode:      status,
		Title:           model.NewTitle(strings.TrimSpace(obj.String("title"))),
		MetaDescription: model.NewMetaDescription(strings.TrimSpace(obj.String("meta_description", "description"))),
		Headings:        parseHeadings(obj.Object("headings")).Check(),
		Images:          parseImages(obj.Slice("images")),
		Links:           parseLinks(obj.Object("links")),
		Performance:     parsePerformance(obj, env),
		Mobile:          parseMobile(obj.Object("mobile")),
		Canonical:       obj.String("canonical", "canonical_url"),
		Indexable:       parseIndexable(obj),
	}
	p.Issues = model.MergeIssues(parseIssues(obj.Slice("issues")), p.DeriveIssues())
	return p
}

func parseHeadings(obj coerce.Object) model.Headings {
	h := model.EmptyHeadings()
	h.H1 = obj.Strings("h1")
	h.H2 = obj.Strings("h2")
	h.H3 = obj.Strings("h3")
	h.H4 = obj.Strings("h4")
	h.H5 = obj.Strings("h5")
	h.H6 = obj.Strings("h6")
	return h
}

func parseImages(raw []any) []model.Image {
	images := make([]model.Image, 0, len(raw))
	for _, item := range raw {
		obj := coerce.AsObject(item)
		if obj == nil {
			if src, ok := item.(string); ok && src != "" {
				images = append(images, model.Image{Src: src})
			}
			continue
		}
		alt := strings.TrimSpace(obj.String("alt", "alt_text"))
		images = append(images, model.Image{
			Src:       obj.String("src", "url"),
			Alt:       alt,
			HasAlt:    obj.Bool("has_alt", alt != ""),
			SizeBytes: coerce.ValidatePositiveInt(obj.Value("size", "size_bytes"), 0),
		})
	}
	return images
}

func parseLinks(obj coerce.Object) model.Links {
	raw := obj.Slice("broken")
	broken := make([]model.BrokenLink, 0, len(raw))
	for _, item := range raw {
		if u, ok := item.(string); ok && u != "" {
			broken = append(broken, model.BrokenLink{URL: u, StatusCode: 404})
			continue
		}
		link := coerce.AsObject(item)
		if link == nil {
			continue
		}
		broken = append(broken, model.BrokenLink{
			URL:        link.String("url", "href"),
			StatusCode: coerce.ValidateStatusCode(link.Value("status_code", "status")),
			AnchorText: link.String("anchor_text", "text"),
		})
	}
	return model.NewLinks(obj.Strings("internal"), obj.Strings("external"), broken)
}

// parsePerformance returns nil when the page reports neither a load time
// nor a performance object.
func parsePerformance(obj coerce.Object, env mapping.Env) *model.Performance {
	perf := obj.Object("performance")
	if perf == nil && !obj.Has("load_time") {
		return nil
	}

	load := coerce.ValidatePositiveNumber(obj.Value("load_time"), 0)
	if perf.Has("load_time") {
		load = coerce.ValidatePositiveNumber(perf.Value("load_time"), load)
	}

	p := &model.Performance{
		LoadTimeMs: coerce.Round(load, 1),
		Vitals:     env.Vitals(perf),
	}
	if len(p.Vitals) == 0 {
		p.Grade = scoring.GradeMetric(load, loadThreshold)
		p.Score = scoring.Percentile(load, loadThreshold)
		return p
	}

	p.Grade = scoring.PerformanceExcellent
	total := 0
	for _, v := range p.Vitals {
		total += v.Percentile
		if worse(v.Grade, p.Grade) {
			p.Grade = v.Grade
		}
	}
	p.Score = int(coerce.Round(float64(total)/float64(len(p.Vitals)), 0))
	return p
}

var gradeRank = map[scoring.PerformanceGrade]int{
	scoring.PerformanceExcellent:        0,
	scoring.PerformanceNeedsImprovement: 1,
	scoring.PerformancePoor:             2,
}

func worse(a, b scoring.PerformanceGrade) bool {
	return gradeRank[a] > gradeRank[b]
}

func parseMobile(obj coerce.Object) *model.Mobile {
	if obj == nil {
		return nil
	}
	m := &model.Mobile{
		Viewport:     obj.Bool("viewport", false),
		Responsive:   obj.Bool("responsive", false),
		TapTargetsOK: obj.Bool("tap_targets_ok", false),
		FontSizeOK:   obj.Bool("font_size_ok", false),
	}
	if obj.Has("score") {
		m.Score = coerce.ValidatePercentage(obj.Value("score"))
	} else {
		m.Score = model.MobileScore(*m)
	}
	m.Friendly = obj.Bool("friendly", m.Viewport && m.Responsive)
	if obj.Has("is_mobile_friendly") {
		m.Friendly = obj.Bool("is_mobile_friendly", m.Friendly)
	}
	return m
}

func parseIndexable(obj coerce.Object) bool {
	if strings.Contains(strings.ToLower(obj.String("robots", "meta_robots")), "noindex") {
		return false
	}
	return obj.Bool("indexable", true)
}

func parseIssues(raw []any) []seo.Issue {
	issues := make([]seo.Issue, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			t := seo.ClassifyIssueType(s)
			issues = append(issues, seo.NewIssue(t, t.DefaultSeverity(), ""))
			continue
		}
		obj := coerce.AsObject(item)
		if obj == nil {
			continue
		}
		t := seo.ClassifyIssueType(obj.String("type", "code"))
		sev := t.DefaultSeverity()
		if s := obj.String("severity"); s != "" {
			sev = seo.ClassifySeverity(s)
		}
		issues = append(issues, seo.NewIssue(t, sev,
			obj.String("description", "message"),
			obj.Strings("affected_elements", "elements")...))
	}
	return issues
}

func parseRedirectChains(raw []any) []model.RedirectChain {
	chains := make([]model.RedirectChain, 0, len(raw))
	for _, item := range raw {
		obj := coerce.AsObject(item)
		if obj == nil {
			continue
		}
		hopsRaw := obj.Slice("chain", "hops")
		hops := make([]model.RedirectHop, 0, len(hopsRaw))
		for _, h := range hopsRaw {
			if u, ok := h.(string); ok {
				hops = append(hops, model.RedirectHop{URL: u, StatusCode: 301})
				continue
			}
			if hop := coerce.AsObject(h); hop != nil {
				hops = append(hops, model.RedirectHop{
					URL:        hop.String("url"),
					StatusCode: coerce.ValidateStatusCode(hop.Value("status_code", "status")),
				})
			}
		}
		chains = append(chains, model.NewRedirectChain(obj.String("from", "source"), obj.String("to", "target"), hops))
	}
	return chains
}

func parseConfig(obj coerce.Object) model.Config {
	def := model.DefaultConfig()
	ua := obj.String("user_agent")
	if ua == "" {
		ua = def.UserAgent
	}
	return model.Config{
		MaxPages:      coerce.ValidatePositiveInt(obj.Value("max_pages"), def.MaxPages),
		MaxDepth:      coerce.ValidatePositiveInt(obj.Value("max_depth"), def.MaxDepth),
		UserAgent:     ua,
		RespectRobots: obj.Bool("respect_robots", def.RespectRobots),
	}
}
