package security

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// Cookie is one cookie set by the site. Value is always redacted.
type Cookie struct {
	Name            string   `json:"name"`
	Value           string   `json:"value"`
	Domain          string   `json:"domain"`
	Path            string   `json:"path"`
	Secure          bool     `json:"secure"`
	HTTPOnly        bool     `json:"httpOnly"`
	SameSite        string   `json:"sameSite"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// NormalizeSameSite maps a SameSite attribute onto Strict, Lax or None.
// Unrecognized and missing values return "".
func NormalizeSameSite(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return "Strict"
	case "lax":
		return "Lax"
	case "none":
		return "None"
	default:
		return ""
	}
}

// Check derives the per-cookie issues and recommendations.
func (c Cookie) Check() Cookie {
	c.Issues = []string{}
	c.Recommendations = []string{}

	if !c.Secure {
		c.Issues = append(c.Issues, "Missing Secure flag")
		c.Recommendations = append(c.Recommendations, "Set the Secure flag so the cookie is only sent over HTTPS")
	}
	if !c.HTTPOnly {
		c.Issues = append(c.Issues, "Missing HttpOnly flag")
		c.Recommendations = append(c.Recommendations, "Set the HttpOnly flag so scripts cannot read the cookie")
	}
	switch c.SameSite {
	case "":
		c.Issues = append(c.Issues, "Missing SameSite attribute")
		c.Recommendations = append(c.Recommendations, "Set SameSite to Lax or Strict")
	case "None":
		if !c.Secure {
			c.Issues = append(c.Issues, "SameSite=None without Secure")
		}
	}
	return c
}

// Cookies is the cookie section of a security analysis.
type Cookies struct {
	Cookies     []Cookie `json:"cookies"`
	Total       int      `json:"total"`
	Secure      int      `json:"secure"`
	HTTPOnly    int      `json:"httpOnly"`
	SameSite    int      `json:"sameSite"`
	Issues      []string `json:"issues"`
	Insecure    []string `json:"insecure"`
	SecureRatio float64  `json:"secureRatio"`
}

// SummarizeCookies counts the cookie flags and builds the list-level
// issue summaries.
func SummarizeCookies(cookies []Cookie) Cookies {
	if cookies == nil {
		cookies = []Cookie{}
	}
	s := Cookies{
		Cookies:  cookies,
		Total:    len(cookies),
		Issues:   []string{},
		Insecure: []string{},
	}

	for _, c := range cookies {
		if c.Secure {
			s.Secure++
		}
		if c.HTTPOnly {
			s.HTTPOnly++
		}
		if c.SameSite != "" {
			s.SameSite++
		}
		if !c.Secure || !c.HTTPOnly || c.SameSite == "" {
			s.Insecure = append(s.Insecure, c.Name)
		}
	}

	if n := s.Total - s.Secure; n > 0 {
		s.Issues = append(s.Issues, fmt.Sprintf("%d cookie%s missing Secure flag", n, pluralS(n)))
	}
	if n := s.Total - s.HTTPOnly; n > 0 {
		s.Issues = append(s.Issues, fmt.Sprintf("%d cookie%s missing HttpOnly flag", n, pluralS(n)))
	}
	if n := s.Total - s.SameSite; n > 0 {
		s.Issues = append(s.Issues, fmt.Sprintf("%d cookie%s missing SameSite attribute", n, pluralS(n)))
	}

	if s.Total > 0 {
		s.SecureRatio = coerce.Round(float64(s.Total-len(s.Insecure))/float64(s.Total)*100, 1)
	}
	return s
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
