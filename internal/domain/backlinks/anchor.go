package backlinks

import (
	"net/url"
	"strings"
)

// AnchorType classifies the anchor text of a backlink.
type AnchorType string

const (
	AnchorImage    AnchorType = "image"
	AnchorNakedURL AnchorType = "naked-url"
	AnchorBranded  AnchorType = "branded"
	AnchorGeneric  AnchorType = "generic"
	AnchorExact    AnchorType = "exact"
	AnchorPartial  AnchorType = "partial"
)

// AllAnchorTypes returns the anchor types in display order.
func AllAnchorTypes() []AnchorType {
	return []AnchorType{AnchorBranded, AnchorExact, AnchorPartial, AnchorGeneric, AnchorNakedURL, AnchorImage}
}

var genericAnchors = map[string]bool{
	"click here":   true,
	"here":         true,
	"read more":    true,
	"learn more":   true,
	"more":         true,
	"this":         true,
	"link":         true,
	"website":      true,
	"this site":    true,
	"visit":        true,
	"visit site":   true,
	"source":       true,
	"see more":     true,
	"go":           true,
	"homepage":     true,
	"check it out": true,
}

// Classifier assigns anchor types for one target domain.
type Classifier struct {
	brand    string
	keywords []string
}

// NewClassifier creates a classifier for the target domain and keywords.
func NewClassifier(domain string, keywords []string) *Classifier {
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			kw = append(kw, k)
		}
	}
	return &Classifier{brand: BrandName(domain), keywords: kw}
}

// Classify returns the anchor type of text. The checks apply in order:
// empty text is an image link, URL-like text is a naked URL, text that
// names the brand is branded, known filler phrases are generic, a target
// keyword is an exact match and text containing one is a partial match.
// Anything else is generic.
func (c *Classifier) Classify(text string) AnchorType {
	t := strings.ToLower(strings.Join(strings.Fields(text), " "))

	switch {
	case t == "":
		return AnchorImage
	case looksLikeURL(t):
		return AnchorNakedURL
	case c.brand != "" && strings.Contains(strings.ReplaceAll(t, " ", ""), c.brand):
		return AnchorBranded
	case genericAnchors[t]:
		return AnchorGeneric
	}

	for _, k := range c.keywords {
		if t == k {
			return AnchorExact
		}
	}
	for _, k := range c.keywords {
		if strings.Contains(t, k) {
			return AnchorPartial
		}
	}
	return AnchorGeneric
}

// BrandName derives the brand from a domain: "https://www.example.co.uk"
// becomes "example".
func BrandName(domain string) string {
	host := HostOf(domain)
	host = strings.TrimPrefix(host, "www.")
	if i := strings.Index(host, "."); i > 0 {
		host = host[:i]
	}
	return strings.ReplaceAll(host, "-", "")
}

// HostOf returns the lower-cased host of a URL or bare domain.
func HostOf(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func looksLikeURL(t string) bool {
	if strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://") || strings.HasPrefix(t, "www.") {
		return true
	}
	if strings.Contains(t, " ") {
		return false
	}
	dot := strings.LastIndex(t, ".")
	return dot > 0 && dot < len(t)-2
}
