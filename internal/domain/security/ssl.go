// Package security defines the security analysis view model: SSL/TLS
// configuration, security headers, cookies and vulnerabilities.
package security

import (
	"strings"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
)

// SSLNotEnabled is the single issue of a disabled SSL configuration.
const SSLNotEnabled = "SSL/TLS not enabled"

// ExpiringSoonDays is the horizon under which a certificate is expiring soon.
const ExpiringSoonDays = 30

// SSLProtocol is one row of the protocol support table.
type SSLProtocol struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Secure  bool   `json:"secure"`
}

var protocolTable = []SSLProtocol{
	{Name: "TLS 1.3", Secure: true},
	{Name: "TLS 1.2", Secure: true},
	{Name: "TLS 1.1", Secure: false},
	{Name: "TLS 1.0", Secure: false},
	{Name: "SSL 3.0", Secure: false},
	{Name: "SSL 2.0", Secure: false},
}

// NormalizeProtocol maps backend spellings such as "TLSv1.2", "tls1.2" or
// "TLS_1_2" onto the canonical protocol name. Unknown spellings return "".
func NormalizeProtocol(s string) string {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer("V", "", " ", "", "_", ".", "-", ".").Replace(key)
	key = strings.TrimPrefix(key, ".")

	switch key {
	case "TLS1.3", "TLS.1.3", "1.3":
		return "TLS 1.3"
	case "TLS1.2", "TLS.1.2", "1.2":
		return "TLS 1.2"
	case "TLS1.1", "TLS.1.1", "1.1":
		return "TLS 1.1"
	case "TLS1.0", "TLS.1.0", "TLS1", "1.0":
		return "TLS 1.0"
	case "SSL3.0", "SSL.3.0", "SSL3":
		return "SSL 3.0"
	case "SSL2.0", "SSL.2.0", "SSL2":
		return "SSL 2.0"
	default:
		return ""
	}
}

// ProtocolTable returns the six-protocol table with exactly the reported
// protocol enabled. An unrecognized protocol enables none.
func ProtocolTable(reported string) []SSLProtocol {
	name := NormalizeProtocol(reported)
	table := make([]SSLProtocol, len(protocolTable))
	for i, p := range protocolTable {
		p.Enabled = p.Name == name
		table[i] = p
	}
	return table
}

// IsSecureProtocol reports whether the canonical protocol is secure.
func IsSecureProtocol(name string) bool {
	for _, p := range protocolTable {
		if p.Name == name {
			return p.Secure
		}
	}
	return false
}

// Certificate describes the served certificate. The expiry flags are
// always derived from DaysRemaining.
type Certificate struct {
	Subject        string   `json:"subject"`
	Issuer         string   `json:"issuer"`
	ValidFrom      string   `json:"validFrom"`
	ValidTo        string   `json:"validTo"`
	DaysRemaining  int      `json:"daysRemaining"`
	IsExpired      bool     `json:"isExpired"`
	IsExpiringSoon bool     `json:"isExpiringSoon"`
	IsSelfSigned   bool     `json:"isSelfSigned"`
	SANs           []string `json:"sans"`
}

// SetDaysRemaining stores days and recomputes the expiry flags.
func (c *Certificate) SetDaysRemaining(days int) {
	c.DaysRemaining = days
	c.IsExpired = days <= 0
	c.IsExpiringSoon = days > 0 && days < ExpiringSoonDays
}

// HasExpiry reports whether an expiry was recorded through SetDaysRemaining.
func (c Certificate) HasExpiry() bool {
	return c.IsExpired || c.DaysRemaining != 0
}

// SSLConfiguration is the negotiated TLS configuration.
type SSLConfiguration struct {
	Protocol     string        `json:"protocol"`
	Protocols    []SSLProtocol `json:"protocols"`
	CipherSuites []string      `json:"cipherSuites"`
	WeakCiphers  []string      `json:"weakCiphers"`
	HSTS         bool          `json:"hsts"`
	Certificate  Certificate   `json:"certificate"`
}

// SSL is the SSL/TLS section of a security analysis.
type SSL struct {
	Enabled       bool              `json:"enabled"`
	Configuration *SSLConfiguration `json:"configuration"`
	Score         float64           `json:"score"`
	Grade         scoring.Grade     `json:"grade"`
	Issues        []string          `json:"issues"`
	Strengths     []string          `json:"strengths"`
}

// DisabledSSL returns the SSL section of a site without SSL/TLS.
func DisabledSSL() SSL {
	return SSL{
		Enabled:       false,
		Configuration: nil,
		Score:         0,
		Grade:         scoring.GradeF,
		Issues:        []string{SSLNotEnabled},
		Strengths:     []string{},
	}
}

// EvaluateSSL scores an enabled configuration and lists its issues and
// strengths.
func EvaluateSSL(cfg SSLConfiguration) SSL {
	ssl := SSL{
		Enabled:       true,
		Configuration: &cfg,
		Issues:        []string{},
		Strengths:     []string{},
	}

	cert := cfg.Certificate
	switch {
	case cfg.Protocol == "":
		ssl.Issues = append(ssl.Issues, "Negotiated protocol not reported")
	case IsSecureProtocol(cfg.Protocol):
		ssl.Strengths = append(ssl.Strengths, "Modern protocol "+cfg.Protocol)
	default:
		ssl.Issues = append(ssl.Issues, "Insecure protocol "+cfg.Protocol)
	}

	switch {
	case cert.IsExpired:
		ssl.Issues = append(ssl.Issues, "Certificate has expired")
	case cert.IsExpiringSoon:
		ssl.Issues = append(ssl.Issues, "Certificate expires within 30 days")
	case cert.HasExpiry():
		ssl.Strengths = append(ssl.Strengths, "Certificate is valid")
	}
	if cert.IsSelfSigned {
		ssl.Issues = append(ssl.Issues, "Certificate is self-signed")
	}
	if cfg.HSTS {
		ssl.Strengths = append(ssl.Strengths, "HSTS enabled")
	} else {
		ssl.Issues = append(ssl.Issues, "HSTS not enabled")
	}
	if n := len(cfg.WeakCiphers); n > 0 {
		ssl.Issues = append(ssl.Issues, "Weak cipher suites offered: "+strings.Join(cfg.WeakCiphers, ", "))
	}

	ssl.Score = scoring.SSLScore(scoring.SSLSignals{
		Enabled:        true,
		Protocol:       cfg.Protocol,
		IsExpired:      cert.IsExpired,
		IsExpiringSoon: cert.IsExpiringSoon,
		IsSelfSigned:   cert.IsSelfSigned,
		HSTS:           cfg.HSTS,
		WeakCiphers:    len(cfg.WeakCiphers),
	})
	ssl.Grade = scoring.SSLGrade(true, ssl.Score)
	return ssl
}
