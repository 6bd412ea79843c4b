package backlinks

import "strings"

// ToxicSpamScore is the spam score at and above which a link is toxic.
const ToxicSpamScore = 60

// LinkStatus is the crawl state of a backlink.
type LinkStatus string

const (
	StatusActive LinkStatus = "active"
	StatusLost   LinkStatus = "lost"
	StatusBroken LinkStatus = "broken"
)

// ClassifyStatus maps a backend link status onto LinkStatus.
// Unrecognized values resolve to StatusActive.
func ClassifyStatus(s string) LinkStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lost", "removed", "deleted":
		return StatusLost
	case "broken", "404", "error":
		return StatusBroken
	default:
		return StatusActive
	}
}

// IsFollow reports whether a rel attribute passes link equity.
func IsFollow(rel string) bool {
	for _, token := range strings.Fields(strings.ToLower(strings.ReplaceAll(rel, ",", " "))) {
		switch token {
		case "nofollow", "ugc", "sponsored":
			return false
		}
	}
	return true
}

// Backlink is one link pointing at the analyzed domain.
type Backlink struct {
	SourceURL       string     `json:"sourceUrl"`
	SourceDomain    string     `json:"sourceDomain"`
	TargetURL       string     `json:"targetUrl"`
	AnchorText      string     `json:"anchorText"`
	AnchorType      AnchorType `json:"anchorType"`
	DomainAuthority float64    `json:"domainAuthority"`
	Follow          bool       `json:"follow"`
	FirstSeen       string     `json:"firstSeen"`
	LastSeen        string     `json:"lastSeen"`
	Status          LinkStatus `json:"status"`
	SpamScore       float64    `json:"spamScore"`
	Toxic           bool       `json:"toxic"`
}

// ReferringDomain aggregates the backlinks of one source domain.
type ReferringDomain struct {
	Domain          string  `json:"domain"`
	Backlinks       int     `json:"backlinks"`
	FollowLinks     int     `json:"followLinks"`
	DomainAuthority float64 `json:"domainAuthority"`
	FirstSeen       string  `json:"firstSeen"`
	Toxic           bool    `json:"toxic"`
}
