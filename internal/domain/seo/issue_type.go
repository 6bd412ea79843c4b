package seo

import (
	"encoding/json"
	"strings"
)

// IssueType categorizes a technical SEO issue found on a page.
type IssueType string

const (
	IssueMissingTitle           IssueType = "missing-title"
	IssueTitleTooShort          IssueType = "title-too-short"
	IssueTitleTooLong           IssueType = "title-too-long"
	IssueMissingMetaDescription IssueType = "missing-meta-description"
	IssueMetaDescriptionShort   IssueType = "meta-description-too-short"
	IssueMetaDescriptionLong    IssueType = "meta-description-too-long"
	IssueMissingH1              IssueType = "missing-h1"
	IssueMultipleH1             IssueType = "multiple-h1"
	IssueMissingAltText         IssueType = "missing-alt-text"
	IssueBrokenLinks            IssueType = "broken-links"
	IssueHTTPError              IssueType = "http-error"
	IssueRedirect               IssueType = "redirect"
	IssueSlowPage               IssueType = "slow-page"
	IssueNotMobileFriendly      IssueType = "not-mobile-friendly"
	IssueMissingCanonical       IssueType = "missing-canonical"
	IssueNoindex                IssueType = "noindex"
	IssueThinContent            IssueType = "thin-content"
	IssueDuplicateContent       IssueType = "duplicate-content"
	IssueLargeImages            IssueType = "large-images"

	// IssueOther is the documented fallback for unrecognized backend types.
	IssueOther IssueType = "other"
)

type issueTypeInfo struct {
	severity    Severity
	description string
}

var issueTypes = map[IssueType]issueTypeInfo{
	IssueMissingTitle:           {SeverityCritical, "Page has no title tag"},
	IssueTitleTooShort:          {SeverityWarning, "Title is shorter than 30 characters"},
	IssueTitleTooLong:           {SeverityWarning, "Title is longer than 60 characters"},
	IssueMissingMetaDescription: {SeverityWarning, "Page has no meta description"},
	IssueMetaDescriptionShort:   {SeverityInfo, "Meta description is shorter than 120 characters"},
	IssueMetaDescriptionLong:    {SeverityInfo, "Meta description is longer than 160 characters"},
	IssueMissingH1:              {SeverityWarning, "Page has no H1 heading"},
	IssueMultipleH1:             {SeverityWarning, "Page has more than one H1 heading"},
	IssueMissingAltText:         {SeverityWarning, "Images are missing alt text"},
	IssueBrokenLinks:            {SeverityCritical, "Page links to broken URLs"},
	IssueHTTPError:              {SeverityCritical, "Page returned an HTTP error status"},
	IssueRedirect:               {SeverityInfo, "Page is served through a redirect"},
	IssueSlowPage:               {SeverityWarning, "Page loads slowly"},
	IssueNotMobileFriendly:      {SeverityWarning, "Page is not mobile friendly"},
	IssueMissingCanonical:       {SeverityInfo, "Page has no canonical URL"},
	IssueNoindex:                {SeverityInfo, "Page is excluded from indexing"},
	IssueThinContent:            {SeverityWarning, "Page has too little content"},
	IssueDuplicateContent:       {SeverityWarning, "Page content duplicates another page"},
	IssueLargeImages:            {SeverityInfo, "Page serves oversized images"},
	IssueOther:                  {SeverityInfo, "Other technical issue"},
}

// issueTypeAliases holds backend spellings that differ from the canonical
// values. Keys are normalized with normalizeKey.
var issueTypeAliases = map[string]IssueType{
	"no-title":               IssueMissingTitle,
	"title-missing":          IssueMissingTitle,
	"short-title":            IssueTitleTooShort,
	"long-title":             IssueTitleTooLong,
	"no-meta-description":    IssueMissingMetaDescription,
	"meta-missing":           IssueMissingMetaDescription,
	"missing-meta":           IssueMissingMetaDescription,
	"short-meta-description": IssueMetaDescriptionShort,
	"long-meta-description":  IssueMetaDescriptionLong,
	"no-h1":                  IssueMissingH1,
	"h1-missing":             IssueMissingH1,
	"duplicate-h1":           IssueMultipleH1,
	"missing-alt":            IssueMissingAltText,
	"images-without-alt":     IssueMissingAltText,
	"broken-link":            IssueBrokenLinks,
	"4xx":                    IssueHTTPError,
	"5xx":                    IssueHTTPError,
	"server-error":           IssueHTTPError,
	"not-found":              IssueHTTPError,
	"redirects":              IssueRedirect,
	"redirect-chain":         IssueRedirect,
	"slow-loading":           IssueSlowPage,
	"slow-load":              IssueSlowPage,
	"performance":            IssueSlowPage,
	"mobile":                 IssueNotMobileFriendly,
	"mobile-unfriendly":      IssueNotMobileFriendly,
	"no-canonical":           IssueMissingCanonical,
	"canonical-missing":      IssueMissingCanonical,
	"no-index":               IssueNoindex,
	"low-word-count":         IssueThinContent,
	"duplicate":              IssueDuplicateContent,
	"oversized-images":       IssueLargeImages,
}

// normalizeKey lower-cases s and folds spaces and underscores into dashes.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "-", " ", "-").Replace(s)
}

// ClassifyIssueType maps a backend issue type onto IssueType.
// Unrecognized values resolve to IssueOther.
func ClassifyIssueType(s string) IssueType {
	key := normalizeKey(s)
	if _, ok := issueTypes[IssueType(key)]; ok {
		return IssueType(key)
	}
	if t, ok := issueTypeAliases[key]; ok {
		return t
	}
	return IssueOther
}

// IsValid returns true if the issue type is a member of the closed set.
func (t IssueType) IsValid() bool {
	_, ok := issueTypes[t]
	return ok
}

// DefaultSeverity returns the severity used when the backend does not
// supply one.
func (t IssueType) DefaultSeverity() Severity {
	if info, ok := issueTypes[t]; ok {
		return info.severity
	}
	return SeverityInfo
}

// Description returns the canonical description of the issue type.
func (t IssueType) Description() string {
	if info, ok := issueTypes[t]; ok {
		return info.description
	}
	return issueTypes[IssueOther].description
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *IssueType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = ClassifyIssueType(str)
	return nil
}
