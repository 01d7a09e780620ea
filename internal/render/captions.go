package render

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

const presentLabel = "Present"

// DateCaption formats a start/end pair. A nil end means no end date was
// given; an empty end means the entry is ongoing.
func DateCaption(start string, end *string, sep string) string {
	switch {
	case start == "" && end == nil:
		return ""
	case start == "":
		return *end
	case end == nil:
		return start
	case *end == "":
		return start + sep + presentLabel
	default:
		return start + sep + *end
	}
}

// certificationDates joins issue and expiry dates.
func certificationDates(issue, expiry string) string {
	switch {
	case issue == "":
		return expiry
	case expiry == "":
		return issue
	default:
		return issue + " - " + expiry
	}
}

// urlLabel returns a short domain label for a link, such as "credly.com".
func urlLabel(raw string) string {
	if raw == "" {
		return ""
	}
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return raw
	}
	host := parsed.Hostname()
	if host == "" {
		return raw
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
