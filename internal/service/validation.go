package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

const (
	trackingPrefix     = "utm_"
	defaultPhoneRegion = "AE"
)

// ContactNormalizer cleans provider contact details before they are stored
// on a listing.
type ContactNormalizer struct {
	DefaultRegion string
}

// NewContactNormalizer builds a normalizer with the given default phone
// region (falls back to AE).
func NewContactNormalizer(defaultRegion string) *ContactNormalizer {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &ContactNormalizer{DefaultRegion: region}
}

// NormalizePhone parses and formats a phone number in E.164. Returns empty
// when the number cannot be parsed or is not valid for the region.
func (n *ContactNormalizer) NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := phonenumbers.Parse(raw, n.DefaultRegion)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return ""
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

// NormalizeWebsite validates and canonicalizes a website URL: scheme
// defaulted to https, host converted through IDNA, tracking parameters
// stripped. Returns an error for unusable values.
func (n *ContactNormalizer) NormalizeWebsite(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("website is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse website: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	host := u.Hostname()
	if host == "" || !strings.Contains(host, ".") {
		return "", fmt.Errorf("invalid host: %q", host)
	}

	asciiHost, err := idna.Lookup.ToASCII(host)
	if err != nil || asciiHost == "" {
		return "", fmt.Errorf("invalid international host: %q", host)
	}
	if port := u.Port(); port != "" {
		u.Host = asciiHost + ":" + port
	} else {
		u.Host = asciiHost
	}

	stripTracking(u)
	return u.String(), nil
}

// NormalizeInstagram reduces profile URLs and @handles to a bare handle.
func (n *ContactNormalizer) NormalizeInstagram(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.Contains(raw, "instagram.com/") {
		idx := strings.Index(raw, "instagram.com/")
		raw = raw[idx+len("instagram.com/"):]
		if cut := strings.IndexAny(raw, "/?#"); cut >= 0 {
			raw = raw[:cut]
		}
	}
	raw = strings.TrimPrefix(raw, "@")
	if raw == "" {
		return ""
	}
	for _, r := range raw {
		valid := r == '.' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !valid {
			return ""
		}
	}
	return strings.ToLower(raw)
}

func stripTracking(u *url.URL) {
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}
