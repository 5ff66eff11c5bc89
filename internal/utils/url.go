package utils

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var urlRegex = regexp.MustCompile(`https?://[^\s]+|(?:discord\.gg|bit\.ly|tinyurl\.com)/[^\s]+`)

// ExtractURLs returns every link-looking token in a message, including
// the bare invite/shortener forms that omit a scheme.
func ExtractURLs(content string) []string {
	return urlRegex.FindAllString(content, -1)
}

// URLHost extracts the lowercased, punycoded hostname of a link.
func URLHost(raw string) (string, error) {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	host := strings.ToLower(parsed.Hostname())
	if asciiHost, err := idna.ToASCII(host); err == nil {
		host = asciiHost
	}
	return host, nil
}

// HostAllowed reports whether host is one of the allowlisted domains or
// a subdomain of one.
func HostAllowed(host string, allowlist []string) bool {
	host = strings.ToLower(host)
	for _, domain := range allowlist {
		domain = strings.ToLower(domain)
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
