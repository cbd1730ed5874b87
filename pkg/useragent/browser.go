package useragent

import (
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Browser is the detected browser family and version.
type Browser struct {
	Name    string
	Version string
}

// Known reports whether detection succeeded.
func (b Browser) Known() bool {
	return b.Name != "" && b.Name != BrowserUnknown
}

// DisplayName returns a human readable browser name.
func (b Browser) DisplayName() string {
	if b.Name == "" {
		return displayNames[BrowserUnknown]
	}
	if name, ok := displayNames[b.Name]; ok {
		return name
	}
	return cases.Title(language.English).String(b.Name)
}

type browserPattern struct {
	name     string
	keywords []string // any keyword matches
	excludes []string
	version  *regexp.Regexp
}

// Checked in order; first match wins.
var browserPatterns = []browserPattern{
	{name: BrowserEdge, keywords: []string{"edg/", "edge/", "edga/", "edgios/"}, version: regexp.MustCompile(`(?:edge|edg|edga|edgios)/([\d.]+)`)},
	{name: BrowserSamsung, keywords: []string{"samsungbrowser"}, version: regexp.MustCompile(`samsungbrowser/([\d.]+)`)},
	{name: BrowserUC, keywords: []string{"ucbrowser"}, version: regexp.MustCompile(`ucbrowser/([\d.]+)`)},
	{name: BrowserYandex, keywords: []string{"yabrowser"}, version: regexp.MustCompile(`yabrowser/([\d.]+)`)},
	{name: BrowserVivaldi, keywords: []string{"vivaldi"}, version: regexp.MustCompile(`vivaldi/([\d.]+)`)},
	{name: BrowserBrave, keywords: []string{"brave"}, version: regexp.MustCompile(`brave/([\d.]+)`)},
	{name: BrowserOpera, keywords: []string{"opr/", "opera"}, version: regexp.MustCompile(`(?:opr|opera)[/ ]([\d.]+)`)},
	{name: BrowserFirefox, keywords: []string{"firefox/", "fxios/"}, version: regexp.MustCompile(`(?:firefox|fxios)/([\d.]+)`)},
	{name: BrowserChrome, keywords: []string{"chrome/", "crios/"}, version: regexp.MustCompile(`(?:chrome|crios)/([\d.]+)`)},
	{name: BrowserSafari, keywords: []string{"safari/"}, excludes: []string{"android"}, version: regexp.MustCompile(`version/([\d.]+)`)},
	{name: BrowserIE, keywords: []string{"msie "}, version: regexp.MustCompile(`msie ([\d.]+)`)},
}

// ParseBrowser detects the browser in a User-Agent string.
// Unrecognised agents report BrowserUnknown with an empty version.
func ParseBrowser(ua string) Browser {
	ua = strings.ToLower(strings.TrimSpace(ua))
	if ua == "" {
		return Browser{Name: BrowserUnknown}
	}

	// IE 11 dropped the MSIE token.
	if strings.Contains(ua, "trident/") && !strings.Contains(ua, "msie ") {
		return Browser{Name: BrowserIE, Version: "11.0"}
	}

	for _, p := range browserPatterns {
		if p.matches(ua) {
			return Browser{Name: p.name, Version: extractVersion(ua, p.version)}
		}
	}
	return Browser{Name: BrowserUnknown}
}

// FromRequest parses the request's User-Agent header.
func FromRequest(r *http.Request) Browser {
	return ParseBrowser(r.UserAgent())
}

func (p browserPattern) matches(ua string) bool {
	for _, ex := range p.excludes {
		if strings.Contains(ua, ex) {
			return false
		}
	}
	for _, kw := range p.keywords {
		if strings.Contains(ua, kw) {
			return true
		}
	}
	return false
}

func extractVersion(ua string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(ua)
	if len(m) < 2 {
		return ""
	}
	v := strings.TrimSuffix(m[1], ".")
	if len(v) > maxVersionLength {
		v = v[:maxVersionLength]
	}
	return v
}
