package useragent

// Browser name identifiers.
const (
	BrowserChrome  = "chrome"
	BrowserFirefox = "firefox"
	BrowserSafari  = "safari"
	BrowserEdge    = "edge"
	BrowserOpera   = "opera"
	BrowserIE      = "ie"
	BrowserSamsung = "samsung"
	BrowserUC      = "uc"
	BrowserYandex  = "yandex"
	BrowserVivaldi = "vivaldi"
	BrowserBrave   = "brave"
	BrowserUnknown = "unknown"
)

// maxVersionLength caps versions taken from untrusted headers.
const maxVersionLength = 20

// displayNames overrides title casing for names that are not single words.
var displayNames = map[string]string{
	BrowserIE:      "Internet Explorer",
	BrowserSamsung: "Samsung Internet",
	BrowserUC:      "UC Browser",
	BrowserUnknown: "Unknown",
}
