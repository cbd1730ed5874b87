package devicesession

import (
	"net/http"

	"github.com/dmitrymomot/bussearch/pkg/busapi"
	"github.com/dmitrymomot/bussearch/pkg/clientip"
	"github.com/dmitrymomot/bussearch/pkg/useragent"
)

// Unknown replaces client attributes that could not be determined.
const Unknown = "unknown"

// Client is the end user's connection and browser, reported to the API when
// a session is created.
type Client struct {
	IP             string
	Port           string
	BrowserName    string
	BrowserVersion string
}

// ClientFromRequest collects the client attributes of r.
func ClientFromRequest(r *http.Request) Client {
	b := useragent.FromRequest(r)

	c := Client{
		IP:             clientip.FromRequest(r),
		Port:           clientip.RemotePort(r),
		BrowserVersion: b.Version,
	}
	if b.Known() {
		c.BrowserName = b.DisplayName()
	}
	return c
}

func (c Client) sessionRequest(app busapi.Application) busapi.SessionRequest {
	return busapi.SessionRequest{
		Type: busapi.SessionType,
		Connection: busapi.Connection{
			IPAddress: orUnknown(c.IP),
			Port:      orUnknown(c.Port),
		},
		Browser: busapi.Browser{
			Name:    orUnknown(c.BrowserName),
			Version: orUnknown(c.BrowserVersion),
		},
		Application: &app,
	}
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
