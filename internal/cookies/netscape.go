package cookies

import (
	"encoding/json"
	"fmt"
	"strings"
)

const netscapeHeader = "# Netscape HTTP Cookie File\n# This is a generated file! Do not edit.\n\n"

// browserCookie mirrors the JSON shape produced by browser extension
// cookie exports.
type browserCookie struct {
	Domain         string  `json:"domain"`
	HostOnly       bool    `json:"hostOnly"`
	Path           string  `json:"path"`
	Secure         bool    `json:"secure"`
	ExpirationDate float64 `json:"expirationDate"`
	Expires        float64 `json:"expires"`
	Name           string  `json:"name"`
	Value          string  `json:"value"`
}

type browserExport struct {
	Cookies []browserCookie `json:"cookies"`
}

// decodeBrowserExport accepts either a bare array of cookies or an object
// wrapping them in a 'cookies' property.
func decodeBrowserExport(raw []byte) ([]browserCookie, error) {
	var direct []browserCookie
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, nil
	}

	var wrapped browserExport
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Cookies != nil {
		return wrapped.Cookies, nil
	}

	return nil, fmt.Errorf("invalid cookie export: expected a JSON array or an object with a 'cookies' property")
}

// renderNetscape converts the export to Netscape cookie-file content.
// Cookies missing a name, value or domain are skipped. Entries scoped to
// x.com are duplicated for twitter.com so the backend can authenticate
// against either host. Returns the file content and the number of entries
// written.
func renderNetscape(exported []browserCookie) (string, int) {
	var builder strings.Builder
	builder.WriteString(netscapeHeader)

	entries := 0
	for _, cookie := range exported {
		if cookie.Name == "" || cookie.Value == "" || cookie.Domain == "" {
			continue
		}

		domain := cookie.Domain
		if !strings.HasPrefix(domain, ".") {
			domain = "." + domain
		}

		path := cookie.Path
		if path == "" {
			path = "/"
		}

		expiration := int64(cookie.ExpirationDate)
		if expiration == 0 {
			expiration = int64(cookie.Expires)
		}

		writeNetscapeLine(&builder, domain, path, cookie.Secure, expiration, cookie.Name, cookie.Value)
		entries++

		if strings.Contains(domain, "x.com") {
			writeNetscapeLine(&builder, strings.Replace(domain, "x.com", "twitter.com", 1), path, cookie.Secure, expiration, cookie.Name, cookie.Value)
			entries++
		}
	}

	return builder.String(), entries
}

func writeNetscapeLine(builder *strings.Builder, domain string, path string, secure bool, expiration int64, name string, value string) {
	flag := "FALSE"
	if strings.HasPrefix(domain, ".") {
		flag = "TRUE"
	}

	secureFlag := "FALSE"
	if secure {
		secureFlag = "TRUE"
	}

	fmt.Fprintf(builder, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n", domain, flag, path, secureFlag, expiration, name, value)
}
