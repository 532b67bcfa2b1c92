package discovery

import (
	"strings"
)

// Device is a tailnet peer owned by the current user that can receive Taildrop files.
type Device struct {
	DNSName string `json:"dns_name"` // canonical name without the trailing dot
	Online  bool   `json:"online"`
}

// DisplayName is the first label of the DNS name, e.g. "desktop" for
// "desktop.tail1234.ts.net".
func (d Device) DisplayName() string {
	name, _, _ := strings.Cut(d.DNSName, ".")
	return name
}

// Label is what a menu shows for the device.
func (d Device) Label(showDNSName bool) string {
	if showDNSName {
		return d.DNSName
	}
	return d.DisplayName()
}
