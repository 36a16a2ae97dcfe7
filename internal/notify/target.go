package notify

import (
	"fmt"
	"net"
	"net/url"
)

// Target is a webhook endpoint that receives order notifications.
type Target struct {
	Name   string `yaml:"name" json:"name"`
	URL    string `yaml:"url" json:"url"`
	Secret string `yaml:"secret" json:"-"`
}

// ValidateTarget checks that a target is deliverable. Targets must use
// https and must not point at loopback or unspecified addresses, unless
// allowLocal is set for local development.
func ValidateTarget(t Target, allowLocal bool) error {
	if t.URL == "" {
		return fmt.Errorf("target %q: url is required", t.Name)
	}
	if t.Secret == "" {
		return fmt.Errorf("target %q: secret is required", t.Name)
	}

	u, err := url.Parse(t.URL)
	if err != nil {
		return fmt.Errorf("target %q: invalid url: %w", t.Name, err)
	}

	if allowLocal {
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("target %q: unsupported scheme %q", t.Name, u.Scheme)
		}
		return nil
	}

	if u.Scheme != "https" {
		return fmt.Errorf("target %q: https is required", t.Name)
	}

	host := u.Hostname()
	if host == "localhost" {
		return fmt.Errorf("target %q: localhost is not allowed", t.Name)
	}
	if ip := net.ParseIP(host); ip != nil && (ip.IsLoopback() || ip.IsUnspecified()) {
		return fmt.Errorf("target %q: loopback address is not allowed", t.Name)
	}

	return nil
}
