package utils

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"
)

var defaultPorts = map[string]string{
	"https":     "443",
	"http":      "80",
	"redis":     "6379",
	"rediss":    "6379",
	"postgres":  "5432",
	"sqlserver": "1433",
}

// PingService checks if a service is reachable at the given URL with a TCP dial
func PingService(serviceURL string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return PingServiceContext(ctx, serviceURL)
}

// PingServiceContext is PingService bounded by ctx
func PingServiceContext(ctx context.Context, serviceURL string) error {
	address, err := dialAddress(serviceURL)
	if err != nil {
		return err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// dialAddress turns a service url into host:port, filling in the scheme's default port
func dialAddress(serviceURL string) (string, error) {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return "", fmt.Errorf("invalid service url %q: %w", serviceURL, err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		return "", fmt.Errorf("service url %q has no host", serviceURL)
	}

	port := parsedURL.Port()
	if port == "" {
		port = defaultPorts[parsedURL.Scheme]
	}
	if port == "" {
		port = "80"
	}

	return net.JoinHostPort(host, port), nil
}

// PingAuthorizer checks if the Authorizer service is reachable
func PingAuthorizer(authzURL string) error {
	return PingService(authzURL, 1500*time.Millisecond)
}
