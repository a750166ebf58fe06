package result

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"os"
	"strings"
)

// FailureCategory represents the classification of a transport failure.
type FailureCategory string

const (
	CategoryTimeout           FailureCategory = "timeout"
	CategoryDNSFailure        FailureCategory = "dns_failure"
	CategoryConnectionRefused FailureCategory = "connection_refused"
	CategoryTLSFailure        FailureCategory = "tls_failure"
	CategoryUnknown           FailureCategory = "unknown"
)

// ClassifyFailure determines the failure category for a transport-level
// error returned by an HTTP client. net/http wraps errors in *url.Error, so
// all checks go through errors.Is/As.
func ClassifyFailure(err error) FailureCategory {
	if err == nil {
		return CategoryUnknown
	}

	// Timeouts first: a cancelled per-request context and transport-level
	// timeouts must both land here so the caller can tell timeouts apart
	// from other network errors.
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return CategoryTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CategoryDNSFailure
	}

	var certErr *tls.CertificateVerificationError
	var hostErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &hostErr) {
		return CategoryTLSFailure
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return CategoryTimeout
		}
		if opErr.Op == "dial" && strings.Contains(opErr.Error(), "connection refused") {
			return CategoryConnectionRefused
		}
	}

	return CategoryUnknown
}

// DescribeFailure renders a transport failure as the human-readable status
// text used when a probe yields no HTTP status.
func DescribeFailure(err error) string {
	switch ClassifyFailure(err) {
	case CategoryTimeout:
		return "request timed out"
	case CategoryDNSFailure:
		return "DNS lookup failed"
	case CategoryConnectionRefused:
		return "connection refused"
	case CategoryTLSFailure:
		return "TLS certificate verification failed"
	default:
		return "network error: " + err.Error()
	}
}
