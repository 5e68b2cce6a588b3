package webhook

import (
	"net"
	"net/http"
	"strconv"
	"time"
)

const (
	// ClientTimeout is the total request timeout.
	ClientTimeout = 10 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 5 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 5 * time.Second
	// ResponseHeaderTimeout is time to wait for response headers.
	ResponseHeaderTimeout = 8 * time.Second
)

// Header names on notification requests.
const (
	HeaderSignature  = "X-Full9-Signature"
	HeaderTimestamp  = "X-Full9-Timestamp"
	HeaderDeliveryID = "X-Full9-Delivery-Id"
	HeaderEvent      = "X-Full9-Event"

	userAgent = "Full9-Notify/1.0"
)

// NewHTTPClient creates an HTTP client for notification delivery.
// Redirects are not followed.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: ClientTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   2,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// signRequest sets the content and signature headers on req.
func signRequest(req *http.Request, secret string, evt Event, body []byte, ts int64) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(HeaderEvent, evt.Type)
	req.Header.Set(HeaderDeliveryID, evt.ID)
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	if secret != "" {
		req.Header.Set(HeaderSignature, GenerateSignature(secret, ts, body))
	}
}
