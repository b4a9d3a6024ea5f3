package usgs

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client whose dials (including the TLS handshake)
// are bounded by connectTimeout and whose wait for response headers is
// bounded by readTimeout. Body reads are bounded per read by idleReader.
func NewHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}).DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}
	return &http.Client{Transport: tr}
}

// idleReader cancels the request when a single Read blocks for longer than
// timeout, mirroring a socket read timeout.
type idleReader struct {
	r       io.Reader
	timeout time.Duration
	timer   *time.Timer
}

// newIdleReader wraps r. cancel must abort the request that r belongs to.
func newIdleReader(r io.Reader, timeout time.Duration, cancel context.CancelFunc) *idleReader {
	return &idleReader{
		r:       r,
		timeout: timeout,
		timer:   time.AfterFunc(timeout, cancel),
	}
}

func (ir *idleReader) Read(p []byte) (int, error) {
	ir.timer.Reset(ir.timeout)
	n, err := ir.r.Read(p)
	ir.timer.Stop()
	return n, err
}

func (ir *idleReader) stop() {
	ir.timer.Stop()
}
