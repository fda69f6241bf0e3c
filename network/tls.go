package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

// browserUserAgent matches the ClientHello of BrowserTransport.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// BrowserTransport fetches animations from CDNs that refuse Go's own TLS
// handshake by presenting a Chrome ClientHello.
//
// A host is first tried over HTTP/2. Hosts that fail it are remembered and
// go straight to HTTP/1.1 afterwards, so a playlist of many files from one
// CDN pays for the fallback once.
type BrowserTransport struct {
	// Hello is the fingerprint to present. Zero means Chrome 120.
	Hello utls.ClientHelloID
	// DialTimeout bounds the TCP connect and the handshake. Zero means 30s.
	DialTimeout time.Duration

	once   sync.Once
	h2     *http2.Transport
	h1     *http.Transport
	h1Only sync.Map
}

// NewBrowserTransport returns a transport with the default fingerprint.
func NewBrowserTransport() *BrowserTransport {
	return &BrowserTransport{}
}

func (t *BrowserTransport) init() {
	t.once.Do(func() {
		if t.Hello == (utls.ClientHelloID{}) {
			t.Hello = utls.HelloChrome_120
		}
		if t.DialTimeout <= 0 {
			t.DialTimeout = 30 * time.Second
		}

		t.h2 = &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return t.dial(ctx, network, addr, nil)
			},
		}
		t.h1 = &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return t.dial(ctx, network, addr, []string{"http/1.1"})
			},
		}
	})
}

// prefersHTTP1 reports whether host already failed over HTTP/2.
func (t *BrowserTransport) prefersHTTP1(host string) bool {
	_, ok := t.h1Only.Load(host)
	return ok
}

func (t *BrowserTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.init()

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", browserUserAgent)
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	}

	if req.URL.Scheme != "https" {
		return Client.Transport.RoundTrip(req)
	}

	host := req.URL.Host
	if !t.prefersHTTP1(host) {
		resp, err := t.h2.RoundTrip(req)
		if err == nil {
			return resp, nil
		}
		// a consumed body cannot be sent twice
		if req.Body != nil && req.GetBody == nil {
			return nil, err
		}
		t.h1Only.Store(host, struct{}{})
	}

	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		req.Body = body
	}
	return t.h1.RoundTrip(req)
}

func (t *BrowserTransport) dial(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, t.DialTimeout)
	defer cancel()

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	conn, err := (&net.Dialer{}).DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	uconn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, t.Hello)

	if err := uconn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake with %s: %w", host, err)
	}
	return uconn, nil
}
