package pkg

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadUserIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		realIP     string
		forwarded  string
		expected   string
	}{
		{name: "remote addr", remoteAddr: "83.12.53.65:2145", expected: "83.12.53.65"},
		{name: "real ip header", remoteAddr: "172.20.0.1:60102", realIP: "111.12.56.65", expected: "111.12.56.65"},
		{name: "forwarded for", remoteAddr: "172.20.0.1:60102", forwarded: "111.12.56.65, 10.0.0.1", expected: "111.12.56.65"},
		{name: "real ip wins", remoteAddr: "172.20.0.1:60102", realIP: "1.2.3.4", forwarded: "5.6.7.8", expected: "1.2.3.4"},
		{name: "ipv6", remoteAddr: "[::1]:8080", expected: "::1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.realIP != "" {
				req.Header.Set("X-Real-Ip", tc.realIP)
			}
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			assert.Equal(t, tc.expected, ReadUserIP(req))
		})
	}
}
