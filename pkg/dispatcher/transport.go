package dispatcher

import (
	"fmt"
	"strings"
)

// Transport is the protocol family behind a form tab.
type Transport string

const (
	REST    Transport = "REST"
	GraphQL Transport = "GraphQL"
	SOAP    Transport = "SOAP"
	GRPC    Transport = "gRPC"
)

// Transports lists the tabs in display order.
var Transports = []Transport{REST, GraphQL, SOAP, GRPC}

// ParseTransport matches a tab name case-insensitively.
func ParseTransport(s string) (Transport, error) {
	for _, t := range Transports {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transport: %q (supported: REST, GraphQL, SOAP, gRPC)", s)
}

// Callable reports whether the transport issues network calls.
func (t Transport) Callable() bool {
	return t == REST || t == GraphQL
}
