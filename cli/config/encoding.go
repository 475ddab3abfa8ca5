package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// ResolveEncoding maps an IANA charset name to a text encoding for
// transcript writes. Empty and UTF-8 names return nil, which the artifact
// writer treats as plain UTF-8 passthrough.
func ResolveEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		// ianaindex returns a nil encoding for names it knows but
		// cannot provide a codec for.
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}
