package config

import "testing"

func TestResolveEncoding(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF-8", "utf8"} {
		enc, err := ResolveEncoding(name)
		if err != nil {
			t.Errorf("ResolveEncoding(%q): %v", name, err)
		}
		if enc != nil {
			t.Errorf("ResolveEncoding(%q) = %v, want nil (UTF-8 passthrough)", name, enc)
		}
	}

	enc, err := ResolveEncoding("iso-8859-1")
	if err != nil {
		t.Fatalf("ResolveEncoding(iso-8859-1): %v", err)
	}
	if enc == nil {
		t.Fatal("ResolveEncoding(iso-8859-1) = nil")
	}

	if _, err := ResolveEncoding("no-such-charset"); err == nil {
		t.Error("ResolveEncoding accepted unknown charset")
	}
}
