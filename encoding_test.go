package strata

import (
	"errors"
	"testing"
)

func clearLocale(t *testing.T) {
	t.Helper()
	for _, v := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		t.Setenv(v, "")
	}
}

func TestDetectCharset(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unset locale", nil, "US-ASCII"},
		{"C locale", map[string]string{"LANG": "C"}, "US-ASCII"},
		{"POSIX locale", map[string]string{"LANG": "POSIX"}, "US-ASCII"},
		{"utf8 lang", map[string]string{"LANG": "en_US.UTF-8"}, "UTF-8"},
		{"latin1 lang", map[string]string{"LANG": "de_DE.ISO-8859-1"}, "ISO-8859-1"},
		{"modifier stripped", map[string]string{"LANG": "de_DE.ISO-8859-15@euro"}, "ISO-8859-15"},
		{"language only", map[string]string{"LANG": "en_US"}, "UTF-8"},
		{"lc_all wins", map[string]string{"LANG": "en_US.UTF-8", "LC_ALL": "C"}, "US-ASCII"},
		{"lc_ctype over lang", map[string]string{"LANG": "C", "LC_CTYPE": "en_US.UTF-8"}, "UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearLocale(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := detectCharset(); got != tt.want {
				t.Errorf("detectCharset = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncoderFor(t *testing.T) {
	tests := []struct {
		charset string
		native  bool
		wantErr bool
	}{
		{"UTF-8", true, false},
		{"utf-8", true, false},
		{"UTF8", true, false},
		{"US-ASCII", false, false},
		{"ASCII", false, false},
		{"ANSI_X3.4-1968", false, false},
		{"ISO-8859-1", false, false},
		{"ISO-8859-15", false, false},
		{"KOI8-R", false, false},
		{"no-such-charset", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.charset, func(t *testing.T) {
			enc, err := encoderFor(tt.charset)
			if tt.wantErr {
				if !errors.Is(err, ErrEncoding) {
					t.Fatalf("err = %v, want ErrEncoding", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("encoderFor: %v", err)
			}
			if enc.utf8Native() != tt.native {
				t.Errorf("utf8Native = %v, want %v", enc.utf8Native(), tt.native)
			}
		})
	}
}

func TestEncoderAppend(t *testing.T) {
	tests := []struct {
		name    string
		charset string
		r       rune
		want    string
	}{
		{"utf8 ascii", "UTF-8", 'a', "a"},
		{"utf8 multibyte", "UTF-8", 'é', "é"},
		{"utf8 wide", "UTF-8", '世', "世"},
		{"ascii passthrough", "US-ASCII", 'a', "a"},
		{"ascii replaces accent", "US-ASCII", 'é', "?"},
		{"ascii replaces cjk", "US-ASCII", '世', "?"},
		{"latin1 accent", "ISO-8859-1", 'é', "\xe9"},
		{"latin1 replaces cjk", "ISO-8859-1", '世', "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := encoderFor(tt.charset)
			if err != nil {
				t.Fatalf("encoderFor: %v", err)
			}
			got := enc.append(nil, tt.r)
			if string(got) != tt.want {
				t.Errorf("append(%q) = %q, want %q", tt.r, got, tt.want)
			}
		})
	}
}

func TestEncoderAppendNeverLeaksSub(t *testing.T) {
	enc, err := encoderFor("US-ASCII")
	if err != nil {
		t.Fatalf("encoderFor: %v", err)
	}
	// The ASCII encoder substitutes SUB (0x1a) for unmapped runes rather
	// than failing; that control byte must never reach the output.
	for _, r := range []rune{'é', '世', '☃'} {
		out := enc.append(nil, r)
		for _, b := range out {
			if b == asciiSub {
				t.Errorf("append(%q) leaked SUB: %q", r, out)
			}
		}
		if len(out) != 1 {
			t.Errorf("append(%q) = %q, want a single replacement byte", r, out)
		}
	}
}
