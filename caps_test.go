package strata

import "testing"

// capsEnvVars covers every variable DetectCapabilities reads. Tests clear
// all of them so the host environment cannot leak in.
var capsEnvVars = []string{
	"COLORTERM",
	"WT_SESSION",
	"ITERM_SESSION_ID",
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"VTE_VERSION",
	"TERM",
}

func TestDetectCapabilities(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Capabilities
	}{
		{
			name: "bare environment defaults to 16 colors",
			want: Capabilities{Colors: Color16, Unicode: true, AltScreen: true},
		},
		{
			name: "colorterm truecolor",
			env:  map[string]string{"COLORTERM": "truecolor", "TERM": "xterm"},
			want: Capabilities{Colors: ColorTrue, Unicode: true, AltScreen: true},
		},
		{
			name: "colorterm 24bit",
			env:  map[string]string{"COLORTERM": "24bit"},
			want: Capabilities{Colors: ColorTrue, Unicode: true, AltScreen: true},
		},
		{
			name: "windows terminal session",
			env:  map[string]string{"WT_SESSION": "some-guid", "TERM": "xterm"},
			want: Capabilities{Colors: ColorTrue, Unicode: true, AltScreen: true},
		},
		{
			name: "kitty",
			env:  map[string]string{"KITTY_WINDOW_ID": "1"},
			want: Capabilities{Colors: ColorTrue, Unicode: true, AltScreen: true},
		},
		{
			name: "vte based terminal",
			env:  map[string]string{"VTE_VERSION": "6003"},
			want: Capabilities{Colors: ColorTrue, Unicode: true, AltScreen: true},
		},
		{
			name: "term 256color",
			env:  map[string]string{"TERM": "xterm-256color"},
			want: Capabilities{Colors: Color256, Unicode: true, AltScreen: true},
		},
		{
			name: "term truecolor",
			env:  map[string]string{"TERM": "xterm-truecolor"},
			want: Capabilities{Colors: ColorTrue, Unicode: true, AltScreen: true},
		},
		{
			name: "plain xterm",
			env:  map[string]string{"TERM": "xterm"},
			want: Capabilities{Colors: Color16, Unicode: true, AltScreen: true},
		},
		{
			name: "dumb terminal",
			env:  map[string]string{"TERM": "dumb"},
			want: Capabilities{Colors: ColorNone, Unicode: false, AltScreen: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range capsEnvVars {
				t.Setenv(v, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := DetectCapabilities(); got != tt.want {
				t.Errorf("DetectCapabilities = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCapabilitiesString(t *testing.T) {
	tests := []struct {
		caps Capabilities
		want string
	}{
		{Capabilities{Colors: ColorTrue, Unicode: true, AltScreen: true}, "true-color, unicode, altscreen"},
		{Capabilities{Colors: Color256, Unicode: true, AltScreen: true}, "256-color, unicode, altscreen"},
		{Capabilities{Colors: ColorNone}, "no-color, ascii"},
		{Capabilities{Colors: Color16, Unicode: false, AltScreen: true}, "16-color, ascii, altscreen"},
	}

	for _, tt := range tests {
		if got := tt.caps.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
