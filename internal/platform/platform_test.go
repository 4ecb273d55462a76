package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		ua      string
		os      OS
		browser string
		mobile  bool
	}{
		{
			name:    "windows chrome",
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			os:      Windows,
			browser: "chrome",
		},
		{
			name:    "mac safari",
			ua:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
			os:      MacOS,
			browser: "safari",
		},
		{
			name:    "linux firefox",
			ua:      "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			os:      Linux,
			browser: "firefox",
		},
		{
			name:    "android",
			ua:      "Mozilla/5.0 (Linux; Android 14) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36",
			os:      Android,
			browser: "chrome",
			mobile:  true,
		},
		{
			name:    "iphone",
			ua:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			os:      IOS,
			browser: "safari",
			mobile:  true,
		},
		{
			name:    "edge",
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 Edg/120.0",
			os:      Windows,
			browser: "edge",
		},
		{
			name:    "curl",
			ua:      "curl/8.4.0",
			os:      Unknown,
			browser: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Detect(tt.ua)
			assert.Equal(t, tt.os, info.OS)
			assert.Equal(t, tt.browser, info.Browser)
			assert.Equal(t, tt.mobile, info.Mobile)
		})
	}
}

func TestInstructions(t *testing.T) {
	got := Instructions("git", Install, Linux)
	assert.Equal(t, "To install git on Linux:\n1. Use package manager: sudo apt install git\n2. Or download .deb/.rpm package\n3. Or compile from source", got)

	assert.Contains(t, Instructions("vlc", Update, Windows), "winget upgrade vlc")
	assert.Equal(t, "install instructions for git not available for android", Instructions("git", Install, Android))
	assert.Equal(t, "reinstall instructions for git not available for macos", Instructions("git", Action("reinstall"), MacOS))
}

func TestCompatible(t *testing.T) {
	assert.Equal(t, []string{"homebrew", "macports"}, Compatible(MacOS, "packageManagers"))
	assert.Nil(t, Compatible(IOS, "editors"))
}
