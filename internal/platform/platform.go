// Package platform guesses the client platform from a User-Agent and
// renders platform-specific software instructions.
package platform

import (
	"fmt"
	"regexp"
	"strings"
)

type OS string

const (
	Windows OS = "windows"
	MacOS   OS = "macos"
	Linux   OS = "linux"
	Android OS = "android"
	IOS     OS = "ios"
	Unknown OS = "unknown"
)

type Info struct {
	OS           OS     `json:"os"`
	Architecture string `json:"architecture"`
	Browser      string `json:"browser"`
	Mobile       bool   `json:"mobile"`
}

var mobilePattern = regexp.MustCompile(`(?i)Android|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// Detect inspects a User-Agent header value.
func Detect(userAgent string) Info {
	ua := strings.ToLower(userAgent)

	// mobile checks come first: Android UAs mention Linux and iOS UAs mention Mac OS X
	os := Unknown
	switch {
	case strings.Contains(ua, "android"):
		os = Android
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ipod"):
		os = IOS
	case strings.Contains(ua, "windows"), strings.Contains(ua, "win64"), strings.Contains(ua, "win32"):
		os = Windows
	case strings.Contains(ua, "mac"):
		os = MacOS
	case strings.Contains(ua, "linux"), strings.Contains(ua, "x11"):
		os = Linux
	}

	arch := "x86"
	if strings.Contains(ua, "64") {
		arch = "x64"
	}

	return Info{
		OS:           os,
		Architecture: arch,
		Browser:      detectBrowser(userAgent),
		Mobile:       mobilePattern.MatchString(userAgent),
	}
}

func detectBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "Edg"):
		return "edge"
	case strings.Contains(ua, "Chrome"):
		return "chrome"
	case strings.Contains(ua, "Firefox"):
		return "firefox"
	case strings.Contains(ua, "Safari"):
		return "safari"
	default:
		return "unknown"
	}
}

type Action string

const (
	Install   Action = "install"
	Uninstall Action = "uninstall"
	Update    Action = "update"
)

var instructionTemplates = map[OS]map[Action]string{
	Windows: {
		Install:   "To install %[1]s on Windows:\n1. Use winget: winget install %[1]s\n2. Or download from official website\n3. Run as administrator if needed",
		Uninstall: "To uninstall %[1]s on Windows:\n1. Go to Settings > Apps\n2. Search for %[1]s\n3. Click Uninstall",
		Update:    "To update %[1]s on Windows:\n1. Use winget: winget upgrade %[1]s\n2. Or check for updates in the app",
	},
	MacOS: {
		Install:   "To install %[1]s on macOS:\n1. Use Homebrew: brew install %[1]s\n2. Or download from App Store/website\n3. Drag to Applications folder",
		Uninstall: "To uninstall %[1]s on macOS:\n1. Drag app to Trash\n2. Or use: brew uninstall %[1]s\n3. Clean up preferences if needed",
		Update:    "To update %[1]s on macOS:\n1. Use: brew upgrade %[1]s\n2. Or check App Store updates\n3. Enable auto-updates if available",
	},
	Linux: {
		Install:   "To install %[1]s on Linux:\n1. Use package manager: sudo apt install %[1]s\n2. Or download .deb/.rpm package\n3. Or compile from source",
		Uninstall: "To uninstall %[1]s on Linux:\n1. Use: sudo apt remove %[1]s\n2. Clean config: sudo apt purge %[1]s\n3. Remove dependencies: sudo apt autoremove",
		Update:    "To update %[1]s on Linux:\n1. Update package list: sudo apt update\n2. Upgrade: sudo apt upgrade %[1]s\n3. Or upgrade all: sudo apt upgrade",
	},
}

// Instructions returns step-by-step text for performing action on software.
// Unsupported platform/action pairs get a fallback sentence.
func Instructions(software string, action Action, os OS) string {
	if tmpl, ok := instructionTemplates[os][action]; ok {
		return fmt.Sprintf(tmpl, software)
	}
	return fmt.Sprintf("%s instructions for %s not available for %s", action, software, os)
}

// Catalog lists well-known tools per desktop platform and category.
var Catalog = map[OS]map[string][]string{
	Windows: {
		"packageManagers": {"chocolatey", "winget", "scoop"},
		"terminals":       {"cmd", "powershell", "wsl"},
		"editors":         {"notepad", "vscode", "sublime", "atom"},
		"browsers":        {"chrome", "firefox", "edge", "opera"},
	},
	MacOS: {
		"packageManagers": {"homebrew", "macports"},
		"terminals":       {"terminal", "iterm2", "zsh", "bash"},
		"editors":         {"textedit", "vscode", "sublime", "xcode"},
		"browsers":        {"safari", "chrome", "firefox", "opera"},
	},
	Linux: {
		"packageManagers": {"apt", "yum", "dnf", "pacman", "zypper"},
		"terminals":       {"bash", "zsh", "fish", "gnome-terminal"},
		"editors":         {"nano", "vim", "emacs", "vscode", "sublime"},
		"browsers":        {"firefox", "chrome", "chromium", "opera"},
	},
}

// Compatible returns the catalog entries for a platform category, or nil.
func Compatible(os OS, category string) []string {
	return Catalog[os][category]
}
