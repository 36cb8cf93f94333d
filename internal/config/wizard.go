package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// sidebarFilePatterns are common sidebar file locations checked by the wizard.
var sidebarFilePatterns = []string{
	"sidebars.yml",
	"sidebars.yaml",
	"sidebars/*.yml",
	"sidebars/*.yaml",
	"sidebars.json",
}

// detectSidebarFile returns the first sidebar file found in the current
// directory, or "" when there is none.
func detectSidebarFile() string {
	for _, pattern := range sidebarFilePatterns {
		matches, _ := filepath.Glob(pattern)
		if len(matches) > 0 {
			return filepath.ToSlash(matches[0])
		}
	}
	return ""
}

// detectContentDir suggests the working directory as content root when it
// holds a docs directory.
func detectContentDir() string {
	if info, err := os.Stat("docs"); err == nil && info.IsDir() {
		return "."
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(out io.Writer, path string) (*Config, error) {
	fmt.Fprintln(out, "Welcome to sidenav! Let's configure your sidebar checks.")
	fmt.Fprintln(out)

	cfg := DefaultConfig()

	// 1. Sidebar file.
	sidebarPrompt := promptui.Prompt{
		Label:   "Sidebar file (leave blank for the built-in sidebar)",
		Default: detectSidebarFile(),
	}
	sidebarPath, err := sidebarPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("sidebar file: %w", err)
	}
	cfg.Sidebar = strings.TrimSpace(sidebarPath)

	// 2. Content root.
	contentPrompt := promptui.Prompt{
		Label:   "Content root containing docs/ (leave blank to skip reference checks)",
		Default: detectContentDir(),
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content root: %w", err)
	}
	cfg.ContentDir = strings.TrimSpace(contentDir)

	// 3. Exclude patterns.
	if cfg.ContentDir != "" {
		excludePrompt := promptui.Prompt{
			Label:   "Exclude patterns (comma-separated globs, leave blank for none)",
			Default: "",
		}
		excludeStr, err := excludePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("exclude patterns: %w", err)
		}
		cfg.Exclude = splitAndTrim(excludeStr)
	}

	// 4. Strictness.
	strictPrompt := promptui.Select{
		Label: "Duplicate document references",
		Items: []string{
			"warn  - report duplicates as warnings",
			"error - fail validation on unexpected duplicates",
		},
	}
	strictIdx, _, err := strictPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("strictness: %w", err)
	}
	cfg.Strict = strictIdx == 1

	// 5. History.
	historyPrompt := promptui.Select{
		Label: "Record validation runs in a local history database?",
		Items: []string{"no", "yes"},
	}
	historyIdx, _, err := historyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	cfg.History.Enabled = historyIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
// Empty entries are dropped.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
