package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/hoist/internal/domain/config"
	"github.com/trebuchet-org/hoist/internal/domain/models"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectArtifact asks the user to pick one of several artifacts sharing a name
func (s *SelectorAdapter) SelectArtifact(ctx context.Context, name string, candidates []*models.Artifact) (*models.Artifact, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no artifacts provided for selection")
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	options := FormatArtifactOptions(candidates)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             fmt.Sprintf("Multiple artifacts named %s, select one", name),
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          FuzzySearcher(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return candidates[index], nil
}

// FormatArtifactOptions renders "Name (path/to/File.sol)" for each candidate
func FormatArtifactOptions(candidates []*models.Artifact) []string {
	options := make([]string, len(candidates))
	for i, a := range candidates {
		relPath := strings.TrimPrefix(a.SourcePath, "src/")

		name := color.New(color.FgWhite, color.Bold).Sprint(a.Name)
		path := color.New(color.FgBlue).Sprint(relPath)
		if a.CompilerVersion != "" {
			options[i] = fmt.Sprintf("%s (%s) %s", name, path, color.New(color.Faint).Sprint(a.CompilerVersion))
		} else {
			options[i] = fmt.Sprintf("%s (%s)", name, path)
		}
	}
	return options
}

// FuzzySearcher matches by case-insensitive substring first, then fuzzily
func FuzzySearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.ArtifactSelector = (*SelectorAdapter)(nil)
