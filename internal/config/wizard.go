package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to kbportal! Let's configure the support portal.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 2. Transcript policy.
	transcriptPrompt := promptui.Select{
		Label: "Chat transcript when leaving the assistant screen",
		Items: []string{
			"reset: start a fresh conversation each visit",
			"keep:  keep the conversation for the whole session",
		},
	}
	idx, _, err := transcriptPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("transcript policy: %w", err)
	}
	cfg.Chat.Transcript = []TranscriptPolicy{TranscriptReset, TranscriptKeep}[idx]

	// 3. Survey link.
	surveyPrompt := promptui.Prompt{
		Label:   "Satisfaction survey URL",
		Default: cfg.SurveyURL,
	}
	cfg.SurveyURL, err = surveyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("survey url: %w", err)
	}

	// 4. Audit trail.
	auditPrompt := promptui.Prompt{
		Label:     "Record portal activity in the audit log",
		IsConfirm: true,
		Default:   "y",
	}
	if _, err := auditPrompt.Run(); err != nil {
		if err != promptui.ErrAbort {
			return nil, fmt.Errorf("audit: %w", err)
		}
		cfg.Audit.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n <= 0 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
