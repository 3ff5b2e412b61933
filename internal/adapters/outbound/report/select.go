package report

import "github.com/abdidvp/wflint/internal/domain"

// Resolve picks the concrete mode for auto: workflow commands when running
// inside GitHub Actions, console output otherwise.
func Resolve(mode domain.OutputMode, getenv func(string) string) domain.OutputMode {
	if mode != domain.OutputAuto && mode != "" {
		return mode
	}
	if getenv("GITHUB_ACTIONS") == "true" {
		return domain.OutputActions
	}
	return domain.OutputConsole
}
