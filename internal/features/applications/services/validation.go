package applications_services

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	motivationLetterMaxLength = 2000
	rejectionReasonMaxLength  = 1000
)

// validateApplication checks the letter and that every selected key feature
// is one the project lists. It returns nil when valid.
func validateApplication(motivationLetter string, selectedKeyFeatures []string, projectKeyFeatures []string) map[string]string {
	errors := map[string]string{}

	letter := strings.TrimSpace(motivationLetter)
	if letter == "" {
		errors["motivationLetter"] = "Motivation letter is required"
	} else if utf8.RuneCountInString(letter) > motivationLetterMaxLength {
		errors["motivationLetter"] = fmt.Sprintf("Motivation letter must be at most %d characters", motivationLetterMaxLength)
	}

	known := make(map[string]struct{}, len(projectKeyFeatures))
	for _, feature := range projectKeyFeatures {
		known[feature] = struct{}{}
	}
	for i, feature := range selectedKeyFeatures {
		if _, ok := known[feature]; !ok {
			errors[fmt.Sprintf("selectedKeyFeatures[%d]", i)] = fmt.Sprintf("Unknown key feature: %q", feature)
		}
	}

	if len(errors) == 0 {
		return nil
	}

	return errors
}

func validateRejectionReason(reason string) map[string]string {
	if utf8.RuneCountInString(reason) > rejectionReasonMaxLength {
		return map[string]string{
			"rejectionReason": fmt.Sprintf("Rejection reason must be at most %d characters", rejectionReasonMaxLength),
		}
	}

	return nil
}
