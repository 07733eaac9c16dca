package applications_services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ValidateApplication_WithKnownFeatures_ReturnsNil(t *testing.T) {
	errors := validateApplication("I have built three sync engines.", []string{"Offline mode"}, []string{"Realtime updates", "Offline mode"})

	assert.Nil(t, errors)
}

func Test_ValidateApplication_WithBlankLetter_ReturnsError(t *testing.T) {
	errors := validateApplication("   ", nil, nil)

	assert.Contains(t, errors, "motivationLetter")
}

func Test_ValidateApplication_WithTooLongLetter_ReturnsError(t *testing.T) {
	errors := validateApplication(strings.Repeat("a", motivationLetterMaxLength+1), nil, nil)

	assert.Contains(t, errors["motivationLetter"], "at most")
}

func Test_ValidateApplication_WithUnknownFeature_PointsAtIndex(t *testing.T) {
	errors := validateApplication("Letter", []string{"Offline mode", "Teleport"}, []string{"Offline mode"})

	assert.Len(t, errors, 1)
	assert.Contains(t, errors, "selectedKeyFeatures[1]")
}

func Test_ValidateRejectionReason_LimitsLength(t *testing.T) {
	assert.Nil(t, validateRejectionReason("Not a fit right now"))
	assert.Contains(t, validateRejectionReason(strings.Repeat("x", rejectionReasonMaxLength+1)), "rejectionReason")
}
