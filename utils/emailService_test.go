package utils

import (
	"lms/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Without an API key configured the helpers log and return nil, so
// controllers can branch on the error uniformly.
func TestEmailHelpersWithoutApiKey(t *testing.T) {
	config.AppConfig = &config.Config{}

	assert.NoError(t, SendEnrollmentEmail("student@example.com", "Student", "Intro Course"))
	assert.NoError(t, SendCourseCompletedEmail("student@example.com", "Student", "Intro Course"))
	assert.NoError(t, SendAttemptGradedEmail("student@example.com", "Student", "Basics Quiz", 82.5, true))
}

func TestVerifyPaymentWithoutGatewayAccepts(t *testing.T) {
	config.AppConfig = &config.Config{}

	verified, err := VerifyPayment("ref-123")
	assert.NoError(t, err)
	assert.True(t, verified)
}
