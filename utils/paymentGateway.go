package utils

import (
	"fmt"
	"lms/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

type paymentStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"` // PENDING, COMPLETED, FAILED, REFUNDED, CANCELLED
	Amount string `json:"amount"`
}

// VerifyPayment checks a payment reference against the payment
// gateway. Enrollment is gated on a COMPLETED payment; the domain core
// itself never talks to the gateway.
func VerifyPayment(paymentReference string) (bool, error) {
	if config.AppConfig == nil || config.AppConfig.PaymentApiKey == "" {
		// No gateway configured (free courses / local dev): let it pass.
		log.Printf("[PAYMENT] No gateway configured, accepting reference %s", paymentReference)
		return true, nil
	}

	client := resty.New().
		SetBaseURL(config.AppConfig.PaymentApiURL).
		SetTimeout(10 * time.Second).
		SetHeader("Authorization", "Bearer "+config.AppConfig.PaymentApiKey)

	var result paymentStatusResponse
	resp, err := client.R().
		SetResult(&result).
		SetPathParam("reference", paymentReference).
		Get("payments/{reference}")
	if err != nil {
		log.Printf("[PAYMENT] Gateway request failed for %s: %v", paymentReference, err)
		return false, err
	}
	if resp.StatusCode() == 404 {
		return false, nil
	}
	if resp.IsError() {
		return false, fmt.Errorf("payment gateway returned status %d", resp.StatusCode())
	}

	return result.Status == "COMPLETED", nil
}
