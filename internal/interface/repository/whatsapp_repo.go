package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"traveldesk-service/internal/domain/repository"
	"traveldesk-service/pkg/logger"
	"traveldesk-service/pkg/utils"
)

// WhatsappRepository sends chat messages through the external WhatsApp
// service.
type WhatsappRepository struct {
	logger             logger.Logger
	client             *http.Client
	baseURL            string
	bearerToken        string
	defaultCountryCode string
}

// NewWhatsappRepository creates a new WhatsApp repository
func NewWhatsappRepository(baseURL, bearerToken, defaultCountryCode string, logger logger.Logger) repository.WhatsappRepository {
	return &WhatsappRepository{
		logger:             logger,
		client:             &http.Client{Timeout: 30 * time.Second},
		baseURL:            baseURL,
		bearerToken:        bearerToken,
		defaultCountryCode: defaultCountryCode,
	}
}

type whatsappSendRequest struct {
	PhoneNumber string          `json:"phoneNumber"`
	Message     whatsappMessage `json:"message"`
	Type        string          `json:"type"`
}

type whatsappMessage struct {
	Text string `json:"text"`
}

// SendText normalizes the phone number and posts a text message to the
// WhatsApp service, returning the task id it assigns.
func (r *WhatsappRepository) SendText(ctx context.Context, phone, message string) (string, error) {
	formatted := utils.FormatPhoneNumber(phone, r.defaultCountryCode)
	if formatted == "" {
		return "", fmt.Errorf("phone number %q has no digits", phone)
	}

	body := whatsappSendRequest{
		PhoneNumber: formatted,
		Message:     whatsappMessage{Text: message},
		Type:        "text",
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/messages/send", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("WhatsApp service returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TaskID string `json:"taskId"`
			Status string `json:"status"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		return "", fmt.Errorf("WhatsApp send rejected: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Info("WhatsApp message queued",
		"taskId", response.Data.TaskID,
		"phone", formatted)

	return response.Data.TaskID, nil
}
