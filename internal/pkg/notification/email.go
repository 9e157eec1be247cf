package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"collections-service/internal/pkg/config"
	"collections-service/internal/pkg/log_messages"
	"collections-service/internal/pkg/logger"
	"collections-service/internal/pkg/models"
)

type emailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type emailRecipient struct {
	EmailAddress emailAddress `json:"email_address"`
}

type emailRequest struct {
	From     emailAddress     `json:"from"`
	To       []emailRecipient `json:"to"`
	Subject  string           `json:"subject"`
	HTMLBody string           `json:"htmlbody"`
}

// EmailClient sends transactional mail through the provider's single-
// recipient JSON API.
type EmailClient struct {
	URL           string
	apiKey        string
	senderAddress string
	httpClient    *http.Client
}

func NewEmailClient(cfg config.EmailConfig) *EmailClient {
	return &EmailClient{
		URL:           cfg.URL,
		apiKey:        cfg.APIKey,
		senderAddress: cfg.SenderAddress,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

func (c *EmailClient) Send(
	ctx context.Context,
	recipientName, subject, recipient, verificationLink string,
) (*models.EmailResponse, error) {
	payload := emailRequest{
		From: emailAddress{Address: c.senderAddress},
		To: []emailRecipient{
			{EmailAddress: emailAddress{Address: recipient, Name: recipientName}},
		},
		Subject:  subject,
		HTMLBody: fmt.Sprintf("<p>To verify click on <strong>%s</strong>.</p>", verificationLink),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Zoho-enczapikey "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorSendingEmail, err, slog.String("recipient", recipient))
		return nil, models.NewUpstreamError(-1, err.Error())
	}

	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.CtxError(ctx, "failed to close email response body", cerr)
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorSendingEmail, err)
		return nil, models.NewUpstreamError(resp.StatusCode, "read response body")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.CtxError(ctx, log_messages.ErrorSendingEmail,
			fmt.Errorf("provider returned status %d", resp.StatusCode),
			slog.String("body", string(bodyBytes)),
		)
		return nil, models.NewUpstreamError(resp.StatusCode, string(bodyBytes))
	}

	var providerResp models.EmailResponse
	if err := json.Unmarshal(bodyBytes, &providerResp); err != nil {
		logger.CtxError(ctx, log_messages.ErrorSendingEmail, err)
		return nil, models.NewUpstreamError(resp.StatusCode, "decode response body")
	}

	logger.CtxInfo(ctx, "Email accepted by provider",
		slog.String("recipient", recipient),
		slog.String("request_id", providerResp.RequestID),
	)
	return &providerResp, nil
}
