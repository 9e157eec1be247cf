package downstream

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

const successResponseCode = "SRC001"

type bankVerificationRequest struct {
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
}

type bankVerificationResponse struct {
	ResponseCode    string `json:"responseCode"`
	ResponseMessage string `json:"responseMessage,omitempty"`
}

// BankVerificationClient calls the KYC provider's penny-drop account
// verification. Any response code other than SRC001 is a verification
// failure, not an error; transport and non-2xx failures surface as
// UpstreamError.
type BankVerificationClient struct {
	URL          string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewBankVerificationClient(cfg config.BankVerificationConfig) *BankVerificationClient {
	return &BankVerificationClient{
		URL:          cfg.URL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

func (c *BankVerificationClient) VerifyBankAccount(
	ctx context.Context,
	accountNumber, ifsc string,
) (models.BankVerificationResult, error) {
	body, err := json.Marshal(bankVerificationRequest{AccountNumber: accountNumber, IFSC: ifsc})
	if err != nil {
		return models.BankVerificationResult{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(body))
	if err != nil {
		return models.BankVerificationResult{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("ClientId", c.clientID)
	httpReq.Header.Set("ClientSecret", c.clientSecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorVerifyingBankAccount, err, slog.String("url", c.URL))
		return models.BankVerificationResult{}, models.NewUpstreamError(-1, err.Error())
	}

	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.CtxError(ctx, "failed to close bank verification response body", cerr)
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorVerifyingBankAccount, err)
		return models.BankVerificationResult{}, models.NewUpstreamError(resp.StatusCode, "read response body")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.CtxError(ctx, log_messages.ErrorVerifyingBankAccount,
			fmt.Errorf("provider returned status %d", resp.StatusCode),
			slog.String("body", string(bodyBytes)),
		)
		return models.BankVerificationResult{}, models.NewUpstreamError(resp.StatusCode, string(bodyBytes))
	}

	var providerResp bankVerificationResponse
	if err := json.Unmarshal(bodyBytes, &providerResp); err != nil {
		logger.CtxError(ctx, log_messages.ErrorVerifyingBankAccount, err)
		return models.BankVerificationResult{}, models.NewUpstreamError(resp.StatusCode, "decode response body")
	}

	if providerResp.ResponseCode == successResponseCode {
		return models.BankVerificationResult{Success: true}, nil
	}

	logger.CtxInfo(ctx, "Bank account verification failed",
		slog.String("responseCode", providerResp.ResponseCode),
	)
	return models.BankVerificationResult{Success: false, Message: "Bank couldn't be verified!!"}, nil
}
