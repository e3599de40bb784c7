package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/valpere/contran/internal/language"
)

const (
	deeplProHost  = "https://api.deepl.com"
	deeplFreeHost = "https://api-free.deepl.com"
)

// DeepLClient is the dedicated translation service. It is only used when
// the deployment explicitly enables it; see policy.Select.
type DeepLClient struct {
	apiKey string
	host   string
	client *http.Client
}

// NewDeepLClient creates a DeepL client. free selects the free-tier
// endpoint.
func NewDeepLClient(apiKey string, free bool) *DeepLClient {
	host := deeplProHost
	if free {
		host = deeplFreeHost
	}
	return &DeepLClient{
		apiKey: apiKey,
		host:   host,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *DeepLClient) Name() string {
	return "deepl"
}

type deeplRequest struct {
	Text       []string `json:"text"`
	TargetLang string   `json:"target_lang"`
	SourceLang string   `json:"source_lang,omitempty"`
	Formality  string   `json:"formality,omitempty"`
}

type deeplResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

func (c *DeepLClient) Translate(ctx context.Context, text string, target, source language.Language, formality language.Formality) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("DeepL API key not configured")
	}
	if !target.SupportsDeepL() {
		return "", fmt.Errorf("DeepL does not support target language %s", target.LLMFormat())
	}

	reqBody := deeplRequest{
		Text:       []string{text},
		TargetLang: target.DeepLCode(),
		Formality:  formality.DeepLParam(),
	}
	if source != language.Unknown && source.SupportsDeepL() {
		// DeepL wants the bare code for sources, without regional variants.
		reqBody.SourceLang = strings.SplitN(source.DeepLCode(), "-", 2)[0]
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.host+"/v2/translate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("DeepL request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		switch resp.StatusCode {
		case http.StatusForbidden:
			return "", &StatusError{Provider: "deepl", StatusCode: resp.StatusCode, Message: "invalid API key"}
		case 456:
			return "", &StatusError{Provider: "deepl", StatusCode: resp.StatusCode, Message: "quota exceeded"}
		default:
			return "", &StatusError{Provider: "deepl", StatusCode: resp.StatusCode, Message: string(body)}
		}
	}

	var deeplResp deeplResponse
	if err := json.NewDecoder(resp.Body).Decode(&deeplResp); err != nil {
		return "", fmt.Errorf("failed to decode DeepL response: %w", err)
	}

	if len(deeplResp.Translations) == 0 {
		return "", fmt.Errorf("deepl: %w", ErrEmptyResponse)
	}

	return strings.TrimSpace(deeplResp.Translations[0].Text), nil
}
