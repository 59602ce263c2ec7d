package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anhngx/grambot/internal/core"
)

// OpenAI calls a /v1/embeddings endpoint. The dimension is requested
// explicitly so the index's configured D holds regardless of model.
type OpenAI struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	dim     int
}

func NewOpenAI(baseURL, apiKey, model string, dim int) *OpenAI {
	return &OpenAI{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		dim:     dim,
	}
}

func (o *OpenAI) Dimension() int {
	return o.dim
}

func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	payload := map[string]any{
		"model":      o.model,
		"input":      text,
		"dimensions": o.dim,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/v1/embeddings", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(result.Data) == 0 {
		return nil, fmt.Errorf("empty embedding data: %s", string(body))
	}

	vec := result.Data[0].Embedding
	if len(vec) != o.dim {
		return nil, &core.DimensionError{Want: o.dim, Got: len(vec)}
	}
	return vec, nil
}
