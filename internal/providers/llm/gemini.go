package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/anhngx/grambot/internal/core"
)

// Gemini talks to the Google generative language REST API. System entries
// are passed as systemInstruction; assistant turns map to the "model" role.
type Gemini struct {
	baseProvider
}

func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{
		baseProvider: newBaseProvider("https://generativelanguage.googleapis.com", apiKey, model),
	}
}

func (g *Gemini) Name() string {
	return "gemini"
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

func (g *Gemini) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	var system *geminiContent
	var contents []geminiContent

	for _, m := range history {
		switch m.Role {
		case core.RoleSystem:
			if system == nil {
				system = &geminiContent{Parts: []geminiPart{{Text: m.Content}}}
			} else {
				system.Parts = append(system.Parts, geminiPart{Text: m.Content})
			}
		case core.RoleAssistant:
			contents = append(contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: m.Content}}})
		default:
			contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Content}}})
		}
	}

	payload := map[string]any{
		"contents": contents,
	}
	if system != nil {
		payload["systemInstruction"] = system
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent?key=%s",
		url.PathEscape(g.model), url.QueryEscape(g.apiKey))

	resp, err := g.doRequest(ctx, http.MethodPost, path, payload, nil)
	if err != nil {
		return core.Message{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Message{}, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return core.Message{}, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []geminiPart `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return core.Message{}, fmt.Errorf("decode: %w", err)
	}
	if len(result.Candidates) == 0 {
		return core.Message{}, fmt.Errorf("empty candidates: %s", string(data))
	}

	var text string
	for _, p := range result.Candidates[0].Content.Parts {
		text += p.Text
	}
	return core.Message{Role: core.RoleAssistant, Content: text}, nil
}
