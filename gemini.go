package atelier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Assistant calls a hosted generation endpoint (Gemini's generateContent
// API) on behalf of the chat relay. Every call is stateless and carries the
// entire transcript; the relay performs no truncation.
type Assistant struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewAssistant creates an Assistant. An empty apiKey produces an assistant
// whose Configured method reports false; callers answer with the
// missing-credential error instead of issuing requests.
func NewAssistant(apiKey, model, baseURL string) *Assistant {
	return &Assistant{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether a generation credential is present.
func (g *Assistant) Configured() bool {
	return g.apiKey != ""
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		Temperature float64 `json:"temperature"`
		TopP        float64 `json:"topP"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate forwards the transcript plus a profile-derived system instruction
// to the generation endpoint and returns the generated text. History turns
// are passed through unmodified, with the new user turn appended last.
func (g *Assistant) Generate(ctx context.Context, profile Profile, message string, history []ChatMessage) (string, error) {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, h := range history {
		role := "user"
		if h.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: h.Content}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: message}}})

	req := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemInstruction(profile)}}},
		Contents:          contents,
	}
	req.GenerationConfig.Temperature = 0.7
	req.GenerationConfig.TopP = 0.95

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// systemInstruction renders the identity/project/skill context the assistant
// answers from.
func systemInstruction(p Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI assistant representing %s, a %s.\n", p.Name, p.Title)
	fmt.Fprintf(&b, "Your goal is to answer questions from visitors to %s's personal website.\n\n", p.Name)
	fmt.Fprintf(&b, "Information about %s:\n", p.Name)
	fmt.Fprintf(&b, "- Bio: %s\n", p.Bio)
	if p.Location != "" {
		fmt.Fprintf(&b, "- Location: %s\n", p.Location)
	}
	if len(p.Projects) > 0 {
		parts := make([]string, 0, len(p.Projects))
		for _, pr := range p.Projects {
			parts = append(parts, fmt.Sprintf("%s: %s", pr.Title, pr.Description))
		}
		fmt.Fprintf(&b, "- Projects: %s\n", strings.Join(parts, ", "))
	}
	if len(p.Skills) > 0 {
		names := make([]string, 0, len(p.Skills))
		for _, s := range p.Skills {
			names = append(names, s.Name)
		}
		fmt.Fprintf(&b, "- Key Skills: %s\n", strings.Join(names, ", "))
	}
	b.WriteString("\nGuidelines:\n")
	b.WriteString("- Be professional, friendly, and concise.\n")
	if p.Email != "" {
		fmt.Fprintf(&b, "- If someone asks for contact info, provide %s.\n", p.Email)
	}
	b.WriteString("- If someone asks something irrelevant to professional work, politely pivot back.\n")
	b.WriteString("- Use Markdown for formatting if necessary.\n")
	b.WriteString("- Language: respond in the same language as the user.\n")
	return b.String()
}
