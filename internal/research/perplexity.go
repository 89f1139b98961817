package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	perplexityBaseURL = "https://api.perplexity.ai/chat/completions"
	perplexityModel   = "llama-3.1-sonar-small-128k-online"

	systemPrompt = "Du bist ein Recherche-Assistent für B2B-Vertrieb. Deine Aufgabe ist es, " +
		"Firmendaten zu recherchieren und strukturiert zurückzugeben. Antworte immer auf Deutsch " +
		"und liefere nur verifizierte Informationen. Wenn du etwas nicht findest, schreibe 'NICHT_GEFUNDEN'."
)

// PerplexityClient researches companies through the Perplexity chat API.
type PerplexityClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewPerplexityClient creates a Perplexity research backend. An empty model
// falls back to the default online model.
func NewPerplexityClient(apiKey, model string) *PerplexityClient {
	if model == "" {
		model = perplexityModel
	}
	return &PerplexityClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    perplexityBaseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

// IsConfigured reports whether an API key is set.
func (c *PerplexityClient) IsConfigured() bool {
	return c.apiKey != ""
}

// Research asks the API for company and contact data and parses the JSON
// block from the reply.
func (c *PerplexityClient) Research(ctx context.Context, companyName, jobTitle, location string) (*Result, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("perplexity api key not configured")
	}

	content, err := c.chatCompletion(ctx, buildResearchPrompt(companyName, jobTitle, location))
	if err != nil {
		return nil, err
	}
	return ParseResearchReply(content)
}

func buildResearchPrompt(companyName, jobTitle, location string) string {
	parts := []string{fmt.Sprintf("Firma: %s", companyName)}
	if location != "" {
		parts = append(parts, fmt.Sprintf("Standort: %s", location))
	}
	if jobTitle != "" {
		parts = append(parts, fmt.Sprintf("Stellenanzeige: %s", jobTitle))
	}

	return fmt.Sprintf(`Recherchiere folgende Firmendaten für: %s

Finde bitte:
1. Die offizielle Website der Firma
2. Die Firmenadresse (aus dem Impressum)
3. Eine Kontakt-E-Mail-Adresse (aus dem Impressum, bevorzugt info@ oder kontakt@)
4. Den Namen eines Entscheiders (CEO, CTO, Geschäftsführer, Head of HR, oder Head of Learning & Development)
5. Die Rolle/Position dieser Person
6. Den LinkedIn-Profil-Link dieser Person (falls vorhanden)

Antworte NUR im folgenden JSON-Format, ohne zusätzlichen Text:
{
    "firmen_website": "https://...",
    "firmen_adresse": "Straße Nr, PLZ Stadt",
    "firmen_email": "email@firma.de",
    "ansprechpartner_name": "Vorname Nachname",
    "ansprechpartner_rolle": "Position",
    "ansprechpartner_linkedin": "https://linkedin.com/in/..."
}

Falls du eine Information nicht findest, setze den Wert auf null.
`, strings.Join(parts, ", "))
}

func (c *PerplexityClient) chatCompletion(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   1000,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("perplexity API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// jsonBlockRe matches the first flat JSON object in a reply. Models tend to
// wrap the object in prose or code fences.
var jsonBlockRe = regexp.MustCompile(`\{[^{}]*\}`)

// ParseResearchReply extracts the JSON object from a model reply and scrubs
// placeholder values the model uses for unknown fields.
func ParseResearchReply(reply string) (*Result, error) {
	block := jsonBlockRe.FindString(reply)
	if block == "" {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	var raw map[string]*string
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse reply JSON: %w", err)
	}

	get := func(key string) string {
		v := raw[key]
		if v == nil {
			return ""
		}
		s := strings.TrimSpace(*v)
		switch strings.ToLower(s) {
		case "", "null", "nicht gefunden":
			return ""
		}
		if strings.Contains(s, "NICHT_GEFUNDEN") {
			return ""
		}
		return s
	}

	return &Result{
		CompanyWebsite:  get("firmen_website"),
		CompanyAddress:  get("firmen_adresse"),
		CompanyEmail:    get("firmen_email"),
		ContactName:     get("ansprechpartner_name"),
		ContactRole:     get("ansprechpartner_rolle"),
		ContactLinkedIn: get("ansprechpartner_linkedin"),
	}, nil
}
