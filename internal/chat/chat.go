package chat

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const systemPrompt = `You are the CarHub assistant, the AI helper for CarHub, a premium automotive destination selling new and pre-owned vehicles, vintage cars and spare parts. CarHub's tagline is "Where Every Journey Begins - Discover, Acquire, Excel". You help visitors browse the inventory, explain financing plans, describe the buying process (browse, inspect, test drive, finance, purchase) and answer questions about servicing. Keep answers short, friendly and focused on CarHub. If asked about anything unrelated to cars or CarHub, politely steer the conversation back.`

// Message is a single turn in a chat-completions conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client talks to an OpenAI-compatible chat-completions endpoint. With no
// API key configured it serves canned responses so the widget still works
// in development.
type Client struct {
	http   *resty.Client
	apiKey string
	apiURL string
	model  string
	log    *zap.Logger
}

func NewClient(apiKey, apiURL, model string, log *zap.Logger) *Client {
	return &Client{
		http:   resty.New().SetTimeout(30 * time.Second),
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		log:    log,
	}
}

func (c *Client) configured() bool {
	return c.apiKey != "" && c.apiURL != ""
}

// Reply answers a user message given the recent conversation history. It
// never returns an error to the caller, upstream failures degrade to the
// canned knowledge-base answers.
func (c *Client) Reply(ctx context.Context, userMessage string, history []Message) string {
	if !c.configured() {
		return fallbackReply(userMessage)
	}

	// keep the last few turns only, the widget sends the whole transcript
	if len(history) > 10 {
		history = history[len(history)-10:]
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: userMessage})

	var out completionResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(completionRequest{Model: c.model, Messages: messages}).
		SetResult(&out).
		Post(c.apiURL)
	if err != nil {
		c.log.Warn("chat upstream unreachable", zap.Error(err))
		return fallbackReply(userMessage)
	}
	if res.IsError() || len(out.Choices) == 0 {
		errMsg := ""
		if out.Error != nil {
			errMsg = out.Error.Message
		}
		c.log.Warn("chat upstream error",
			zap.Int("status", res.StatusCode()),
			zap.String("error", errMsg))
		return fallbackReply(userMessage)
	}

	return out.Choices[0].Message.Content
}

func fallbackReply(userMessage string) string {
	lower := strings.ToLower(userMessage)

	switch {
	case containsAny(lower, "hello", "hi", "hey", "greetings"):
		return "Welcome to CarHub! I'm your automotive assistant. How can I help you today?"
	case containsAny(lower, "buy", "purchase", "looking for", "want to buy"):
		return "I'd be happy to help you find the perfect car! Browse our inventory to see featured vehicles like the Tesla Model 3 and the McLaren 720S, or tell me what kind of car you're after."
	case containsAny(lower, "finance", "financing", "loan", "payment plan"):
		return "CarHub offers flexible financing plans. Submit a finance application from any vehicle page and our team will contact you within 24 hours."
	case containsAny(lower, "service", "repair", "maintenance"):
		return "Our certified technicians handle everything from oil changes to engine diagnostics. Would you like to know more about a specific service?"
	case containsAny(lower, "sell", "selling", "trade"):
		return "Selling with CarHub is simple: get a free valuation, we inspect the vehicle, agree a price and handle the paperwork."
	case containsAny(lower, "part", "parts", "brake", "oil", "filter"):
		return "Check out our spare parts inventory for premium components from brands like StopTech, Mobil, K&N and NGK."
	default:
		return "I'm the CarHub assistant. I can help you browse cars, explain financing, or answer questions about our services. What would you like to know?"
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
