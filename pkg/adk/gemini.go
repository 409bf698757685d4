package adk

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiProvider(ctx context.Context, apiKey string, modelName string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-pro"
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)

	return &GeminiProvider{client: client, model: model}, nil
}

func (g *GeminiProvider) ListModels(ctx context.Context) ([]string, error) {
	iter := g.client.ListModels(ctx)
	var names []string
	for {
		m, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		if strings.Contains(m.Name, "gemini") {
			names = append(names, strings.TrimPrefix(m.Name, "models/"))
		}
	}
	return names, nil
}

func (g *GeminiProvider) GenerateResponse(ctx context.Context, history []Message, tools []Tool) (string, *ToolCall, error) {
	toolDefs := functionDeclarations(tools)
	g.model.Tools = nil
	if len(toolDefs) > 0 {
		g.model.Tools = []*genai.Tool{{FunctionDeclarations: toolDefs}}
	}

	var cs []*genai.Content
	for _, msg := range history {
		if msg.Role == "system" {
			g.model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(msg.Content)}}
			continue
		}
		role := "user"
		if msg.Role == "model" {
			role = "model"
		}
		// function output goes back as a user turn so the model sees it
		cs = append(cs, &genai.Content{
			Parts: []genai.Part{genai.Text(msg.Content)},
			Role:  role,
		})
	}

	if len(cs) == 0 {
		return "", nil, fmt.Errorf("empty history")
	}

	session := g.model.StartChat()
	session.History = cs[:len(cs)-1]
	lastMsg := cs[len(cs)-1]

	resp, err := session.SendMessage(ctx, lastMsg.Parts...)
	if err != nil {
		return "", nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil, fmt.Errorf("no response candidates")
	}

	var responseText string
	var toolCall *ToolCall
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.FunctionCall:
			toolCall = &ToolCall{ToolName: p.Name, Args: p.Args}
		case genai.Text:
			responseText += string(p)
		}
	}

	if toolCall == nil && responseText == "" {
		return "", nil, fmt.Errorf("empty response from model")
	}
	return responseText, toolCall, nil
}

func (g *GeminiProvider) Close() {
	g.client.Close()
}

// functionDeclarations describes tools to the model. Tools without arguments
// get no parameter schema, since the API rejects an object with no properties.
func functionDeclarations(tools []Tool) []*genai.FunctionDeclaration {
	var decls []*genai.FunctionDeclaration
	for _, t := range tools {
		params := toGenaiSchema(t.Schema())
		if params != nil && params.Type == genai.TypeObject && len(params.Properties) == 0 {
			params = nil
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  params,
		})
	}
	return decls
}

// toGenaiSchema converts a tool's JSON schema map into a genai schema.
// Only the subset used by our tools is understood: type, description, properties.
func toGenaiSchema(s map[string]interface{}) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{Type: genaiType(s["type"])}
	if d, ok := s["description"].(string); ok {
		out.Description = d
	}
	if props, ok := s["properties"].(map[string]interface{}); ok && len(props) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if p, ok := raw.(map[string]interface{}); ok {
				out.Properties[name] = toGenaiSchema(p)
			}
		}
	}
	return out
}

func genaiType(v interface{}) genai.Type {
	switch v {
	case "object":
		return genai.TypeObject
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeString
	}
}
