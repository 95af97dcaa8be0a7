package extraction

import (
	"context"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/kartikay23230/pubtator-kg/pkg/graph"
	"github.com/kartikay23230/pubtator-kg/pkg/pubtator"
)

// maxPassageTokens caps each passage's contribution to the prompt so a
// long full-text document cannot blow the model's context window.
const maxPassageTokens = 1500

// maxCompletionTokens bounds the model's reply.
const maxCompletionTokens = 1500

// Analyzer sends one extraction request per document and captures the
// raw analysis text. Request failures are recorded in the result rather
// than aborting the batch.
type Analyzer struct {
	client   *openai.Client
	model    string
	encoding *tiktoken.Tiktoken
	logger   *logrus.Logger
}

// NewAnalyzer builds an analyzer for the given client and model. Token
// truncation degrades to a rune-count heuristic when no tokenizer is
// available for the model.
func NewAnalyzer(client *openai.Client, model string, logger *logrus.Logger) *Analyzer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.WithError(err).Warnf("No tokenizer for model %s, passage truncation falls back to character counts", model)
		encoding = nil
	}
	return &Analyzer{client: client, model: model, encoding: encoding, logger: logger}
}

// truncate limits text to maxTokens, decoding back to a clean prefix.
func (a *Analyzer) truncate(text string, maxTokens int) string {
	if a.encoding == nil {
		// Rough heuristic: ~4 characters per token for English text.
		runes := []rune(text)
		if len(runes) > maxTokens*4 {
			return string(runes[:maxTokens*4])
		}
		return text
	}
	tokens := a.encoding.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return a.encoding.Decode(tokens[:maxTokens])
}

func (a *Analyzer) budget(doc pubtator.StructuredDocument) pubtator.StructuredDocument {
	for i := range doc.Passages {
		doc.Passages[i].Text = a.truncate(doc.Passages[i].Text, maxPassageTokens)
	}
	return doc
}

// AnalyzeDocument runs one extraction request.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, doc pubtator.StructuredDocument, relationTypes []string) (graph.ExtractionResult, error) {
	prompt := BuildPrompt(a.budget(doc), relationTypes)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   maxCompletionTokens,
	})
	if err != nil {
		return graph.ExtractionResult{DocumentID: doc.DocumentID}, err
	}
	return graph.ExtractionResult{
		DocumentID: doc.DocumentID,
		Analysis:   resp.Choices[0].Message.Content,
	}, nil
}

// AnalyzeDocuments runs extraction over a batch sequentially. A failed
// request yields a result whose analysis carries the error text, the
// same shape a downstream parse failure handles.
func (a *Analyzer) AnalyzeDocuments(ctx context.Context, docs []pubtator.StructuredDocument, relationTypes []string) []graph.ExtractionResult {
	results := make([]graph.ExtractionResult, 0, len(docs))
	for i, doc := range docs {
		a.logger.Infof("Analyzing document %s (%d/%d)", doc.DocumentID, i+1, len(docs))
		result, err := a.AnalyzeDocument(ctx, doc, relationTypes)
		if err != nil {
			a.logger.WithError(err).Errorf("Error processing document %s", doc.DocumentID)
			result.Analysis = fmt.Sprintf("Error: %v", err)
		}
		results = append(results, result)
	}
	return results
}
