package openrouter

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/handboekai/handboek-api/common/config"
	relaymodel "github.com/handboekai/handboek-api/relay/model"
)

// defaultTokenEncoder approximates OpenRouter-served models with the cl100k
// family; exact counts are a provider concern, we only need usage accounting.
var defaultTokenEncoder *tiktoken.Tiktoken

func InitTokenEncoders() {
	encoder, err := tiktoken.EncodingForModel("gpt-4o")
	if err != nil {
		panic(fmt.Sprintf("failed to get gpt-4o token encoder: %s, "+
			"if you are running offline set TIKTOKEN_CACHE_DIR to use cached files", err.Error()))
	}
	defaultTokenEncoder = encoder
}

func getTokenNum(text string) int {
	if config.ApproximateTokenEnabled || defaultTokenEncoder == nil {
		return int(float64(len(text)) * 0.38)
	}
	return len(defaultTokenEncoder.Encode(text, nil, nil))
}

// CountTokenText counts tokens in a plain text string.
func CountTokenText(text string) int {
	return getTokenNum(text)
}

// CountTokenMessages counts the prompt tokens of a chat request.
// Every message follows <|start|>{role/name}\n{content}<|end|>\n.
func CountTokenMessages(messages []relaymodel.Message) int {
	const tokensPerMessage = 3
	tokenNum := 0
	for _, message := range messages {
		tokenNum += tokensPerMessage
		tokenNum += getTokenNum(message.Role)
		tokenNum += getTokenNum(message.Content)
	}
	tokenNum += 3 // reply is primed with <|start|>assistant<|message|>
	return tokenNum
}

// ResponseText2Usage derives usage from collected response text when the
// upstream did not report any.
func ResponseText2Usage(responseText string, promptTokens int) *relaymodel.Usage {
	usage := &relaymodel.Usage{}
	usage.PromptTokens = promptTokens
	usage.CompletionTokens = CountTokenText(responseText)
	usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	return usage
}
