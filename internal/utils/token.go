package utils

import "github.com/iqbaldf/chatline/internal/types"

// EstimateTokens approximates the token count of text as ceil(len/4).
// Deliberately crude: four characters per token, no real tokenization.
// Prompt and completion accounting both go through here so synthesized
// usage totals stay internally consistent.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// EstimateMessagesTokens sums the estimate over the content of every message
func EstimateMessagesTokens(messages []*types.Message) int {
	total := 0
	for _, m := range messages {
		total += EstimateTokens(m.Content)
	}
	return total
}
