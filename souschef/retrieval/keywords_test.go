package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmartKeywords_CompoundWins(t *testing.T) {
	keywords := SmartKeywords("how do I make ice cream at home")

	assert.Equal(t, []string{"ice cream"}, keywords)
}

func TestSmartKeywords_DropsStopWords(t *testing.T) {
	keywords := SmartKeywords("can you show me a chicken curry recipe")

	assert.Equal(t, []string{"chicken", "curry"}, keywords)
}

func TestSmartKeywords_MaxThree(t *testing.T) {
	keywords := SmartKeywords("spicy garlic butter shrimp skillet dish")

	assert.Equal(t, []string{"spicy", "garlic", "butter"}, keywords)
}

func TestSmartKeywords_MinWordLength(t *testing.T) {
	// Tokens under three characters never qualify.
	keywords := SmartKeywords("an ox stew")

	assert.Equal(t, []string{"stew"}, keywords)
}

func TestSmartKeywords_Empty(t *testing.T) {
	assert.Empty(t, SmartKeywords("give me a recipe"))
	assert.Empty(t, SmartKeywords("   "))
}
