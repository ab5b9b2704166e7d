package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagClassifier(t *testing.T) {
	c := NewTagClassifier(DefaultRules().Tags)

	assert.Equal(t, []string{"general"}, c.Classify("Mystery box", "surprise inside"))
	assert.Equal(t, []string{"electronics"}, c.Classify("Bluetooth Headphones", ""))
	assert.Equal(t, []string{"electronics", "premium"}, c.Classify("Premium Wireless Earbuds", "with charging case"))
	assert.ElementsMatch(t, []string{"home", "gifts", "traditional"}, c.Classify("Handcrafted Diya Gift Set", "festive home decor"))
}

func TestTagClassifierNeverEmpty(t *testing.T) {
	c := NewTagClassifier(nil)
	assert.Equal(t, []string{DefaultTag}, c.Classify("", ""))
}
