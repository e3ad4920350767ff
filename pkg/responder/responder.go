// Package responder generates the assistant's reply for a user message.
// Both strategies are pure functions of the input text: no state, no memory
// of prior turns, and no failure mode (any input, including the empty
// string, yields a reply).
package responder

import (
	"fmt"
	"math/rand"
	"strings"
)

type Responder interface {
	Reply(text string) string
}

const (
	ModeKeyword = "keyword"
	ModeRandom  = "random"
)

// New returns the responder for the configured mode, defaulting to keyword
// matching for anything unrecognized.
func New(mode string) Responder {
	if mode == ModeRandom {
		return &randomResponder{}
	}
	return &keywordResponder{}
}

// keywordResponder checks keyword groups in fixed priority order: greeting,
// help, booking, price, thanks, farewell, then a fallback echo.
type keywordResponder struct{}

type keywordRule struct {
	keywords []string
	reply    string
}

var keywordRules = []keywordRule{
	{
		keywords: []string{"hello", "hi"},
		reply:    "Hello! Welcome to Nestle-In. How can I assist you today?",
	},
	{
		keywords: []string{"help", "support"},
		reply: "I'm here to help! I can assist you with information about our services, " +
			"booking inquiries, general questions, and technical support. What would you like to know?",
	},
	{
		keywords: []string{"booking", "book"},
		reply: "I can help you with booking information! Currently, our booking system is " +
			"being updated. Please check back soon or contact our support team for immediate assistance.",
	},
	{
		keywords: []string{"price", "cost"},
		reply: "Our pricing varies based on the service and duration. Could you please " +
			"specify what type of service you're interested in?",
	},
	{
		keywords: []string{"thank"},
		reply:    "You're welcome! Is there anything else I can help you with?",
	},
	{
		keywords: []string{"bye", "goodbye"},
		reply:    "Goodbye! Thank you for using Nestle-In. Have a great day!",
	},
}

func (r *keywordResponder) Reply(text string) string {
	lower := strings.ToLower(text)

	if text != "" {
		for _, rule := range keywordRules {
			for _, kw := range rule.keywords {
				if strings.Contains(lower, kw) {
					return rule.reply
				}
			}
		}
	}

	return fmt.Sprintf("I understand you said: %q. I'm still learning and may not have a "+
		"specific response for that yet. Could you try rephrasing your question or ask me "+
		"something else? I'm here to help with general inquiries, booking information, and "+
		"support questions.", text)
}

// randomResponder picks uniformly among fixed templates that interpolate the
// original text.
type randomResponder struct{}

var randomTemplates = []string{
	"I understand you're asking about %q. This is a response from the MOSAIC chatbot backend. How can I help you further?",
	"Thank you for your message: %q. I'm here to assist you with any questions or tasks you might have.",
	"I see you mentioned %q. That's interesting! Let me help you with that topic.",
	"Regarding %q - I'm processing your request through the MOSAIC backend system. What specific information are you looking for?",
	"Your message about %q has been received. I'm your MOSAIC assistant, and I'm ready to help you with whatever you need.",
}

func (r *randomResponder) Reply(text string) string {
	return fmt.Sprintf(randomTemplates[rand.Intn(len(randomTemplates))], text)
}
