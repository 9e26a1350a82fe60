package service

import "strings"

type fallbackRule struct {
	keywords []string
	reply    string
}

// fallbackRules se evalua en orden; gana la primera regla con alguna keyword presente.
var fallbackRules = []fallbackRule{
	{
		keywords: []string{"product", "gear", "equipment"},
		reply:    "We offer a wide range of outdoor gear including hiking equipment, camping gear, and sporting goods. You can browse our products on the Products page to see what's available!",
	},
	{
		keywords: []string{"store", "location", "address"},
		reply:    "We have multiple store locations across different states including Washington, Colorado, Texas, and Oregon. Check out our Stores page for specific locations and hours!",
	},
	{
		keywords: []string{"hour", "open", "close"},
		reply:    "Our store hours vary by location. Most stores are open Monday through Saturday from 8AM-9PM and Sundays from 9AM-6PM. Check the Stores page for specific hours at each location.",
	},
	{
		keywords: []string{"help", "support"},
		reply:    "I'm here to help you with information about our outdoor gear, store locations, and general questions. Feel free to ask about specific products or visit our Products and Stores pages!",
	},
	{
		keywords: []string{"price", "cost", "$"},
		reply:    "Our products are competitively priced for quality outdoor gear. You can see current pricing on our Products page, and we often have seasonal sales and promotions!",
	},
	{
		keywords: []string{"camping", "hiking", "outdoor"},
		reply:    "We're passionate about outdoor adventures! We carry everything you need for camping, hiking, and outdoor activities. From tents and sleeping bags to hiking boots and navigation gear.",
	},
	{
		keywords: []string{"thank"},
		reply:    "You're welcome! I'm happy to help with any questions about our outdoor gear and store information.",
	},
	{
		keywords: []string{"bye", "goodbye"},
		reply:    "Thanks for visiting eShopLite! Have a great day and enjoy your outdoor adventures!",
	},
}

const defaultFallbackReply = "Thanks for your question! I can help you with information about our outdoor gear, store locations, and hours. You can also browse our Products and Stores pages for more details. What would you like to know?"

// FallbackReply responde con reglas de keywords; nunca falla.
func FallbackReply(message string) string {
	return matchFallback(fallbackRules, message)
}

func matchFallback(rules []fallbackRule, message string) string {
	lower := strings.ToLower(message)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply
			}
		}
	}
	return defaultFallbackReply
}
