package service

import (
	"fmt"
	"strings"

	"eshoplite/internal/domain"
)

// formatProductContext lista hasta limit productos, uno por linea.
func formatProductContext(products []domain.Product, limit int) string {
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- %s ($%.2f) - %s", p.Name, p.Price, p.Description))
	}
	return strings.Join(lines, "\n")
}

func buildSystemPrompt(productContext string) string {
	var sb strings.Builder

	sb.WriteString("You are a helpful assistant for eShopLite, an outdoor gear and sporting goods store.\n")
	sb.WriteString("You help customers find products, answer questions about outdoor activities, and provide store information.\n\n")

	sb.WriteString("Available Products Context:\n")
	sb.WriteString(strings.TrimSpace(productContext))
	sb.WriteString("\n\n")

	sb.WriteString("Guidelines:\n")
	sb.WriteString("- Be friendly, knowledgeable, and helpful\n")
	sb.WriteString("- Focus on outdoor gear, camping, hiking, and sporting goods\n")
	sb.WriteString("- Recommend specific products when relevant\n")
	sb.WriteString("- Keep responses concise and under 500 characters\n")
	sb.WriteString("- If asked about products not in our catalog, suggest alternatives or related items\n")
	sb.WriteString("- For store locations, mention we have multiple locations across different states")

	return sb.String()
}
