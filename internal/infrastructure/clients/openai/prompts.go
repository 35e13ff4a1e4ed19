package openai

import (
	"fmt"
	"strings"
)

const venueProfileSystemPrompt = `You are a venue analyst for a recommendation service.
Given a venue's name, categories, price level and rating, estimate how well the
venue fits each of the following occasions on a 0.0 to 1.0 scale:

- work: good for laptop work or a working session
- date: good for a date or an intimate evening
- quick_bite: good for a fast, casual meal
- budget: affordable for a budget-conscious visit

Respond with JSON only, no prose, in this exact shape:

{
  "attribute_scores": {"work": 0.0, "date": 0.0, "quick_bite": 0.0, "budget": 0.0},
  "evidence": {"work": ["short snippet"], "date": [], "quick_bite": [], "budget": []}
}

Evidence snippets must be short factual phrases grounded in the input. Do not
invent amenities that are not implied by the venue data.`

func buildVenueProfileUserPrompt(name string, categories []string, priceLevel *int, rating *float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Venue: %s\n", name)
	if len(categories) > 0 {
		fmt.Fprintf(&sb, "Categories: %s\n", strings.Join(categories, ", "))
	}
	if priceLevel != nil {
		fmt.Fprintf(&sb, "Price level (0=free, 4=very expensive): %d\n", *priceLevel)
	}
	if rating != nil {
		fmt.Fprintf(&sb, "Rating: %.1f\n", *rating)
	}
	return sb.String()
}
