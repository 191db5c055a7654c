package query

import (
	"sort"
	"strings"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// Relevance weights per field and match kind. Kept as a named table so the
// scoring is tunable and testable in isolation.
var relevanceWeights = struct {
	TitleExact          float64
	TitleSubstring      float64
	CustomerExact       float64
	CustomerSubstring   float64
	TagExact            float64
	TagSubstring        float64
	ExternalIDSubstring float64
	DescriptionMatch    float64
}{
	TitleExact:          10,
	TitleSubstring:      5,
	CustomerExact:       8,
	CustomerSubstring:   4,
	TagExact:            6,
	TagSubstring:        3,
	ExternalIDSubstring: 7,
	DescriptionMatch:    2,
}

// ScoredTicket pairs a candidate with its accumulated relevance score.
type ScoredTicket struct {
	Ticket domain.Ticket
	Score  float64
}

// RankByRelevance scores candidates against a free-text query and returns
// the survivors ordered by descending score. Tickets scoring zero are
// dropped. The query is lower-cased and split on whitespace; per-term
// contributions are summed across all fields.
func RankByRelevance(candidates []domain.Ticket, text string) []ScoredTicket {
	terms := strings.Fields(strings.ToLower(text))
	if len(terms) == 0 {
		scored := make([]ScoredTicket, 0, len(candidates))
		for _, ticket := range candidates {
			scored = append(scored, ScoredTicket{Ticket: ticket})
		}
		return scored
	}

	scored := make([]ScoredTicket, 0, len(candidates))
	for _, ticket := range candidates {
		score := relevanceScore(ticket, terms)
		if score <= 0 {
			continue
		}
		scored = append(scored, ScoredTicket{Ticket: ticket, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func relevanceScore(ticket domain.Ticket, terms []string) float64 {
	title := strings.ToLower(ticket.Title)
	customer := strings.ToLower(ticket.CustomerName)
	description := strings.ToLower(ticket.Description)
	externalID := strings.ToLower(ticket.ExternalID)

	var score float64
	for _, term := range terms {
		switch {
		case strings.HasPrefix(title, term):
			score += relevanceWeights.TitleExact
		case strings.Contains(title, term):
			score += relevanceWeights.TitleSubstring
		}

		switch {
		case strings.HasPrefix(customer, term):
			score += relevanceWeights.CustomerExact
		case strings.Contains(customer, term):
			score += relevanceWeights.CustomerSubstring
		}

		for _, tag := range ticket.Tags {
			tag = strings.ToLower(tag)
			if tag == term {
				score += relevanceWeights.TagExact
				break
			}
			if strings.Contains(tag, term) {
				score += relevanceWeights.TagSubstring
				break
			}
		}

		if externalID != "" && strings.Contains(externalID, term) {
			score += relevanceWeights.ExternalIDSubstring
		}
		if strings.Contains(description, term) {
			score += relevanceWeights.DescriptionMatch
		}
	}
	return score
}
