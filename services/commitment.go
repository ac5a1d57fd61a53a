package services

import "strings"

// CommitmentPolicy decides whether the classifier's reply commits to a
// delivery (making an amenity mention an actionable fulfillment) or
// merely answers a price/availability question. It is a replaceable
// strategy: the default keyword scan is known to be brittle and
// language-dependent.
type CommitmentPolicy interface {
	IsDeliveryCommitment(reply string) bool
}

// KeywordPolicy flags replies containing dispatch language.
type KeywordPolicy struct {
	Keywords []string
}

// DefaultCommitmentPolicy matches the phrases the concierge model uses
// when it promises a delivery or a bill charge.
func DefaultCommitmentPolicy() *KeywordPolicy {
	return &KeywordPolicy{Keywords: []string{
		"deliver",
		"bring",
		"send",
		"on its way",
		"will be added to your bill",
	}}
}

func (p *KeywordPolicy) IsDeliveryCommitment(reply string) bool {
	lower := strings.ToLower(reply)
	for _, kw := range p.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
