package services

import (
	"strings"

	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
)

// Name placeholders used when every other source is empty.
const (
	placeholderFirstName = "User"
	placeholderLastName  = "Name"
)

// ResolveNames derives display names from a verified identity. Per field, the
// first non-empty source wins: given/family name, the split display name,
// the previously stored name, then the email local part.
func ResolveNames(identity domain.VerifiedIdentity, fallbackEmail, existingFirst, existingLast string) (string, string) {
	first := strings.TrimSpace(identity.GivenName)
	last := strings.TrimSpace(identity.FamilyName)

	if first == "" || last == "" {
		if nameFirst, nameLast := SplitDisplayName(identity.Name); nameFirst != "" {
			if first == "" {
				first = nameFirst
			}
			if last == "" {
				last = nameLast
			}
		}
	}

	if first == "" {
		first = strings.TrimSpace(existingFirst)
	}
	if last == "" {
		last = strings.TrimSpace(existingLast)
	}

	if first == "" || last == "" {
		local := domain.EmailLocalPart(fallbackEmail)
		if first == "" {
			first = local
		}
		if last == "" {
			last = local
		}
	}

	if first == "" {
		first = placeholderFirstName
	}
	if last == "" {
		last = placeholderLastName
	}
	return first, last
}

// SplitDisplayName splits a full name on whitespace into the first token and
// the remaining tokens. A single token is used for both parts.
func SplitDisplayName(name string) (string, string) {
	tokens := strings.Fields(name)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], tokens[0]
	default:
		return tokens[0], strings.Join(tokens[1:], " ")
	}
}
