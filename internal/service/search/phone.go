package search

import (
	"context"
	"fmt"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/ports"
)

// phoneResolver resolves a normalized phone number to a single identity.
// A registered user is authoritative and suppresses contact-derived
// duplicates; an unknown number is still a valid, scoreable result.
type phoneResolver struct {
	users    ports.UserRepository
	contacts ports.ContactRepository
	scores   ports.ScoreService
}

func (r *phoneResolver) Resolve(ctx context.Context, query string, requester *domain.User) ([]resolvedResult, error) {
	number := domain.NormalizePhone(query)

	user, err := r.users.FindByPhone(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("%w: looking up user by phone: %v", domain.ErrDataUnavailable, err)
	}

	snap, err := r.scores.Score(ctx, number)
	if err != nil {
		return nil, err
	}

	if user != nil {
		name := user.FirstName
		return []resolvedResult{{
			SearchResult: domain.SearchResult{
				PhoneNumber:  number,
				Name:         &name,
				Likelihood:   snap.Likelihood,
				ReportCount:  snap.ReportCount,
				IsRegistered: true,
			},
			SubjectUserID: user.ID,
			SubjectEmail:  user.Email,
		}}, nil
	}

	contacts, err := r.contacts.ListByPhone(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("%w: listing contacts by phone: %v", domain.ErrDataUnavailable, err)
	}

	result := resolvedResult{
		SearchResult: domain.SearchResult{
			PhoneNumber: number,
			Likelihood:  snap.Likelihood,
			ReportCount: snap.ReportCount,
		},
	}

	// Several owners may have saved the same number under different names;
	// aggregate the distinct ones into a single deduplicated result.
	seen := make(map[string]bool)
	for _, c := range contacts {
		if !seen[c.Name] {
			seen[c.Name] = true
			result.Names = append(result.Names, c.Name)
		}
	}

	return []resolvedResult{result}, nil
}
