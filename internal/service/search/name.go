package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/ports"
)

// nameResolver resolves a name query across registered users and contact
// books, deduplicated by phone number with the registered identity winning.
type nameResolver struct {
	users    ports.UserRepository
	contacts ports.ContactRepository
	scores   ports.ScoreService
}

func (r *nameResolver) Resolve(ctx context.Context, query string, requester *domain.User) ([]resolvedResult, error) {
	rankedUsers, err := r.users.FindByNameRank(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: searching users by name: %v", domain.ErrDataUnavailable, err)
	}
	rankedContacts, err := r.contacts.FindByNameRank(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: searching contacts by name: %v", domain.ErrDataUnavailable, err)
	}

	var results []resolvedResult
	seen := make(map[string]bool)

	// Users first: when a user and a contact share a number, the
	// registered identity wins the dedup.
	for _, ru := range rankedUsers {
		number := domain.NormalizePhone(ru.User.PhoneNumber)
		if seen[number] {
			continue
		}
		seen[number] = true

		snap, err := r.scores.Score(ctx, number)
		if err != nil {
			return nil, err
		}

		name := ru.User.FirstName
		results = append(results, resolvedResult{
			SearchResult: domain.SearchResult{
				PhoneNumber:  number,
				Name:         &name,
				Likelihood:   snap.Likelihood,
				ReportCount:  snap.ReportCount,
				IsRegistered: true,
			},
			SubjectUserID: ru.User.ID,
			SubjectEmail:  ru.User.Email,
		})
	}

	for _, rc := range rankedContacts {
		number := domain.NormalizePhone(rc.Contact.PhoneNumber)
		if seen[number] {
			continue
		}
		seen[number] = true

		snap, err := r.scores.Score(ctx, number)
		if err != nil {
			return nil, err
		}

		name := rc.Contact.Name
		results = append(results, resolvedResult{
			SearchResult: domain.SearchResult{
				PhoneNumber: number,
				Name:        &name,
				Likelihood:  snap.Likelihood,
				ReportCount: snap.ReportCount,
			},
		})
	}

	sortResults(results, query)
	return results, nil
}

// sortResults orders name-search hits: names starting with the query come
// first; within each group, likelihoods above 0.5 sort descending, the rest
// fall back to lexicographic name order.
func sortResults(results []resolvedResult, query string) {
	q := strings.ToLower(query)
	sort.SliceStable(results, func(i, j int) bool {
		ni, nj := resultName(results[i]), resultName(results[j])

		pi := !strings.HasPrefix(strings.ToLower(ni), q)
		pj := !strings.HasPrefix(strings.ToLower(nj), q)
		if pi != pj {
			return !pi
		}

		si, sj := 0.0, 0.0
		if results[i].Likelihood > 0.5 {
			si = -results[i].Likelihood
		}
		if results[j].Likelihood > 0.5 {
			sj = -results[j].Likelihood
		}
		if si != sj {
			return si < sj
		}

		return ni < nj
	})
}

func resultName(r resolvedResult) string {
	if r.Name != nil {
		return *r.Name
	}
	return ""
}
