package services

import (
	"sort"
	"strings"

	"github.com/moazam110/PaaniPlant-sub001/internal/models"
)

// SortForDisplay orders requests for the dashboard: status rank first
// (pending_confirmation, pending, processing, delivered, cancelled, unknown),
// urgent before normal within the active ranks, most recent first as the tie
// breaker. The chain is a strict total order over distinct requestedAt values,
// so the output is reproducible for identical input sets. The input slice is
// not modified.
func SortForDisplay(requests []models.DeliveryRequest) []models.DeliveryRequest {
	sorted := make([]models.DeliveryRequest, len(requests))
	copy(sorted, requests)

	sort.SliceStable(sorted, func(i, j int) bool {
		return displayLess(sorted[i], sorted[j])
	})

	return sorted
}

func displayLess(a, b models.DeliveryRequest) bool {
	rankA, rankB := a.Status.Rank(), b.Status.Rank()
	if rankA != rankB {
		return rankA < rankB
	}

	// Urgency only matters while a request is still active.
	if a.Status.IsActive() && a.Priority != b.Priority {
		return a.Priority == models.PriorityUrgent
	}

	return a.RequestedAt.Time.After(b.RequestedAt.Time)
}

// FilterRequests keeps the requests matching the query by case-insensitive
// subsequence against customer name, address, status and priority labels.
// An empty query matches everything.
func FilterRequests(requests []models.DeliveryRequest, query string) []models.DeliveryRequest {
	query = strings.TrimSpace(query)
	if query == "" {
		return requests
	}

	result := make([]models.DeliveryRequest, 0, len(requests))
	for _, request := range requests {
		if MatchesSubsequence(query, request.CustomerName) ||
			MatchesSubsequence(query, request.Address) ||
			MatchesSubsequence(query, string(request.Status)) ||
			MatchesSubsequence(query, string(request.Priority)) {
			result = append(result, request)
		}
	}

	return result
}

// MatchesSubsequence reports whether every character of query appears in text
// in order, with possible gaps. Comparison is case-insensitive and rune-wise.
func MatchesSubsequence(query, text string) bool {
	queryRunes := []rune(strings.ToLower(query))
	if len(queryRunes) == 0 {
		return true
	}

	i := 0
	for _, r := range strings.ToLower(text) {
		if r == queryRunes[i] {
			i++
			if i == len(queryRunes) {
				return true
			}
		}
	}

	return false
}
