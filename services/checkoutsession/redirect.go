package checkoutsession

import "strings"

const (
	SuccessMarker = "purchaseSuccess"
	FailureMarker = "purchaseFailure"
)

// ClassifyRedirect tells whether a redirect uri carries a checkout result, and which one
func ClassifyRedirect(uri string) (Outcome, bool) {
	switch {
	case strings.Contains(uri, SuccessMarker):
		return OutcomeSuccess, true
	case strings.Contains(uri, FailureMarker):
		return OutcomeFailure, true
	default:
		return OutcomeNone, false
	}
}
