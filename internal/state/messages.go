package state

import "fmt"

// User-facing texts
const (
	MsgLoading          = "Loading..."
	MsgNoMatches        = "No matches found. Try adjusting your filters."
	MsgDiscoveryFailed  = "Failed to load results. Please check your connection and try again."
	MsgConnectionError  = "Connection error. Please try again."
	MsgLoginFailed      = "Login failed"
	MsgSignupFailed     = "Signup failed"
	MsgPasswordMismatch = "Passwords do not match"

	MsgAdded          = "Added to watchlist!"
	MsgAlreadySaved   = "Already in watchlist"
	MsgAddFailed      = "Failed to add to watchlist"
	MsgRemoved        = "Removed from watchlist"
	MsgRemoveFailed   = "Failed to remove from watchlist"
	MsgListFailed     = "Failed to load watchlist"
	MsgWatchlistEmpty = "Your watchlist is empty. Start adding movies!"
)

// PageStatus formats the status line for a loaded page
func PageStatus(page, totalPages, count int) string {
	if count == 0 && page == 1 {
		return MsgNoMatches
	}
	return fmt.Sprintf("Showing page %d of %d (%d results)", page, totalPages, count)
}
