package types

// AuctionResolution is one sweep decision, also the payload pushed onto the
// resolved-auction notify queue.
type AuctionResolution struct {
	AuctionID string `json:"auction_id"`
	Status    string `json:"status"`
	WinnerID  string `json:"winner_id,omitempty"`
}

// SweepResult reports one pass of the expiry sweep.
type SweepResult struct {
	Closed      int                 `json:"closed"`
	Activated   int64               `json:"activated"`
	Resolutions []AuctionResolution `json:"resolutions"`
}
