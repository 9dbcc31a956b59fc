package ads

import "errors"

// ErrCampaignNotFound is returned when a referenced campaign id does not
// exist in the store.
var ErrCampaignNotFound = errors.New("campaign not found")
