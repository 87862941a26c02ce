package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// concurrent duplicate requests for operations that must run once. Callers
// behind the same key wait for the first execution and share its result.

import "golang.org/x/sync/singleflight"

// RewardGroup deduplicates battle reward claims keyed by
// "reward:<userID>:<battleCode>". The reward ledger's unique index remains
// the cross-process authority; the group just spares the database the race.
var RewardGroup singleflight.Group
