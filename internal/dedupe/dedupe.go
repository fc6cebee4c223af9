// Package dedupe provides shared singleflight groups used to collapse
// concurrent identical reads. A battle screen polls the composite view
// aggressively; one in-flight load per battle id serves all callers.
package dedupe

import "golang.org/x/sync/singleflight"

// BattleViewGroup deduplicates composite battle view loads keyed by
// battle id.
var BattleViewGroup singleflight.Group
