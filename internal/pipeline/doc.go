// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Package pipeline runs a batch recommendation job end to end.

A run loads the Unified Dataset, restores a cached snapshot for the same
dataset digest and engine fingerprint when one exists, builds and caches
a new snapshot otherwise, routes the configured user, and writes the
result as JSON.

# Usage

	p, err := pipeline.New(cfg, logger)
	if err != nil {
	    return err
	}
	defer p.Close()

	report, err := p.Run(ctx)

Commands that only need the engine call Prepare and then query
p.Engine() directly.

# Output

With no request items the output document is the JSON array of records
for the user. When request items are set the document is an object
holding the user's records and the similar links for each item.
*/
package pipeline
