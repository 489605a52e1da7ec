// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Package logging provides centralized zerolog-based logging for hybridrec.

The global logger is configured once per process from the explicit
configuration object:

	logging.Init(logging.Config{
	    Level:  "info",
	    Format: "json",
	    File:   logging.FileConfig{Path: "/var/log/hybridrec.log", MaxSizeMB: 100},
	})
	defer logging.Close()

When File.Path is set, log lines are written both to Output and to a
rotating file managed by lumberjack.

# Run IDs

Each batch run carries a UUID in its context. WithRunID attaches it to a
component logger, and Ctx to the global one:

	ctx = logging.ContextWithNewRunID(ctx)
	logging.WithRunID(ctx, e.logger).Info().Str("user", user).Msg("Recommendations written")

Always terminate log chains with .Msg() or .Send().
*/
package logging
