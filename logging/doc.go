// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package logging configures structured logging.

Application code logs through log/slog. Setup installs a default slog
logger whose handler is backed by a zap JSON core, written either to
stdout or to a lumberjack-rotated file:

	flush, err := logging.Setup(logging.Config{Level: "info", File: "logs/univote.log"})
	if err != nil {
		log.Fatal(err)
	}
	defer flush()

	slog.Info("Listening", "port", 3318)

Records carry ts, level, caller and msg keys; error records add a stack
trace.
*/
package logging
