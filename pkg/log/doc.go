/*
Package log provides structured logging using zerolog.

A single global Logger is configured once with Init, usually from the
log section of the config file:

	log.Init(log.Config{
		Level:      log.ParseLevel(cfg.Log.Level),
		JSONOutput: cfg.Log.JSON,
	})

Packages derive child loggers that carry a context field. Zerolog event
methods have pointer receivers, so keep the child logger in a variable:

	logger := log.WithComponent("seed")
	logger.Info().Int("leads", 25).Msg("Seed data initialized")

	logger = log.WithCollection("crm_leads")
	logger.Warn().Err(err).Msg("Malformed collection data, treating as empty")

Console output is the default; JSON output suits log shipping. Levels
are debug, info, warn and error; anything else parses as info.
*/
package log
