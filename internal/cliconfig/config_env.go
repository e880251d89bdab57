package cliconfig

import "os"

// ApplyEnvConfig applies SCOUTSHIP_* environment variables to the Config.
// Environment values override file config but are overridden by flags
// that were explicitly set on the command line (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("scout-dir", os.Getenv("SCOUTSHIP_SCOUT_DIR"), &cfg.ScoutDir)
	s.setString("state-dir", os.Getenv("SCOUTSHIP_STATE_DIR"), &cfg.StateDir)
	s.setString("db-path", os.Getenv("SCOUTSHIP_DB_PATH"), &cfg.DBPath)
	s.setString("service-url", os.Getenv("SCOUTSHIP_SERVICE_URL"), &cfg.ServiceURL)
	s.setString("auth-key", os.Getenv("SCOUTSHIP_AUTH_KEY"), &cfg.AuthKey)
	s.setString("agent-id", os.Getenv("SCOUTSHIP_AGENT_ID"), &cfg.AgentID)

	if err := s.setDuration("scan-interval", os.Getenv("SCOUTSHIP_SCAN_INTERVAL"), &cfg.ScanInterval); err != nil {
		return err
	}
	if err := s.setDuration("send-interval", os.Getenv("SCOUTSHIP_SEND_INTERVAL"), &cfg.SendInterval); err != nil {
		return err
	}
	if err := s.setDuration("http-timeout", os.Getenv("SCOUTSHIP_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("retry-base", os.Getenv("SCOUTSHIP_RETRY_BASE"), &cfg.RetryBase); err != nil {
		return err
	}
	if err := s.setDuration("retry-max", os.Getenv("SCOUTSHIP_RETRY_MAX"), &cfg.RetryMax); err != nil {
		return err
	}
	if err := s.setDuration("archive-check", os.Getenv("SCOUTSHIP_ARCHIVE_CHECK"), &cfg.ArchiveCheckInterval); err != nil {
		return err
	}

	if err := s.setIntFromString("max-batch-count", os.Getenv("SCOUTSHIP_MAX_BATCH_COUNT"), &cfg.MaxBatchCount); err != nil {
		return err
	}
	if err := s.setIntFromString("max-batch-bytes", os.Getenv("SCOUTSHIP_MAX_BATCH_BYTES"), &cfg.MaxBatchBytes); err != nil {
		return err
	}
	if err := s.setInt64FromString("archive-high", os.Getenv("SCOUTSHIP_ARCHIVE_HIGH"), &cfg.ArchiveHighWatermark); err != nil {
		return err
	}
	if err := s.setInt64FromString("archive-low", os.Getenv("SCOUTSHIP_ARCHIVE_LOW"), &cfg.ArchiveLowWatermark); err != nil {
		return err
	}

	s.setBoolFromString("meta", os.Getenv("SCOUTSHIP_META"), &cfg.Meta)
	s.setBoolFromString("once", os.Getenv("SCOUTSHIP_ONCE"), &cfg.Once)
	s.setBoolFromString("archive", os.Getenv("SCOUTSHIP_ARCHIVE"), &cfg.ArchiveEnabled)

	return nil
}
