package cron

import log "log/slog"

func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	log.Info("cron jobs registered", "jobs", []string{"score_sync@hourly", "translation_sweep@daily"})
	return nil
}
