package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Service takes periodic snapshots of the JSON store file and prunes
// old ones. The store rewrites the whole document on every mutation, so
// copying the file is a consistent snapshot.
type Service struct {
	dbPath     string
	backupPath string
	keep       int
	cron       *cron.Cron
}

// NewService creates a backup service for the store file at dbPath.
func NewService(dbPath, backupPath string, keep int) *Service {
	return &Service{dbPath: dbPath, backupPath: backupPath, keep: keep}
}

// Start schedules snapshots according to the cron spec. An empty spec
// disables backups.
func (s *Service) Start(schedule string) error {
	if schedule == "" {
		log.Info().Msg("Backups disabled")
		return nil
	}
	if err := os.MkdirAll(s.backupPath, 0755); err != nil {
		return fmt.Errorf("could not create backup directory: %w", err)
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(schedule, func() {
		if err := s.Snapshot(); err != nil {
			log.Error().Err(err).Msg("Scheduled backup failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	log.Info().Str("schedule", schedule).Msg("Backup scheduler started")
	return nil
}

// Stop halts the scheduler, waiting for a running snapshot to finish.
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Snapshot copies the store file into the backup directory with a
// timestamped name and prunes snapshots beyond the retention count.
func (s *Service) Snapshot() error {
	data, err := os.ReadFile(s.dbPath)
	if err != nil {
		return fmt.Errorf("could not read store file: %w", err)
	}

	name := fmt.Sprintf("db_%s.json", time.Now().Format("20060102150405"))
	if err := os.WriteFile(filepath.Join(s.backupPath, name), data, 0644); err != nil {
		return fmt.Errorf("could not write backup file: %w", err)
	}
	log.Info().Str("backup", name).Msg("Store snapshot created")

	return s.prune()
}

// prune removes the oldest snapshots beyond the retention count. The
// timestamped names sort chronologically.
func (s *Service) prune() error {
	entries, err := os.ReadDir(s.backupPath)
	if err != nil {
		return err
	}

	var snapshots []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "db_") && strings.HasSuffix(e.Name(), ".json") {
			snapshots = append(snapshots, e.Name())
		}
	}
	if len(snapshots) <= s.keep {
		return nil
	}

	sort.Strings(snapshots)
	for _, name := range snapshots[:len(snapshots)-s.keep] {
		if err := os.Remove(filepath.Join(s.backupPath, name)); err != nil {
			return err
		}
		log.Info().Str("backup", name).Msg("Pruned old snapshot")
	}
	return nil
}
