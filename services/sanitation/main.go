package sanitation

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"

	"varanno/api/models"
	sessionsService "varanno/api/services/sessions"
)

type (
	SanitationService struct {
		Initialized    bool
		SessionService *sessionsService.SessionService
		Config         *models.Config
	}
)

func NewSanitationService(sessions *sessionsService.SessionService, cfg *models.Config) *SanitationService {
	ss := &SanitationService{
		Initialized:    false,
		SessionService: sessions,
		Config:         cfg,
	}

	ss.Init()

	return ss
}

func (ss *SanitationService) Init() {
	// initialization if necessary
	if !ss.Initialized {
		// - spin up a go routine that will periodically
		//   sweep finished sessions past their ttl along
		//   with any work directory no session owns
		go func() {
			// setup cron job
			s := gocron.NewScheduler(time.UTC)

			interval := ss.Config.Api.SweepIntervalMinutes
			if interval < 1 {
				interval = 1
			}

			s.Every(interval).Minutes().Do(func() {
				fmt.Printf("[%s] - Running session cleanup..\n", time.Now())
				ss.Sweep(time.Now())
			})

			// starts the scheduler in blocking mode, which blocks
			// the current execution path
			s.StartBlocking()
		}()

		ss.Initialized = true
		fmt.Println("Sanitation Service Initialized ..")
	}
}

// Sweep removes expired sessions and orphaned work directories, returning
// how many of each were removed.
func (ss *SanitationService) Sweep(now time.Time) (int, int) {
	cutoff := now.Add(-time.Duration(ss.Config.Api.SessionTtlMinutes) * time.Minute)

	removedSessions := 0
	for _, id := range ss.SessionService.Expired(cutoff) {
		if err := ss.SessionService.Delete(id); err != nil {
			fmt.Printf("[%s] - Error removing session %s : %v..\n", time.Now(), id, err)
			continue
		}
		removedSessions++
	}

	// - directories on disk that no live session refers to
	entries, err := os.ReadDir(ss.Config.Api.WorkDirectory)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Printf("[%s] - Error listing work directory : %v..\n", time.Now(), err)
		}
		return removedSessions, 0
	}

	onDisk := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil || info.ModTime().After(cutoff) {
			continue
		}
		onDisk = append(onDisk, entry.Name())
	}

	live := make([]string, 0)
	for _, session := range ss.SessionService.List() {
		live = append(live, filepath.Base(session.WorkDirectory))
	}

	removedDirs := 0
	for _, orphan := range setDifference(live, onDisk) {
		if err := os.RemoveAll(filepath.Join(ss.Config.Api.WorkDirectory, orphan)); err != nil {
			fmt.Printf("[%s] - Error removing %s : %v..\n", time.Now(), orphan, err)
			continue
		}
		removedDirs++
	}

	if removedSessions > 0 || removedDirs > 0 {
		fmt.Printf("[%s] - Removed %d sessions and %d orphaned directories..\n", time.Now(), removedSessions, removedDirs)
	}
	return removedSessions, removedDirs
}

// setDifference returns the items of b missing from a.
func setDifference(a, b []string) (c []string) {
	m := make(map[string]bool)

	for _, item := range a {
		m[item] = true
	}

	for _, item := range b {
		if _, ok := m[item]; !ok {
			c = append(c, item)
		}
	}
	return
}
