package service

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aamit98/Reelhub/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrphanCleanup periodically deletes uploaded files that no video
// record references anymore. Uploads land on disk before the record
// that owns them is created, so a file only counts as orphaned once
// it is older than the grace period.
func OrphanCleanup(tick, grace time.Duration, db *gorm.DB, store *Store) {
	ticker := time.NewTicker(tick)

	zap.L().Debug("Orphan cleanup attached", zap.Duration("tick_every", tick))

	go func() {
		for range ticker.C {
			sweepOrphans(grace, db, store)
		}
	}()
}

func sweepOrphans(grace time.Duration, db *gorm.DB, store *Store) {
	entries, err := os.ReadDir(store.Dir)
	if err != nil {
		zap.L().Error("Failed to read upload directory", zap.Error(err))
		return
	}

	var videos []model.Video
	err = db.
		Model(model.Video{}).
		Select("video", "thumbnail").
		Find(&videos).
		Error
	if err != nil {
		zap.L().Error("Failed to query db for referenced files", zap.Error(err))
		return
	}

	// References are stored as full URLs, only the trailing name
	// matters here
	referenced := make(map[string]struct{}, len(videos)*2)
	for _, v := range videos {
		if idx := strings.LastIndex(v.Video, "/"); idx >= 0 {
			referenced[v.Video[idx+1:]] = struct{}{}
		}
		if idx := strings.LastIndex(v.Thumbnail, "/"); idx >= 0 {
			referenced[v.Thumbnail[idx+1:]] = struct{}{}
		}
	}

	cutoff := time.Now().Add(-grace)
	removed := 0

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		if _, ok := referenced[e.Name()]; ok {
			continue
		}

		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(store.Dir, e.Name())); err != nil {
			zap.L().Error("Failed to remove orphaned file", zap.String("name", e.Name()), zap.Error(err))
			continue
		}

		removed++
	}

	if removed > 0 {
		zap.L().Info("Orphan cleanup finished", zap.Int("removed", removed))
	}
}
