package files

import (
	"fmt"
	"os"
)

// BackupSuffix is the default suffix for backup copies.
const BackupSuffix = "bak"

// Backup copies path to path.<suffix> before it is overwritten. Backup
// creation is idempotent: an existing backup is never replaced, so repeated
// runs keep the original content. Returns true if a backup was created.
func Backup(path, suffix string) (bool, error) {
	if suffix == "" {
		suffix = BackupSuffix
	}
	backupPath := AddExtension(path, suffix)

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat original for backup: %w", err)
	}

	if err := WriteAtomic(backupPath, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
