// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

import (
	"fmt"
	"os"
)

// SaveContainerWithBackup saves c to path the way Container.Save does, but
// first rotates any previous file at path into a backup slot so a failed
// save can be rolled back. This is a safety net layered on top of the
// plain save ApplyPatch uses internally; it is not part of that merge
// path and must be invoked explicitly.
func SaveContainerWithBackup(c *Container, path string, opts ContainerSaveOptions) error {
	opts.applyDefaults()

	existed := fileExists(path)
	backupPath := path + ".bak"

	if existed {
		if err := rotateBackupSlots(backupPath, opts.BackupKeep); err != nil {
			return err
		}
		if err := os.Rename(path, backupPath); err != nil {
			return fmt.Errorf("%w: move %s to backup: %v", ErrWriteFailed, path, err)
		}
	}

	if err := c.Save(path, opts.InPlace); err != nil {
		if existed {
			if rerr := rollbackFromBackup(path, backupPath); rerr != nil {
				return fmt.Errorf("%w (rollback also failed: %v)", err, rerr)
			}
		}
		return err
	}

	if existed && opts.BackupKeep == 0 {
		if err := removeIfExists(backupPath); err != nil {
			return fmt.Errorf("remove backup: %w", err)
		}
	}

	return nil
}

// rotateBackupSlots shifts "<path>.1".."<path>.(keep-2)" up by one and
// drops whatever falls off the end, making room for a fresh "<path>"
// backup. keep<=1 means no numbered generations are kept at all.
func rotateBackupSlots(backupPath string, keep int) error {
	if keep <= 1 {
		return removeIfExists(backupPath)
	}

	oldest := fmt.Sprintf("%s.%d", backupPath, keep-1)
	if err := removeIfExists(oldest); err != nil {
		return err
	}
	for gen := keep - 2; gen >= 1; gen-- {
		from := fmt.Sprintf("%s.%d", backupPath, gen)
		to := fmt.Sprintf("%s.%d", backupPath, gen+1)
		if err := renameIfExists(from, to); err != nil {
			return err
		}
	}
	if err := renameIfExists(backupPath, backupPath+".1"); err != nil {
		return err
	}
	return nil
}

func rollbackFromBackup(path, backupPath string) error {
	if err := os.Rename(backupPath, path); err != nil {
		return fmt.Errorf("%w: restore %s from backup: %v", ErrWriteFailed, path, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}

func renameIfExists(from, to string) error {
	if !fileExists(from) {
		return nil
	}
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("%w: rotate %s to %s: %v", ErrWriteFailed, from, to, err)
	}
	return nil
}
