// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package executor

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/models"
)

// OSFileExecutor is the real-filesystem implementation of [FileExecutor].
type OSFileExecutor struct {
	logger *logger.Logger
}

// NewOSFileExecutor constructs an [OSFileExecutor].
func NewOSFileExecutor(log *logger.Logger) *OSFileExecutor {
	return &OSFileExecutor{logger: log}
}

// Move implements [FileExecutor]. Intermediate directories of dst are
// created as needed. os.Rename is attempted first; a cross-device link
// error falls back to copy plus remove.
func (e *OSFileExecutor) Move(ctx context.Context, src, dst models.ClientPath, overwrite bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Stat(string(dst)); err == nil {
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrTargetExists, dst)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat target: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}

	err := os.Rename(string(src), string(dst))
	if err != nil && isCrossDevice(err) {
		e.logger.Debug().
			Str("func", "OSFileExecutor.Move").
			Str("src", string(src)).
			Str("dst", string(dst)).
			Msg("cross-device move, falling back to copy")
		return e.copyAndRemove(string(src), string(dst))
	}

	return err
}

// Rename implements [FileExecutor]: a leaf-only rename within the file's
// current directory.
func (e *OSFileExecutor) Rename(ctx context.Context, src models.ClientPath, newName string) (models.ClientPath, error) {
	if err := ctx.Err(); err != nil {
		return src, err
	}

	dst := filepath.Join(filepath.Dir(string(src)), newName)
	if _, err := os.Stat(dst); err == nil {
		return src, fmt.Errorf("%w: %s", ErrTargetExists, dst)
	}
	if err := os.Rename(string(src), dst); err != nil {
		return src, err
	}

	return models.ClientPath(dst), nil
}

// Unpack implements [FileExecutor] for zip archives. Entry paths are
// checked against the target directory so a crafted archive cannot write
// outside it.
func (e *OSFileExecutor) Unpack(ctx context.Context, src, targetDir models.ClientPath) error {
	reader, err := zip.OpenReader(string(src))
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	root := filepath.Clean(string(targetDir))
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}

	for _, entry := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.extractEntry(entry, root); err != nil {
			return fmt.Errorf("extract %s: %w", entry.Name, err)
		}
	}

	return nil
}

// Delete implements [FileExecutor]. A missing file is a success: delete is
// idempotent.
func (e *OSFileExecutor) Delete(ctx context.Context, path models.ClientPath) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(string(path))
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func (e *OSFileExecutor) extractEntry(entry *zip.File, root string) error {
	name := filepath.Clean(filepath.FromSlash(entry.Name))
	dst := filepath.Join(root, name)
	if !strings.HasPrefix(dst, root+string(os.PathSeparator)) {
		return fmt.Errorf("%w: %s", ErrBadArchiveEntry, entry.Name)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(dst, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := entry.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entry.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

func (e *OSFileExecutor) copyAndRemove(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	return errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV)
}
