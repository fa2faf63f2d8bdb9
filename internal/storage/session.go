/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"mapmeasure/internal/domain"
)

const (
	SessionFileName = "session.json"
	BackupsDirName  = "backups"
)

// Standard subfolders of a session directory.
var standardSubDirs = []string{
	"exports",
	BackupsDirName,
}

// SessionHandle keeps track of the session state loaded/saved from disk.
// Root is the session directory containing session.json and subfolders.
// Doc holds the in-memory representation of the session document.
type SessionHandle struct {
	Root    string
	DocPath string
	Doc     domain.Document
}

// InitSession creates a new session directory at root (creating it if it doesn't exist),
// scaffolds the standard subfolders, and writes the given document transactionally.
func InitSession(root string, doc domain.Document) (*SessionHandle, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create session root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("create subdir %s: %w", d, err)
		}
	}

	sh := &SessionHandle{
		Root:    root,
		DocPath: filepath.Join(root, SessionFileName),
		Doc:     doc,
	}
	if err := Save(sh); err != nil {
		return nil, err
	}
	return sh, nil
}

// Open loads an existing session from the given root directory.
// If the current document cannot be read or parsed, it will attempt the last backup.
func Open(root string) (*SessionHandle, error) {
	dpath := filepath.Join(root, SessionFileName)
	b, err := os.ReadFile(dpath)
	if err != nil {
		// try backup
		doc, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("open session document: %w; backup attempt: %v", err, berr)
		}
		return &SessionHandle{Root: root, DocPath: dpath, Doc: *doc}, nil
	}
	var d domain.Document
	if uerr := json.Unmarshal(b, &d); uerr != nil {
		doc, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("parse session document: %w; backup attempt: %v", uerr, berr)
		}
		return &SessionHandle{Root: root, DocPath: dpath, Doc: *doc}, nil
	}
	return &SessionHandle{Root: root, DocPath: dpath, Doc: d}, nil
}

// Save writes the current SessionHandle.Doc to disk with transactional semantics
// and a timestamped backup of the previous document (if present).
func Save(sh *SessionHandle) error {
	if sh == nil {
		return errors.New("nil SessionHandle")
	}
	if sh.Root == "" || sh.DocPath == "" {
		return errors.New("invalid SessionHandle: missing paths")
	}
	// Marshal in human-readable form
	data, err := json.MarshalIndent(sh.Doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session document: %w", err)
	}
	data = append(data, '\n')

	// Ensure backups dir exists
	bdir := filepath.Join(sh.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("ensure backups dir: %w", err)
	}

	// If a current document exists, copy it to a timestamped backup before replacing
	if _, statErr := os.Stat(sh.DocPath); statErr == nil {
		stamp := time.Now().Format("20060102-150405")
		bname := fmt.Sprintf("%s.%s.bak", SessionFileName, stamp)
		bpath := filepath.Join(bdir, bname)
		if cerr := copyFile(sh.DocPath, bpath); cerr != nil {
			return fmt.Errorf("backup current document: %w", cerr)
		}
	}

	// Transactional write: to temp file in same directory, then rename over target
	dir := filepath.Dir(sh.DocPath)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", SessionFileName, os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, data); werr != nil {
		return fmt.Errorf("write temp document: %w", werr)
	}
	// On Windows, replace by removing destination first if needed
	if _, err := os.Stat(sh.DocPath); err == nil {
		_ = os.Remove(sh.DocPath)
	}
	if rerr := os.Rename(temp, sh.DocPath); rerr != nil {
		// attempt cleanup temp
		_ = os.Remove(temp)
		return fmt.Errorf("replace document: %w", rerr)
	}
	return nil
}

// SaveAs writes the document to a new root folder, scaffolding structure if needed, and updates the handle.
func SaveAs(sh *SessionHandle, newRoot string) error {
	if sh == nil {
		return errors.New("nil SessionHandle")
	}
	if newRoot == "" {
		return errors.New("new root is empty")
	}
	if err := os.MkdirAll(newRoot, 0o755); err != nil {
		return fmt.Errorf("create new root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(newRoot, d), 0o755); err != nil {
			return fmt.Errorf("create subdir %s: %w", d, err)
		}
	}
	sh.Root = newRoot
	sh.DocPath = filepath.Join(newRoot, SessionFileName)
	return Save(sh)
}

// AutosaveCrashSnapshot writes the in-memory document to the backups folder
// without touching session.json. Used by the crash handler so a panic never
// clobbers the last good save.
func AutosaveCrashSnapshot(sh *SessionHandle) (string, error) {
	if sh == nil {
		return "", errors.New("nil SessionHandle")
	}
	if sh.Root == "" {
		return "", errors.New("invalid SessionHandle: missing root")
	}
	data, err := json.MarshalIndent(sh.Doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal session document: %w", err)
	}
	data = append(data, '\n')
	bdir := filepath.Join(sh.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backups dir: %w", err)
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(bdir, fmt.Sprintf("autosave-crash-%s.json", stamp))
	if err := writeFileSync(path, data); err != nil {
		return "", fmt.Errorf("write crash autosave: %w", err)
	}
	return path, nil
}

// writeFileSync writes data to a file, ensures it is flushed to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return nil
}

// copyFile copies a file from src to dst (overwrites dst if exists).
func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	if err := df.Sync(); err != nil {
		return err
	}
	return nil
}

// openFromLatestBackup tries to open the latest timestamped backup.
func openFromLatestBackup(root string) (*domain.Document, error) {
	bdir := filepath.Join(root, BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	var candidates []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, SessionFileName+".") && strings.HasSuffix(name, ".bak") {
			candidates = append(candidates, filepath.Join(bdir, name))
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("no backups found")
	}
	sort.Strings(candidates) // timestamp in name yields lexicographic order
	latest := candidates[len(candidates)-1]
	b, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read latest backup: %w", err)
	}
	var d domain.Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse latest backup: %w", err)
	}
	return &d, nil
}
