package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/agentstation/apitemplate/pkg/constants"
	"github.com/agentstation/apitemplate/pkg/errors"
)

// unlimitedSizeMB keeps lumberjack from rolling on size.
const unlimitedSizeMB = 1 << 20

// DailyFile is an io.WriteCloser that starts a new file on the first write
// after the local calendar day changes. The finished file is renamed after
// the day it covers (log.txt becomes log20260301.txt) and kept forever.
// Writes are serialized, so one DailyFile can be shared by every goroutine
// in the process.
type DailyFile struct {
	mu  sync.Mutex
	out *lumberjack.Logger
	day string
	now func() time.Time
}

// NewDailyFile opens (lazily) the log file at path, creating its directory.
func NewDailyFile(path string) (*DailyFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapResource("create", "log directory", dir, err)
	}

	f := &DailyFile{
		out: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    unlimitedSizeMB,
			MaxBackups: 0,
			MaxAge:     0,
			LocalTime:  true,
		},
		now: time.Now,
	}

	// A file left over from a previous day rolls on the first write.
	if info, err := os.Stat(path); err == nil {
		f.day = info.ModTime().Format(constants.TimeFormatDay)
	}
	return f, nil
}

// Filename returns the path of the active file.
func (f *DailyFile) Filename() string {
	return f.out.Filename
}

// Write implements io.Writer.
func (f *DailyFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	today := f.now().Format(constants.TimeFormatDay)
	if f.day != "" && f.day != today {
		if err := f.roll(); err != nil {
			return 0, errors.WrapResource("rotate", "log file", f.out.Filename, err)
		}
	}
	f.day = today

	return f.out.Write(p)
}

// roll closes the active file and moves it aside; lumberjack reopens a
// fresh file on the next write.
func (f *DailyFile) roll() error {
	if err := f.out.Close(); err != nil {
		return err
	}
	err := os.Rename(f.out.Filename, rolledName(f.out.Filename, f.day))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// rolledName returns the first free <name><day>[_NNN]<ext> next to path.
func rolledName(path, day string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	name := base + day + ext
	for seq := 1; ; seq++ {
		if _, err := os.Stat(name); err != nil {
			return name
		}
		name = fmt.Sprintf("%s%s_%03d%s", base, day, seq, ext)
	}
}

// Close flushes and closes the active file.
func (f *DailyFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Close()
}
