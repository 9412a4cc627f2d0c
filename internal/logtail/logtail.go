package logtail

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hpcloud/tail"
	"pkt.systems/pslog"
)

// Sink receives lines for a named channel. ingest.Queue satisfies it.
type Sink interface {
	AppendLine(name string, text []byte)
}

// ChannelName is the channel a file's lines are shown in.
func ChannelName(path string) string {
	return filepath.Base(path)
}

// Read returns at most maxLines from the end of the file at path.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Seed sends the last maxLines of path to sink and returns how many were
// sent.
func Seed(path string, maxLines int, sink Sink) (int, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return 0, err
	}
	name := ChannelName(path)
	for _, line := range lines {
		sink.AppendLine(name, []byte(line))
	}
	return len(lines), nil
}

// Follow sends every line appended to path after the call until ctx is
// cancelled. Rotated files are reopened by name.
func Follow(ctx context.Context, path string, sink Sink) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Poll:     true,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:   tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("tail %s: %w", path, err)
	}
	defer t.Cleanup()
	defer func() { _ = t.Stop() }()

	name := ChannelName(path)
	log := pslog.Ctx(ctx).With("path", path)
	log.Debug("following log file")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-t.Lines:
			if !ok {
				log.Debug("log file closed")
				return nil
			}
			if line.Err != nil {
				log.Warn("tail read failed", "error", line.Err)
				continue
			}
			sink.AppendLine(name, []byte(line.Text))
		}
	}
}
