package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

const (
	DefaultLogLines = 200
	MaxLogLines     = 10000
)

// SystemLogService exposes the tail of the server log file to superusers.
type SystemLogService struct {
	path string
}

func NewSystemLogService(path string) *SystemLogService {
	return &SystemLogService{path: path}
}

// Tail returns up to n trailing lines of the log file. A missing file is
// common.ErrorNotFound.
func (s *SystemLogService) Tail(ctx context.Context, actor *models.User, n int) (string, error) {
	if err := authz.RequireSuperuser(actor); err != nil {
		return "", err
	}
	if n <= 0 {
		n = DefaultLogLines
	}
	if n > MaxLogLines {
		n = MaxLogLines
	}
	if s.path == "" {
		return "", fmt.Errorf("log file: %w", common.ErrorNotFound)
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("log file: %w", common.ErrorNotFound)
		}
		return "", internal("open log file", err)
	}
	defer f.Close()

	ring := make([]string, n)
	count := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		ring[count%n] = sc.Text()
		count++
	}
	if err := sc.Err(); err != nil {
		return "", internal("read log file", err)
	}

	var b strings.Builder
	start := 0
	if count > n {
		start = count - n
	}
	for i := start; i < count; i++ {
		b.WriteString(ring[i%n])
		b.WriteByte('\n')
	}
	return b.String(), nil
}
