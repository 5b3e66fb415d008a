package dropzone

import (
	"net/url"
	"os"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/five82/quotedrop/internal/api"
)

// filesFromPaste turns text pasted by the terminal into files. Terminals paste
// the path of a file dragged onto them, quoted or backslash-escaped when it
// contains spaces, and several paths separated by spaces when several files
// are dragged. Tokens that are not existing regular files are dropped, so a
// paste of ordinary text yields no files.
func filesFromPaste(text string) []api.File {
	var files []api.File
	for _, token := range splitDropped(text) {
		if path, ok := regularFile(token); ok {
			files = append(files, api.FileFromPath(path))
		}
	}
	if len(files) == 0 {
		// Some terminals paste a single path with unescaped spaces.
		if path, ok := regularFile(strings.TrimSpace(text)); ok {
			files = append(files, api.FileFromPath(path))
		}
	}
	return files
}

// splitDropped splits text into shell words, the way terminals quote and
// escape dropped paths. Variables and backticks are left alone. Text that
// does not parse yields no tokens.
func splitDropped(text string) []string {
	parser := shellwords.NewParser()
	parser.ParseEnv = false
	parser.ParseBacktick = false
	tokens, err := parser.Parse(text)
	if err != nil {
		return nil
	}
	return tokens
}

func regularFile(token string) (string, bool) {
	path := strings.TrimSpace(token)
	if path == "" {
		return "", false
	}
	if strings.HasPrefix(path, "file://") {
		u, err := url.Parse(path)
		if err != nil {
			return "", false
		}
		path = u.Path
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}
