package server

import (
	"bufio"
	"log"
	"os"
	"slices"
	"strings"
)

var defaultCategories = []string{
	"Animal",
	"Country",
	"Food",
	"First name",
	"Profession",
	"Object",
}

// CategorySource supplies the default category list and the larger
// pool that random-theme rooms sample from.
type CategorySource struct {
	Defaults []string
	Pool     []string
}

// LoadCategorySource reads a newline-delimited pool file. Any failure
// falls back to the defaults; loading never blocks event handling and
// never fails the process.
func LoadCategorySource(path string) *CategorySource {
	src := &CategorySource{
		Defaults: slices.Clone(defaultCategories),
		Pool:     slices.Clone(defaultCategories),
	}
	if path == "" {
		return src
	}
	file, err := os.Open(path)
	if err != nil {
		log.Printf("category pool unavailable path=%s error=%v", path, err)
		return src
	}
	defer file.Close()

	var pool []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pool = append(pool, line)
	}
	if err := scanner.Err(); err != nil {
		log.Printf("category pool unreadable path=%s error=%v", path, err)
		return src
	}
	if len(pool) > 0 {
		src.Pool = pool
	}
	log.Printf("category pool loaded path=%s size=%d", path, len(src.Pool))
	return src
}
