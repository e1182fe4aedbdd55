// Package frontmatter reads and writes the YAML metadata header carried at
// the top of every content file. The recognized fields are the ones the
// rendering templates consume: layout, title, date, description, img, tags.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// DateLayout is the calendar date format used in the date field.
const DateLayout = "2006-01-02"

var (
	// ErrNoFrontMatter is returned when a file does not start with a
	// front-matter block.
	ErrNoFrontMatter = errors.New("frontmatter: missing opening delimiter")

	// ErrUnterminated is returned when the opening delimiter is never closed.
	ErrUnterminated = errors.New("frontmatter: missing closing delimiter")

	// ErrMissingTitle is returned by Validate for an empty title.
	ErrMissingTitle = errors.New("frontmatter: title is required")
)

// FrontMatter is the structured metadata block of a content file.
type FrontMatter struct {
	Layout      string   `yaml:"layout,omitempty"`
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description,omitempty"`
	Img         string   `yaml:"img,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// Split separates a content file into its front-matter block and body.
// The file must begin with a line containing only "---"; the block runs
// until the next line that is exactly "---". The body is everything after
// the closing line.
func Split(src []byte) (FrontMatter, string, error) {
	var fm FrontMatter

	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	if !strings.HasPrefix(text, delimiter+"\n") {
		return fm, "", ErrNoFrontMatter
	}
	rest := text[len(delimiter)+1:]

	lines := strings.Split(rest, "\n")
	closing := -1
	for i, line := range lines {
		if line == delimiter {
			closing = i
			break
		}
	}
	if closing < 0 {
		return fm, "", ErrUnterminated
	}
	header := strings.Join(lines[:closing], "\n")
	body := strings.Join(lines[closing+1:], "\n")

	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, "", fmt.Errorf("frontmatter: parse header: %w", err)
	}
	return fm, body, nil
}

// Encode renders a front-matter block followed by body. Split(Encode(fm, b))
// yields the same record and body back.
func Encode(fm FrontMatter, body string) ([]byte, error) {
	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: encode header: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.Write(header)
	buf.WriteString(delimiter + "\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// Validate checks the invariants every stored post must satisfy: a non-empty
// title and a date that parses as a real calendar date.
func Validate(fm FrontMatter) error {
	if strings.TrimSpace(fm.Title) == "" {
		return ErrMissingTitle
	}
	if _, err := time.Parse(DateLayout, fm.Date); err != nil {
		return fmt.Errorf("frontmatter: invalid date %q: %w", fm.Date, err)
	}
	return nil
}
