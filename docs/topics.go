// Package docs embeds the documentation topics of folio.
package docs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// ErrUnknownTopic is returned for a topic that has no documentation.
var ErrUnknownTopic = errors.New("unknown topic")

// Topic returns the markdown of a topic. "*" returns all topics, "readme" the
// topic list.
func Topic(name string) (string, error) {
	if name == "*" {
		all, err := List()
		if err != nil {
			return "", err
		}
		return Topics(all...)
	}
	content, err := files.ReadFile(name + ".md")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTopic, name)
	}
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// Topics concatenates several topics.
func Topics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// List returns the sorted topic names, without the readme.
func List() ([]string, error) {
	matches, err := fs.Glob(files, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, m := range matches {
		name := strings.TrimSuffix(m, path.Ext(m))
		if name != "readme" {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics, nil
}
