// Package section groups extracted elements into heading-anchored sections.
package section

import (
	"fmt"

	"github.com/dgallion1/docsplit/internal/doctree"
)

// Options controls grouping behavior.
type Options struct {
	// PreambleTitle names the section that collects text appearing before
	// the first heading. Empty drops that text.
	PreambleTitle string
	// SkipDocumentTitle ignores the first title element.
	SkipDocumentTitle bool
}

// NotFoundError is returned when no section carries the requested title.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("section %q not found", e.Title)
}

// draft is a section under construction. Children are arena indices so the
// arena can grow without invalidating references held on the stack.
type draft struct {
	title    string
	level    int
	body     []string
	children []int
}

// Build walks elements once and returns the top-level sections in document
// order. Headings close every open section of the same or deeper level.
func Build(elems []doctree.Element, opts Options) []*doctree.Section {
	var (
		arena    []draft
		roots    []int
		stack    []int
		preamble = -1
	)
	titleSkipped := !opts.SkipDocumentTitle

	for _, el := range elems {
		if el.IsHeading() {
			if el.Kind == doctree.KindTitle && !titleSkipped {
				titleSkipped = true
				continue
			}
			level := el.HeadingLevel()
			for len(stack) > 0 && arena[stack[len(stack)-1]].level >= level {
				stack = stack[:len(stack)-1]
			}
			arena = append(arena, draft{title: el.Text, level: level})
			idx := len(arena) - 1
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				arena[parent].children = append(arena[parent].children, idx)
			} else {
				roots = append(roots, idx)
			}
			stack = append(stack, idx)
			continue
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			arena[top].body = append(arena[top].body, el.Text)
			continue
		}

		// Preamble: content before any heading.
		if opts.PreambleTitle == "" {
			continue
		}
		if preamble < 0 {
			arena = append(arena, draft{title: opts.PreambleTitle, level: 1})
			preamble = len(arena) - 1
			roots = append([]int{preamble}, roots...)
		}
		arena[preamble].body = append(arena[preamble].body, el.Text)
	}

	out := make([]*doctree.Section, 0, len(roots))
	for _, idx := range roots {
		out = append(out, materialize(arena, idx))
	}
	return out
}

func materialize(arena []draft, idx int) *doctree.Section {
	d := arena[idx]
	s := &doctree.Section{
		Title: d.title,
		Level: d.level,
		Body:  d.body,
	}
	for _, c := range d.children {
		s.Children = append(s.Children, materialize(arena, c))
	}
	return s
}

// Walk visits sections depth-first in document order. Returning false from
// fn stops the walk.
func Walk(sections []*doctree.Section, fn func(s *doctree.Section) bool) {
	walk(sections, fn)
}

func walk(sections []*doctree.Section, fn func(s *doctree.Section) bool) bool {
	for _, s := range sections {
		if !fn(s) {
			return false
		}
		if !walk(s.Children, fn) {
			return false
		}
	}
	return true
}

// Find returns the first section, depth-first, whose title equals title
// exactly.
func Find(sections []*doctree.Section, title string) (*doctree.Section, error) {
	var found *doctree.Section
	Walk(sections, func(s *doctree.Section) bool {
		if s.Title == title {
			found = s
			return false
		}
		return true
	})
	if found == nil {
		return nil, &NotFoundError{Title: title}
	}
	return found, nil
}

// Flatten returns every section depth-first in document order.
func Flatten(sections []*doctree.Section) []*doctree.Section {
	var out []*doctree.Section
	Walk(sections, func(s *doctree.Section) bool {
		out = append(out, s)
		return true
	})
	return out
}
