package cinder

import (
	"bufio"
	"io"
	"unicode/utf8"
)

const EOF rune = -1

// Source reads characters one at a time, supports pushing back the last
// character read and tracks the position of the next character.
type Source struct {
	reader   *bufio.Reader
	filename string

	line, col         int
	prevLine, prevCol int
	canUnread         bool
	eof               bool
}

func NewSource(reader io.Reader, filename string) *Source {
	return &Source{
		reader:   bufio.NewReader(reader),
		filename: filename,
		line:     1,
		col:      1,
	}
}

// Read returns the next character, or EOF once the input is exhausted.
func (s *Source) Read() rune {
	if s.eof {
		s.canUnread = false
		return EOF
	}

	r, _, err := s.reader.ReadRune()
	if err != nil {
		s.canUnread = false
		if err == io.EOF {
			s.eof = true
			return EOF
		}

		return utf8.RuneError
	}

	s.prevLine, s.prevCol = s.line, s.col
	s.canUnread = true

	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	return r
}

// Unread pushes back the character returned by the last Read. Only one
// character of pushback is supported; unreading EOF is a no-op.
func (s *Source) Unread() {
	if !s.canUnread {
		return
	}

	_ = s.reader.UnreadRune()
	s.line, s.col = s.prevLine, s.prevCol
	s.canUnread = false
}

// Location is the position of the next character to be read.
func (s *Source) Location() Location {
	return Location{Filename: s.filename, Line: s.line, Col: s.col}
}

func (s *Source) Filename() string {
	return s.filename
}
