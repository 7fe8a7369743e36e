package request

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Brownie44l1/webserver/internal/headers"
)

// parserState represents the current state of the request parser
type parserState int

const (
	stateRequestLine parserState = iota
	stateHeaders
	stateDone
)

// parser reads the request head line by line. The request line is kept,
// header lines are collected for logging and otherwise ignored.
type parser struct {
	state   parserState
	line    RequestLine
	headers *headers.Headers
	skipped int // header lines that did not parse
}

func newParser() *parser {
	return &parser{
		state:   stateRequestLine,
		headers: headers.NewHeaders(),
	}
}

func (p *parser) parseFromReader(r *bufio.Reader) error {
	for p.state != stateDone {
		raw, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read error: %w", err)
		}

		eof := err != nil
		if eof && raw == "" {
			// Peer closed without a blank line. Fine once we have the request line.
			if p.state == stateRequestLine {
				return fmt.Errorf("%w: connection closed before request line", ErrInvalidRequest)
			}
			p.state = stateDone
			return nil
		}

		if err := p.parseLine(strings.TrimRight(raw, "\r\n")); err != nil {
			return err
		}

		if eof {
			p.state = stateDone
		}
	}

	return nil
}

func (p *parser) parseLine(line string) error {
	switch p.state {
	case stateRequestLine:
		if line == "" {
			return fmt.Errorf("%w: empty request line", ErrInvalidRequest)
		}
		rl, err := parseRequestLine(line)
		if err != nil {
			return err
		}
		p.line = rl
		p.state = stateHeaders

	case stateHeaders:
		if line == "" {
			p.state = stateDone
			return nil
		}
		if err := p.headers.ParseLine(line); err != nil {
			p.skipped++
		}

	case stateDone:
		return nil

	default:
		return fmt.Errorf("invalid parser state: %d", p.state)
	}

	return nil
}
