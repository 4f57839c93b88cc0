package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when no JSON value can be found in model output.
var ErrNoJSON = errors.New("no JSON value in model output")

// ExtractJSON returns the most likely JSON payload in text: the first value
// returned by JSONCandidates.
func ExtractJSON(text string) ([]byte, error) {
	candidates := JSONCandidates(text)
	if len(candidates) == 0 {
		return nil, ErrNoJSON
	}
	return candidates[0], nil
}

// JSONCandidates returns every JSON object or array in text that could be the
// structured answer, most likely first. Fenced code blocks come before values
// found in prose, and prose values are top-level only, so a citation such as
// "[1]" never shadows the payload inside a fence.
func JSONCandidates(text string) [][]byte {
	var out [][]byte
	seen := make(map[string]bool)
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			out = append(out, []byte(c))
		}
	}

	for _, block := range fencedBlocks(text) {
		if len(block) > 0 && (block[0] == '{' || block[0] == '[') && json.Valid([]byte(block)) {
			add(block)
		}
	}

	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}
		end := matchingClose(text, i)
		if end < 0 {
			continue
		}
		if candidate := text[i : end+1]; json.Valid([]byte(candidate)) {
			add(candidate)
			i = end
		}
	}
	return out
}

// fencedBlocks returns the trimmed bodies of markdown code fences.
func fencedBlocks(text string) []string {
	var blocks []string
	rest := text
	for {
		start := strings.Index(rest, "```")
		if start < 0 {
			return blocks
		}
		rest = rest[start+3:]
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			return blocks
		}
		body := rest[nl+1:]
		end := strings.Index(body, "```")
		if end < 0 {
			return blocks
		}
		blocks = append(blocks, strings.TrimSpace(body[:end]))
		rest = body[end+3:]
	}
}

// matchingClose finds the index of the bracket closing the one at start,
// skipping over string literals. Returns -1 if the value is unterminated.
func matchingClose(text string, start int) int {
	var stack []byte
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != ch {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		}
	}
	return -1
}
