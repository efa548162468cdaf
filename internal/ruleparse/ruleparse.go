// Package ruleparse extracts the conditional-visibility subset of the rule
// artifact: for each controlled field, the controlling field whose answer
// gates it. The rule language itself is not parsed; a small set of anchored
// patterns recognizes gate blocks and everything else is skipped.
package ruleparse

import (
	"io"
	"io/fs"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/avitran/taxoform/errors"
	"github.com/avitran/taxoform/internal/types"
)

// Affirmative is the sentinel gate value bound by rule bodies. The loader
// translates it to the controlling field's actual enumeration literal.
const Affirmative = "oui"

// aggregateSuffix marks sum-rule headers, which are never gates.
const aggregateSuffix = "-sum"

var (
	headerPattern = regexp.MustCompile(`^output\s+([A-Za-z]\w*)-([A-Za-z]\w*)\s*$`)
	bodyPattern   = regexp.MustCompile(`(?s)^\s*if\s+\{\s*@\w+:(\w+)\s*\}\s*==\s*"(?i:` + Affirmative + `)"\s*exists\(\s*\{\s*@\w+:(\w+)\s*\}\s*\)\s*$`)
)

// block is one output-delimited region of the rule artifact.
type block struct {
	header string
	body   string
}

// ParseFS reads and parses the rule artifact at name.
func ParseFS(fsys fs.FS, name string, logger zerolog.Logger) (types.Rules, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return types.Rules{}, errors.Missing(name, err)
	}
	defer f.Close()
	return Parse(f, logger)
}

// Parse extracts gate rules from r. Blocks that are not gate rules are
// skipped, never errors: the rule artifact carries much this parser does not
// model.
func Parse(r io.Reader, logger zerolog.Logger) (types.Rules, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.Rules{}, errors.Malformed("", err)
	}

	rules := types.Rules{
		Dependencies: make(map[string]map[string]string),
		Gates:        make(map[string]struct{}),
	}
	for _, blk := range splitBlocks(string(data)) {
		controlling, controlled, ok := matchGate(blk, logger)
		if !ok {
			continue
		}
		deps := rules.Dependencies[controlled]
		if deps == nil {
			deps = make(map[string]string, 1)
			rules.Dependencies[controlled] = deps
		}
		deps[controlling] = Affirmative
		rules.Gates[controlling] = struct{}{}
	}
	return rules, nil
}

// matchGate reports the normalized controlling and controlled ids of a gate
// block. Non-gate blocks (aggregates, dimensional rules, anything the body
// pattern does not recognize) report ok = false.
func matchGate(blk block, logger zerolog.Logger) (controlling, controlled string, ok bool) {
	if strings.HasSuffix(strings.TrimSpace(blk.header), aggregateSuffix) {
		logger.Debug().Str("header", blk.header).Msg("aggregate rule skipped")
		return "", "", false
	}
	header := headerPattern.FindStringSubmatch(blk.header)
	if header == nil {
		logger.Debug().Str("header", blk.header).Msg("non-gate rule header skipped")
		return "", "", false
	}
	body := bodyPattern.FindStringSubmatch(blk.body)
	if body == nil {
		logger.Debug().Str("header", blk.header).Msg("rule body did not match gate pattern, skipped")
		return "", "", false
	}

	controlling = strings.ToLower(header[1])
	controlled = strings.ToLower(header[2])
	if strings.ToLower(body[1]) != controlling || strings.ToLower(body[2]) != controlled {
		logger.Debug().Str("header", blk.header).Msg("rule body ids disagree with header, skipped")
		return "", "", false
	}
	if controlling == controlled {
		logger.Debug().Str("header", blk.header).Msg("self-referencing gate skipped")
		return "", "", false
	}
	return controlling, controlled, true
}

func splitBlocks(text string) []block {
	var blocks []block
	var current *block
	for line := range strings.Lines(text) {
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(strings.TrimSpace(trimmed), "output ") {
			blocks = append(blocks, block{header: strings.TrimSpace(trimmed)})
			current = &blocks[len(blocks)-1]
			continue
		}
		if current != nil {
			current.body += line
		}
	}
	return blocks
}
