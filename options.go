package taxoform

import (
	"regexp"

	"github.com/rs/zerolog"
)

// LoadOptions configures taxonomy artifact loading.
type LoadOptions struct {
	maxFields           int
	abstractPattern     *regexp.Regexp
	memberSuffixPattern *regexp.Regexp
	logger              zerolog.Logger
	loggerSet           bool
}

// NewLoadOptions returns a default, valid load options value.
func NewLoadOptions() LoadOptions {
	return LoadOptions{}
}

// WithMaxFields sets the schema field-count guard (0 uses the default).
func (o LoadOptions) WithMaxFields(value int) LoadOptions {
	o.maxFields = value
	return o
}

// WithAbstractGroupPattern overrides the pattern matching dimensional
// abstract-group locators in the definition artifact.
func (o LoadOptions) WithAbstractGroupPattern(value *regexp.Regexp) LoadOptions {
	o.abstractPattern = value
	return o
}

// WithMemberSuffixPattern overrides the category-suffix pattern used when
// deriving the dimension member prefix.
func (o LoadOptions) WithMemberSuffixPattern(value *regexp.Regexp) LoadOptions {
	o.memberSuffixPattern = value
	return o
}

// WithLogger sets the logger the parsers report skipped content to. The
// default discards everything.
func (o LoadOptions) WithLogger(value zerolog.Logger) LoadOptions {
	o.logger = value
	o.loggerSet = true
	return o
}

func (o LoadOptions) resolvedLogger() zerolog.Logger {
	if !o.loggerSet {
		return zerolog.Nop()
	}
	return o.logger
}

// GenerateOptions configures wire document generation.
type GenerateOptions struct {
	pretty       bool
	includeEmpty bool
}

// NewGenerateOptions returns a default, valid generate options value.
func NewGenerateOptions() GenerateOptions {
	return GenerateOptions{}
}

// WithPretty toggles indented output. The default is minified.
func (o GenerateOptions) WithPretty(value bool) GenerateOptions {
	o.pretty = value
	return o
}

// WithIncludeEmpty emits facts for visible but unanswered fields, which is
// useful when previewing incomplete submissions.
func (o GenerateOptions) WithIncludeEmpty(value bool) GenerateOptions {
	o.includeEmpty = value
	return o
}
