// Package defparse reads the definition linkbase artifact and derives the
// dimensional-breakdown descriptor: which fields take per-category answers,
// the dimension's name, and the shared member-id prefix.
package defparse

import (
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"regexp"

	"github.com/rs/zerolog"

	taxerrors "github.com/avitran/taxoform/errors"
	"github.com/avitran/taxoform/internal/linkbase"
	"github.com/avitran/taxoform/internal/types"
)

// Dimensional arc roles recognized in the definition linkbase.
const (
	arcroleDomainMember       = "http://xbrl.org/int/dim/arcrole/domain-member"
	arcroleHypercubeDimension = "http://xbrl.org/int/dim/arcrole/hypercube-dimension"
	arcroleDimensionDomain    = "http://xbrl.org/int/dim/arcrole/dimension-domain"
)

var (
	defaultAbstractPattern     = regexp.MustCompile(`Abstract$`)
	defaultMemberSuffixPattern = regexp.MustCompile(`[A-Z]{2}$`)
)

// Config adjusts the matching patterns used while walking the linkbase.
// Zero-value fields fall back to the defaults.
type Config struct {
	// AbstractPattern matches the bare id of abstract-group locators whose
	// domain-member targets are dimensional fields.
	AbstractPattern *regexp.Regexp
	// MemberSuffixPattern matches the category suffix stripped from the
	// first member id when deriving the member prefix.
	MemberSuffixPattern *regexp.Regexp
	Logger              zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.AbstractPattern == nil {
		c.AbstractPattern = defaultAbstractPattern
	}
	if c.MemberSuffixPattern == nil {
		c.MemberSuffixPattern = defaultMemberSuffixPattern
	}
	return c
}

type definitionLinkbase struct {
	Links []definitionLink `xml:"definitionLink"`
}

type definitionLink struct {
	Locs []locator       `xml:"loc"`
	Arcs []definitionArc `xml:"definitionArc"`
}

type locator struct {
	Href  string `xml:"href,attr"`
	Label string `xml:"label,attr"`
}

type definitionArc struct {
	Arcrole string `xml:"arcrole,attr"`
	From    string `xml:"from,attr"`
	To      string `xml:"to,attr"`
}

// ParseFS reads and parses the definition artifact at name. A missing file
// yields an empty descriptor: the dimensional breakdown is optional.
func ParseFS(fsys fs.FS, name string, cfg Config) (types.Dimensions, error) {
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return emptyDimensions(), nil
		}
		return types.Dimensions{}, taxerrors.Missing(name, err)
	}
	defer f.Close()
	dims, err := Parse(f, cfg)
	if err != nil {
		if load, ok := taxerrors.AsLoad(err); ok && load.Artifact == "" {
			load.Artifact = name
		}
		return types.Dimensions{}, err
	}
	return dims, nil
}

// Parse parses the definition linkbase from r.
func Parse(r io.Reader, cfg Config) (types.Dimensions, error) {
	cfg = cfg.withDefaults()

	decoder := xml.NewDecoder(r)
	decoder.Strict = false

	var doc definitionLinkbase
	if err := decoder.Decode(&doc); err != nil {
		return types.Dimensions{}, taxerrors.Malformed("", err)
	}

	dims := emptyDimensions()
	for _, link := range doc.Links {
		walkLink(link, cfg, &dims)
	}
	return dims, nil
}

func emptyDimensions() types.Dimensions {
	return types.Dimensions{Fields: make(map[string]struct{})}
}

func walkLink(link definitionLink, cfg Config, dims *types.Dimensions) {
	bareIDs := make(map[string]string, len(link.Locs))
	for _, loc := range link.Locs {
		bareIDs[loc.Label] = linkbase.BareID(loc.Href)
	}

	var domainID string
	for _, arc := range link.Arcs {
		switch arc.Arcrole {
		case arcroleHypercubeDimension:
			if dims.Name == "" {
				dims.Name = bareIDs[arc.To]
			}
		case arcroleDimensionDomain:
			if domainID == "" {
				domainID = bareIDs[arc.To]
			}
		}
	}

	for _, arc := range link.Arcs {
		if arc.Arcrole != arcroleDomainMember {
			continue
		}
		from, to := bareIDs[arc.From], bareIDs[arc.To]
		switch {
		case to == "":
			cfg.Logger.Debug().Str("from", arc.From).Str("to", arc.To).
				Msg("definition arc target unresolved, skipped")
		case cfg.AbstractPattern.MatchString(from):
			dims.Fields[to] = struct{}{}
		case from != "" && from == domainID:
			if dims.MemberPrefix == "" {
				dims.MemberPrefix = cfg.MemberSuffixPattern.ReplaceAllString(to, "")
			}
		default:
			cfg.Logger.Debug().Str("from", from).Str("to", to).
				Msg("domain-member arc outside abstract group, skipped")
		}
	}
}
