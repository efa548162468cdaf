// Package structparse reads the human-authored structure artifact: ordered
// parts, sections, subsections, and questions with field references and
// optional instruction text.
package structparse

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avitran/taxoform/errors"
	"github.com/avitran/taxoform/internal/types"
)

type structureDoc struct {
	Parts []partDoc `yaml:"parts"`
}

type partDoc struct {
	Title    string       `yaml:"title"`
	Sections []sectionDoc `yaml:"sections"`
}

type sectionDoc struct {
	Title       string          `yaml:"title"`
	Subsections []subsectionDoc `yaml:"subsections"`
}

type subsectionDoc struct {
	Title     string        `yaml:"title"`
	Questions []questionDoc `yaml:"questions"`
}

type questionDoc struct {
	Field        string `yaml:"field"`
	Instructions string `yaml:"instructions"`
}

// ParseFS reads and parses the structure artifact at name.
func ParseFS(fsys fs.FS, name string) (*types.Structure, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Missing(name, err)
	}
	defer f.Close()
	structure, err := Parse(f)
	if err != nil {
		if load, ok := errors.AsLoad(err); ok && load.Artifact == "" {
			load.Artifact = name
		}
		return nil, err
	}
	return structure, nil
}

// Parse parses the structure document from r. Sections are numbered by
// document position across all parts; question numbers restart at 1 per
// section and run across that section's subsections.
func Parse(r io.Reader) (*types.Structure, error) {
	var doc structureDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Malformed("", err)
	}

	structure := &types.Structure{}
	sectionNumber := 0
	for _, part := range doc.Parts {
		for _, section := range part.Sections {
			sectionNumber++
			parsed, err := parseSection(section, sectionNumber)
			if err != nil {
				return nil, err
			}
			structure.Sections = append(structure.Sections, parsed)
		}
	}
	return structure, nil
}

func parseSection(section sectionDoc, number int) (types.StructureSection, error) {
	out := types.StructureSection{
		Number: number,
		Title:  strings.TrimSpace(section.Title),
	}
	questionNumber := 0
	for i, subsection := range section.Subsections {
		sub := types.StructureSubsection{
			Number: i + 1,
			Title:  strings.TrimSpace(subsection.Title),
		}
		for _, question := range subsection.Questions {
			fieldID := strings.ToLower(strings.TrimSpace(question.Field))
			if fieldID == "" {
				return types.StructureSection{}, errors.Malformed("",
					fmt.Errorf("question without field reference in %q, %q", out.Title, sub.Title))
			}
			questionNumber++
			sub.Questions = append(sub.Questions, types.StructureQuestion{
				Number:       questionNumber,
				FieldID:      fieldID,
				Instructions: strings.TrimSpace(question.Instructions),
			})
		}
		out.Subsections = append(out.Subsections, sub)
	}
	return out, nil
}
