package taxoform

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/avitran/taxoform/errors"
	"github.com/avitran/taxoform/internal/defparse"
	"github.com/avitran/taxoform/internal/labelparse"
	"github.com/avitran/taxoform/internal/ruleparse"
	"github.com/avitran/taxoform/internal/schemaparse"
	"github.com/avitran/taxoform/internal/structparse"
	"github.com/avitran/taxoform/internal/types"
)

// affirmativeTokens are the locale-specific Yes equivalents used to translate
// the rule sentinel into a gate field's actual enumeration literal.
var affirmativeTokens = []string{"oui", "yes"}

// ArtifactSet names the taxonomy artifacts of one (industry, year) pair
// relative to the filesystem passed to Load. Schema and Structure are
// required; the rest are optional and empty names mean absent.
type ArtifactSet struct {
	Industry string
	Year     int

	Schema     string
	Labels     string
	Definition string
	Rules      string
	Structure  string
}

// Load parses the artifact set and assembles the questionnaire model.
func Load(fsys fs.FS, artifacts ArtifactSet) (*Questionnaire, error) {
	return LoadWithOptions(fsys, artifacts, NewLoadOptions())
}

// LoadDir loads a taxonomy rooted at a directory path.
func LoadDir(path string, artifacts ArtifactSet) (*Questionnaire, error) {
	return Load(os.DirFS(path), artifacts)
}

// LoadDirWithOptions loads a taxonomy rooted at a directory path with
// explicit configuration.
func LoadDirWithOptions(path string, artifacts ArtifactSet, opts LoadOptions) (*Questionnaire, error) {
	return LoadWithOptions(os.DirFS(path), artifacts, opts)
}

// LoadWithOptions parses the artifact set with explicit configuration. The
// load is a pure function of the artifacts: any parse or binding failure
// aborts the whole load and nothing partially built is returned.
func LoadWithOptions(fsys fs.FS, artifacts ArtifactSet, opts LoadOptions) (*Questionnaire, error) {
	if fsys == nil {
		return nil, fmt.Errorf("load taxonomy: nil fs")
	}
	if artifacts.Schema == "" {
		return nil, fmt.Errorf("load taxonomy: no schema artifact")
	}
	if artifacts.Structure == "" {
		return nil, fmt.Errorf("load taxonomy: no structure artifact")
	}
	logger := opts.resolvedLogger()

	schema, err := schemaparse.ParseFS(fsys, artifacts.Schema, opts.maxFields)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	labels, err := loadLabels(fsys, artifacts.Labels)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	rules, err := loadRules(fsys, artifacts.Rules, opts)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	dims := types.Dimensions{Fields: map[string]struct{}{}}
	if artifacts.Definition != "" {
		dims, err = defparse.ParseFS(fsys, artifacts.Definition, defparse.Config{
			AbstractPattern:     opts.abstractPattern,
			MemberSuffixPattern: opts.memberSuffixPattern,
			Logger:              logger,
		})
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
	}

	index := buildFieldIndex(schema, labels, rules, dims)

	structure, err := structparse.ParseFS(fsys, artifacts.Structure)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	questionnaire, err := bind(structure, index, artifacts, schema.Namespace, dims)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	return questionnaire, nil
}

// loadLabels reads the optional label artifact; absence yields empty labels.
func loadLabels(fsys fs.FS, name string) (map[string]types.Labels, error) {
	if name == "" {
		return map[string]types.Labels{}, nil
	}
	labels, err := labelparse.ParseFS(fsys, name)
	if err != nil {
		if errors.IsCode(err, errors.ErrMissingArtifact) {
			return map[string]types.Labels{}, nil
		}
		return nil, err
	}
	return labels, nil
}

// loadRules reads the optional rule artifact; absence yields no gates.
func loadRules(fsys fs.FS, name string, opts LoadOptions) (types.Rules, error) {
	empty := types.Rules{
		Dependencies: map[string]map[string]string{},
		Gates:        map[string]struct{}{},
	}
	if name == "" {
		return empty, nil
	}
	rules, err := ruleparse.ParseFS(fsys, name, opts.resolvedLogger())
	if err != nil {
		if errors.IsCode(err, errors.ErrMissingArtifact) {
			return empty, nil
		}
		return types.Rules{}, err
	}
	return rules, nil
}

// buildFieldIndex merges the parser outputs into a normalized-id keyed field
// index covering every schema-declared field.
func buildFieldIndex(schema *schemaparse.Schema, labels map[string]types.Labels, rules types.Rules, dims types.Dimensions) map[string]*Field {
	index := make(map[string]*Field, len(schema.Decls))
	for _, decl := range schema.Decls {
		normalized := strings.ToLower(decl.WireID)
		if _, ok := index[normalized]; ok {
			// First declaration wins when casings collide.
			continue
		}

		field := &Field{
			NormalizedID: normalized,
			WireID:       decl.WireID,
			Type:         decl.Type,
			RawType:      decl.RawType,
			Enums:        decl.Enums,
			Label:        decl.WireID,
		}
		if resolved, ok := labels[decl.WireID]; ok {
			if resolved.Label != "" {
				field.Label = resolved.Label
			}
			field.VerboseLabel = resolved.Verbose
		}
		if _, ok := dims.Fields[decl.WireID]; ok {
			field.Dimensional = true
		}
		if _, ok := rules.Gates[normalized]; ok {
			field.IsGate = true
		}
		if deps, ok := rules.Dependencies[normalized]; ok {
			field.VisibilityRule = translateRule(deps, schema)
		}
		index[normalized] = field
	}
	return index
}

// translateRule rewrites each sentinel gate value into the controlling
// field's actual enumeration literal. The sentinel survives untranslated
// when the controlling field is unknown or has no two-valued enumeration.
func translateRule(deps map[string]string, schema *schemaparse.Schema) map[string]string {
	rule := make(map[string]string, len(deps))
	for controlling, sentinel := range deps {
		rule[controlling] = sentinel
		decl, ok := declByNormalizedID(schema, controlling)
		if !ok || len(decl.Enums) != 2 {
			continue
		}
		for _, literal := range decl.Enums {
			if matchesAffirmative(literal) {
				rule[controlling] = literal
				break
			}
		}
	}
	return rule
}

func matchesAffirmative(literal string) bool {
	lower := strings.ToLower(literal)
	for _, token := range affirmativeTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func declByNormalizedID(schema *schemaparse.Schema, normalized string) (types.Decl, bool) {
	for _, decl := range schema.Decls {
		if strings.ToLower(decl.WireID) == normalized {
			return decl, true
		}
	}
	return types.Decl{}, false
}

// bind walks the structure tree, resolves every question against the field
// index, and assembles the questionnaire. Unknown and duplicate field
// references abort the bind.
func bind(structure *types.Structure, index map[string]*Field, artifacts ArtifactSet, namespace string, dims types.Dimensions) (*Questionnaire, error) {
	questionnaire := &Questionnaire{
		Industry:  artifacts.Industry,
		Year:      artifacts.Year,
		Namespace: namespace,
		Dimension: Dimension{
			Name:         dims.Name,
			MemberPrefix: dims.MemberPrefix,
		},
		index: make(map[string]*Field),
	}

	seen := make(map[string]string)
	for _, section := range structure.Sections {
		bound := Section{Number: section.Number, Title: section.Title}
		for _, subsection := range section.Subsections {
			boundSub := Subsection{Number: subsection.Number, Title: subsection.Title}
			location := fmt.Sprintf("%s, %s", section.Title, subsection.Title)
			for _, question := range subsection.Questions {
				field, ok := index[question.FieldID]
				if !ok {
					return nil, &errors.Load{
						Code:     errors.ErrUnknownField,
						Location: location,
						Message:  fmt.Sprintf("field %s is not declared by the schema", question.FieldID),
					}
				}
				if first, dup := seen[question.FieldID]; dup {
					return nil, &errors.Load{
						Code:     errors.ErrDuplicateField,
						Location: location,
						Message:  fmt.Sprintf("field %s already referenced at %s", question.FieldID, first),
					}
				}
				seen[question.FieldID] = location
				questionnaire.index[field.NormalizedID] = field
				boundSub.Questions = append(boundSub.Questions, Question{
					Number:       question.Number,
					Instructions: question.Instructions,
					Field:        field,
				})
			}
			bound.Subsections = append(bound.Subsections, boundSub)
		}
		questionnaire.Sections = append(questionnaire.Sections, bound)
	}
	return questionnaire, nil
}
