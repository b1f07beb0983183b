package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrInvalid is wrapped by every error Validate reports about document content.
var ErrInvalid = errors.New("config validation errors")

// Validate checks the document for:
//   - Field rules declared in struct tags (required ids, titles, items)
//   - Duplicate node ids within the dialogue
//   - Duplicate quest ids and duplicate objective refs within a quest
//
// Child references that do not resolve or do not alternate speakers are not
// errors; the dialogue drops them when it is built.
func Validate(doc *Document) error {
	var errs []string

	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, fmt.Sprintf("%s: failed %q rule", fe.Namespace(), fe.Tag()))
		}
	}

	nodes := make(map[string]int)
	for i, n := range doc.Dialogue.Nodes {
		if n.ID == "" {
			continue
		}
		if prev, ok := nodes[n.ID]; ok {
			errs = append(errs, fmt.Sprintf("duplicate node id %q (first seen at nodes[%d], again at nodes[%d])", n.ID, prev, i))
			continue
		}
		nodes[n.ID] = i
	}

	quests := make(map[string]int)
	for i, q := range doc.Quests {
		if q.ID != "" {
			if prev, ok := quests[q.ID]; ok {
				errs = append(errs, fmt.Sprintf("duplicate quest id %q (first seen at quests[%d], again at quests[%d])", q.ID, prev, i))
			} else {
				quests[q.ID] = i
			}
		}
		refs := make(map[string]struct{})
		for _, o := range q.Objectives {
			if o.Ref == "" {
				continue
			}
			if _, ok := refs[o.Ref]; ok {
				errs = append(errs, fmt.Sprintf("quest %s: duplicate objective ref %q", q.ID, o.Ref))
			}
			refs[o.Ref] = struct{}{}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalid, strings.Join(errs, "\n  - "))
	}
	return nil
}
