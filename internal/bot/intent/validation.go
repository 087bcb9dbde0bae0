package intent

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// The two recognized top-level reply shapes. Anything that matches neither maps
// to KindNotRecognized, never to a partially populated variant.

const suggestSchemaJSON = `{
	"type": "object",
	"required": ["suggest"],
	"properties": {
		"suggest": {"type": "boolean"},
		"count": {"type": "integer"},
		"type": {"type": "string", "minLength": 1}
	}
}`

const entitySchemaJSON = `{
	"type": "object",
	"required": ["is_pokemon"],
	"properties": {
		"is_pokemon": {"type": "boolean"},
		"name": {"type": "string"},
		"topics": {
			"type": "array",
			"items": {
				"type": "string",
				"enum": ["color", "height", "weight", "type", "advantages", "weaknesses"]
			}
		},
		"answer_full": {"type": "boolean"}
	}
}`

type schemas struct {
	suggest *gojsonschema.Schema
	entity  *gojsonschema.Schema
}

func compileSchemas() (*schemas, error) {
	suggest, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(suggestSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile suggest schema: %w", err)
	}
	entity, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(entitySchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile entity schema: %w", err)
	}
	return &schemas{suggest: suggest, entity: entity}, nil
}

func (s *schemas) matchesSuggest(doc string) bool {
	result, err := s.suggest.Validate(gojsonschema.NewStringLoader(doc))
	return err == nil && result.Valid()
}

func (s *schemas) matchesEntity(doc string) bool {
	result, err := s.entity.Validate(gojsonschema.NewStringLoader(doc))
	return err == nil && result.Valid()
}
