package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/osvalr/mmbridge/pkg/menu"
	"github.com/osvalr/mmbridge/pkg/player"
	"github.com/osvalr/mmbridge/pkg/script"
	"github.com/osvalr/mmbridge/pkg/settings"
)

// GenerateConfigJSONSchema produces a JSON Schema Draft 2020-12 document
// for the bridge configuration file.
func GenerateConfigJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&Config{})
	s.ID = "https://github.com/osvalr/mmbridge/schemas/config-v1.json"
	s.Title = "mmbridge configuration"
	s.Description = "Schema for mmbridge.yaml bridge configuration documents"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal config schema: %w", err)
	}
	return data, nil
}

// resultShapes maps exportable result kinds to their Go models.
var resultShapes = map[string]any{
	"menu_result":    &menu.Result{},
	"script_result":  &script.Result{},
	"config_write":   &settings.WriteResult{},
	"config_read":    &settings.ReadResult{},
	"playback_state": &player.State{},
	"track":          &player.Track{},
}

// ResultKinds lists the exportable result shapes in stable order.
func ResultKinds() []string {
	kinds := make([]string, 0, len(resultShapes))
	for k := range resultShapes {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// GenerateResultJSONSchema produces a JSON Schema document for one of the
// bridge's tool result shapes.
func GenerateResultJSONSchema(kind string) ([]byte, error) {
	model, ok := resultShapes[kind]
	if !ok {
		return nil, fmt.Errorf("unknown result kind %q (want one of %v)", kind, ResultKinds())
	}

	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(model)
	s.ID = jsonschema.ID(fmt.Sprintf("https://github.com/osvalr/mmbridge/schemas/%s-v1.json", kind))
	s.Title = fmt.Sprintf("mmbridge %s result", kind)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s schema: %w", kind, err)
	}
	return data, nil
}
