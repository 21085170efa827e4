package httpapi

import (
	"errors"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/fcv/porteria/internal/porteria/model"
)

var errRUTNotString = errors.New("field rut must be a string")

// rutFromStruct pulls the identifier out of a protobuf check request. A
// missing field yields nil so validation reports it like a JSON body would.
func rutFromStruct(s *structpb.Struct) (*string, error) {
	v, ok := s.GetFields()["rut"]
	if !ok {
		return nil, nil
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, errRUTNotString
	}
	raw := sv.StringValue
	return &raw, nil
}

// decisionToStruct mirrors the JSON Decision shape, including person:null.
func decisionToStruct(d model.Decision) (*structpb.Struct, error) {
	fields := map[string]any{
		"allowed": d.Allowed,
		"status":  string(d.Status),
		"reason":  d.Reason,
		"person":  nil,
	}
	if d.Person != nil {
		fields["person"] = map[string]any{
			"id":   d.Person.ID,
			"rut":  d.Person.RUT,
			"name": d.Person.Name,
		}
	}
	if d.Organization != nil {
		fields["organization"] = map[string]any{
			"id":                 d.Organization.ID,
			"name":               d.Organization.Name,
			"access_rule_preset": d.Organization.AccessRulePreset,
		}
	}
	return structpb.NewStruct(fields)
}
