package model

type Status string

const (
	StatusPermitido Status = "permitido"
	StatusDenegado  Status = "denegado"
)

func StatusOf(allowed bool) Status {
	if allowed {
		return StatusPermitido
	}
	return StatusDenegado
}

// Reason strings are part of the wire contract; clients match on them.
const (
	ReasonPersonNotRegistered = "Persona no registrada"
	ReasonNoActiveMembership  = "Sin membresías activas"
	ReasonStaffAccess         = "Acceso de funcionario"
	ReasonStudentInSchedule   = "Alumno en horario"
	ReasonStudentOffSchedule  = "Alumno fuera de horario"
	ReasonStudentFlexible     = "Alumno con acceso flexible"
	ReasonExitRecorded        = "Salida registrada"
)

type PersonSummary struct {
	ID   int64  `json:"id"`
	RUT  string `json:"rut"`
	Name string `json:"name"`
}

type OrganizationSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	AccessRulePreset string `json:"access_rule_preset"`
}

type Decision struct {
	Allowed      bool                 `json:"allowed"`
	Status       Status               `json:"status"`
	Reason       string               `json:"reason"`
	Person       *PersonSummary       `json:"person"`
	Organization *OrganizationSummary `json:"organization,omitempty"`
}

func SummarizePerson(p Person) *PersonSummary {
	return &PersonSummary{ID: p.ID, RUT: p.RUT, Name: p.Name}
}

func SummarizeOrganization(o Organization) *OrganizationSummary {
	return &OrganizationSummary{ID: o.ID, Name: o.Name, AccessRulePreset: o.AccessRulePreset}
}
