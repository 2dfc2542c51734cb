package pets

import (
	"bytes"
	"encoding/json"
	"strings"
)

// AdoptionStatus es el único campo que el cliente muta localmente.
type AdoptionStatus string

const (
	StatusAvailable AdoptionStatus = "Available"
	StatusAdopted   AdoptionStatus = "Adopted"
)

// ParseAdoptionStatus normaliza el valor que manda el catálogo.
// Vacío o desconocido => Available.
func ParseAdoptionStatus(s string) AdoptionStatus {
	if strings.EqualFold(strings.TrimSpace(s), string(StatusAdopted)) {
		return StatusAdopted
	}
	return StatusAvailable
}

type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON acepta owner como objeto o como string plano (el catálogo
// devuelve ambas formas según el endpoint).
func (o *Owner) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		*o = Owner{Name: name}
		return nil
	}

	type plain Owner
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*o = Owner(p)
	return nil
}

// Pet es el espejo local de un registro del catálogo remoto.
type Pet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Location    string `json:"location"`

	AdoptionStatus AdoptionStatus `json:"adoptionStatus"`

	Image Image  `json:"image"`
	Owner *Owner `json:"owner,omitempty"`
}

func (p Pet) IsAdopted() bool { return p.AdoptionStatus == StatusAdopted }

func (p Pet) OwnerName() string {
	if p.Owner == nil {
		return ""
	}
	return p.Owner.Name
}

// Normalize aplica los defaults del modelo (status, edad no negativa).
func Normalize(p Pet) Pet {
	p.AdoptionStatus = ParseAdoptionStatus(string(p.AdoptionStatus))
	if p.Age < 0 {
		p.Age = 0
	}
	if p.Owner != nil {
		o := *p.Owner
		p.Owner = &o
	}
	return p
}
