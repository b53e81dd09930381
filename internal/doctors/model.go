package doctors

// ConsultationType enumerates how a doctor can be seen.
const (
	ConsultationVideo    = "video"
	ConsultationInPerson = "in-person"
)

// Doctor describes a bookable dermatologist.
type Doctor struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Specialty         string              `json:"specialty"`
	Experience        string              `json:"experience"`
	Rating            float64             `json:"rating"`
	Reviews           int                 `json:"reviews"`
	Price             int                 `json:"price"`
	Languages         []string            `json:"languages"`
	Location          string              `json:"location"`
	Bio               string              `json:"bio"`
	Education         []string            `json:"education"`
	Certifications    []string            `json:"certifications"`
	Availability      map[string][]string `json:"availability"`
	ConsultationTypes []string            `json:"consultationType"`
}
