package techstacks

type TechStackType string

const (
	TechStackTypeLanguage TechStackType = "LANGUAGE"
	TechStackTypeTech     TechStackType = "TECH"
)

func (t TechStackType) IsValid() bool {
	return t == TechStackTypeLanguage || t == TechStackTypeTech
}
