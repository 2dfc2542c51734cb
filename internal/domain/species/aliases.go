package species

import "strings"

// aliasGroups solo cubre especies donde el nombre común no aparece en la raza
// o la descripción (p.ej. "python" no contiene "snake"). El resto matchea por
// el término literal.
var aliasGroups = map[string][]string{
	"snake":  {"snake", "anaconda", "python", "boa", "viper", "cobra", "adder", "serpent"},
	"spider": {"spider", "tarantula", "arachnid", "black widow", "wolf spider"},
}

// Aliases devuelve los sinónimos de un término de exclusión (en minúsculas).
// Sin grupo definido devuelve el propio término.
func Aliases(term string) []string {
	key := strings.ToLower(strings.TrimSpace(term))
	if key == "" {
		return nil
	}
	group, ok := aliasGroups[key]
	if !ok {
		return []string{key}
	}
	out := make([]string, len(group))
	copy(out, group)
	return out
}

// Expand aplana los sinónimos de todos los términos en un set.
func Expand(terms []string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, t := range terms {
		for _, a := range Aliases(t) {
			out[a] = struct{}{}
		}
	}
	return out
}
