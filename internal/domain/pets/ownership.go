package pets

import "strings"

// IsOwner indica si userName es el dueño de la mascota.
// Sin usuario (visitante anónimo) nunca es dueño.
func IsOwner(p Pet, userName string) bool {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return false
	}
	return p.OwnerName() == userName
}
