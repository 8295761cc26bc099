package types

import "strings"

// Member roles
const (
	RoleAdmin      = "ADMIN"
	RoleChefProjet = "CHEF_PROJET"
	RoleMembre     = "MEMBRE"
)

// Task Status values
const (
	StatusPending    = "En attente"
	StatusInProgress = "En cours"
	StatusDone       = "Terminé"
	StatusCancelled  = "Annulé"
)

// Task Priority values
const (
	PriorityLow    = "Basse"
	PriorityMedium = "Moyenne"
	PriorityHigh   = "Haute"
	PriorityUrgent = "Urgente"
)

var ValidRoles = []string{RoleAdmin, RoleChefProjet, RoleMembre}

var ValidTaskStatuses = []string{
	StatusPending, StatusInProgress, StatusDone, StatusCancelled,
}

var ValidPriorities = []string{
	PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent,
}

// NormalizeRole maps an external role representation onto the closed role
// set. Legacy rows carry inconsistent casing ("Admin", "Membre"), so roles
// are normalized once here, at ingestion, never at comparison sites.
func NormalizeRole(role string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleChefProjet, "CHEF DE PROJET":
		return RoleChefProjet, true
	case RoleMembre:
		return RoleMembre, true
	}
	return "", false
}

func IsValidRole(role string) bool {
	_, ok := NormalizeRole(role)
	return ok
}

func IsValidTaskStatus(status string) bool {
	for _, s := range ValidTaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPriority(priority string) bool {
	for _, p := range ValidPriorities {
		if p == priority {
			return true
		}
	}
	return false
}
