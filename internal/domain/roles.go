package domain

// Role category names, used for webhook announcements and logging.
const (
	CategoryDeveloper     = "developer"
	CategoryModerator     = "moderator"
	CategoryOfficeHours   = "office hours"
	CategoryAnnouncements = "announcements"
)

// RoleIDs holds the four configured category role ids.
type RoleIDs struct {
	Developer     string
	Moderator     string
	OfficeHours   string
	Announcements string
}

// All returns every configured category role id in a stable order. Used by
// the replace-roles revoke pass, which clears all four categories
// unconditionally before granting the new set.
func (r RoleIDs) All() []string {
	return []string{r.Moderator, r.Developer, r.OfficeHours, r.Announcements}
}

// RoleSelection is the user's four category toggles. It is explicit state
// threaded through every flow operation: the selection is read fresh from
// the request at code-send, verify, and update time, never reconstructed
// from the stored record.
type RoleSelection struct {
	Developer     bool `json:"developer"`
	Moderator     bool `json:"moderator"`
	OfficeHours   bool `json:"officeHours"`
	Announcements bool `json:"announcements"`
}

// RoleIDList maps the selection onto the configured role ids, in the same
// order the categories are granted.
func (s RoleSelection) RoleIDList(ids RoleIDs) []string {
	roles := []string{}
	if s.Moderator {
		roles = append(roles, ids.Moderator)
	}
	if s.Developer {
		roles = append(roles, ids.Developer)
	}
	if s.OfficeHours {
		roles = append(roles, ids.OfficeHours)
	}
	if s.Announcements {
		roles = append(roles, ids.Announcements)
	}
	return roles
}

// Categories returns the human-readable names of the selected categories.
func (s RoleSelection) Categories() []string {
	names := []string{}
	if s.Moderator {
		names = append(names, CategoryModerator)
	}
	if s.Developer {
		names = append(names, CategoryDeveloper)
	}
	if s.OfficeHours {
		names = append(names, CategoryOfficeHours)
	}
	if s.Announcements {
		names = append(names, CategoryAnnouncements)
	}
	return names
}
