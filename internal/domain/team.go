package domain

// UnassignedMarker selects tickets without an assignee in the assignee facet.
const UnassignedMarker = "unassigned"

// TeamMembers is the fixed roster tickets can be assigned to, in display order.
var TeamMembers = []string{
	"Sarah Johnson",
	"Mike Chen",
	"David Park",
	"Emily Rodriguez",
	"James Wilson",
	"AI Bot",
}

// IsTeamMember reports whether name is on the roster.
func IsTeamMember(name string) bool {
	for _, member := range TeamMembers {
		if member == name {
			return true
		}
	}
	return false
}
