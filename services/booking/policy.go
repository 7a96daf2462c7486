package booking

import "servicehub/models"

// accessContext is everything an authorization rule may look at.
type accessContext struct {
	principal models.Principal
	booking   *models.Booking
	provider  *models.Provider // booked provider; nil when unknown
}

type rule func(ac accessContext) bool

func anyOf(rules ...rule) rule {
	return func(ac accessContext) bool {
		for _, r := range rules {
			if r(ac) {
				return true
			}
		}
		return false
	}
}

func isOwner(ac accessContext) bool {
	return ac.principal.UserID != "" && ac.principal.UserID == ac.booking.UserID
}

func isAdmin(ac accessContext) bool {
	return ac.principal.Role == models.RoleAdmin
}

// isBookedProvider matches a provider principal who owns the booked provider record.
func isBookedProvider(ac accessContext) bool {
	return ac.principal.Role == models.RoleProvider &&
		ac.provider != nil &&
		ac.provider.ID == ac.booking.ProviderID &&
		ac.provider.UserID == ac.principal.UserID
}

var (
	payPolicy      = anyOf(isOwner)
	completePolicy = anyOf(isOwner, isAdmin, isBookedProvider)
	cancelPolicy   = anyOf(isOwner, isAdmin)
)
