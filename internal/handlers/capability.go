package handlers

import "br.com.tucano.courier/internal/model"

// CanAccess is the explicit ownership check the boundary runs before touching
// a resource on someone's behalf. No reflection, no role registry: the caller
// may act on a resource they own, nothing else.
func CanAccess(callerID, resourceOwnerID model.AccountID) bool {
	if callerID == "" {
		return false
	}
	return callerID == resourceOwnerID
}
