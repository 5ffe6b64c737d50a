package domain

// ContactType distinguishes the two counterparty roles the ledger cares
// about. Contact management itself is owned externally; the ledger only
// checks existence and role.
type ContactType string

const (
	ContactCustomer ContactType = "CUSTOMER"
	ContactVendor   ContactType = "VENDOR"
)
